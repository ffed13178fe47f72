package tools

import (
	"bytes"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/xuri/excelize/v2"
)

const ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet 工作簿中的一页，Rows 必须是结构体（或结构体指针）切片
type Sheet struct {
	Name string
	Rows any
}

// BuildWorkbook 按顺序写入多个 sheet，返回 xlsx 文件内容
func BuildWorkbook(sheets ...Sheet) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if err := ExportToExcel(f, s.Name, s.Rows); err != nil {
			return nil, fmt.Errorf("写入 sheet %s 失败: %w", s.Name, err)
		}
		if i == 0 {
			idx, err := f.GetSheetIndex(s.Name)
			if err == nil && idx >= 0 {
				f.SetActiveSheet(idx)
			}
		}
	}
	// excelize 默认带一个 Sheet1，被占用时不能删
	if len(sheets) > 0 && !hasSheet(sheets, "Sheet1") {
		deleteSheet(f, "Sheet1")
	}
	return f.WriteToBuffer()
}

// deleteSheet 删除失败只多出一个空 sheet，记录后继续
func deleteSheet(f *excelize.File, name string) {
	if err := f.DeleteSheet(name); err != nil {
		slog.Default().Warn("删除 sheet 失败", "module", "Tools", "sheet", name, "error", err)
	}
}

func hasSheet(sheets []Sheet, name string) bool {
	for _, s := range sheets {
		if s.Name == name {
			return true
		}
	}
	return false
}

// ExportToExcel 将结构体切片写入 sheet，表头取 excel tag，"-" 跳过，空 tag 取字段名
// 空切片只写表头
func ExportToExcel(f *excelize.File, sheet string, data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("data %T 不是切片", data)
	}

	elemType := v.Type().Elem()
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("data %T 不是结构体切片", data)
	}

	if sheet == "" {
		sheet = "Sheet1"
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	type column struct {
		index  []int
		header string
	}
	var columns []column

	var collect func(t reflect.Type, parent []int)
	collect = func(t reflect.Type, parent []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if sf.PkgPath != "" {
				continue
			}
			idx := append(append([]int(nil), parent...), i)
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
				collect(sf.Type, idx)
				continue
			}
			tag := sf.Tag.Get("excel")
			if tag == "-" {
				continue
			}
			if tag == "" {
				tag = sf.Name
			}
			columns = append(columns, column{index: idx, header: tag})
		}
	}
	collect(elemType, nil)

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c.header
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for row := 0; row < v.Len(); row++ {
		elem := v.Index(row)
		if elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}
		values := make([]any, len(columns))
		for i, c := range columns {
			values[i] = cellValue(elem.FieldByIndex(c.index))
		}
		cell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func cellValue(fv reflect.Value) any {
	if fv.Kind() == reflect.Ptr {
		if fv.IsNil() {
			return ""
		}
		fv = fv.Elem()
	}
	if t, ok := fv.Interface().(time.Time); ok {
		if t.IsZero() {
			return ""
		}
		return t.Format(time.DateTime)
	}
	if fv.Kind() == reflect.String {
		return fv.String()
	}
	return fv.Interface()
}
