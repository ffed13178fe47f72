package report

import (
	"bytes"
	"fmt"
	"time"

	"campus-events/internal/global/database"
	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/internal/global/sentry/tracing"
	"campus-events/internal/global/storage"
	"campus-events/internal/model"
	"campus-events/tools"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type popularRow struct {
	ID                 uint              `excel:"Event ID"`
	Name               string            `excel:"Name"`
	Type               model.EventType   `excel:"Type"`
	Status             model.EventStatus `excel:"Status"`
	StartTime          time.Time         `excel:"Start Time"`
	Location           string            `excel:"Location"`
	TotalRegistrations int64             `excel:"Registrations"`
	AttendedCount      int64             `excel:"Attended"`
	AttendanceRate     float64           `excel:"Attendance Rate (%)"`
	AverageRating      float64           `excel:"Average Rating"`
	FeedbackCount      int64             `excel:"Feedbacks"`
}

// BuildExport 生成包含全部报表的工作簿，列表不截断
func BuildExport(db *gorm.DB, t scope.Tenant, months int, asOf time.Time) (*bytes.Buffer, error) {
	dashboard, err := DashboardStats(db, t, asOf)
	if err != nil {
		return nil, err
	}
	popular, err := PopularEvents(db, t, PopularEventsOptions{})
	if err != nil {
		return nil, err
	}
	students, err := TopStudents(db, t, 0, SortAttended)
	if err != nil {
		return nil, err
	}
	types, err := EventTypeAnalytics(db, t)
	if err != nil {
		return nil, err
	}
	trends, err := AttendanceTrends(db, t, months, asOf)
	if err != nil {
		return nil, err
	}

	rows := make([]popularRow, 0, len(popular.Events))
	for _, e := range popular.Events {
		rows = append(rows, popularRow{
			ID:                 e.ID,
			Name:               e.Name,
			Type:               e.Type,
			Status:             e.Status,
			StartTime:          e.StartTime,
			Location:           e.Location,
			TotalRegistrations: e.TotalRegistrations,
			AttendedCount:      e.AttendedCount,
			AttendanceRate:     e.AttendanceRate,
			AverageRating:      e.AverageRating,
			FeedbackCount:      e.FeedbackCount,
		})
	}

	buf, err := tools.BuildWorkbook(
		tools.Sheet{Name: "Dashboard", Rows: []Dashboard{*dashboard}},
		tools.Sheet{Name: "Popular Events", Rows: rows},
		tools.Sheet{Name: "Students", Rows: students.TopStudents},
		tools.Sheet{Name: "Event Types", Rows: types},
		tools.Sheet{Name: "Attendance Trends", Rows: trends},
	)
	if err != nil {
		return nil, response.ErrServerInternal.WithOrigin(err)
	}
	return buf, nil
}

// ExportHandler 导出 xlsx；配置了对象存储时上传并返回下载链接，否则直接下载
func ExportHandler(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req TrendsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	asOf, err := parseAsOf(req.AsOf)
	if err != nil {
		response.Fail(c, err)
		return
	}

	ctx := c.Request.Context()
	span := tracing.StartSpan(ctx, "report.export", fmt.Sprintf("college %d", tenant.CollegeID()))
	buf, err := BuildExport(database.DB.WithContext(ctx), tenant, req.Months, asOf)
	tracing.Finish(span)
	if err != nil {
		log.Error("生成报表文件失败", "error", err, "college_id", tenant.CollegeID())
		response.Fail(c, err)
		return
	}
	filename := fmt.Sprintf("college-%d-report-%s.xlsx", tenant.CollegeID(), asOf.Format("20060102"))

	if storage.Default == nil {
		tools.SendAttachment(c, filename, tools.ExcelContentType, buf.Bytes())
		return
	}
	span = tracing.StartSpan(ctx, "s3.upload", filename)
	obj, err := storage.Default.Put(ctx, filename, tools.ExcelContentType, buf)
	tracing.Finish(span)
	if err != nil {
		log.Error("上传报表文件失败", "error", err, "college_id", tenant.CollegeID())
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	log.Info("报表已归档", "college_id", tenant.CollegeID(), "key", obj.Key)
	response.Success(c, obj)
}
