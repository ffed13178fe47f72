package test

import (
	"fmt"
	"strings"
	"testing"

	"campus-events/internal/global/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB 为每个测试创建独立的内存 sqlite 库，表结构与线上一致
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=off", name)
	db, err := database.Open(sqlite.Open(dsn), "sqlite")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// UseDB 替换全局 database.DB，供 handler 测试使用，结束后恢复
func UseDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := NewDB(t)
	old := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = old })
	return db
}
