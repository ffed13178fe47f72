package database

import (
	"fmt"

	"campus-events/config"
	"campus-events/internal/global/sentry/tracing"
	"campus-events/internal/model"
	"campus-events/tools"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

func Init() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.Get().Mysql.Username,
		config.Get().Mysql.Password,
		config.Get().Mysql.Host,
		config.Get().Mysql.Port,
		config.Get().Mysql.DBName,
	)
	db, err := Open(mysql.Open(dsn), "mysql")
	tools.PanicOnErr(err)
	DB = db
}

// Open 使用统一配置打开数据库并自动迁移，测试中传入 sqlite dialector
func Open(dialector gorm.Dialector, system string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true}, // 还是单数表名好
		TranslateError: true,                                       // 唯一键冲突转为 gorm.ErrDuplicatedKey
	}

	switch config.Get().Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case config.ModeRelease:
		gormConfig.Logger = logger.Discard
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, err
	}
	if tracing.IsEnabled() {
		if err := db.Use(tracing.NewGormTracingPlugin(system)); err != nil {
			return nil, err
		}
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		return nil, err
	}
	return db, nil
}
