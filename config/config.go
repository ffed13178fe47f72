package config

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

type Config struct {
	Host   string `envconfig:"HOST"`
	Port   string `envconfig:"PORT"`
	Prefix string `envconfig:"PREFIX"`
	Mode   Mode   `envconfig:"MODE"`
	Mysql  Mysql
	Redis  Redis
	JWT    JWT
	Log    Log    `mapstructure:"Log"`
	Sentry Sentry `mapstructure:"Sentry"`
	S3     S3
	Login  Login

	// Bootstrap 启动时若不存在超级管理员则按此创建
	Bootstrap Bootstrap
}

type S3 struct {
	Endpoint        string `mapstructure:"endpoint" envconfig:"ENDPOINT"`
	BaseURL         string `mapstructure:"base_url" envconfig:"BASE_URL"`
	Bucket          string `mapstructure:"bucket" envconfig:"BUCKET"`
	Region          string `mapstructure:"region" envconfig:"REGION"`
	AccessKey       string `mapstructure:"access_key" envconfig:"ACCESS_KEY"`
	SecretAccessKey string `mapstructure:"secret_key" envconfig:"SECRET_KEY"`
	Prefix          string `mapstructure:"prefix" envconfig:"PREFIX"`
	UsePathStyle    bool   `mapstructure:"path_style" envconfig:"PATH_STYLE"`
	PresignExpire   int64  `mapstructure:"presign_expire" envconfig:"PRESIGN_EXPIRE"` // 下载链接有效期（秒）
}

type Mysql struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
}

type Redis struct {
	Host     string `mapstructure:"host" envconfig:"HOST"`
	Port     string `mapstructure:"port" envconfig:"PORT"`
	Password string `mapstructure:"password" envconfig:"PASSWORD"`
	DB       int    `mapstructure:"db" envconfig:"DB"`
}

type JWT struct {
	AccessSecret string `envconfig:"ACCESS_SECRET"`
	AccessExpire int64  `envconfig:"ACCESS_EXPIRE"` // 秒
}

type Log struct {
	FilePath   string `envconfig:"LOG_FILE_PATH" mapstructure:"file_path"`     // 日志文件路径
	Level      string `envconfig:"LOG_LEVEL" mapstructure:"level"`             // 日志级别：debug, info, warn, error
	MaxSize    int    `envconfig:"LOG_MAX_SIZE" mapstructure:"max_size"`       // 日志文件最大大小（MB）
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" mapstructure:"max_backups"` // 保留的旧日志文件数
	MaxAge     int    `envconfig:"LOG_MAX_AGE" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `envconfig:"LOG_COMPRESS" mapstructure:"compress"`       // 是否压缩旧日志文件
}

type Sentry struct {
	Dsn         string  `mapstructure:"dsn" envconfig:"DSN"`
	Environment string  `mapstructure:"environment" envconfig:"ENVIRONMENT"`
	SampleRate  float64 `mapstructure:"sample_rate" envconfig:"SAMPLE_RATE"`
	Tracing     SentryTracing
}

type SentryTracing struct {
	DBSlowThresholdMs    int64 `mapstructure:"db_slow_threshold_ms" envconfig:"DB_SLOW_THRESHOLD_MS"`
	RedisSlowThresholdMs int64 `mapstructure:"redis_slow_threshold_ms" envconfig:"REDIS_SLOW_THRESHOLD_MS"`
}

// Login 登录失败限流配置
type Login struct {
	MaxAttempts int `mapstructure:"max_attempts" envconfig:"MAX_ATTEMPTS"`
	LockMinutes int `mapstructure:"lock_minutes" envconfig:"LOCK_MINUTES"`
}

type Bootstrap struct {
	SuperAdminEmail    string `mapstructure:"super_admin_email" envconfig:"SUPER_ADMIN_EMAIL"`
	SuperAdminPassword string `mapstructure:"super_admin_password" envconfig:"SUPER_ADMIN_PASSWORD"`
}
