package config

import (
	"errors"
	"os"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

const envPrefix = "CAMPUS"

var (
	cfg  *Config
	once sync.Once
)

// Init 读取配置文件，再用环境变量覆盖
// 配置文件路径默认 ./config.yaml，可通过 CONFIG_PATH 指定
func Init() {
	once.Do(func() {
		c, err := Load(os.Getenv("CONFIG_PATH"))
		if err != nil {
			panic(err)
		}
		cfg = c
	})
}

// Load 从指定路径加载配置；path 为空时查找工作目录下的 config.yaml，找不到文件时仅使用环境变量与默认值
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	c := &Config{}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	} else if err := v.Unmarshal(c); err != nil {
		return nil, err
	}
	if err := envconfig.Process(envPrefix, c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	return c, nil
}

// Get 获取全局配置，未初始化时使用默认值
func Get() *Config {
	if cfg == nil {
		Set(Default())
	}
	return cfg
}

// Set 替换全局配置，测试中使用
func Set(c *Config) {
	once.Do(func() {})
	cfg = c
}

// Default 返回仅包含默认值的配置
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.Prefix == "" {
		c.Prefix = "api"
	}
	if c.Mode == "" {
		c.Mode = ModeDebug
	}
	if c.JWT.AccessExpire <= 0 {
		c.JWT.AccessExpire = 7 * 24 * 3600
	}
	if c.Login.MaxAttempts <= 0 {
		c.Login.MaxAttempts = 5
	}
	if c.Login.LockMinutes <= 0 {
		c.Login.LockMinutes = 15
	}
	if c.S3.PresignExpire <= 0 {
		c.S3.PresignExpire = 3600
	}
}
