// Package storage 对象存储（S3 兼容），保存导出的报表与活动海报
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"campus-events/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Default 未配置 bucket 时为 nil，调用方回退为直接下载
var Default *Storage

type Storage struct {
	cfg      config.S3
	client   *s3.Client
	uploader *manager.Uploader
}

// Object 上传结果
type Object struct {
	Key         string    `json:"file_key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func Init(ctx context.Context) error {
	cfg := config.Get().S3
	if cfg.Bucket == "" {
		return nil
	}
	s, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	Default = s
	return nil
}

func New(ctx context.Context, cfg config.S3) (*Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("加载 S3 配置失败: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &Storage{
		cfg:      cfg,
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

// Upload 上传到 <prefix>/<dir>/<日期>/ 下，返回对象 key
func (s *Storage) Upload(ctx context.Context, dir, filename, contentType string, body io.Reader) (string, error) {
	key := objectKey(s.cfg.Prefix, dir, filename, time.Now())
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("上传 %s 失败: %w", key, err)
	}
	return key, nil
}

// Presign 生成带时效的下载链接
func (s *Storage) Presign(ctx context.Context, key string) (*Object, error) {
	expires := time.Duration(s.cfg.PresignExpire) * time.Second
	presigned, err := s3.NewPresignClient(s.client).PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expires
	})
	if err != nil {
		return nil, fmt.Errorf("生成预签名 URL 失败: %w", err)
	}
	return &Object{
		Key:         key,
		DownloadURL: presigned.URL,
		ExpiresAt:   time.Now().Add(expires),
	}, nil
}

// Put 上传报表文件并返回下载链接
func (s *Storage) Put(ctx context.Context, filename, contentType string, body io.Reader) (*Object, error) {
	key, err := s.Upload(ctx, "reports", filename, contentType, body)
	if err != nil {
		return nil, err
	}
	return s.Presign(ctx, key)
}

// PublicURL 公开读的访问地址，未配置 BaseURL 时返回 key
func (s *Storage) PublicURL(key string) string {
	return publicURL(s.cfg.BaseURL, key)
}

func publicURL(base, key string) string {
	if base == "" {
		return key
	}
	return strings.TrimRight(base, "/") + "/" + key
}

// objectKey 形如 <prefix>/<dir>/20250301/<unixnano>-<filename>
func objectKey(prefix, dir, filename string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	key := path.Join(strings.Trim(prefix, "/"), dir, now.Format("20060102"),
		fmt.Sprintf("%d-%s", now.UnixNano(), name))
	return strings.TrimLeft(key, "/")
}
