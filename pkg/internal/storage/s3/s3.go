// Package s3 处理S3存储操作，目前用于读取待导入的 ENA 分析 XML.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yeisme/genovault/pkg/configs"
	nlog "github.com/yeisme/genovault/pkg/log"
)

// ErrObjectTooLarge 对象超过 s3.max_object_size.
var ErrObjectTooLarge = errors.New("s3 object exceeds size limit")

// Client 包装 MinIO 客户端，所有操作都落在配置的 bucket 上.
type Client struct {
	*minio.Client
	bucket  string
	maxSize int64
}

// New 连接对象存储并确认 bucket 存在；开启 create_bucket 时自动创建.
func New(ctx context.Context, cfg *configs.S3Config) (*Client, error) {
	endpoint := cfg.Endpoint
	secure := cfg.UseSSL
	// 允许用户传完整 schema endpoint（http:// 或 https://）
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			secure = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("genovault", configs.AppVersion)

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}

	switch {
	case exists:
	case cfg.CreateBucket:
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}

		nlog.Logger().Info().Str("bucket", cfg.Bucket).Msg("bucket created")
	default:
		return nil, fmt.Errorf("bucket %s does not exist", cfg.Bucket)
	}

	nlog.Logger().Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.Bucket).Msg("s3 connected")

	return &Client{Client: cli, bucket: cfg.Bucket, maxSize: cfg.MaxObjectSize}, nil
}

// Bucket 返回默认 bucket.
func (c *Client) Bucket() string { return c.bucket }

// ListKeys 递归列出 prefix 下以 suffix 结尾的对象键.
func (c *Client) ListKeys(ctx context.Context, prefix, suffix string) ([]string, error) {
	var keys []string

	for obj := range c.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %s/%s: %w", c.bucket, prefix, obj.Err)
		}

		if suffix == "" || strings.HasSuffix(strings.ToLower(obj.Key), suffix) {
			keys = append(keys, obj.Key)
		}
	}

	return keys, nil
}

// ReadObject 读取整个对象，超过上限返回 ErrObjectTooLarge.
func (c *Client) ReadObject(ctx context.Context, key string) ([]byte, error) {
	obj, err := c.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	defer obj.Close()

	if c.maxSize <= 0 {
		return io.ReadAll(obj)
	}

	data, err := io.ReadAll(io.LimitReader(obj, c.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	if int64(len(data)) > c.maxSize {
		return nil, fmt.Errorf("%s: %w", key, ErrObjectTooLarge)
	}

	return data, nil
}

// HealthCheck 确认 bucket 可访问.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.BucketExists(ctx, c.bucket)
	return err
}

// Close minio 客户端无需释放资源.
func (c *Client) Close() error {
	return nil
}
