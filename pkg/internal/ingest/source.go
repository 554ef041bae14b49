package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	s3c "github.com/yeisme/genovault/pkg/internal/storage/s3"
	nlog "github.com/yeisme/genovault/pkg/log"
)

const xmlSuffix = ".xml"

// Source 待导入文档的来源.
type Source interface {
	// Name 用于日志与事件，如 dir:/data/ena.
	Name() string
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, key string) ([]byte, error)
}

// DirSource 读取本地目录下的 *.xml（不递归）.
type DirSource struct {
	Dir string
}

func (s DirSource) Name() string { return "dir:" + s.Dir }

func (s DirSource) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.Dir, err)
	}

	var keys []string

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), xmlSuffix) {
			continue
		}

		keys = append(keys, e.Name())
	}

	slices.Sort(keys)

	return keys, nil
}

func (s DirSource) Read(_ context.Context, key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Dir, filepath.Base(key)))
}

// S3Source 读取对象存储前缀下的 *.xml，读操作经过熔断器.
type S3Source struct {
	client  *s3c.Client
	prefix  string
	breaker *gobreaker.CircuitBreaker
}

// NewS3Source 连续失败 5 次后熔断 30 秒.
func NewS3Source(client *s3c.Client, prefix string) *S3Source {
	return &S3Source{
		client: client,
		prefix: prefix,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "ingest-s3",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				nlog.Logger().Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
			},
		}),
	}
}

func (s *S3Source) Name() string { return "s3:" + s.client.Bucket() + "/" + s.prefix }

func (s *S3Source) List(ctx context.Context) ([]string, error) {
	out, err := s.breaker.Execute(func() (any, error) {
		return s.client.ListKeys(ctx, s.prefix, xmlSuffix)
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.Name(), err)
	}

	keys, _ := out.([]string)
	slices.Sort(keys)

	return keys, nil
}

func (s *S3Source) Read(ctx context.Context, key string) ([]byte, error) {
	out, err := s.breaker.Execute(func() (any, error) {
		return s.client.ReadObject(ctx, key)
	})
	if err != nil {
		return nil, err
	}

	data, _ := out.([]byte)

	return data, nil
}
