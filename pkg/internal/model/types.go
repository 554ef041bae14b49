package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// DateLayout 发布日期的文本格式.
const DateLayout = "2006-01-02"

// ErrInvalidDate 日期文本不是 yyyy-mm-dd.
var ErrInvalidDate = errors.New("Please provide a date in the form yyyy-mm-dd")

// Date 只保留日期部分的时间，统一存储为 UTC 零点.
type Date struct {
	time.Time
}

// NewDate 截断到 UTC 零点.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()

	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate 严格按 yyyy-mm-dd 解析.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w: %w", s, ErrInvalidDate, err)
	}

	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return d.UTC().Format(DateLayout)
}

// After 比较日期部分.
func (d Date) After(o Date) bool { return d.Time.After(o.Time) }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*d = Date{}

		return nil
	}

	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ErrInvalidDate
	}

	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// Value 实现 driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}

	return d.UTC(), nil
}

// Scan 实现 sql.Scanner，兼容驱动返回 time.Time 或文本.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = NewDate(v)
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}

	return nil
}

func (d *Date) scanText(s string) error {
	if len(s) >= len(DateLayout) {
		if parsed, err := ParseDate(s[:len(DateLayout)]); err == nil {
			*d = parsed

			return nil
		}
	}

	return fmt.Errorf("cannot scan %q into Date", s)
}

// GormDataType 声明列类型.
func (Date) GormDataType() string { return "date" }

// StringList 以 JSON 文本存储的字符串列表.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}

	b, err := sonic.Marshal([]string(l))
	if err != nil {
		return nil, err
	}

	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	var b []byte

	switch v := src.(type) {
	case nil:
		*l = nil

		return nil
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}

	var out []string
	if err := sonic.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("decode string list: %w", err)
	}

	*l = out

	return nil
}

func (StringList) GormDataType() string { return "text" }

// Audit 审计时间戳，仅由审计插件写入.
type Audit struct {
	CreatedDate      time.Time `gorm:"not null"`
	LastModifiedDate time.Time `gorm:"not null"`
}
