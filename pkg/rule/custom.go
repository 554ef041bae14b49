package rule

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Enum 由枚举类型实现，供 enum 规则校验取值.
type Enum interface {
	Valid() bool
}

func validateEnum(fl validator.FieldLevel) bool {
	e, ok := fl.Field().Interface().(Enum)
	if !ok {
		return false
	}

	return e.Valid()
}

// webSchemes 允许的网络资源协议.
var webSchemes = map[string]struct{}{"http": {}, "https": {}, "ftp": {}}

func validateWebURL(fl validator.FieldLevel) bool {
	return IsWebURL(fl.Field().String())
}

// IsWebURL 判断是否为带主机名的绝对 http、https 或 ftp 地址.
// 地址中不允许出现空白，主机名只允许字母、数字、"-" 与 ".".
func IsWebURL(s string) bool {
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}

	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return false
	}

	if _, ok := webSchemes[strings.ToLower(u.Scheme)]; !ok {
		return false
	}

	host := u.Hostname()
	if host == "" {
		return false
	}

	for _, r := range host {
		if !(r == '-' || r == '.' || r == ':' || r == '[' || r == ']' ||
			unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}

	return true
}
