package rule

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError 单字段错误，Property 为去掉顶层结构名后的 JSON 路径.
type FieldError struct {
	Property string
	Message  string
}

// Errors 把 validator 的错误转为字段错误列表，非校验错误返回 nil.
func Errors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Property: property(fe.Namespace()), Message: Message(fe)})
	}

	return out
}

// Format 转为 ValidationErrors 字典.
func Format(err error) ValidationErrors {
	fields := Errors(err)
	if fields == nil {
		return nil
	}

	out := make(ValidationErrors, len(fields))
	for _, f := range fields {
		out[f.Property] = f.Message
	}

	return out
}

func property(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}

	return ns
}

// Message 返回面向客户端的错误描述.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "may not be null"
	case "size255":
		return "size must be between 1 and 255"
	case "weburl":
		return "must be a valid URL"
	case "enum":
		return fmt.Sprintf("invalid value %v", fe.Value())
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	}

	isString := fe.Kind() == reflect.String || fe.Kind() == reflect.Slice

	switch fe.ActualTag() {
	case "min", "gte":
		if isString {
			return fmt.Sprintf("size must be between %s and 2147483647", fe.Param())
		}

		return "must be greater than or equal to " + fe.Param()
	case "max", "lte":
		if isString {
			return fmt.Sprintf("size must be between 0 and %s", fe.Param())
		}

		return "must be less than or equal to " + fe.Param()
	default:
		return fmt.Sprintf("failed on %s", fe.ActualTag())
	}
}
