// Package handle 实现目录的 HTTP 处理器：绑定请求、调用服务，并按错误类别渲染统一错误体.
package handle

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/model"
	"github.com/yeisme/genovault/pkg/internal/query"
	"github.com/yeisme/genovault/pkg/internal/service"
	"github.com/yeisme/genovault/pkg/internal/types"
	"github.com/yeisme/genovault/pkg/log"
	"github.com/yeisme/genovault/pkg/rule"
)

// MsgMalformedBody 请求体不是合法 JSON 时的提示.
const MsgMalformedBody = "Malformed JSON request"

// StatusOf 错误类别对应的 HTTP 状态码.
func StatusOf(k errs.Kind) int {
	switch k {
	case errs.KindMalformedIdentifier,
		errs.KindInvalidReference,
		errs.KindInvalidReferenceType,
		errs.KindAnalysisWithoutReferenceSequence,
		errs.KindSampleWithoutTaxonomy,
		errs.KindFieldValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindDuplicateIdentity, errs.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Fail 渲染错误响应，非目录错误一律视为 500 且不向客户端暴露细节.
func Fail(c *gin.Context, err error) {
	l := log.Logger()

	e, ok := errs.As(err)
	if !ok || StatusOf(e.Kind) == http.StatusInternalServerError {
		l.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Internal server error",
			Exception: errs.KindUnknown.String(),
		})

		return
	}

	l.Debug().Err(err).Str("path", c.FullPath()).Str("kind", e.Kind.String()).Msg("request rejected")
	c.AbortWithStatusJSON(StatusOf(e.Kind), types.ErrorResponse{
		Error:     e.Message,
		Exception: e.Kind.String(),
		IDs:       e.IDs,
		Errors:    e.Fields,
	})
}

// reply 成功时写出 out，否则渲染错误.
func reply(c *gin.Context, status int, out any, err error) {
	if err != nil {
		Fail(c, err)

		return
	}

	c.JSON(status, out)
}

// bind 解码并校验 JSON 请求体，失败时已写出响应.
func bind(c *gin.Context, obj any) bool {
	// 确保 gin 的校验器已切换到 rule 标签
	rule.Engine()

	if err := c.ShouldBindJSON(obj); err != nil {
		Fail(c, bindError(err))

		return false
	}

	return true
}

func bindError(err error) error {
	if fields := rule.Errors(err); len(fields) > 0 {
		out := make([]errs.FieldError, 0, len(fields))
		for _, f := range fields {
			out = append(out, errs.FieldError{Property: f.Property, Message: f.Message})
		}

		return errs.FieldValidation(out...)
	}

	if errors.Is(err, model.ErrInvalidDate) {
		return errs.Field("releaseDate", model.ErrInvalidDate.Error())
	}

	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		return errs.Field(te.Field, "invalid value for type "+te.Type.String())
	}

	return errs.Field("body", MsgMalformedBody)
}

// catalog 取出请求上下文中的目录服务.
func catalog(c *gin.Context) *service.Catalog {
	return service.FromContext(c.Request.Context())
}

// pageOf 解析分页参数，失败时已写出响应.
func pageOf(c *gin.Context, sortable map[string]string) (query.Page, bool) {
	p, err := query.ParsePage(c.Query("page"), c.Query("size"), c.Query("sort"), catalog(c).Limits(), sortable)
	if err != nil {
		Fail(c, err)

		return query.Page{}, false
	}

	return p, true
}

// memberID 解析路径中的关联成员 id，非法时按未找到处理.
func memberID(c *gin.Context, param, entity string) (uint, bool) {
	raw := c.Param(param)

	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		Fail(c, errs.NotFound(entity, raw))

		return 0, false
	}

	return uint(id), true
}
