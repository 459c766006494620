package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"molin/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

func init() {
	// 让 validator 报错时使用 json 字段名而不是 Go 字段名
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// respond 写出成功信封
func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, response.Success(data, message))
}

// fail 写出失败信封，HTTP 状态码由错误码决定
func fail(c *gin.Context, code response.ErrorCode, message string) {
	env := response.Error(code, message)
	c.JSON(env.Error.Status, env)
}

// failBinding 把请求体绑定/校验错误翻译成逐字段的 invalid_input 响应
func failBinding(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]response.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, response.FieldError{
				Field:   fe.Field(),
				Message: fieldErrorMessage(fe),
			})
		}
		env := response.ValidationError("Validation failed", fields)
		c.JSON(env.Error.Status, env)
		return
	}
	fail(c, response.CodeBadRequest, "Malformed request body")
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be less than %s characters", fe.Field(), fe.Param())
	case "uuid":
		return "Invalid category ID"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// failInternal 兜底：错误只记日志，对外返回笼统的 500
func failInternal(c *gin.Context, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
	fail(c, response.CodeInternalServerError, "Internal server error")
}
