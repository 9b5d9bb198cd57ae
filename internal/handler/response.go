package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ashwinyue/osint-framework/internal/model"
)

// ========== API 响应格式 ==========

// SuccessResponse 成功响应
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse 错误响应，error 为错误类别，message 面向用户
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// 错误类别
const (
	ErrKindNotFound       = "NotFoundError"
	ErrKindValidation     = "ValidationError"
	ErrKindNotImplemented = "NotImplementedError"
	ErrKindPersistence    = "PersistenceError"
	ErrKindInternal       = "InternalError"
	ErrKindRateLimited    = "RateLimitError"
)

// Success 成功响应 (200)
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: data})
}

// Fail 错误响应
func Fail(c *gin.Context, status int, kind, msg string) {
	c.JSON(status, ErrorResponse{Success: false, Error: kind, Message: msg})
}

// AbortWithError 错误响应并中止后续处理器（中间件使用）
func AbortWithError(c *gin.Context, status int, kind, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Error: kind, Message: msg})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, msg string) {
	Fail(c, http.StatusBadRequest, ErrKindValidation, msg)
}

// Error 根据错误类型返回相应的错误响应
func Error(c *gin.Context, err error) {
	if err == nil {
		return
	}
	status, kind := Classify(err)
	msg := err.Error()
	if kind == ErrKindInternal {
		// 未知错误只记录在服务端
		_ = c.Error(err)
		msg = "internal server error"
	}
	Fail(c, status, kind, msg)
}

// Classify 错误到 HTTP 状态码与类别的映射
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, ErrKindNotFound
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, ErrKindValidation
	case errors.Is(err, model.ErrNotImplemented):
		return http.StatusNotImplemented, ErrKindNotImplemented
	case errors.Is(err, model.ErrPersistence):
		return http.StatusInternalServerError, ErrKindPersistence
	default:
		return http.StatusInternalServerError, ErrKindInternal
	}
}

// BindError 请求体绑定失败时的 400 响应，校验错误转换为可读的字段说明
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		BadRequest(c, "invalid request body")
		return
	}
	var missing, invalid []string
	for _, fe := range verrs {
		name := jsonName(fe.Field())
		switch fe.Tag() {
		case "required":
			missing = append(missing, name)
		case "min", "max":
			invalid = append(invalid, fmt.Sprintf("%s must be between 0 and %d", name, model.MaxRating))
		default:
			invalid = append(invalid, name+" is invalid")
		}
	}
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, strings.Join(missing, " and ")+" required")
	}
	parts = append(parts, invalid...)
	BadRequest(c, strings.Join(parts, "; "))
}

func jsonName(field string) string {
	switch field {
	case "ToolID":
		return "toolId"
	case "":
		return field
	default:
		return strings.ToLower(field[:1]) + field[1:]
	}
}
