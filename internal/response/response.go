package response

import (
	"time"
)

// ErrorCode 固定的错误码枚举，对应固定的 HTTP 状态码
type ErrorCode string

const (
	CodeNotFound            ErrorCode = "not_found"
	CodeBadRequest          ErrorCode = "bad_request"
	CodeUnauthorized        ErrorCode = "unauthorized"
	CodeForbidden           ErrorCode = "forbidden"
	CodeConflict            ErrorCode = "conflict"
	CodeInternalServerError ErrorCode = "internal_server_error"
	CodeInvalidInput        ErrorCode = "invalid_input"
	CodeMethodNotAllowed    ErrorCode = "method_not_allowed"
)

var statusByCode = map[ErrorCode]int{
	CodeBadRequest:          400,
	CodeInvalidInput:        400,
	CodeUnauthorized:        401,
	CodeForbidden:           403,
	CodeNotFound:            404,
	CodeMethodNotAllowed:    405,
	CodeConflict:            409,
	CodeInternalServerError: 500,
}

// StatusOf 返回错误码对应的 HTTP 状态码
func StatusOf(code ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return 400
}

// FieldError 校验失败时指出具体字段和原因
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorBody struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// Envelope 统一响应结构。成功时带 message/data，失败时带 error
type Envelope struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message,omitempty"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

func Success(data any, message string) Envelope {
	return Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

func Error(code ErrorCode, message string) Envelope {
	return Envelope{
		Success: false,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Status:  StatusOf(code),
		},
		Timestamp: time.Now().UTC(),
	}
}

// ValidationError 校验失败响应，附带逐字段错误
func ValidationError(message string, fields []FieldError) Envelope {
	env := Error(CodeInvalidInput, message)
	env.Error.Fields = fields
	return env
}
