package model

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError 是需要以指定状态码返回给前端的错误，Err 保留底层原因。
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StatusCode 返回对应的 HTTP 状态码，未设置时视为 500。
func (e *HTTPError) StatusCode() int {
	if e == nil || e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// NewHTTPError 根据格式化字符串构造一个 HTTPError。
func NewHTTPError(status int, format string, args ...any) *HTTPError {
	return &HTTPError{
		Status:  status,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapHTTPError 用 err 的描述拼出消息，并保留 err 以便 errors.Is 判断。
func WrapHTTPError(status int, err error, prefix string) *HTTPError {
	return &HTTPError{
		Status:  status,
		Message: prefix + ": " + err.Error(),
		Err:     err,
	}
}

// StatusOf 提取错误链上的 HTTP 状态码，找不到时返回 fallback。
func StatusOf(err error, fallback int) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode()
	}
	return fallback
}
