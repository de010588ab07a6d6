package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// 呼び出し側は errors.Is で種類を判定する
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrCapacityViolation = errors.New("capacity violation")
)

type HTTPError struct {
	Status  int
	Message string
	Param   string // InvalidArgumentのときの引数名
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%d: %s (%s)", e.Status, e.Message, e.Param)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func NewNotFoundError(message string) error {
	return &HTTPError{
		Status:  http.StatusNotFound,
		Message: message,
		Err:     ErrNotFound,
	}
}

func NewInvalidArgumentError(param string, message string) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: message,
		Param:   param,
		Err:     ErrInvalidArgument,
	}
}

// 容量不足はNotFoundと区別する（400）
func NewCapacityViolationError(message string) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: message,
		Err:     ErrCapacityViolation,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
