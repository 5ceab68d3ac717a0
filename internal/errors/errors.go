package errors

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeConfigInvalid ErrorCode = "CONFIG_INVALID"
	CodeParseFailed   ErrorCode = "PARSE_FAILED"
	CodeScanFailed    ErrorCode = "SCAN_FAILED"
	CodeGraphEmpty    ErrorCode = "GRAPH_EMPTY"
	CodeHistoryIO     ErrorCode = "HISTORY_IO"
	CodeWatchInit     ErrorCode = "WATCH_INIT"
	CodeServeInit     ErrorCode = "SERVE_INIT"
	CodeRenderFailed  ErrorCode = "RENDER_FAILED"
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
)

const (
	CtxPath      = "path"
	CtxOperation = "operation"
	CtxLanguage  = "language"
	CtxModule    = "module"
)

type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if len(e.Context) > 0 {
		msg += fmt.Sprintf(" %v", e.Context)
	}
	return msg
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, msg string) error {
	return &DomainError{Code: code, Message: msg}
}

func Wrap(err error, code ErrorCode, msg string) error {
	return &DomainError{Code: code, Message: msg, Err: err}
}

// AddContext attaches a key/value pair to an existing DomainError, or wraps
// a plain error into one so the context is not lost.
func AddContext(err error, key string, value interface{}) error {
	var de *DomainError
	if errors.As(err, &de) {
		de.WithContext(key, value)
		return de
	}
	return &DomainError{
		Code:    CodeInternal,
		Message: "wrapped error",
		Err:     err,
		Context: map[string]interface{}{key: value},
	}
}

// IsCode checks if an error has a specific error code.
func IsCode(err error, code ErrorCode) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
