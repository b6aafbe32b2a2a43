package types

import "fmt"

type ErrorCode int

const (
	ErrCodeGeneral ErrorCode = iota + 1000
	ErrCodePermission
	ErrCodeNotFound
	ErrCodeInvalidInput
	ErrCodeTool
	ErrCodeCopy
	ErrCodeVerify
)

type PackError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *PackError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *PackError) Unwrap() error {
	return e.Cause
}

func NewError(code ErrorCode, message string, cause error) *PackError {
	return &PackError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

func (e *PackError) WithContext(key string, value interface{}) *PackError {
	e.Context[key] = value
	return e
}

// ToolError records a failed external tool invocation. Code carries the
// tool's own exit status so the pipeline can surface it unchanged.
type ToolError struct {
	Tool   string
	Args   []string
	Code   int
	Output string
	Err    error
}

func (e *ToolError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s exited with code %d: %s", e.Tool, e.Code, e.Output)
	}
	return fmt.Sprintf("%s exited with code %d", e.Tool, e.Code)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

func (e *ToolError) ExitCode() int {
	return e.Code
}
