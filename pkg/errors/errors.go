package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrAborted      ErrorCode = "ABORTED"
	ErrIO           ErrorCode = "IO"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"

	// Workspace errors
	ErrManifest      ErrorCode = "MANIFEST"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrContentFound  ErrorCode = "CONTENT_FOUND"
	ErrNoURIFound    ErrorCode = "NO_URI_FOUND"
	ErrSemver        ErrorCode = "SEMVER"
	ErrSerialize     ErrorCode = "SERIALIZE"
	ErrDeserialize   ErrorCode = "DESERIALIZE"

	// Package errors
	ErrPackageNotValid ErrorCode = "PACKAGE_NOT_VALID"
	ErrPackageNotExist ErrorCode = "PACKAGE_NOT_EXIST"
	ErrPackageFormat   ErrorCode = "PACKAGE_FORMAT"
	ErrNamespace       ErrorCode = "NAMESPACE"

	// Remote errors
	ErrGit    ErrorCode = "GIT"
	ErrHTTP   ErrorCode = "HTTP"
	ErrGitHub ErrorCode = "GITHUB"

	// Publish errors
	ErrNoFiles          ErrorCode = "NO_FILES"
	ErrOmittedTypstFile ErrorCode = "OMITTED_TYPST_FILE"
	ErrOmittedEntryfile ErrorCode = "OMITTED_ENTRYFILE"

	// External tools
	ErrTestRunner ErrorCode = "TEST_RUNNER"
)

// defaultMessages are shown when an error is created without a message of its own.
var defaultMessages = map[ErrorCode]string{
	ErrManifest:         "Missing typst.toml manifest. Run `utpm ws init` to create one",
	ErrAlreadyExists:    "This package already exists",
	ErrContentFound:     "Content found in the destination directory. Put --force to overwrite it",
	ErrNoURIFound:       "No URI found, add at least one to the command",
	ErrPackageNotValid:  "Invalid package format",
	ErrPackageNotExist:  "Package not found",
	ErrPackageFormat:    "Package must follow the @preview/name:version format to be published",
	ErrNamespace:        "Invalid namespace",
	ErrSemver:           "Invalid semantic version",
	ErrNoFiles:          "No files to publish",
	ErrOmittedTypstFile: "typst.toml is not part of the published files",
	ErrOmittedEntryfile: "The entrypoint is not part of the published files",
	ErrAborted:          "Operation aborted",
}

// DefaultMessage returns the user-facing message associated with a code.
func DefaultMessage(code ErrorCode) string {
	if msg, ok := defaultMessages[code]; ok {
		return msg
	}
	return string(code)
}

// UtpmError represents a structured error with code and details
type UtpmError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *UtpmError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *UtpmError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target carries the same code.
func (e *UtpmError) Is(target error) bool {
	var targetErr *UtpmError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new UtpmError with the given code and message.
// An empty message falls back to the code's default message.
func New(code ErrorCode, message string) *UtpmError {
	if message == "" {
		message = DefaultMessage(code)
	}
	return &UtpmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new UtpmError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *UtpmError {
	return &UtpmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a UtpmError
func Wrap(err error, code ErrorCode, message string) *UtpmError {
	if err == nil {
		return nil
	}
	if message == "" {
		message = DefaultMessage(code)
	}
	return &UtpmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *UtpmError {
	if err == nil {
		return nil
	}
	return &UtpmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// AlreadyExists builds the error returned when linking over an installed version.
func AlreadyExists(name, version string) *UtpmError {
	return Newf(ErrAlreadyExists,
		"This package (%s:%s) already exists. Put --force to force the copy or change the version in 'typst.toml'",
		name, version).
		WithDetail("name", name).
		WithDetail("version", version)
}

// WithDetail adds a detail to the error
func (e *UtpmError) WithDetail(key string, value interface{}) *UtpmError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *UtpmError) WithDetails(details map[string]interface{}) *UtpmError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var utpmErr *UtpmError
	if errors.As(err, &utpmErr) {
		return utpmErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a UtpmError
func GetErrorCode(err error) ErrorCode {
	var utpmErr *UtpmError
	if errors.As(err, &utpmErr) {
		return utpmErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a UtpmError
func GetErrorDetails(err error) map[string]interface{} {
	var utpmErr *UtpmError
	if errors.As(err, &utpmErr) {
		return utpmErr.Details
	}
	return nil
}
