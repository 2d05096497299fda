package modules

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by the loader matches exactly one of
// these as its outermost kind; wrapped causes may match further kinds.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrModuleNotFound     = errors.New("module not found")
	ErrIO                 = errors.New("io error")
	ErrSyntax             = errors.New("syntax error")
	ErrCircularDependency = errors.New("circular dependency")
	ErrCapacityExceeded   = errors.New("capacity exceeded")
	ErrImportFailed       = errors.New("import failed")
)

var kindNames = map[error]string{
	ErrInvalidArgument:    "InvalidArgument",
	ErrModuleNotFound:     "ModuleNotFound",
	ErrIO:                 "IOError",
	ErrSyntax:             "SyntaxError",
	ErrCircularDependency: "CircularDependency",
	ErrCapacityExceeded:   "CapacityExceeded",
	ErrImportFailed:       "ImportFailed",
}

var kindOrder = []error{
	ErrImportFailed,
	ErrCircularDependency,
	ErrCapacityExceeded,
	ErrModuleNotFound,
	ErrSyntax,
	ErrIO,
	ErrInvalidArgument,
}

// Error is a module-system failure: what went wrong (Kind), for which module
// and file, and the underlying cause if any.
type Error struct {
	Kind   error
	Module string
	Path   string
	Cause  error
}

func NewError(kind error, module, path string, cause error) *Error {
	return &Error{Kind: kind, Module: module, Path: path, Cause: cause}
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Module != "" {
		msg = fmt.Sprintf("module '%s': %s", e.Module, msg)
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// KindOf returns the outermost error kind of err, or nil when err does not
// come from the module system.
func KindOf(err error) error {
	var modErr *Error
	if errors.As(err, &modErr) {
		return modErr.Kind
	}
	for _, kind := range kindOrder {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// KindName returns the diagnostic tag for err's kind, e.g. "ModuleNotFound".
func KindName(err error) string {
	if name, ok := kindNames[KindOf(err)]; ok {
		return name
	}
	return "Unknown"
}
