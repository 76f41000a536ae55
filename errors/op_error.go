package errors

import (
	"fmt"
	"log/slog"
	"strings"
)

// opError is the concrete implementation of OpError.
// It is private to enforce construction through package functions.
type opError struct {
	code    ErrorCode
	op      string
	path    string
	dest    string
	errno   string
	message string
	cause   error
}

// Error returns the string representation of the error.
// Format: "[CODE] op path -> dest: message: cause", omitting empty parts.
func (e *opError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", e.code)
	if e.op != "" {
		b.WriteString(" ")
		b.WriteString(e.op)
	}
	if e.path != "" {
		b.WriteString(" ")
		b.WriteString(e.path)
	}
	if e.dest != "" {
		b.WriteString(" -> ")
		b.WriteString(e.dest)
	}
	if e.message != "" {
		b.WriteString(": ")
		b.WriteString(e.message)
	}
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

// Code returns the error code.
func (e *opError) Code() ErrorCode {
	return e.code
}

// Op returns the failed operation.
func (e *opError) Op() string {
	return e.op
}

// Path returns the primary path.
func (e *opError) Path() string {
	return e.path
}

// Dest returns the destination path.
func (e *opError) Dest() string {
	return e.dest
}

// Errno returns the symbolic OS error name.
func (e *opError) Errno() string {
	return e.errno
}

// Message returns the error message.
func (e *opError) Message() string {
	return e.message
}

// Context returns the non-empty structured fields as a fresh map.
// Returns nil if none are set.
func (e *opError) Context() map[string]interface{} {
	ctx := make(map[string]interface{}, 4)
	for k, v := range map[string]string{"op": e.op, "path": e.path, "dest": e.dest, "errno": e.errno} {
		if v != "" {
			ctx[k] = v
		}
	}
	if len(ctx) == 0 {
		return nil
	}
	return ctx
}

// Unwrap returns the wrapped error for standard library compatibility.
func (e *opError) Unwrap() error {
	return e.cause
}

// LogValue implements slog.LogValuer so errors log as structured groups.
func (e *opError) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("code", string(e.code))}
	if e.op != "" {
		attrs = append(attrs, slog.String("op", e.op))
	}
	if e.path != "" {
		attrs = append(attrs, slog.String("path", e.path))
	}
	if e.dest != "" {
		attrs = append(attrs, slog.String("dest", e.dest))
	}
	if e.errno != "" {
		attrs = append(attrs, slog.String("errno", e.errno))
	}
	attrs = append(attrs, slog.String("message", e.Error()))
	return slog.GroupValue(attrs...)
}
