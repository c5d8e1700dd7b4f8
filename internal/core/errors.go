package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a package or version is not found.
var ErrNotFound = errors.New("not found")

// ErrOutOfRange is returned when an exhausted cursor is read.
var ErrOutOfRange = errors.New("cursor out of range")

// OutOfRangeError wraps ErrOutOfRange with the kind of cursor that was misused.
type OutOfRangeError struct {
	Kind string // "package", "version", "dependency", "version file", "package file"
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s cursor: read past the end", e.Kind)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}

// NotFoundError wraps ErrNotFound with additional context.
type NotFoundError struct {
	Name    string
	Arch    string
	Version string
}

func (e *NotFoundError) Error() string {
	name := e.Name
	if e.Arch != "" {
		name += ":" + e.Arch
	}
	if e.Version != "" {
		return fmt.Sprintf("package %s version %s not found", name, e.Version)
	}
	return fmt.Sprintf("package %s not found", name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
