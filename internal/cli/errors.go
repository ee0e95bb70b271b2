package cli

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every lookup miss reported by the CLI.
var ErrNotFound = errors.New("not found")

// notFoundError names what was looked up: a catalog file or a tree folder.
type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func (e notFoundError) Is(target error) bool { return target == ErrNotFound }

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}
