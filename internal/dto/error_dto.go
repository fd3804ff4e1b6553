package dto

import "fmt"

// NotFoundError marks a missing resource; the error middleware turns it
// into a 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// UnauthorizedError maps to 401.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	return e.Reason
}

// SchemaError marks a structurally invalid form definition. It is fatal for
// the turn: nothing can be asked from a broken schema.
type SchemaError struct {
	Detail string
}

func (e *SchemaError) Error() string {
	return "invalid form definition: " + e.Detail
}

// ConflictError maps to 409.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}
