package sheet

import "fmt"

// ValidationError reports a field that violates its declared constraint.
// It is returned at construction, assignment and patch-edit alike.
type ValidationError struct {
	Field      string
	Constraint string
	Value      any
	Reason     string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: field %q violates %q (value: %v)", e.Field, e.Constraint, e.Value)
}

// UnknownFieldError reports a patch key that names no field of the item type.
type UnknownFieldError struct {
	Field string
	Type  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s is no field of %s", e.Field, e.Type)
}

// NotFoundError reports that no structurally equal element is present.
type NotFoundError struct {
	Item any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item not found: %+v", e.Item)
}

// IndexError reports an out-of-range index access.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range (len %d)", e.Index, e.Len)
}

// TypeMismatchError reports an element of the wrong kind, e.g. replacing an
// invoice item with an accounting item during an edit.
type TypeMismatchError struct {
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected item of type %s, got %s", e.Expected, e.Actual)
}
