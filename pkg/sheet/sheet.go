package sheet

import "fmt"

// Sheet aggregates a list of items into subtotal, tax and total sums. It is
// the base of both the invoice and the cash accounting ledger. Aggregates are
// recomputed from the items on every read; nothing is cached.
type Sheet[T Item] struct {
	List[T]
}

// Subtotal is the sum of all item subtotals.
func (s *Sheet[T]) Subtotal() float64 {
	var sum float64
	for _, it := range s.Items() {
		sum += it.Subtotal()
	}
	return sum
}

// Tax is the sum of all item taxes (subtotal * vat / 100).
func (s *Sheet[T]) Tax() float64 {
	var sum float64
	for _, it := range s.Items() {
		sum += it.Subtotal() * it.VATRate() / 100
	}
	return sum
}

// Total is subtotal + tax.
func (s *Sheet[T]) Total() float64 {
	return s.Subtotal() + s.Tax()
}

// AddItem validates the item and appends it. A failed validation leaves the
// sheet unchanged.
func (s *Sheet[T]) AddItem(item T) error {
	return s.Append(item)
}

// Edit describes how to change a located item: either a full same-type
// replacement or a partial field map applied on top of the existing item.
type Edit[T Item] struct {
	replacement *T
	patch       map[string]any
}

// Replace builds an Edit that swaps the located item for v.
func Replace[T Item](v T) Edit[T] {
	return Edit[T]{replacement: &v}
}

// Patch builds an Edit that updates the located item's fields from the map.
// Keys must name existing fields; values are validated like at construction.
func Patch[T Item](fields map[string]any) Edit[T] {
	return Edit[T]{patch: fields}
}

// IsPatch reports whether the edit is a field-map patch.
func (e Edit[T]) IsPatch() bool {
	return e.patch != nil
}

// Apply resolves the edit against the current item, returning the new value
// to store.
func (e Edit[T]) Apply(current T) (T, error) {
	var zero T
	if e.replacement != nil {
		if err := (*e.replacement).Validate(); err != nil {
			return zero, err
		}
		return *e.replacement, nil
	}
	if e.patch == nil {
		return zero, &ValidationError{Reason: "edit carries neither a replacement nor a patch"}
	}
	updated, err := current.Update(e.patch)
	if err != nil {
		return zero, err
	}
	next, ok := updated.(T)
	if !ok {
		return zero, &TypeMismatchError{
			Expected: fmt.Sprintf("%T", current),
			Actual:   fmt.Sprintf("%T", updated),
		}
	}
	return next, nil
}

// EditItem locates old by structural equality and applies the edit in place.
// The sheet is left unchanged when the edit fails.
func (s *Sheet[T]) EditItem(old T, edit Edit[T]) error {
	i, ok := s.IndexOf(old)
	if !ok {
		return &NotFoundError{Item: old}
	}
	next, err := edit.Apply(s.items[i])
	if err != nil {
		return err
	}
	return s.Set(i, next)
}

// DeleteItem removes the first item structurally equal to the given one.
func (s *Sheet[T]) DeleteItem(item T) error {
	return s.Remove(item)
}
