package sheet

import (
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// List is an ordered, mutable collection of items. The element type is bound
// at compile time; what remains of the source system's runtime checks is the
// per-item validation every insertion path runs. Remove and IndexOf use
// structural equality (all field values, pointer fields by pointee); with
// duplicate equal items the earliest match wins.
type List[T Item] struct {
	items []T
}

// NewList creates a list from the given items. The items are validated; the
// first invalid one aborts construction.
func NewList[T Item](items ...T) (*List[T], error) {
	l := &List[T]{}
	for _, it := range items {
		if err := l.Append(it); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Items returns the underlying item slice for iteration. Callers must not
// grow or shrink it.
func (l *List[T]) Items() []T {
	return l.items
}

// Get returns the item at index i.
func (l *List[T]) Get(i int) (T, error) {
	var zero T
	if i < 0 || i >= len(l.items) {
		return zero, &IndexError{Index: i, Len: len(l.items)}
	}
	return l.items[i], nil
}

// Slice returns the items in [i, j).
func (l *List[T]) Slice(i, j int) ([]T, error) {
	if i < 0 || j > len(l.items) || i > j {
		return nil, &IndexError{Index: i, Len: len(l.items)}
	}
	out := make([]T, j-i)
	copy(out, l.items[i:j])
	return out, nil
}

// Set replaces the item at index i after validating the new value.
func (l *List[T]) Set(i int, v T) error {
	if i < 0 || i >= len(l.items) {
		return &IndexError{Index: i, Len: len(l.items)}
	}
	if err := v.Validate(); err != nil {
		return err
	}
	l.items[i] = v
	return nil
}

// Delete removes the item at index i, shifting later items down.
func (l *List[T]) Delete(i int) error {
	if i < 0 || i >= len(l.items) {
		return &IndexError{Index: i, Len: len(l.items)}
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}

// DeleteRange removes the items in [i, j).
func (l *List[T]) DeleteRange(i, j int) error {
	if i < 0 || j > len(l.items) || i > j {
		return &IndexError{Index: i, Len: len(l.items)}
	}
	l.items = append(l.items[:i], l.items[j:]...)
	return nil
}

// Append validates v and adds it to the end. A failed validation leaves the
// list unchanged.
func (l *List[T]) Append(v T) error {
	if err := v.Validate(); err != nil {
		return err
	}
	l.items = append(l.items, v)
	return nil
}

// Insert validates v and places it at index i, shifting later items up.
// i == Len() appends.
func (l *List[T]) Insert(i int, v T) error {
	if i < 0 || i > len(l.items) {
		return &IndexError{Index: i, Len: len(l.items)}
	}
	if err := v.Validate(); err != nil {
		return err
	}
	l.items = append(l.items, v)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = v
	return nil
}

// IndexOf returns the index of the first item structurally equal to v.
func (l *List[T]) IndexOf(v T) (int, bool) {
	for i, it := range l.items {
		if reflect.DeepEqual(it, v) {
			return i, true
		}
	}
	return 0, false
}

// Remove deletes the first item structurally equal to v.
func (l *List[T]) Remove(v T) error {
	i, ok := l.IndexOf(v)
	if !ok {
		return &NotFoundError{Item: v}
	}
	return l.Delete(i)
}

// Equal reports element-wise structural equality with a bare slice. A length
// mismatch means unequal.
func (l *List[T]) Equal(other []T) bool {
	if len(l.items) != len(other) {
		return false
	}
	for i := range l.items {
		if !reflect.DeepEqual(l.items[i], other[i]) {
			return false
		}
	}
	return true
}

// SortStable sorts the items in place, preserving the order of equal
// elements.
func (l *List[T]) SortStable(less func(a, b T) bool) {
	sort.SliceStable(l.items, func(i, j int) bool {
		return less(l.items[i], l.items[j])
	})
}

// Dataframe returns each item's value projection as a row.
func (l *List[T]) Dataframe() [][]any {
	rows := make([][]any, len(l.items))
	for i, it := range l.items {
		rows[i] = it.Values()
	}
	return rows
}

// Headers returns the column labels of the element type.
func (l *List[T]) Headers() []string {
	var zero T
	return zero.Headers()
}

// Table returns the headers row followed by the formatted value rows.
// Empty lists yield nil.
func (l *List[T]) Table() [][]string {
	if len(l.items) == 0 {
		return nil
	}
	table := make([][]string, 0, len(l.items)+1)
	table = append(table, l.Headers())
	for _, it := range l.items {
		table = append(table, FormatValues(it))
	}
	return table
}

// String renders the list as an aligned text grid with a leading row-number
// column, or "[]" when empty.
func (l *List[T]) String() string {
	table := l.Table()
	if table == nil {
		return "[]"
	}
	return renderGrid(table)
}

// MarshalJSON encodes the items as a JSON array.
func (l *List[T]) MarshalJSON() ([]byte, error) {
	if l.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}

// UnmarshalJSON decodes a JSON array of items. A single bare item is accepted
// and wrapped into a one-element list.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(data, &l.items)
	}
	var single T
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	l.items = []T{single}
	return nil
}

// renderGrid lays out a headers+rows table with a numbering column. Columns
// are padded to their widest cell. Header rows that do not account for the
// numbering column get a blank label prepended.
func renderGrid(table [][]string) string {
	rows := make([][]string, len(table))
	rows[0] = table[0]
	for i, row := range table[1:] {
		numbered := make([]string, 0, len(row)+1)
		numbered = append(numbered, strconv.Itoa(i+1))
		numbered = append(numbered, row...)
		rows[i+1] = numbered
	}
	if len(rows) > 1 && len(rows[0]) < len(rows[1]) {
		rows[0] = append([]string{""}, rows[0]...)
	}

	widths := columnWidths(rows)
	var sb strings.Builder
	for i, row := range rows {
		for col, cell := range row {
			if col > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(pad(cell, widths[col]))
		}
		sb.WriteString("\n")
		if i == 0 {
			for col, w := range widths {
				if col > 0 {
					sb.WriteString("  ")
				}
				sb.WriteString(strings.Repeat("-", w))
			}
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for col, cell := range row {
			for col >= len(widths) {
				widths = append(widths, 0)
			}
			if len(cell) > widths[col] {
				widths[col] = len(cell)
			}
		}
	}
	return widths
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}
