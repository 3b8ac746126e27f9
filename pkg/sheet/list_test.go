package sheet

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// entry is the minimal item used by the container tests.
type entry struct {
	Name string  `json:"name" validate:"required"`
	Net  float64 `json:"net" validate:"gt=0"`
	Rate float64 `json:"rate" validate:"gte=0,lt=100"`
}

func (e entry) Validate() error   { return ValidateStruct(e) }
func (e entry) Subtotal() float64 { return e.Net }
func (e entry) VATRate() float64  { return e.Rate }
func (e entry) Values() []any     { return []any{e.Name, e.Net} }
func (e entry) Headers() []string { return []string{"No.", "name", "net"} }

func (e entry) Update(fields map[string]any) (Item, error) {
	next := e
	for key, value := range fields {
		var err error
		switch key {
		case "name":
			next.Name, err = StringField(key, value)
		case "net":
			next.Net, err = FloatField(key, value)
		case "rate":
			next.Rate, err = FloatField(key, value)
		default:
			return nil, &UnknownFieldError{Field: key, Type: "entry"}
		}
		if err != nil {
			return nil, err
		}
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	return next, nil
}

func mustList(t *testing.T, items ...entry) *List[entry] {
	t.Helper()
	l, err := NewList(items...)
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	return l
}

func TestNewListValidates(t *testing.T) {
	_, err := NewList(entry{Name: "a", Net: 1}, entry{Name: "", Net: 1})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestListAccess(t *testing.T) {
	l := mustList(t, entry{Name: "a", Net: 1}, entry{Name: "b", Net: 2}, entry{Name: "c", Net: 3})

	if l.Len() != 3 {
		t.Fatalf("Len = %d, expected 3", l.Len())
	}
	got, err := l.Get(1)
	if err != nil || got.Name != "b" {
		t.Errorf("Get(1) = %+v, %v", got, err)
	}
	if _, err := l.Get(3); err == nil {
		t.Error("Get(3) expected IndexError")
	}
	var iErr *IndexError
	if _, err := l.Get(-1); !errors.As(err, &iErr) {
		t.Errorf("Get(-1) expected IndexError, got %v", err)
	}

	part, err := l.Slice(1, 3)
	if err != nil || len(part) != 2 || part[0].Name != "b" {
		t.Errorf("Slice(1,3) = %+v, %v", part, err)
	}
}

func TestListMutation(t *testing.T) {
	l := mustList(t, entry{Name: "a", Net: 1}, entry{Name: "b", Net: 2})

	if err := l.Set(0, entry{Name: "z", Net: 9}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := l.Get(0); got.Name != "z" {
		t.Errorf("after Set, Get(0).Name = %q", got.Name)
	}

	// A failing Set leaves the element untouched.
	if err := l.Set(0, entry{Name: "", Net: 9}); err == nil {
		t.Error("Set with invalid value expected error")
	}
	if got, _ := l.Get(0); got.Name != "z" {
		t.Errorf("failed Set changed the element to %q", got.Name)
	}

	if err := l.Insert(1, entry{Name: "m", Net: 5}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got, _ := l.Get(1); got.Name != "m" {
		t.Errorf("after Insert, Get(1).Name = %q", got.Name)
	}
	if l.Len() != 3 {
		t.Fatalf("Len = %d after insert", l.Len())
	}

	if err := l.Delete(1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := l.Get(1); got.Name != "b" {
		t.Errorf("after Delete, Get(1).Name = %q", got.Name)
	}

	if err := l.DeleteRange(0, 2); err != nil {
		t.Fatalf("DeleteRange: %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("Len = %d after DeleteRange", l.Len())
	}
}

func TestListRemoveFirstMatch(t *testing.T) {
	dup := entry{Name: "dup", Net: 1}
	l := mustList(t, entry{Name: "a", Net: 2}, dup, dup)

	if err := l.Remove(dup); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if l.Len() != 2 {
		t.Fatalf("Len = %d, expected 2", l.Len())
	}
	// The first duplicate went, the second stayed.
	if got, _ := l.Get(1); got.Name != "dup" {
		t.Errorf("Get(1).Name = %q, expected dup", got.Name)
	}

	var nfErr *NotFoundError
	if err := l.Remove(entry{Name: "ghost", Net: 1}); !errors.As(err, &nfErr) {
		t.Errorf("Remove(ghost) expected NotFoundError, got %v", err)
	}
}

func TestListEqual(t *testing.T) {
	items := []entry{{Name: "a", Net: 1}, {Name: "b", Net: 2}}
	l := mustList(t, items...)

	if !l.Equal(items) {
		t.Error("Equal with same elements = false")
	}
	if l.Equal(items[:1]) {
		t.Error("Equal with shorter slice = true")
	}
	if l.Equal([]entry{{Name: "a", Net: 1}, {Name: "b", Net: 3}}) {
		t.Error("Equal with differing element = true")
	}
}

func TestListString(t *testing.T) {
	empty := &List[entry]{}
	if empty.String() != "[]" {
		t.Errorf("empty list String = %q, expected []", empty.String())
	}

	l := mustList(t, entry{Name: "a", Net: 1.5})
	out := l.String()
	if !strings.Contains(out, "name") || !strings.Contains(out, "1.5") {
		t.Errorf("String missing headers or values:\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("String missing header separator:\n%s", out)
	}
}

func TestListJSON(t *testing.T) {
	l := mustList(t, entry{Name: "a", Net: 1})
	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded List[entry]
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !decoded.Equal(l.Items()) {
		t.Errorf("round-trip mismatch: %s", data)
	}

	// A single bare item decodes into a one-element list.
	var single List[entry]
	if err := json.Unmarshal([]byte(`{"name":"solo","net":2}`), &single); err != nil {
		t.Fatalf("Unmarshal single: %v", err)
	}
	if single.Len() != 1 {
		t.Fatalf("single item list Len = %d", single.Len())
	}
	if got, _ := single.Get(0); got.Name != "solo" {
		t.Errorf("Get(0).Name = %q", got.Name)
	}

	// An empty list marshals as [].
	var emptyList List[entry]
	data, err = json.Marshal(&emptyList)
	if err != nil || string(data) != "[]" {
		t.Errorf("empty list marshals to %s, %v", data, err)
	}
}
