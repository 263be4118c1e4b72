package storage

import (
	"bytes"
	"encoding/json"

	"github.com/mrlokans/wordbook/internal/entities"
)

// NewCategory holds the fields accepted when creating a category.
type NewCategory struct {
	Name        string
	Description *string
}

// NewWord holds the fields accepted when creating a word.
type NewWord struct {
	Japanese   string
	Romaji     string
	Spanish    string
	CategoryID *uint
}

// Nullable is an optional update of a nullable column. Set is false when the
// caller did not mention the field; Set with a nil Value clears the column.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Null returns a Nullable that clears the column.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Value returns a Nullable that sets the column to v.
func Value[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// UnmarshalJSON marks the field as supplied. A JSON null clears the column.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// CategoryUpdate is a partial category update. Unset fields are left alone.
type CategoryUpdate struct {
	Name        *string
	Description Nullable[string]
}

// IsEmpty reports whether the update changes nothing.
func (u CategoryUpdate) IsEmpty() bool {
	return u.Name == nil && !u.Description.Set
}

// Apply merges the update into c.
func (u CategoryUpdate) Apply(c *entities.Category) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Description.Set {
		c.Description = cloneString(u.Description.Value)
	}
}

// Columns returns the column assignments for a SQL update.
func (u CategoryUpdate) Columns() map[string]any {
	cols := make(map[string]any)
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Description.Set {
		cols["description"] = nullableColumn(u.Description.Value)
	}
	return cols
}

// WordUpdate is a partial word update. Unset fields are left alone.
type WordUpdate struct {
	Japanese   *string
	Romaji     *string
	Spanish    *string
	CategoryID Nullable[uint]
}

// IsEmpty reports whether the update changes nothing.
func (u WordUpdate) IsEmpty() bool {
	return u.Japanese == nil && u.Romaji == nil && u.Spanish == nil && !u.CategoryID.Set
}

// Apply merges the update into w.
func (u WordUpdate) Apply(w *entities.Word) {
	if u.Japanese != nil {
		w.Japanese = *u.Japanese
	}
	if u.Romaji != nil {
		w.Romaji = *u.Romaji
	}
	if u.Spanish != nil {
		w.Spanish = *u.Spanish
	}
	if u.CategoryID.Set {
		w.CategoryID = cloneUint(u.CategoryID.Value)
	}
}

// Columns returns the column assignments for a SQL update.
func (u WordUpdate) Columns() map[string]any {
	cols := make(map[string]any)
	if u.Japanese != nil {
		cols["japanese"] = *u.Japanese
	}
	if u.Romaji != nil {
		cols["romaji"] = *u.Romaji
	}
	if u.Spanish != nil {
		cols["spanish"] = *u.Spanish
	}
	if u.CategoryID.Set {
		cols["category_id"] = nullableColumn(u.CategoryID.Value)
	}
	return cols
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneUint(u *uint) *uint {
	if u == nil {
		return nil
	}
	v := *u
	return &v
}

// nullableColumn turns a nil pointer into an untyped nil so drivers write NULL.
func nullableColumn[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
