package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Task is a todo item owned by exactly one user.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description *string
	DueDate     *time.Time
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Optional is a nullable field of a partial update. Set reports whether the
// key was present at all; a present null leaves Value nil.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a set Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a set Optional that clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// TaskUpdate carries a partial update. Nil Title and Completed are left
// unchanged; Description and DueDate change whenever they are Set, and a
// Set null clears them.
type TaskUpdate struct {
	Title       *string             `json:"title"`
	Description Optional[string]    `json:"description"`
	DueDate     Optional[time.Time] `json:"due_date"`
	Completed   *bool               `json:"completed"`
}

// TaskCreate is the input for a new task. New tasks start uncompleted.
type TaskCreate struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// Apply copies the set fields of u onto t.
func (u TaskUpdate) Apply(t *Task) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description.Set {
		t.Description = u.Description.Value
	}
	if u.DueDate.Set {
		t.DueDate = u.DueDate.Value
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
}
