package models

import "time"

type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteUpdate carries the fields of a partial update. A nil field keeps the stored value.
type NoteUpdate struct {
	Title   *string
	Content *string
}

func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil
}

// Apply merges the present fields into n. ID and CreatedAt are never touched.
func (u NoteUpdate) Apply(n *Note) {
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Content != nil {
		n.Content = *u.Content
	}
}
