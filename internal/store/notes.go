// Package store persists notes through database/sql. It works against both the MySQL
// and SQLite schemas created by package db.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ahsanfayaz52/notesapi/internal/models"
)

var (
	ErrNotFound           = errors.New("note not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

type NoteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewNoteStore(db *sql.DB) *NoteStore {
	return &NoteStore{db: db, now: time.Now}
}

// unavailable keeps the driver error in the chain next to ErrStorageUnavailable.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}

func (s *NoteStore) Create(ctx context.Context, title, content string) (models.Note, error) {
	note := models.Note{
		Title:     title,
		Content:   content,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO notes (title, content, created_at) VALUES (?, ?, ?)",
		note.Title, note.Content, note.CreatedAt)
	if err != nil {
		return models.Note{}, unavailable("insert note", err)
	}

	note.ID, err = res.LastInsertId()
	if err != nil {
		return models.Note{}, unavailable("read note id", err)
	}
	return note, nil
}

func (s *NoteStore) List(ctx context.Context) ([]models.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, content, created_at FROM notes ORDER BY id")
	if err != nil {
		return nil, unavailable("list notes", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt); err != nil {
			return nil, unavailable("scan note", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list notes", err)
	}
	return notes, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getNote(ctx context.Context, q queryRower, id int64) (models.Note, error) {
	var n models.Note
	err := q.QueryRowContext(ctx,
		"SELECT id, title, content, created_at FROM notes WHERE id = ?", id,
	).Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNotFound
		}
		return models.Note{}, unavailable("fetch note", err)
	}
	return n, nil
}

func (s *NoteStore) Get(ctx context.Context, id int64) (models.Note, error) {
	return getNote(ctx, s.db, id)
}

// Update merges the present fields of upd into the stored note within one transaction.
func (s *NoteStore) Update(ctx context.Context, id int64, upd models.NoteUpdate) (models.Note, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Note{}, unavailable("begin transaction", err)
	}
	defer tx.Rollback()

	note, err := getNote(ctx, tx, id)
	if err != nil {
		return models.Note{}, err
	}
	if upd.IsEmpty() {
		return note, nil
	}

	upd.Apply(&note)
	_, err = tx.ExecContext(ctx,
		"UPDATE notes SET title = ?, content = ? WHERE id = ?",
		note.Title, note.Content, note.ID)
	if err != nil {
		return models.Note{}, unavailable("update note", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Note{}, unavailable("commit transaction", err)
	}
	return note, nil
}

func (s *NoteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return unavailable("delete note", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return unavailable("delete note", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *NoteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}
