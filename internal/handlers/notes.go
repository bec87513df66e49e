package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"

	"github.com/ahsanfayaz52/notesapi/internal/models"
	"github.com/ahsanfayaz52/notesapi/internal/store"
)

const (
	msgNoteCreated  = "Note successfully created"
	msgNoteDeleted  = "Note has been deleted successfully"
	msgNoteNotFound = "Note not found"

	// Matches the title column width of the MySQL schema.
	maxTitleLength = 200
)

var errTitleTooLong = fmt.Errorf("title must be at most %d characters", maxTitleLength)

// NoteStore is the persistence the note handlers depend on. *store.NoteStore implements it.
type NoteStore interface {
	Create(ctx context.Context, title, content string) (models.Note, error)
	List(ctx context.Context) ([]models.Note, error)
	Get(ctx context.Context, id int64) (models.Note, error)
	Update(ctx context.Context, id int64, upd models.NoteUpdate) (models.Note, error)
	Delete(ctx context.Context, id int64) error
}

type CreateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (req CreateNoteRequest) Validate() error {
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(*req.Title) > maxTitleLength {
		return errTitleTooLong
	}
	if req.Content == nil {
		return errors.New("content is required")
	}
	return nil
}

// UpdateNoteRequest is a partial update: null or missing fields are left alone.
type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (req UpdateNoteRequest) Validate() error {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return errors.New("title must not be empty")
	}
	if req.Title != nil && utf8.RuneCountInString(*req.Title) > maxTitleLength {
		return errTitleTooLong
	}
	return nil
}

func (req UpdateNoteRequest) NoteUpdate() models.NoteUpdate {
	return models.NoteUpdate{Title: req.Title, Content: req.Content}
}

type NoteResponse struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func newNoteResponse(n models.Note) NoteResponse {
	return NoteResponse{ID: n.ID, Title: n.Title, Content: n.Content}
}

type CreateNoteResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type NoteHandler struct {
	store NoteStore
}

func NewNoteHandler(store NoteStore) *NoteHandler {
	return &NoteHandler{store: store}
}

func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.store.List(r.Context())
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	resp := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, newNoteResponse(n))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.store.Create(r.Context(), *req.Title, *req.Content)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	hlog.FromRequest(r).Debug().Int64("note_id", note.ID).Msg("note created")
	writeJSON(w, r, http.StatusCreated, CreateNoteResponse{ID: note.ID, Message: msgNoteCreated})
}

func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(r)
	if !ok {
		writeError(w, r, http.StatusNotFound, msgNoteNotFound)
		return
	}

	note, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, note)
}

func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(r)
	if !ok {
		writeError(w, r, http.StatusNotFound, msgNoteNotFound)
		return
	}

	var req UpdateNoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.store.Update(r.Context(), id, req.NoteUpdate())
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newNoteResponse(note))
}

func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(r)
	if !ok {
		writeError(w, r, http.StatusNotFound, msgNoteNotFound)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, MessageResponse{Message: msgNoteDeleted})
}

// storeError maps store failures to responses. Driver details only go to the log.
func (h *NoteHandler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, http.StatusNotFound, msgNoteNotFound)
	case errors.Is(err, store.ErrStorageUnavailable):
		hlog.FromRequest(r).Error().Err(err).Msg("storage unavailable")
		writeError(w, r, http.StatusServiceUnavailable, "Storage unavailable")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("note operation failed")
		writeError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

// noteID reads the {id} route variable. Ids that overflow int64 cannot exist.
func noteID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
