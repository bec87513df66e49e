package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(notes *NoteHandler, health http.HandlerFunc) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", health).Methods(http.MethodGet)

	r.HandleFunc("/notes", notes.ListNotes).Methods(http.MethodGet)
	r.HandleFunc("/notes", notes.CreateNote).Methods(http.MethodPost)
	r.HandleFunc("/notes/{id:[0-9]+}", notes.GetNote).Methods(http.MethodGet)
	r.HandleFunc("/notes/{id:[0-9]+}", notes.UpdateNote).Methods(http.MethodPatch)
	r.HandleFunc("/notes/{id:[0-9]+}", notes.DeleteNote).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
