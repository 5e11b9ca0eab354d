package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"todos/internal/store"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	store     store.Store
	templates *template.Template
	logger    *slog.Logger
	version   string
	started   time.Time
}

// New creates a new Handlers instance.
func New(s store.Store, tmpl *template.Template, lg *slog.Logger, version string) *Handlers {
	if lg == nil {
		lg = slog.Default()
	}
	return &Handlers{
		store:     s,
		templates: tmpl,
		logger:    lg,
		version:   version,
		started:   time.Now(),
	}
}

// parseID extracts and parses an integer ID from URL parameters.
func parseID(r *http.Request, param string) (int64, error) {
	idStr := chi.URLParam(r, param)
	return strconv.ParseInt(idStr, 10, 64)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	w.Write([]byte(message))
}

func (h *Handlers) respondServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("internal server error",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
	)
	respondError(w, http.StatusInternalServerError, "internal server error")
}

// respondStoreError maps a session error to a response.
func (h *Handlers) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "todo not found")
		return
	}
	h.respondServerError(w, r, err)
}

// redirectHome sends the client back to the list.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderTemplate executes the named template into a buffer so a failing
// template never leaves a half-written page.
func (h *Handlers) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	if h.templates == nil {
		// For testing without templates
		w.WriteHeader(http.StatusOK)
		return
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.respondServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
