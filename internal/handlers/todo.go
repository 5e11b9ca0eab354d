package handlers

import (
	"net/http"

	"todos/internal/models"
	"todos/internal/store"
)

// HomeData holds data for the home page template.
type HomeData struct {
	Title     string
	Todos     []models.Todo
	Remaining int
}

// Home renders the list of all todos.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var todos []models.Todo
	err := h.store.WithSession(ctx, func(sess store.Session) error {
		var err error
		todos, err = sess.ListAll(ctx)
		return err
	})
	if err != nil {
		h.respondServerError(w, r, err)
		return
	}

	remaining := 0
	for _, todo := range todos {
		if !todo.Complete {
			remaining++
		}
	}

	data := HomeData{
		Title:     "Todos",
		Todos:     todos,
		Remaining: remaining,
	}

	h.renderTemplate(w, r, "home.html", data)
}

// CreateTodo adds a todo from the submitted form and redirects to the list.
func (h *Handlers) CreateTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	todo := &models.Todo{Title: r.PostFormValue("title")}
	if err := todo.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.store.WithSession(ctx, func(sess store.Session) error {
		created, err := sess.Insert(ctx, todo.Title)
		if err != nil {
			return err
		}
		todo = created
		return nil
	})
	if err != nil {
		h.respondServerError(w, r, err)
		return
	}

	h.logger.Debug("todo created", "todo_id", todo.ID)
	redirectHome(w, r)
}

// ToggleTodo flips the completion flag of a todo and redirects to the list.
func (h *Handlers) ToggleTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r, "todo_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	err = h.store.WithSession(ctx, func(sess store.Session) error {
		todo, err := sess.FindByID(ctx, id)
		if err != nil {
			return err
		}
		todo.Toggle()
		return sess.Update(ctx, todo)
	})
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.logger.Debug("todo toggled", "todo_id", id)
	redirectHome(w, r)
}

// DeleteTodo removes a todo and redirects to the list.
func (h *Handlers) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r, "todo_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	err = h.store.WithSession(ctx, func(sess store.Session) error {
		todo, err := sess.FindByID(ctx, id)
		if err != nil {
			return err
		}
		return sess.Delete(ctx, todo)
	})
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.logger.Debug("todo deleted", "todo_id", id)
	redirectHome(w, r)
}
