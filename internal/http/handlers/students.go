package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aruna-2201/zidio-prj/internal/http/respond"
	"github.com/aruna-2201/zidio-prj/internal/models"
	"github.com/aruna-2201/zidio-prj/internal/storage"
)

// StudentHandler owns the profile CRUD endpoints.
type StudentHandler struct {
	store  storage.StudentStore
	logger *slog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(store storage.StudentStore, logger *slog.Logger) *StudentHandler {
	return &StudentHandler{store: store, logger: logger}
}

// Register attaches profile routes.
func (h *StudentHandler) Register(r chi.Router) {
	r.Get("/{id}", h.handleGet)
	r.Post("/", h.handleCreate)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

func (h *StudentHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	student, err := h.store.GetStudent(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err, "fetch profile")
		return
	}
	respond.JSON(w, http.StatusOK, student)
}

func (h *StudentHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var student models.Student
	if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	created, err := h.store.CreateStudent(r.Context(), student)
	if err != nil {
		h.writeStoreError(w, err, "create profile")
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

func (h *StudentHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var student models.Student
	if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	updated, err := h.store.UpdateStudent(r.Context(), id, student)
	if err != nil {
		h.writeStoreError(w, err, "update profile")
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *StudentHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteStudent(r.Context(), id); err != nil {
		h.writeStoreError(w, err, "delete profile")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StudentHandler) writeStoreError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, storage.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "student not found")
		return
	}
	h.logger.Error(op, "error", err)
	respond.Error(w, http.StatusInternalServerError, "internal error")
}

// pathID parses the {id} route parameter, writing a 400 on bad input.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
