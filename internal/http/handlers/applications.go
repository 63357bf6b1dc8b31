package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aruna-2201/zidio-prj/internal/http/respond"
	"github.com/aruna-2201/zidio-prj/internal/models"
	"github.com/aruna-2201/zidio-prj/internal/models/dto"
	"github.com/aruna-2201/zidio-prj/internal/storage"
)

// ApplicationHandler lists and creates job applications.
type ApplicationHandler struct {
	store  storage.ApplicationStore
	logger *slog.Logger
}

func NewApplicationHandler(store storage.ApplicationStore, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{store: store, logger: logger}
}

// Register attaches application routes.
func (h *ApplicationHandler) Register(r chi.Router) {
	r.Get("/student/{studentId}", h.handleListByStudent)
	r.Post("/", h.handleApply)
}

func (h *ApplicationHandler) handleListByStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.ParseInt(chi.URLParam(r, "studentId"), 10, 64)
	if err != nil || studentID <= 0 {
		respond.Error(w, http.StatusBadRequest, "invalid student id")
		return
	}

	apps, err := h.store.ListApplicationsByStudent(r.Context(), studentID)
	if err != nil {
		h.logger.Error("list applications", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if apps == nil {
		apps = []models.ApplicationSummary{}
	}
	respond.JSON(w, http.StatusOK, apps)
}

func (h *ApplicationHandler) handleApply(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.StudentID <= 0 || req.JobID <= 0 {
		respond.Error(w, http.StatusBadRequest, "studentId and jobId are required")
		return
	}

	app := models.Application{
		StudentID:   req.StudentID,
		JobID:       req.JobID,
		AppliedDate: time.Now().UTC().Truncate(24 * time.Hour),
		Status:      models.StatusPending,
	}
	created, err := h.store.CreateApplication(r.Context(), app)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusBadRequest, "student or job not found")
			return
		}
		h.logger.Error("create application", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}
