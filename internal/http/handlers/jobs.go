package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aruna-2201/zidio-prj/internal/http/respond"
	"github.com/aruna-2201/zidio-prj/internal/models"
	"github.com/aruna-2201/zidio-prj/internal/storage"
)

// JobHandler owns the job listing endpoints. Creation is recruiter-gated at
// the routing layer.
type JobHandler struct {
	store  storage.JobStore
	logger *slog.Logger
}

func NewJobHandler(store storage.JobStore, logger *slog.Logger) *JobHandler {
	return &JobHandler{store: store, logger: logger}
}

func (h *JobHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.store.ListJobs(r.Context())
	if err != nil {
		h.logger.Error("list jobs", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	respond.JSON(w, http.StatusOK, jobs)
}

func (h *JobHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	job, err := h.store.GetJob(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "job not found")
			return
		}
		h.logger.Error("fetch job", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	respond.JSON(w, http.StatusOK, job)
}

func (h *JobHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var job models.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(job.Title) == "" || strings.TrimSpace(job.Company) == "" {
		respond.Error(w, http.StatusBadRequest, "title and company are required")
		return
	}
	created, err := h.store.CreateJob(r.Context(), job)
	if err != nil {
		h.logger.Error("create job", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}
