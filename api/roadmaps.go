package api

import (
	"log/slog"
	"net/http"

	"github.com/garnizeh/skillbridge/internal/generator"
	"github.com/garnizeh/skillbridge/pkg/models"
	"github.com/garnizeh/skillbridge/pkg/repository"
	"github.com/gorilla/mux"
)

type RoadmapHandler struct {
	userRepo    repository.UserRepo
	roadmapRepo repository.RoadmapRepo
}

func NewRoadmapHandler(ur repository.UserRepo, rr repository.RoadmapRepo) *RoadmapHandler {
	return &RoadmapHandler{userRepo: ur, roadmapRepo: rr}
}

type generateRoadmapRequest struct {
	UserID string `json:"userId"`
}

type updateStepRequest struct {
	Status string `json:"status"`
}

// Generate returns the current roadmap of the user, creating the default one
// when the user has none yet.
func (h *RoadmapHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRoadmapRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	user, err := h.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		writeStoreError(w, "get user", err)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	roadmap, err := h.roadmapRepo.GetCurrentRoadmap(ctx, req.UserID)
	if err != nil {
		writeStoreError(w, "get roadmap", err)
		return
	}
	if roadmap == nil {
		def := generator.DefaultRoadmap()
		roadmap, err = h.roadmapRepo.CreateRoadmap(ctx, req.UserID, def.Title, def.Status, def.EstimatedTotalHours, def.Steps)
		if err != nil {
			writeStoreError(w, "create roadmap", err)
			return
		}
		logger.Info("default roadmap created", slog.String("user_id", req.UserID), slog.String("roadmap_id", roadmap.ID))
	}

	writeJSON(w, http.StatusOK, roadmap)
}

func (h *RoadmapHandler) GetRoadmap(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	roadmap, err := h.roadmapRepo.GetRoadmapByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, "get roadmap", err)
		return
	}
	if roadmap == nil {
		http.Error(w, "Roadmap not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, roadmap)
}

// UpdateStep sets the status of one step. A missing status means Pending.
func (h *RoadmapHandler) UpdateStep(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req updateStepRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		req.Status = models.StepPending
	}

	roadmap, err := h.roadmapRepo.UpdateStepStatus(r.Context(), vars["roadmap_id"], vars["step_id"], req.Status)
	if err != nil {
		writeStoreError(w, "update step", err)
		return
	}
	if roadmap == nil {
		http.Error(w, "Roadmap not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, roadmap)
}
