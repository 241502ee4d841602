package api

import (
	"log/slog"
	"net/http"

	"github.com/garnizeh/skillbridge/internal/generator"
	"github.com/garnizeh/skillbridge/pkg/repository"
	"github.com/gorilla/mux"
)

type GapReportHandler struct {
	userRepo   repository.UserRepo
	reportRepo repository.GapReportRepo
}

func NewGapReportHandler(ur repository.UserRepo, gr repository.GapReportRepo) *GapReportHandler {
	return &GapReportHandler{userRepo: ur, reportRepo: gr}
}

// GetCurrent returns the latest report of the user, creating the default one
// when the user has none yet.
func (h *GapReportHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := mux.Vars(r)["user_id"]

	user, err := h.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		writeStoreError(w, "get user", err)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	report, err := h.reportRepo.GetCurrentGapReport(ctx, userID)
	if err != nil {
		writeStoreError(w, "get gap report", err)
		return
	}
	if report == nil {
		def := generator.DefaultGapReport()
		report, err = h.reportRepo.CreateGapReport(ctx, userID, def.ReadinessScore, def.SkillGaps)
		if err != nil {
			writeStoreError(w, "create gap report", err)
			return
		}
		logger.Info("default gap report created", slog.String("user_id", userID), slog.String("report_id", report.ID))
	}

	writeJSON(w, http.StatusOK, report)
}
