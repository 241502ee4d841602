package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/garnizeh/skillbridge/pkg/repository"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("err", err))
	}
}

// decodeBody decodes a JSON request body into v. An empty body leaves v as is.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// storeStatus maps repository errors to HTTP status codes.
func storeStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateKey):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeStoreError(w http.ResponseWriter, op string, err error) {
	status := storeStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error(op+" failed", slog.Any("err", err))
		http.Error(w, "Internal Server Error", status)
		return
	}
	logger.Warn(op+" rejected", slog.Any("err", err), slog.Int("status", status))
	http.Error(w, http.StatusText(status), status)
}
