package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"aurora-quiz/internal/app"
	"aurora-quiz/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// APIHandler serves read-only JSON views of banks and live sessions.
type APIHandler struct {
	service *app.GameService
	log     *zap.Logger
}

func NewAPIHandler(service *app.GameService, log *zap.Logger) *APIHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &APIHandler{service: service, log: log}
}

func (h *APIHandler) GetBank(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), chi.URLParam(r, "bankID"))
	switch {
	case errors.Is(err, domain.ErrBankNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrEmptyBank), errors.Is(err, domain.ErrInvalidQuestion):
		respondError(w, http.StatusUnprocessableEntity, err)
	case err != nil:
		h.log.Error("load bank", zap.Error(err))
		respondError(w, http.StatusInternalServerError, errors.New("internal error"))
	default:
		respondJSON(w, http.StatusOK, summary)
	}
}

func (h *APIHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Session(r.Context(), chi.URLParam(r, "sessionID"))
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, err)
	case err != nil:
		h.log.Error("load session", zap.Error(err))
		respondError(w, http.StatusInternalServerError, errors.New("internal error"))
	default:
		respondJSON(w, http.StatusOK, state)
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, errorPayload{Message: err.Error()})
}
