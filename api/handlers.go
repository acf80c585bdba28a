package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/picko-ai/picko/core"
	"github.com/picko-ai/picko/storage"
)

const maxBodyBytes = 1 << 20

func (s *Server) recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if !s.decode(w, r, &req) {
		return
	}

	batch := s.recommender.RecommendBatch(r.Context(), req.Tasks)
	s.respond(w, http.StatusOK, NewRecommendationResponse(req.Tasks, batch))
}

func (s *Server) favorite(w http.ResponseWriter, r *http.Request) {
	var req FavoriteRequest
	if !s.decode(w, r, &req) {
		return
	}

	saved, err := s.recorder.SaveFavorite(r.Context(), sessionOrNew(req.SessionID), core.ID(req.ToolID), req.ToolName, req.Favorited)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, http.StatusOK, NewInteractionResponse(saved))
}

func (s *Server) rate(w http.ResponseWriter, r *http.Request) {
	var req RatingRequest
	if !s.decode(w, r, &req) {
		return
	}

	saved, err := s.recorder.SaveRating(r.Context(), sessionOrNew(req.SessionID), core.ID(req.ToolID), req.ToolName, req.Rating)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, http.StatusOK, NewInteractionResponse(saved))
}

func (s *Server) interactions(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	interactions, err := s.recorder.Interactions(r.Context(), sessionID)
	if err != nil {
		s.fail(w, err)
		return
	}

	resp := InteractionsResponse{
		SessionID:    sessionID,
		Interactions: make([]InteractionResponse, len(interactions)),
	}
	for i, interaction := range interactions {
		resp.Interactions[i] = NewInteractionResponse(interaction)
	}
	s.respond(w, http.StatusOK, resp)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			s.logger.Warn("health check failed", "err", err)
			s.respond(w, http.StatusServiceUnavailable, ErrorResponse{Code: CodeUnhealthy, Message: "store unavailable"})
			return
		}
	}
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads and validates a JSON body. It writes a 400 and returns false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		s.respond(w, http.StatusBadRequest, ErrorResponse{Code: CodeInvalidJSON, Message: "request body must be valid JSON"})
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.respond(w, http.StatusBadRequest, ErrorResponse{Code: CodeValidation, Message: err.Error()})
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidInteraction), errors.Is(err, core.ErrEmptySessionID):
		s.respond(w, http.StatusBadRequest, ErrorResponse{Code: CodeValidation, Message: err.Error()})
	case errors.Is(err, storage.ErrStoreUnavailable):
		s.logger.Error("store unavailable", "err", err)
		s.respond(w, http.StatusServiceUnavailable, ErrorResponse{Code: CodeStoreUnavailable, Message: "store unavailable"})
	default:
		s.logger.Error("request failed", "err", err)
		s.respond(w, http.StatusInternalServerError, ErrorResponse{Code: CodeInternal, Message: "internal error"})
	}
}

func (s *Server) respond(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		s.logger.Error("failed to marshal response", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("failed to write response", "err", err)
	}
}

func sessionOrNew(sessionID string) string {
	if sessionID == "" {
		return uuid.NewString()
	}
	return sessionID
}
