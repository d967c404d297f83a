package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/bacbo-predictor/internal/models"
	"github.com/yourusername/bacbo-predictor/internal/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

type sessionResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Rounds    int    `json:"rounds"`
}

type outcomeRequest struct {
	Outcome string `json:"outcome"`
}

type outcomeResponse struct {
	Outcome    models.Outcome         `json:"outcome"`
	Scored     *models.AccuracyRecord `json:"scored,omitempty"`
	Prediction models.Prediction      `json:"prediction"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// sessionFromRequest resolves the {id} path value to a live session.
func (s *Server) sessionFromRequest(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid session id"))
		return nil, false
	}

	sess, err := s.sessions.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return sess, true
}

func sessionPayload(sess *session.Session) sessionResponse {
	return sessionResponse{
		ID:        sess.ID.String(),
		CreatedAt: sess.CreatedAt.Format(time.RFC3339),
		Rounds:    sess.Engine.Rounds(),
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Create()
	if err != nil {
		if errors.Is(err, session.ErrSessionLimit) {
			writeError(w, http.StatusTooManyRequests, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionPayload(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionPayload(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid session id"))
		return
	}

	if err := s.sessions.Remove(id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecordOutcome(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
		return
	}

	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req outcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	result, pred, err := s.sessions.RecordOutcome(r.Context(), sess, req.Outcome)
	if err != nil {
		if errors.Is(err, models.ErrInvalidOutcome) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, outcomeResponse{
		Outcome:    result.Outcome,
		Scored:     result.Scored,
		Prediction: pred,
	})
}

func (s *Server) handleGetPrediction(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Engine.Predict())
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Engine.Stats())
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	sess.Engine.Reset()
	writeJSON(w, http.StatusOK, sessionPayload(sess))
}
