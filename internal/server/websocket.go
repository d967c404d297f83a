package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yourusername/bacbo-predictor/internal/logger"
	"github.com/yourusername/bacbo-predictor/internal/models"
)

const (
	feedWriteTimeout = 10 * time.Second
	feedReadLimit    = 1 << 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// feedMessage is one inbound frame on the duplex feed.
type feedMessage struct {
	Outcome string `json:"outcome"`
}

// handleFeed upgrades the connection to a websocket and runs a round loop:
// every outcome frame the client sends is recorded and answered with the
// fresh prediction. Invalid outcomes get an error frame and the loop
// continues; a dead session closes the feed.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(feedReadLimit)
	log := logger.WithSession(s.log, sess.ID)
	log.Info("Feed connected")

	for {
		var msg feedMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("Feed read error")
			}
			return
		}

		if !s.limiter.Allow() {
			if err := s.writeFeedError(conn, errors.New("rate limit exceeded")); err != nil {
				return
			}
			continue
		}

		result, pred, err := s.sessions.RecordOutcome(r.Context(), sess, msg.Outcome)
		if err != nil {
			if errors.Is(err, models.ErrInvalidOutcome) {
				if err := s.writeFeedError(conn, err); err != nil {
					return
				}
				continue
			}
			log.WithError(err).Error("Feed record failed")
			return
		}

		_ = conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
		if err := conn.WriteJSON(outcomeResponse{
			Outcome:    result.Outcome,
			Scored:     result.Scored,
			Prediction: pred,
		}); err != nil {
			log.WithError(err).Warn("Feed write error")
			return
		}
	}
}

func (s *Server) writeFeedError(conn *websocket.Conn, cause error) error {
	_ = conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
	return conn.WriteJSON(errorResponse{Error: cause.Error()})
}
