package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bacbo-predictor/internal/config"
	"github.com/yourusername/bacbo-predictor/internal/engine"
	"github.com/yourusername/bacbo-predictor/internal/session"
)

func newTestServer(t *testing.T, serverCfg config.ServerConfig) *httptest.Server {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	sessionCfg := config.SessionConfig{
		TTLMinutes:             60,
		CleanupIntervalMinutes: 60,
		MaxSessions:            100,
	}
	manager := session.NewManager(sessionCfg, engine.DefaultConfig(), log, nil)

	srv := httptest.NewServer(New(serverCfg, log, manager).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func defaultServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Port:                8090,
		ReadTimeoutSeconds:  5,
		WriteTimeoutSeconds: 10,
		RateLimitPerSecond:  1000,
		RateLimitBurst:      1000,
	}
}

func createSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	resp, err := http.Post(srv.URL+"/v1/sessions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var payload struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NotEmpty(t, payload.ID)
	return payload.ID
}

func postOutcome(t *testing.T, srv *httptest.Server, id, outcome string) *http.Response {
	t.Helper()

	body, err := json.Marshal(map[string]string{"outcome": outcome})
	require.NoError(t, err)

	resp, err := http.Post(
		fmt.Sprintf("%s/v1/sessions/%s/outcomes", srv.URL, id),
		"application/json",
		bytes.NewReader(body),
	)
	require.NoError(t, err)
	return resp
}

func TestCreateSession(t *testing.T) {
	srv := newTestServer(t, defaultServerConfig())
	id := createSession(t, srv)

	resp, err := http.Get(srv.URL + "/v1/sessions/" + id)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		ID     string `json:"id"`
		Rounds int    `json:"rounds"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, id, payload.ID)
	assert.Equal(t, 0, payload.Rounds)
}

func TestGetUnknownSession(t *testing.T) {
	srv := newTestServer(t, defaultServerConfig())

	resp, err := http.Get(srv.URL + "/v1/sessions/0e2ce41b-6eca-4a5a-b94a-18a498edb537")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetSessionBadID(t *testing.T) {
	srv := newTestServer(t, defaultServerConfig())

	resp, err := http.Get(srv.URL + "/v1/sessions/not-a-uuid")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecordOutcomeFlow(t *testing.T) {
	srv := newTestServer(t, defaultServerConfig())
	id := createSession(t, srv)

	resp := postOutcome(t, srv, id, "PLAYER")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Outcome    string `json:"outcome"`
		Prediction struct {
			Prediction *string `json:"prediction"`
			Reason     string  `json:"reason"`
		} `json:"prediction"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "PLAYER", payload.Outcome)
	assert.Nil(t, payload.Prediction.Prediction)
	assert.Contains(t, payload.Prediction.Reason, "insufficient history")

	for i := 0; i < 4; i++ {
		resp := postOutcome(t, srv, id, "PLAYER")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		resp.Body.Close()
	}
	require.NotNil(t, payload.Prediction.Prediction)
	assert.Equal(t, "BANKER", *payload.Prediction.Prediction)
}

func TestRecordOutcomeInvalid(t *testing.T) {
	srv := newTestServer(t, defaultServerConfig())
	id := createSession(t, srv)

	resp := postOutcome(t, srv, id, "DRAGON")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteSession(t *testing.T) {
	srv := newTestServer(t, defaultServerConfig())
	id := createSession(t, srv)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/v1/sessions/"+id, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := http.Get(srv.URL + "/v1/sessions/" + id)
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestResetSession(t *testing.T) {
	srv := newTestServer(t, defaultServerConfig())
	id := createSession(t, srv)

	for i := 0; i < 3; i++ {
		resp := postOutcome(t, srv, id, "BANKER")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err := http.Post(srv.URL+"/v1/sessions/"+id+"/reset", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Rounds int `json:"rounds"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, 0, payload.Rounds)
}

func TestStatsEndpoint(t *testing.T) {
	srv := newTestServer(t, defaultServerConfig())
	id := createSession(t, srv)

	resp, err := http.Get(srv.URL + "/v1/sessions/" + id + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		WinRate float64 `json:"win_rate"`
		Wins    int     `json:"wins"`
		Total   int     `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, 0, payload.Total)
	assert.Equal(t, 0.0, payload.WinRate)
}

func TestIngestionRateLimit(t *testing.T) {
	cfg := defaultServerConfig()
	cfg.RateLimitPerSecond = 0.001
	cfg.RateLimitBurst = 1
	srv := newTestServer(t, cfg)
	id := createSession(t, srv)

	first := postOutcome(t, srv, id, "PLAYER")
	first.Body.Close()
	require.Equal(t, http.StatusOK, first.StatusCode)

	second := postOutcome(t, srv, id, "BANKER")
	defer second.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
}

func TestWebsocketFeed(t *testing.T) {
	srv := newTestServer(t, defaultServerConfig())
	id := createSession(t, srv)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/sessions/" + id + "/feed"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"outcome": "PLAYER"}))

	var reply struct {
		Outcome    string `json:"outcome"`
		Prediction struct {
			Reason string `json:"reason"`
		} `json:"prediction"`
	}
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "PLAYER", reply.Outcome)
	assert.Contains(t, reply.Prediction.Reason, "insufficient history")

	// Invalid outcomes produce an error frame without closing the feed.
	require.NoError(t, conn.WriteJSON(map[string]string{"outcome": "DRAGON"}))
	var errFrame struct {
		Error string `json:"error"`
	}
	require.NoError(t, conn.ReadJSON(&errFrame))
	assert.Contains(t, errFrame.Error, "invalid outcome")

	require.NoError(t, conn.WriteJSON(map[string]string{"outcome": "BANKER"}))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "BANKER", reply.Outcome)
}
