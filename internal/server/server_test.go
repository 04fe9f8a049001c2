package server

import (
	"bytes"
	"context"
	"ctchen222/Themed-Tic-Tac-Toe/internal/api/service"
	"ctchen222/Themed-Tic-Tac-Toe/internal/bot"
	"ctchen222/Themed-Tic-Tac-Toe/internal/game"
	"ctchen222/Themed-Tic-Tac-Toe/internal/session"
	"ctchen222/Themed-Tic-Tac-Toe/pkg/proto"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<h1>Tic Tac Toe</h1>"), 0o644))

	sess := session.New(bot.NewCalculator(nil), session.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	go sess.Run(ctx)

	srv := NewServer(sess, service.NewGameService(sess, nil, nil), staticDir)
	ts := httptest.NewServer(srv.Engine())
	t.Cleanup(func() {
		ts.Close()
		cancel()
		<-sess.Done()
	})
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?clientId=tab-1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) proto.ServerToClientMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg proto.ServerToClientMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestServer_WebSocketMove(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts)

	initial := read(t, conn)
	require.Equal(t, proto.TypeUpdate, initial.Type)
	assert.Equal(t, game.Board{}, initial.State.Board)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "move", "index": 4}))

	update := read(t, conn)
	require.Equal(t, proto.TypeUpdate, update.Type)
	assert.Equal(t, game.X, update.State.Board[4])
	assert.Equal(t, game.O, update.State.CurrentPlayer)
}

func TestServer_WebSocketInvalidMessage(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts)
	read(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "move", "index": 12}))
	msg := read(t, conn)
	assert.Equal(t, proto.TypeError, msg.Type)
	assert.Equal(t, "invalid message", msg.Reason)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	msg = read(t, conn)
	assert.Equal(t, proto.TypeError, msg.Type)
	assert.Equal(t, "malformed message", msg.Reason)
}

func TestServer_RESTBroadcastsToWebSocket(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts)
	read(t, conn)

	resp, err := http.Post(ts.URL+"/api/move", "application/json", bytes.NewBufferString(`{"index":0}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))

	update := read(t, conn)
	assert.Equal(t, game.X, update.State.Board[0])
}

func TestServer_Export(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/export")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "tic-tac-toe-board.json")
	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	for _, key := range []string{"board", "currentPlayer", "scores", "history", "mode", "ai", "time"} {
		assert.Contains(t, body, key)
	}
}

func TestServer_StaticFiles(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Tic Tac Toe")
}
