package controller_test

import (
	"bytes"
	"ctchen222/Themed-Tic-Tac-Toe/internal/api/controller"
	"ctchen222/Themed-Tic-Tac-Toe/internal/api/service"
	"ctchen222/Themed-Tic-Tac-Toe/internal/api/service/mocks"
	"ctchen222/Themed-Tic-Tac-Toe/internal/game"
	"ctchen222/Themed-Tic-Tac-Toe/internal/repository"
	"ctchen222/Themed-Tic-Tac-Toe/internal/session"
	"ctchen222/Themed-Tic-Tac-Toe/internal/validator"
	"ctchen222/Themed-Tic-Tac-Toe/pkg/proto"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Extras  json.RawMessage `json:"extras"`
}

func setupRouter(t *testing.T) (*gin.Engine, *mocks.MockGameService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.RegisterBindings())

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockGameService(ctrl)
	gc := controller.NewGameController(svc)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/state", gc.State)
	api.POST("/move", gc.Move)
	api.POST("/undo", gc.Undo)
	api.POST("/reset", gc.Reset)
	api.PUT("/mode", gc.SetMode)
	api.PUT("/difficulty", gc.SetDifficulty)
	api.GET("/export", gc.Export)
	api.GET("/snapshots", gc.Snapshots)
	api.GET("/snapshots/:id", gc.Snapshot)
	return r, svc
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestGameController_State(t *testing.T) {
	r, svc := setupRouter(t)
	view := proto.GameView{SessionID: "s1", CurrentPlayer: game.X, Status: game.StatusInProgress, History: []game.Move{}}
	svc.EXPECT().State(gomock.Any()).Return(view, nil)

	w := do(r, http.MethodGet, "/api/state", "")

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	var got proto.GameView
	require.NoError(t, json.Unmarshal(env.Extras, &got))
	assert.Equal(t, view, got)
}

func TestGameController_Move(t *testing.T) {
	t.Run("Applied", func(t *testing.T) {
		r, svc := setupRouter(t)
		view := proto.GameView{Board: game.Board{4: game.X}, CurrentPlayer: game.O}
		svc.EXPECT().Move(gomock.Any(), 4).Return(view, true, nil)

		w := do(r, http.MethodPost, "/api/move", `{"index":4}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `true`, string(extrasField(t, w, "applied")))
	})

	t.Run("Cell zero is a valid index", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().Move(gomock.Any(), 0).Return(proto.GameView{}, true, nil)

		w := do(r, http.MethodPost, "/api/move", `{"index":0}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Rejected move is still a success", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().Move(gomock.Any(), 4).Return(proto.GameView{}, false, nil)

		w := do(r, http.MethodPost, "/api/move", `{"index":4}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `false`, string(extrasField(t, w, "applied")))
	})

	for _, body := range []string{`{}`, `{"index":9}`, `{"index":-1}`, `not json`} {
		t.Run("Bad request "+body, func(t *testing.T) {
			r, _ := setupRouter(t)

			w := do(r, http.MethodPost, "/api/move", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, decode(t, w).Success)
		})
	}

	t.Run("Closed session", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().Move(gomock.Any(), 1).Return(proto.GameView{}, false, session.ErrClosed)

		w := do(r, http.MethodPost, "/api/move", `{"index":1}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestGameController_UndoAndReset(t *testing.T) {
	r, svc := setupRouter(t)
	svc.EXPECT().Undo(gomock.Any()).Return(proto.GameView{}, false, nil)
	svc.EXPECT().Reset(gomock.Any()).Return(proto.GameView{Scores: game.Scores{X: 2}}, nil)

	w := do(r, http.MethodPost, "/api/undo", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `false`, string(extrasField(t, w, "applied")))

	w = do(r, http.MethodPost, "/api/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"X":2,"O":0,"D":0}`, string(extrasField(t, w, "scores")))
}

func TestGameController_SetModeAndDifficulty(t *testing.T) {
	r, svc := setupRouter(t)
	svc.EXPECT().SetMode(gomock.Any(), "pve").Return(proto.GameView{Mode: "pve"}, nil)
	svc.EXPECT().SetDifficulty(gomock.Any(), "random").Return(proto.GameView{Difficulty: "random"}, nil)

	w := do(r, http.MethodPut, "/api/mode", `{"mode":"pve"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"pve"`, string(extrasField(t, w, "mode")))

	w = do(r, http.MethodPut, "/api/difficulty", `{"difficulty":"random"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"random"`, string(extrasField(t, w, "ai")))

	w = do(r, http.MethodPut, "/api/mode", `{"mode":"online"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/difficulty", `{"difficulty":"hard"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGameController_SetModeInvalidArgument(t *testing.T) {
	r, svc := setupRouter(t)
	svc.EXPECT().SetMode(gomock.Any(), "pvp").Return(proto.GameView{}, fmt.Errorf("%w: nope", service.ErrInvalidArgument))

	w := do(r, http.MethodPut, "/api/mode", `{"mode":"pvp"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGameController_Export(t *testing.T) {
	r, svc := setupRouter(t)
	payload := []byte("{\n  \"board\": []\n}")
	svc.EXPECT().Export(gomock.Any()).Return(service.ExportResult{Payload: payload, SnapshotID: "abc"}, nil)

	w := do(r, http.MethodGet, "/api/export", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="tic-tac-toe-board.json"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "abc", w.Header().Get("X-Snapshot-Id"))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, payload, w.Body.Bytes())
}

func TestGameController_Snapshots(t *testing.T) {
	t.Run("Default limit", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().RecentSnapshots(gomock.Any(), 10).Return([]string{"b", "a"}, nil)

		w := do(r, http.MethodGet, "/api/snapshots", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `["b","a"]`, string(extrasField(t, w, "ids")))
	})

	t.Run("Limit is capped", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().RecentSnapshots(gomock.Any(), 100).Return(nil, nil)

		w := do(r, http.MethodGet, "/api/snapshots?limit=1000", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, string(extrasField(t, w, "ids")))
	})

	t.Run("Bad limit", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := do(r, http.MethodGet, "/api/snapshots?limit=zero", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Archive disabled", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().RecentSnapshots(gomock.Any(), 10).Return(nil, service.ErrArchiveDisabled)

		w := do(r, http.MethodGet, "/api/snapshots", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestGameController_Snapshot(t *testing.T) {
	r, svc := setupRouter(t)
	svc.EXPECT().FindSnapshot(gomock.Any(), "abc").Return([]byte(`{"mode":"pvp"}`), nil)
	svc.EXPECT().FindSnapshot(gomock.Any(), "missing").Return(nil, repository.ErrSnapshotNotFound)

	w := do(r, http.MethodGet, "/api/snapshots/abc", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"mode":"pvp"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/snapshots/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func extrasField(t *testing.T, w *httptest.ResponseRecorder, key string) json.RawMessage {
	t.Helper()
	var extras map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(decode(t, w).Extras, &extras))
	return extras[key]
}
