package controller

import (
	"ctchen222/Themed-Tic-Tac-Toe/internal/api/models"
	"ctchen222/Themed-Tic-Tac-Toe/internal/api/response"
	"ctchen222/Themed-Tic-Tac-Toe/internal/api/service"
	"ctchen222/Themed-Tic-Tac-Toe/internal/export"
	"ctchen222/Themed-Tic-Tac-Toe/internal/repository"
	"ctchen222/Themed-Tic-Tac-Toe/internal/session"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultSnapshotLimit = 10
	maxSnapshotLimit     = 100
)

// GameController handles game-related HTTP requests.
type GameController struct {
	gameService service.GameService
}

// NewGameController creates a new GameController.
func NewGameController(gameService service.GameService) *GameController {
	return &GameController{
		gameService: gameService,
	}
}

// State handles the current state endpoint.
func (gc *GameController) State(c *gin.Context) {
	view, err := gc.gameService.State(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}
	response.SuccessResponse(c, view)
}

// Move handles a cell click. A rejected move is not an error.
func (gc *GameController) Move(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	view, applied, err := gc.gameService.Move(c.Request.Context(), *req.Index)
	if err != nil {
		errorResponse(c, err)
		return
	}
	response.SuccessResponse(c, models.CommandResponse{Applied: applied, State: view})
}

// Undo handles the undo endpoint.
func (gc *GameController) Undo(c *gin.Context) {
	view, applied, err := gc.gameService.Undo(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}
	response.SuccessResponse(c, models.CommandResponse{Applied: applied, State: view})
}

// Reset handles the reset endpoint.
func (gc *GameController) Reset(c *gin.Context) {
	view, err := gc.gameService.Reset(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}
	response.SuccessResponse(c, view)
}

// SetMode handles the mode select.
func (gc *GameController) SetMode(c *gin.Context) {
	var req models.ModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := gc.gameService.SetMode(c.Request.Context(), req.Mode)
	if err != nil {
		errorResponse(c, err)
		return
	}
	response.SuccessResponse(c, view)
}

// SetDifficulty handles the difficulty select.
func (gc *GameController) SetDifficulty(c *gin.Context) {
	var req models.DifficultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := gc.gameService.SetDifficulty(c.Request.Context(), req.Difficulty)
	if err != nil {
		errorResponse(c, err)
		return
	}
	response.SuccessResponse(c, view)
}

// Export streams the snapshot as a file download.
func (gc *GameController) Export(c *gin.Context) {
	res, err := gc.gameService.Export(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}

	if res.SnapshotID != "" {
		c.Header("X-Snapshot-Id", res.SnapshotID)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	c.Data(http.StatusOK, "application/json", res.Payload)
}

// Snapshot returns one archived snapshot as it was downloaded.
func (gc *GameController) Snapshot(c *gin.Context) {
	payload, err := gc.gameService.FindSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// Snapshots lists the most recent archived snapshot IDs.
func (gc *GameController) Snapshots(c *gin.Context) {
	limit := defaultSnapshotLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.ErrorResponse(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxSnapshotLimit)
	}

	ids, err := gc.gameService.RecentSnapshots(c.Request.Context(), limit)
	if err != nil {
		errorResponse(c, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	response.SuccessResponse(c, models.SnapshotListResponse{IDs: ids})
}

// errorResponse maps service errors to HTTP status codes.
func errorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrSnapshotNotFound):
		response.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrArchiveDisabled), errors.Is(err, session.ErrClosed):
		response.ErrorResponse(c, http.StatusServiceUnavailable, err.Error())
	default:
		response.ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}
