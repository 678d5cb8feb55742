package mazeapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// MazeController serves maze sessions.
type MazeController struct {
	sessions      i.MazeSessionManager
	dividerPixels int
	upgrader      websocket.Upgrader
	logger        *logrus.Entry
}

// Config holds the dependencies of a MazeController.
type Config struct {
	Sessions      i.MazeSessionManager
	DividerPixels int
	CheckOrigin   func(r *http.Request) bool // nil allows every origin
	Logger        *logrus.Entry
}

// NewMazeController initializes a MazeController.
func NewMazeController(c Config) (*MazeController, error) {
	if c.Sessions == nil {
		return nil, errors.New("session manager is required")
	}
	checkOrigin := c.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	logger := c.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	return &MazeController{
		sessions:      c.Sessions,
		dividerPixels: c.DividerPixels,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.create)
		mazes.GET("/stats", mc.stats)
	}
}

// RegisterProtected registers routes that need a session token.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	current := route.Group("/mazes/current")
	{
		current.GET("", mc.current)
		current.POST("/moves", mc.move)
		current.GET("/ws", mc.stream)
	}
}

// create starts a new session.
func (mc *MazeController) create(ctx *gin.Context) {
	var request NewMazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, token, err := mc.sessions.NewSession(ctx.Request.Context(), request.options())
	if err != nil {
		handleServiceError(ctx, mc.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, NewMazeResponse{
		SessionID: snapshot.ID.String(),
		Token:     token,
		State:     stateResponse(snapshot, mc.dividerPixels),
	})
}

// current returns the session state, resuming or regenerating the maze.
func (mc *MazeController) current(ctx *gin.Context) {
	id, ok := identity.SessionID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	snapshot, err := mc.sessions.Current(ctx.Request.Context(), id)
	if err != nil {
		handleServiceError(ctx, mc.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, stateResponse(snapshot, mc.dividerPixels))
}

// move applies one key or direction. Rejected moves still answer 200 with moved=false.
func (mc *MazeController) move(ctx *gin.Context) {
	id, ok := identity.SessionID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.input() == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "key or direction is required"})
		return
	}

	outcome, err := mc.sessions.Move(ctx.Request.Context(), id, request.input())
	if err != nil {
		handleServiceError(ctx, mc.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, mc.moveResponse(outcome))
}

func (mc *MazeController) stats(ctx *gin.Context) {
	stats, err := mc.sessions.Stats(ctx.Request.Context())
	if err != nil {
		handleServiceError(ctx, mc.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

func (mc *MazeController) moveResponse(outcome *i.MoveOutcome) MoveResponse {
	return MoveResponse{
		Moved:  outcome.Moved,
		Solved: outcome.Solved,
		State:  stateResponse(outcome.Snapshot, mc.dividerPixels),
	}
}
