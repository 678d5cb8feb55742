package mazeapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	maxKeyMessageSize = 512
	writeWait         = 5 * time.Second
	pongWait          = 60 * time.Second
)

// socketError is written in place of a MoveResponse when a key could not be processed.
type socketError struct {
	Error string `json:"error"`
}

// stream upgrades to a websocket that accepts one key identifier per text
// message. Keys are applied strictly in arrival order and each one is
// answered with a MoveResponse. The current state is sent first.
func (mc *MazeController) stream(ctx *gin.Context) {
	id, ok := identity.SessionID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}
	logger := mc.logger.WithField("session_id", id)

	snapshot, err := mc.sessions.Current(ctx.Request.Context(), id)
	if err != nil {
		handleServiceError(ctx, mc.logger, err)
		return
	}

	conn, err := mc.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		logger.WithError(err).Warn("upgrading key stream")
		return
	}
	defer conn.Close()
	logger.Info("key stream opened")

	conn.SetReadLimit(maxKeyMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	if err := mc.write(conn, MoveResponse{Solved: snapshot.Solved, State: stateResponse(snapshot, mc.dividerPixels)}); err != nil {
		logger.WithError(err).Warn("writing initial state")
		return
	}

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WithError(err).Warn("key stream closed unexpectedly")
			} else {
				logger.Info("key stream closed")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		if messageType != websocket.TextMessage {
			continue
		}

		key := strings.TrimSpace(string(payload))
		outcome, err := mc.sessions.Move(ctx.Request.Context(), id, key)
		var reply interface{}
		if err != nil {
			logger.WithError(err).WithField("key", key).Error("applying key")
			reply = socketError{Error: "could not apply key"}
		} else {
			reply = mc.moveResponse(outcome)
		}

		if err := mc.write(conn, reply); err != nil {
			logger.WithError(err).Warn("writing move response")
			return
		}
	}
}

func (mc *MazeController) write(conn *websocket.Conn, v interface{}) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}
