package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/tictactoe"
)

const (
	ActionGameNew      = "game:new"
	ActionGameResume   = "game:resume"
	ActionCellActivate = "cell:activate"
	ActionGameReset    = "game:reset"
	ActionGameClose    = "game:close"
)

const internalErrorText = "internal error"

var errConnectionWrite = errors.New("failed to write to connection")

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	GameID string `json:"game_id,omitempty"`
	Cell   *int   `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Game  *tictactoe.View `json:"game,omitempty"`
	Error string          `json:"error,omitempty"`
}

// session - state of one connection. The controller is only used from the read loop.
type session struct {
	conn       *websocket.Conn
	controller *tictactoe.GameController
}

func newSession(conn *websocket.Conn) *session {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	return &session{conn: conn}
}

// keepAlive - pings the page until ctx is done. WriteControl may run alongside the read loop's writes.
func (that *session) keepAlive(ctx context.Context, log *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := that.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Debug("failed to ping", "error", err)
				return
			}
		}
	}
}

func (that *session) view() *tictactoe.View {
	if that.controller == nil {
		return nil
	}

	view := that.controller.Render()
	return &view
}

func (that *Server) sendMessage(sess *session, action string, payload ResponsePayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadBytes,
	}

	if err = sess.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("%w: %w", errConnectionWrite, err)
	}

	if err = sess.conn.WriteJSON(response); err != nil {
		return fmt.Errorf("%w: %w", errConnectionWrite, err)
	}

	return nil
}

// sendState - replies with the current board of the session.
func (that *Server) sendState(sess *session, action string) error {
	return that.sendMessage(sess, action, ResponsePayload{Game: sess.view()})
}

// sendErrorResponse - replies with the error and the current board, if there is one.
func (that *Server) sendErrorResponse(sess *session, action string, cause error) error {
	return that.sendMessage(sess, action, ResponsePayload{
		Game:  sess.view(),
		Error: clientError(cause),
	})
}

// clientError - text the page may show; anything unexpected is hidden behind a generic message.
func clientError(err error) string {
	for _, known := range []error{
		apperror.ErrInvalidCell,
		apperror.ErrGameNotFound,
		apperror.ErrGameIsNotStarted,
		apperror.ErrUnknownAction,
		apperror.ErrInvalidPayload,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return internalErrorText
}

func errUnknownAction(action string) error {
	return fmt.Errorf("%w: %q", apperror.ErrUnknownAction, action)
}

func decodePayload(message *Message) (RequestPayload, error) {
	var payload RequestPayload

	if len(message.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return payload, fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err)
	}

	return payload, nil
}
