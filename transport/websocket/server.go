package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-board/internal/tictactoe"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

type gameUseCase interface {
	NewGame(ctx context.Context) (*tictactoe.GameController, error)
	ResumeGame(ctx context.Context, id string) (*tictactoe.GameController, error)
	MakeTurn(ctx context.Context, controller *tictactoe.GameController, cell int) (bool, error)
	ResetGame(ctx context.Context, controller *tictactoe.GameController) error
	CloseGame(ctx context.Context, controller *tictactoe.GameController)
}

type handlerFunc func(ctx context.Context, sess *session, message *Message) error

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionGameNew] = server.handleNewGame
	server.handlers[ActionGameResume] = server.handleResumeGame
	server.handlers[ActionCellActivate] = server.handleCellActivate
	server.handlers[ActionGameReset] = server.handleResetGame
	server.handlers[ActionGameClose] = server.handleCloseGame

	return server
}

// ServeHTTP - upgrades the connection to WebSocket and serves it until the page goes away.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established", "remote_addr", req.RemoteAddr)

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()

	sess := newSession(conn)
	go sess.keepAlive(ctx, log)

	if err = that.handleMessages(ctx, sess); err != nil {
		log.Error("error handling messages", "error", err)
	}

	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages from the client one at a time, so the game of the session is never touched concurrently.
func (that *Server) handleMessages(ctx context.Context, sess *session) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, reqBody, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			if err = that.sendErrorResponse(sess, message.Action, errUnknownAction(message.Action)); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, sess, &message); err != nil {
			if errors.Is(err, errConnectionWrite) {
				return err
			}
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}
