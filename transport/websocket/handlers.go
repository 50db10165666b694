package websocket

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
)

func (that *Server) handleNewGame(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleNewGame")

	controller, err := that.gameUseCase.NewGame(ctx)
	if err != nil {
		return that.replyError(sess, msg.Action, err)
	}

	if sess.controller != nil {
		that.gameUseCase.CloseGame(ctx, sess.controller)
	}
	sess.controller = controller

	log.Info("new game started", "game_id", controller.Game().ID)

	return that.sendState(sess, msg.Action)
}

func (that *Server) handleResumeGame(ctx context.Context, sess *session, msg *Message) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return that.replyError(sess, msg.Action, err)
	}

	controller, err := that.gameUseCase.ResumeGame(ctx, payload.GameID)
	if err != nil {
		return that.replyError(sess, msg.Action, err)
	}
	sess.controller = controller

	return that.sendState(sess, msg.Action)
}

func (that *Server) handleCellActivate(ctx context.Context, sess *session, msg *Message) error {
	if sess.controller == nil {
		return that.replyError(sess, msg.Action, apperror.ErrGameIsNotStarted)
	}

	payload, err := decodePayload(msg)
	if err != nil {
		return that.replyError(sess, msg.Action, err)
	}

	if payload.Cell == nil {
		return that.replyError(sess, msg.Action, fmt.Errorf("%w: cell is required", apperror.ErrInvalidCell))
	}

	if _, err = that.gameUseCase.MakeTurn(ctx, sess.controller, *payload.Cell); err != nil {
		return that.replyError(sess, msg.Action, err)
	}

	return that.sendState(sess, msg.Action)
}

func (that *Server) handleResetGame(ctx context.Context, sess *session, msg *Message) error {
	if sess.controller == nil {
		return that.replyError(sess, msg.Action, apperror.ErrGameIsNotStarted)
	}

	if err := that.gameUseCase.ResetGame(ctx, sess.controller); err != nil {
		return that.replyError(sess, msg.Action, err)
	}

	return that.sendState(sess, msg.Action)
}

func (that *Server) handleCloseGame(ctx context.Context, sess *session, msg *Message) error {
	if sess.controller == nil {
		return that.replyError(sess, msg.Action, apperror.ErrGameIsNotStarted)
	}

	that.gameUseCase.CloseGame(ctx, sess.controller)
	sess.controller = nil

	return that.sendState(sess, msg.Action)
}

// replyError - sends the error to the page and passes it on for logging.
func (that *Server) replyError(sess *session, action string, cause error) error {
	if err := that.sendErrorResponse(sess, action, cause); err != nil {
		return err
	}

	return cause
}
