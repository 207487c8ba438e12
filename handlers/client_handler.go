package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/debater-coder/wumpus/messages"
	"github.com/debater-coder/wumpus/models"
	"github.com/debater-coder/wumpus/network"
	"github.com/debater-coder/wumpus/services"
)

// DefaultLeaderboardSize is how many scores a scores request returns without a limit
const DefaultLeaderboardSize = 10

var (
	errNotLoggedIn = errors.New("log in first")
	errNoGame      = errors.New("start a game first")
)

// Services are the collaborators shared by every client
type Services struct {
	Scores       *services.ScoreService
	Sessions     *services.SessionService
	Catalog      *services.LevelCatalog
	DefaultLevel string
	Logger       *slog.Logger
}

// ClientHandler manages a single client connection
type ClientHandler struct {
	conn          *network.Connection
	services      Services
	clientManager *ClientManager
	logger        *slog.Logger
	player        *models.Player
	sessionID     string
}

// HandleClientConnection serves one client until it disconnects
func HandleClientConnection(wsConn *websocket.Conn, svc Services, clientManager *ClientManager) {
	logger := svc.Logger.With("remote", wsConn.RemoteAddr().String())
	logger.Info("New connection")

	conn := network.NewConnection(wsConn, svc.Logger)
	handler := &ClientHandler{
		conn:          conn,
		services:      svc,
		clientManager: clientManager,
		logger:        logger,
	}

	go conn.WritePump()
	conn.ReadPump(handler)

	if handler.sessionID != "" {
		svc.Sessions.End(handler.sessionID)
	}
	if handler.player != nil {
		clientManager.RemoveClient(handler.player.ID, handler)
		logger.Info("Player disconnected", "player", handler.player.Username)
	}
}

// HandleMessage handles incoming messages from the client
func (h *ClientHandler) HandleMessage(conn *network.Connection, message []byte) {
	h.logger.Debug("Received", "message", string(message))

	var baseMsg messages.BaseMessage
	if err := json.Unmarshal(message, &baseMsg); err != nil {
		h.sendError(messages.CodeBadRequest, err)
		return
	}

	switch baseMsg.Type {
	case messages.MessageTypeLogin:
		h.handleLogin(baseMsg.Payload)
	case messages.MessageTypeStart:
		h.handleStart(baseMsg.Payload)
	case messages.MessageTypeMove:
		h.handleMove(baseMsg.Payload)
	case messages.MessageTypeShoot:
		h.handleShoot(baseMsg.Payload)
	case messages.MessageTypeRespawn:
		h.handleRespawn()
	case messages.MessageTypeReplay:
		h.handleReplay(baseMsg.Payload)
	case messages.MessageTypeScores:
		h.handleScores(baseMsg.Payload)
	default:
		h.logger.Warn("Unknown message type", "type", baseMsg.Type)
		h.send(messages.BaseMessage{
			Type: messages.MessageTypeError,
			Payload: messages.ErrorMessage{
				Code:    messages.CodeUnknownMessageType,
				Message: "Unknown message type received",
			},
		})
	}
}

// decode re-reads a generic payload into a typed message
func decode(payload interface{}, v interface{}) error {
	if payload == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (h *ClientHandler) handleLogin(payload interface{}) {
	var loginMsg messages.LoginMessage
	if err := decode(payload, &loginMsg); err != nil {
		h.sendError(messages.CodeBadRequest, err)
		return
	}

	player, err := h.services.Scores.Player(loginMsg.Username)
	if err != nil {
		h.logger.Warn("Login failed", "username", loginMsg.Username, "error", err)
		h.sendError(messages.CodeLoginFailed, err)
		return
	}

	if h.player != nil && h.player.ID != player.ID {
		h.endSession()
		h.clientManager.RemoveClient(h.player.ID, h)
	}
	h.player = player
	h.clientManager.AddClient(player.ID, h)
	h.logger.Info("Player logged in", "player", player.Username, "id", player.ID)

	h.send(messages.BaseMessage{
		Type: messages.MessageTypeLoginSuccess,
		Payload: messages.LoginSuccessMessage{
			PlayerID: player.ID,
			Levels:   h.services.Catalog.Names(),
			Message:  "Login successful",
		},
	})
}

func (h *ClientHandler) handleStart(payload interface{}) {
	if h.player == nil {
		h.sendError(messages.CodeNotLoggedIn, errNotLoggedIn)
		return
	}

	var startMsg messages.StartMessage
	if err := decode(payload, &startMsg); err != nil {
		h.sendError(messages.CodeBadRequest, err)
		return
	}
	level := startMsg.Level
	if level == "" {
		level = h.services.DefaultLevel
	}

	h.endSession()
	session, outcome, err := h.services.Sessions.Start(h.player.Username, level)
	if err != nil {
		h.sendError(messages.CodeStartFailed, err)
		return
	}
	h.sessionID = session.ID
	h.sendOutcome(outcome)
}

func (h *ClientHandler) handleMove(payload interface{}) {
	var moveMsg messages.MoveMessage
	if !h.inGame() || !h.decodeOrReport(payload, &moveMsg) {
		return
	}
	outcome, err := h.services.Sessions.Move(h.sessionID, moveMsg.Location)
	h.reply(messages.CodeMoveFailed, outcome, err)
}

func (h *ClientHandler) handleShoot(payload interface{}) {
	var shootMsg messages.ShootMessage
	if !h.inGame() || !h.decodeOrReport(payload, &shootMsg) {
		return
	}
	outcome, err := h.services.Sessions.Shoot(h.sessionID, shootMsg.Rooms)
	h.reply(messages.CodeShootFailed, outcome, err)
}

func (h *ClientHandler) handleRespawn() {
	if !h.inGame() {
		return
	}
	outcome, err := h.services.Sessions.Respawn(h.sessionID)
	h.reply(messages.CodeRespawnFailed, outcome, err)
}

func (h *ClientHandler) handleReplay(payload interface{}) {
	var replayMsg messages.ReplayMessage
	if !h.inGame() || !h.decodeOrReport(payload, &replayMsg) {
		return
	}
	outcome, err := h.services.Sessions.Replay(h.sessionID, replayMsg.SameSetup)
	h.reply(messages.CodeReplayFailed, outcome, err)
}

func (h *ClientHandler) handleScores(payload interface{}) {
	var scoresMsg messages.ScoresMessage
	if !h.decodeOrReport(payload, &scoresMsg) {
		return
	}
	level := scoresMsg.Level
	if level == "" {
		level = h.services.DefaultLevel
	}
	limit := scoresMsg.Limit
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	scores, err := h.services.Scores.Leaderboard(level, limit)
	if err != nil {
		h.sendError(messages.CodeScoresFailed, err)
		return
	}
	h.send(messages.BaseMessage{
		Type:    messages.MessageTypeScore,
		Payload: messages.ScoreMessage{Level: level, Scores: scores},
	})
}

func (h *ClientHandler) inGame() bool {
	switch {
	case h.player == nil:
		h.sendError(messages.CodeNotLoggedIn, errNotLoggedIn)
		return false
	case h.sessionID == "":
		h.sendError(messages.CodeNoGame, errNoGame)
		return false
	}
	return true
}

func (h *ClientHandler) decodeOrReport(payload interface{}, v interface{}) bool {
	if err := decode(payload, v); err != nil {
		h.sendError(messages.CodeBadRequest, err)
		return false
	}
	return true
}

func (h *ClientHandler) reply(code string, outcome *services.Outcome, err error) {
	if err != nil {
		h.sendError(code, err)
		return
	}
	h.sendOutcome(outcome)
}

// sendOutcome sends the events of an action, then the new state, then any
// score the action earned. A win is announced to every client.
func (h *ClientHandler) sendOutcome(outcome *services.Outcome) {
	if len(outcome.Events) > 0 {
		h.send(messages.BaseMessage{
			Type:    messages.MessageTypeEvents,
			Payload: messages.FromEvents(outcome.Events),
		})
	}
	h.send(messages.BaseMessage{Type: messages.MessageTypeState, Payload: outcome.State})

	if outcome.Score == nil {
		return
	}
	h.send(messages.BaseMessage{
		Type:    messages.MessageTypeScore,
		Payload: messages.ScoreMessage{Level: outcome.State.Level, Best: outcome.Score},
	})
	h.clientManager.Announce(messages.AnnounceMessage{
		Username: h.player.Username,
		Level:    outcome.State.Level,
		Deaths:   outcome.State.Deaths,
		Seconds:  outcome.Seconds,
	})
}

func (h *ClientHandler) endSession() {
	if h.sessionID != "" {
		h.services.Sessions.End(h.sessionID)
		h.sessionID = ""
	}
}

func (h *ClientHandler) send(msg messages.BaseMessage) {
	if err := h.conn.SendMessage(msg); err != nil {
		h.logger.Warn("Error sending message", "type", msg.Type, "error", err)
	}
}

func (h *ClientHandler) sendError(code string, err error) {
	h.logger.Debug("Request failed", "code", code, "error", err)
	h.send(messages.NewError(code, err))
}
