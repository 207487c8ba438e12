package handlers

import (
	"log/slog"
	"sync"

	"github.com/debater-coder/wumpus/messages"
)

// ClientManager manages connected clients
type ClientManager struct {
	clients map[string]*ClientHandler // Map PlayerID to ClientHandler
	logger  *slog.Logger
	mutex   sync.RWMutex
}

// NewClientManager creates a new client manager
func NewClientManager(logger *slog.Logger) *ClientManager {
	return &ClientManager{
		clients: make(map[string]*ClientHandler),
		logger:  logger,
	}
}

// AddClient adds a client to the manager. A later login of the same player
// takes over announcements from the earlier connection.
func (cm *ClientManager) AddClient(playerID string, handler *ClientHandler) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	cm.clients[playerID] = handler
}

// RemoveClient removes a client from the manager if it is still the one registered for playerID
func (cm *ClientManager) RemoveClient(playerID string, handler *ClientHandler) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	if cm.clients[playerID] == handler {
		delete(cm.clients, playerID)
	}
}

// Count returns the number of connected players
func (cm *ClientManager) Count() int {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return len(cm.clients)
}

// Announce tells every logged-in player, the winner included, that the Wumpus was slain
func (cm *ClientManager) Announce(win messages.AnnounceMessage) {
	cm.logger.Info("Announcing win", "player", win.Username, "level", win.Level, "listeners", cm.Count())
	cm.broadcast(messages.BaseMessage{Type: messages.MessageTypeAnnounce, Payload: win})
}

func (cm *ClientManager) broadcast(msg messages.BaseMessage) {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	for playerID, client := range cm.clients {
		if err := client.conn.SendMessage(msg); err != nil {
			cm.logger.Warn("Broadcast failed", "player", playerID, "type", msg.Type, "error", err)
		}
	}
}
