package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// MessageType определяет типы сообщений
type MessageType string

const (
	// Системные типы
	TypeConnect    MessageType = "connect"
	TypeDisconnect MessageType = "disconnect"
	TypePing       MessageType = "ping"
	TypePong       MessageType = "pong"

	// Подписка на каналы переписок
	TypeChannelJoin  MessageType = "channel_join"
	TypeChannelLeave MessageType = "channel_leave"

	// Типы статусов
	TypeUserOnline  MessageType = "user_online"
	TypeUserOffline MessageType = "user_offline"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Channel   string          `json:"channel,omitempty"`
	UserID    uuid.UUID       `json:"user_id"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type Client struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
	// Каналы переписок, на которые подписан клиент
	Channels map[string]bool
	Hub      *Hub
	mu       sync.RWMutex
}

type Hub struct {
	clients map[uuid.UUID]*Client

	// Клиенты по UserID (один пользователь может иметь несколько соединений)
	userClients map[uuid.UUID]map[uuid.UUID]*Client

	// Клиенты по каналам переписок
	channels map[string]map[uuid.UUID]*Client

	// Каналы для регистрации/отмены регистрации
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub создает новый Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		channels:    make(map[string]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
	}
	h.userClients[client.UserID][client.ID] = client

	log.Printf("Client registered: %s (User: %s)", client.ID, client.UserID)

	h.notifyUserStatus(client.UserID, TypeUserOnline)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		for channel := range client.Channels {
			h.leaveChannelUnsafe(client, channel)
		}

		if userClients, ok := h.userClients[client.UserID]; ok {
			delete(userClients, client.ID)
			if len(userClients) == 0 {
				delete(h.userClients, client.UserID)
				h.notifyUserStatus(client.UserID, TypeUserOffline)
			}
		}

		delete(h.clients, client.ID)
		close(client.Send)

		log.Printf("Client unregistered: %s (User: %s)", client.ID, client.UserID)
	}
}

// JoinChannel подписывает клиента на канал переписки
func (h *Hub) JoinChannel(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[uuid.UUID]*Client)
	}

	h.channels[channel][client.ID] = client
	client.mu.Lock()
	client.Channels[channel] = true
	client.mu.Unlock()
}

// LeaveChannel отписывает клиента от канала
func (h *Hub) LeaveChannel(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.leaveChannelUnsafe(client, channel)
}

func (h *Hub) leaveChannelUnsafe(client *Client, channel string) {
	if subs, ok := h.channels[channel]; ok {
		if _, ok := subs[client.ID]; ok {
			delete(subs, client.ID)
			client.mu.Lock()
			delete(client.Channels, channel)
			client.mu.Unlock()

			if len(subs) == 0 {
				delete(h.channels, channel)
			}
		}
	}
}

// SendToUser отправляет сообщение всем соединениям пользователя
func (h *Hub) SendToUser(userID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.userClients[userID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- message:
			default:
				log.Printf("Client %s send channel full", client.ID)
			}
		}
	}
}

// SendToChannel отправляет сообщение всем подписчикам канала
func (h *Hub) SendToChannel(channel string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.channels[channel]; ok {
		for _, client := range subs {
			select {
			case client.Send <- message:
			default:
				log.Printf("Client %s send channel full", client.ID)
			}
		}
	}
}

// notifyUserStatus уведомляет о статусе пользователя
func (h *Hub) notifyUserStatus(userID uuid.UUID, status MessageType) {
	msg := Message{
		Type:      status,
		UserID:    userID,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(msg); err == nil {
		// TODO: отправлять только контактам пользователя
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{
		Type:      TypePing,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(msg); err == nil {
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// GetOnlineUsers возвращает список онлайн пользователей
func (h *Hub) GetOnlineUsers() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uuid.UUID, 0, len(h.userClients))
	for userID := range h.userClients {
		users = append(users, userID)
	}
	return users
}

// IsOnline проверяет, есть ли у пользователя активные соединения
func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.userClients[userID]) > 0
}
