package chat

import "context"

// События, которые сервис публикует после успешной записи.
const (
	EventMessageReceived = "messageReceived"
	EventMessageUpdated  = "messageUpdated"
	EventMessageDeleted  = "messageDeleted"
)

// Notifier — внешний pub/sub канал для live-обновлений. Подписчики
// (websocket-клиенты) получают события вне основного request/response пути.
type Notifier interface {
	Publish(ctx context.Context, channel, event string, payload interface{}) error
}
