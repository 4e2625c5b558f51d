// Package realtime доставляет события чата через Redis pub/sub
// подключенным websocket-клиентам.
package realtime

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
)

const channelPrefix = "chat:"

// Event — конверт события в канале: имя и полезная нагрузка.
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// RedisNotifier публикует события чата в Redis. Ключ канала приходит от
// сервиса сообщений (получатель-отправитель), префикс chat: добавляется здесь.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func (n *RedisNotifier) Publish(ctx context.Context, channel, event string, payload interface{}) error {
	data, err := json.Marshal(Event{Event: event, Payload: payload})
	if err != nil {
		return err
	}
	return n.client.Publish(ctx, channelPrefix+channel, data).Err()
}
