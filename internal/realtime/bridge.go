package realtime

import (
	"context"
	"log"
	"strings"

	"github.com/go-redis/redis/v8"

	ws "skillswap/internal/websocket"
)

// Bridge подписывается на каналы chat:* и пересылает события в hub.
// Так уведомления доходят до клиентов любого экземпляра сервера,
// а не только того, который обработал запрос.
type Bridge struct {
	client *redis.Client
	hub    *ws.Hub
}

func NewBridge(client *redis.Client, hub *ws.Hub) *Bridge {
	return &Bridge{client: client, hub: hub}
}

// Run блокируется до отмены контекста.
func (b *Bridge) Run(ctx context.Context) {
	pubsub := b.client.PSubscribe(ctx, channelPrefix+"*")
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				log.Printf("Redis subscription closed")
				return
			}
			channel := strings.TrimPrefix(msg.Channel, channelPrefix)
			b.hub.SendToChannel(channel, []byte(msg.Payload))
		}
	}
}
