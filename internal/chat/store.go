package chat

import (
	"context"

	"skillswap/internal/models"
)

// Store — граница доступа к хранилищу переписок. Отсутствующая комната —
// это (nil, nil), а не ошибка: ошибка означает сбой самого хранилища.
// Мутации атомарны в пределах одного документа и возвращают комнату
// после изменения.
type Store interface {
	FindRoomByKey(ctx context.Context, key string) (*models.Chat, error)
	FindRoomByMessageID(ctx context.Context, messageID string) (*models.Chat, error)

	// AppendMessage создает комнату при первом сообщении (upsert) и
	// присваивает сообщению идентификатор.
	AppendMessage(ctx context.Context, key string, msg models.ChatMessage) (*models.Chat, error)
	UpdateMessage(ctx context.Context, messageID, content, status string) (*models.Chat, error)
	RemoveMessage(ctx context.Context, messageID string) (*models.Chat, error)
}
