package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	MessageStatusSent   = "sent"
	MessageStatusEdited = "edited"
)

// Chat — документ переписки в MongoDB: одна комната на пару пользователей,
// сообщения хранятся вложенным массивом в порядке добавления.
type Chat struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"id"`
	RoomID   string        `bson:"room_id" json:"room_id"`
	Messages []ChatMessage `bson:"messages" json:"messages"`
}

// ChatMessage — вложенное сообщение. Timestamp в миллисекундах с эпохи,
// не меняется после создания.
type ChatMessage struct {
	ID        bson.ObjectID `bson:"_id" json:"message_id"`
	Sender    string        `bson:"sender" json:"sender"`
	Recipient string        `bson:"recipient" json:"recipient"`
	Content   string        `bson:"content" json:"content"`
	Status    string        `bson:"status" json:"status"`
	Timestamp int64         `bson:"timestamp" json:"timestamp"`
}
