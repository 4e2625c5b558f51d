package chatdb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"skillswap/internal/models"
)

// ChatStore реализует chat.Store поверх коллекции chats. Все мутации —
// одиночные атомарные findAndModify по документу комнаты.
type ChatStore struct {
	coll *mongo.Collection
}

func NewChatStore(coll *mongo.Collection) *ChatStore {
	return &ChatStore{coll: coll}
}

func (s *ChatStore) FindRoomByKey(ctx context.Context, key string) (*models.Chat, error) {
	var room models.Chat
	err := s.coll.FindOne(ctx, bson.M{"room_id": key}).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *ChatStore) FindRoomByMessageID(ctx context.Context, messageID string) (*models.Chat, error) {
	oid, err := bson.ObjectIDFromHex(messageID)
	if err != nil {
		// кривой идентификатор эквивалентен отсутствующему сообщению
		return nil, nil
	}

	var room models.Chat
	err = s.coll.FindOne(ctx, bson.M{"messages._id": oid}).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// AppendMessage добавляет сообщение одним upsert-ом: проверка существования
// комнаты и ее создание не разнесены на два вызова.
func (s *ChatStore) AppendMessage(ctx context.Context, key string, msg models.ChatMessage) (*models.Chat, error) {
	msg.ID = bson.NewObjectID()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	update := bson.M{
		"$push":        bson.M{"messages": msg},
		"$setOnInsert": bson.M{"room_id": key},
	}

	var room models.Chat
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"room_id": key}, update, opts).Decode(&room)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *ChatStore) UpdateMessage(ctx context.Context, messageID, content, status string) (*models.Chat, error) {
	oid, err := bson.ObjectIDFromHex(messageID)
	if err != nil {
		return nil, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$set": bson.M{
			"messages.$.content": content,
			"messages.$.status":  status,
		},
	}

	var room models.Chat
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"messages._id": oid}, update, opts).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *ChatStore) RemoveMessage(ctx context.Context, messageID string) (*models.Chat, error) {
	oid, err := bson.ObjectIDFromHex(messageID)
	if err != nil {
		return nil, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$pull": bson.M{"messages": bson.M{"_id": oid}},
	}

	var room models.Chat
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"messages._id": oid}, update, opts).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}
