package chat

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"skillswap/internal/models"
)

// editWindow — сколько времени после отправки сообщение можно редактировать.
// Окно всегда отсчитывается от момента создания, не от последней правки.
const editWindow = 10 * time.Minute

// Service реализует операции над сообщениями: создание, список,
// редактирование и удаление, с проверкой прав и временного окна.
type Service struct {
	store    Store
	notifier Notifier

	// Мутации одной комнаты сериализуются по ключу, чтобы
	// read-modify-write двух конкурентных запросов не переплетался.
	locks sync.Map

	// подменяется в тестах
	now func() time.Time
}

func NewService(store Store, notifier Notifier) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *Service) lockRoom(key string) func() {
	v, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// ListMessages возвращает сообщения пары в порядке добавления.
// Отсутствие комнаты — не ошибка: переписка просто еще не начиналась.
func (s *Service) ListMessages(ctx context.Context, requesterID, counterpartID string) ([]models.ChatMessage, error) {
	room, err := s.store.FindRoomByKey(ctx, RoomKey(requesterID, counterpartID))
	if err != nil {
		log.Printf("Error in retrieving conversation: %v", err)
		return nil, ErrInternal
	}
	if room == nil {
		return []models.ChatMessage{}, nil
	}
	if room.Messages == nil {
		return []models.ChatMessage{}, nil
	}
	return room.Messages, nil
}

// CreateMessage добавляет сообщение в комнату пары, создавая комнату при
// первом сообщении, и публикует messageReceived получателю.
func (s *Service) CreateMessage(ctx context.Context, senderID, recipientID, content string) (*models.Chat, error) {
	if senderID == "" {
		return nil, ErrNotAuthenticated
	}
	if trimmed(content) == "" {
		return nil, ErrEmptyContent
	}

	key := RoomKey(senderID, recipientID)
	unlock := s.lockRoom(key)
	defer unlock()

	msg := models.ChatMessage{
		Sender:    senderID,
		Recipient: recipientID,
		Content:   content,
		Status:    models.MessageStatusSent,
		Timestamp: s.now().UnixMilli(),
	}

	room, err := s.store.AppendMessage(ctx, key, msg)
	if err != nil {
		log.Printf("Error in createMessage: %v", err)
		return nil, ErrInternal
	}

	saved := room.Messages[len(room.Messages)-1]
	if err := s.notifier.Publish(ctx, EventChannel(recipientID, senderID), EventMessageReceived, saved); err != nil {
		log.Printf("Error in createMessage: %v", err)
		return nil, ErrInternal
	}

	return room, nil
}

// UpdateMessage меняет текст сообщения. Разрешено только отправителю и
// только в пределах окна редактирования; просроченная правка — это отказ
// в доступе, как и правка чужого сообщения.
func (s *Service) UpdateMessage(ctx context.Context, requesterID, messageID, content string) (*models.Chat, error) {
	room, err := s.store.FindRoomByMessageID(ctx, messageID)
	if err != nil {
		log.Printf("Error in updating message: %v", err)
		return nil, ErrInternal
	}
	if room == nil {
		return nil, ErrNotFound
	}

	msg := findMessage(room, messageID)
	if msg == nil {
		return nil, fmt.Errorf("message not found: %w", ErrNotFound)
	}

	if requesterID == "" || requesterID != msg.Sender {
		return nil, fmt.Errorf("you are not authorized to edit the message: %w", ErrNotAllowed)
	}
	if s.now().Sub(time.UnixMilli(msg.Timestamp)) >= editWindow {
		return nil, fmt.Errorf("you can only edit a message within 10 minutes of sending: %w", ErrNotAllowed)
	}

	unlock := s.lockRoom(room.RoomID)
	defer unlock()

	if trimmed(content) != "" {
		room, err = s.store.UpdateMessage(ctx, messageID, content, models.MessageStatusEdited)
		if err != nil {
			log.Printf("Error in updating message: %v", err)
			return nil, ErrInternal
		}
		if room == nil {
			// сообщение успели удалить конкурентно
			return nil, ErrNotFound
		}
		msg = findMessage(room, messageID)
		if msg == nil {
			return nil, fmt.Errorf("message not found: %w", ErrNotFound)
		}
	}

	if err := s.notifier.Publish(ctx, EventChannel(msg.Recipient, msg.Sender), EventMessageUpdated, *msg); err != nil {
		log.Printf("Error in updating message: %v", err)
		return nil, ErrInternal
	}

	return room, nil
}

// DeleteMessage удаляет сообщение из комнаты. Разрешено отправителю и
// получателю этого сообщения; комната остается даже пустой.
func (s *Service) DeleteMessage(ctx context.Context, requesterID, messageID string) (*models.Chat, error) {
	room, err := s.store.FindRoomByMessageID(ctx, messageID)
	if err != nil {
		log.Printf("Error in deleting message: %v", err)
		return nil, ErrInternal
	}
	if room == nil {
		return nil, ErrNotFound
	}

	msg := findMessage(room, messageID)
	if msg == nil {
		return nil, fmt.Errorf("message not found: %w", ErrNotFound)
	}

	if requesterID == "" || (requesterID != msg.Sender && requesterID != msg.Recipient) {
		return nil, fmt.Errorf("you are not authorized to delete this message: %w", ErrNotAllowed)
	}

	unlock := s.lockRoom(room.RoomID)
	defer unlock()

	updated, err := s.store.RemoveMessage(ctx, messageID)
	if err != nil {
		log.Printf("Error in deleting message: %v", err)
		return nil, ErrInternal
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	if err := s.notifier.Publish(ctx, EventChannel(msg.Recipient, msg.Sender), EventMessageDeleted, updated.Messages); err != nil {
		log.Printf("Error in deleting message: %v", err)
		return nil, ErrInternal
	}

	return updated, nil
}

func findMessage(room *models.Chat, messageID string) *models.ChatMessage {
	for i := range room.Messages {
		if room.Messages[i].ID.Hex() == messageID {
			return &room.Messages[i]
		}
	}
	return nil
}
