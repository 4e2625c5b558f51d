package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"skillswap/internal/models"
)

// fakeStore держит комнаты в памяти и повторяет контракт хранилища:
// отсутствующая комната — (nil, nil), мутации возвращают копию после изменения.
type fakeStore struct {
	mu    sync.Mutex
	rooms map[string]*models.Chat
	fail  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{rooms: make(map[string]*models.Chat)}
}

func (f *fakeStore) FindRoomByKey(_ context.Context, key string) (*models.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	room, ok := f.rooms[key]
	if !ok {
		return nil, nil
	}
	return copyRoom(room), nil
}

func (f *fakeStore) FindRoomByMessageID(_ context.Context, messageID string) (*models.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	for _, room := range f.rooms {
		for _, m := range room.Messages {
			if m.ID.Hex() == messageID {
				return copyRoom(room), nil
			}
		}
	}
	return nil, nil
}

func (f *fakeStore) AppendMessage(_ context.Context, key string, msg models.ChatMessage) (*models.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	msg.ID = bson.NewObjectID()
	room, ok := f.rooms[key]
	if !ok {
		room = &models.Chat{ID: bson.NewObjectID(), RoomID: key}
		f.rooms[key] = room
	}
	room.Messages = append(room.Messages, msg)
	return copyRoom(room), nil
}

func (f *fakeStore) UpdateMessage(_ context.Context, messageID, content, status string) (*models.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	for _, room := range f.rooms {
		for i := range room.Messages {
			if room.Messages[i].ID.Hex() == messageID {
				room.Messages[i].Content = content
				room.Messages[i].Status = status
				return copyRoom(room), nil
			}
		}
	}
	return nil, nil
}

func (f *fakeStore) RemoveMessage(_ context.Context, messageID string) (*models.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	for _, room := range f.rooms {
		for i := range room.Messages {
			if room.Messages[i].ID.Hex() == messageID {
				room.Messages = append(room.Messages[:i], room.Messages[i+1:]...)
				return copyRoom(room), nil
			}
		}
	}
	return nil, nil
}

func copyRoom(room *models.Chat) *models.Chat {
	cp := *room
	cp.Messages = append([]models.ChatMessage(nil), room.Messages...)
	return &cp
}

type published struct {
	channel string
	event   string
	payload interface{}
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []published
	fail   error
}

func (f *fakeNotifier) Publish(_ context.Context, channel, event string, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.events = append(f.events, published{channel: channel, event: event, payload: payload})
	return nil
}

func (f *fakeNotifier) last(t *testing.T) published {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.events)
	return f.events[len(f.events)-1]
}

func newTestService() (*Service, *fakeStore, *fakeNotifier) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	return NewService(store, notifier), store, notifier
}

func TestCreateMessage_CreatesRoomOnFirstSend(t *testing.T) {
	svc, _, notifier := newTestService()

	before := time.Now().UnixMilli()
	room, err := svc.CreateMessage(context.Background(), "u1", "u2", "hello")
	require.NoError(t, err)

	require.Equal(t, "u1-u2", room.RoomID)
	require.Len(t, room.Messages, 1)

	msg := room.Messages[0]
	require.Equal(t, "u1", msg.Sender)
	require.Equal(t, "u2", msg.Recipient)
	require.Equal(t, models.MessageStatusSent, msg.Status)
	require.GreaterOrEqual(t, msg.Timestamp, before)
	require.False(t, msg.ID.IsZero())

	evt := notifier.last(t)
	require.Equal(t, "u2-u1", evt.channel)
	require.Equal(t, EventMessageReceived, evt.event)
}

func TestCreateMessage_AppendsToExistingRoom(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateMessage(context.Background(), "u1", "u2", "hello")
	require.NoError(t, err)

	// ответ в обратном направлении попадает в ту же комнату
	room, err := svc.CreateMessage(context.Background(), "u2", "u1", "hi")
	require.NoError(t, err)
	require.Equal(t, "u1-u2", room.RoomID)
	require.Len(t, room.Messages, 2)
}

func TestCreateMessage_WhitespaceContent(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateMessage(context.Background(), "u1", "u2", "   ")
	require.ErrorIs(t, err, ErrEmptyContent)
}

func TestCreateMessage_NoAuthenticatedSender(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateMessage(context.Background(), "", "u2", "hello")
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCreateMessage_StoreFailure(t *testing.T) {
	svc, store, _ := newTestService()
	store.fail = errors.New("connection reset")

	_, err := svc.CreateMessage(context.Background(), "u1", "u2", "hello")
	require.ErrorIs(t, err, ErrInternal)
	require.NotContains(t, err.Error(), "connection reset")
}

func TestListMessages_NoConversationIsEmptyNotError(t *testing.T) {
	svc, _, _ := newTestService()

	msgs, err := svc.ListMessages(context.Background(), "u1", "u2")
	require.NoError(t, err)
	require.NotNil(t, msgs)
	require.Empty(t, msgs)
}

func TestListMessages_ReturnsInsertionOrder(t *testing.T) {
	svc, _, _ := newTestService()

	for _, text := range []string{"first", "second", "third"} {
		_, err := svc.CreateMessage(context.Background(), "u1", "u2", text)
		require.NoError(t, err)
	}

	msgs, err := svc.ListMessages(context.Background(), "u2", "u1")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	require.Equal(t, "first", msgs[0].Content)
	require.Equal(t, "third", msgs[2].Content)
}

func TestListMessages_StoreFailure(t *testing.T) {
	svc, store, _ := newTestService()
	store.fail = errors.New("timeout")

	_, err := svc.ListMessages(context.Background(), "u1", "u2")
	require.ErrorIs(t, err, ErrInternal)
}

func TestUpdateMessage_BySenderWithinWindow(t *testing.T) {
	svc, _, notifier := newTestService()

	room, err := svc.CreateMessage(context.Background(), "u1", "u2", "hello")
	require.NoError(t, err)
	msgID := room.Messages[0].ID.Hex()

	// правка через две минуты после отправки
	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	updated, err := svc.UpdateMessage(context.Background(), "u1", msgID, "hello there")
	require.NoError(t, err)
	require.Equal(t, "hello there", updated.Messages[0].Content)
	require.Equal(t, models.MessageStatusEdited, updated.Messages[0].Status)
	// момент создания не меняется
	require.Equal(t, room.Messages[0].Timestamp, updated.Messages[0].Timestamp)

	evt := notifier.last(t)
	require.Equal(t, "u2-u1", evt.channel)
	require.Equal(t, EventMessageUpdated, evt.event)
}

func TestUpdateMessage_AfterWindowExpires(t *testing.T) {
	svc, _, _ := newTestService()

	room, err := svc.CreateMessage(context.Background(), "u1", "u2", "hello")
	require.NoError(t, err)
	msgID := room.Messages[0].ID.Hex()

	svc.now = func() time.Time { return time.Now().Add(10*time.Minute + time.Second) }

	_, err = svc.UpdateMessage(context.Background(), "u1", msgID, "too late")
	require.ErrorIs(t, err, ErrNotAllowed)
}

func TestUpdateMessage_WindowMeasuredFromCreation(t *testing.T) {
	svc, _, _ := newTestService()

	room, err := svc.CreateMessage(context.Background(), "u1", "u2", "hello")
	require.NoError(t, err)
	msgID := room.Messages[0].ID.Hex()

	// первая правка внутри окна
	svc.now = func() time.Time { return time.Now().Add(5 * time.Minute) }
	_, err = svc.UpdateMessage(context.Background(), "u1", msgID, "once")
	require.NoError(t, err)

	// вторая правка после окна от создания, хотя прошлая была недавно
	svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }
	_, err = svc.UpdateMessage(context.Background(), "u1", msgID, "twice")
	require.ErrorIs(t, err, ErrNotAllowed)
}

func TestUpdateMessage_ByRecipient(t *testing.T) {
	svc, _, _ := newTestService()

	room, err := svc.CreateMessage(context.Background(), "u1", "u2", "hello")
	require.NoError(t, err)
	msgID := room.Messages[0].ID.Hex()

	_, err = svc.UpdateMessage(context.Background(), "u2", msgID, "not mine")
	require.ErrorIs(t, err, ErrNotAllowed)
}

func TestUpdateMessage_UnknownMessage(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateMessage(context.Background(), "u1", bson.NewObjectID().Hex(), "hello")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateMessage_EmptyContentKeepsMessage(t *testing.T) {
	svc, _, notifier := newTestService()

	room, err := svc.CreateMessage(context.Background(), "u1", "u2", "hello")
	require.NoError(t, err)
	msgID := room.Messages[0].ID.Hex()

	updated, err := svc.UpdateMessage(context.Background(), "u1", msgID, "   ")
	require.NoError(t, err)
	require.Equal(t, "hello", updated.Messages[0].Content)
	require.Equal(t, models.MessageStatusSent, updated.Messages[0].Status)
	require.Equal(t, EventMessageUpdated, notifier.last(t).event)
}

func TestDeleteMessage_BySenderAndByRecipient(t *testing.T) {
	svc, _, notifier := newTestService()

	room, err := svc.CreateMessage(context.Background(), "u1", "u2", "one")
	require.NoError(t, err)
	room, err = svc.CreateMessage(context.Background(), "u1", "u2", "two")
	require.NoError(t, err)

	first := room.Messages[0].ID.Hex()
	second := room.Messages[1].ID.Hex()

	// отправитель удаляет свое сообщение
	updated, err := svc.DeleteMessage(context.Background(), "u1", first)
	require.NoError(t, err)
	require.Len(t, updated.Messages, 1)

	// получатель тоже может удалить
	updated, err = svc.DeleteMessage(context.Background(), "u2", second)
	require.NoError(t, err)
	require.Empty(t, updated.Messages)

	evt := notifier.last(t)
	require.Equal(t, EventMessageDeleted, evt.event)
	require.Equal(t, "u2-u1", evt.channel)
}

func TestDeleteMessage_ByThirdParty(t *testing.T) {
	svc, _, _ := newTestService()

	room, err := svc.CreateMessage(context.Background(), "u1", "u2", "hello")
	require.NoError(t, err)

	_, err = svc.DeleteMessage(context.Background(), "u3", room.Messages[0].ID.Hex())
	require.ErrorIs(t, err, ErrNotAllowed)
}

func TestDeleteMessage_UnknownMessage(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.DeleteMessage(context.Background(), "u1", bson.NewObjectID().Hex())
	require.ErrorIs(t, err, ErrNotFound)
}

// Сквозной сценарий: создание комнаты, правка, чужая правка, удаление,
// пустая комната остается и отдает пустой список.
func TestConversationLifecycle(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	room, err := svc.CreateMessage(ctx, "u1", "u2", "hello")
	require.NoError(t, err)
	require.Equal(t, "u1-u2", room.RoomID)
	require.Len(t, room.Messages, 1)
	require.Equal(t, models.MessageStatusSent, room.Messages[0].Status)

	msgID := room.Messages[0].ID.Hex()

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	room, err = svc.UpdateMessage(ctx, "u1", msgID, "hello there")
	require.NoError(t, err)
	require.Equal(t, "hello there", room.Messages[0].Content)
	require.Equal(t, models.MessageStatusEdited, room.Messages[0].Status)

	_, err = svc.UpdateMessage(ctx, "u2", msgID, "hijack")
	require.ErrorIs(t, err, ErrNotAllowed)

	room, err = svc.DeleteMessage(ctx, "u1", msgID)
	require.NoError(t, err)
	require.Empty(t, room.Messages)

	// комната существует, но пуста — снаружи это пустой список, не ошибка
	kept, err := store.FindRoomByKey(ctx, "u1-u2")
	require.NoError(t, err)
	require.NotNil(t, kept)

	msgs, err := svc.ListMessages(ctx, "u1", "u2")
	require.NoError(t, err)
	require.Empty(t, msgs)
}
