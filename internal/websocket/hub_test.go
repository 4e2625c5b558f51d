package websocket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestHub_ChannelFanOut(t *testing.T) {
	hub := NewHub()

	alice := NewClient(hub, nil, uuid.New())
	bob := NewClient(hub, nil, uuid.New())
	other := NewClient(hub, nil, uuid.New())

	hub.registerClient(alice)
	hub.registerClient(bob)
	hub.registerClient(other)

	channel := bob.UserID.String() + "-" + alice.UserID.String()
	hub.JoinChannel(alice, channel)
	hub.JoinChannel(bob, channel)

	drain(alice)
	drain(bob)
	drain(other)

	hub.SendToChannel(channel, []byte(`{"event":"messageReceived"}`))

	require.Len(t, alice.Send, 1)
	require.Len(t, bob.Send, 1)
	require.Empty(t, other.Send)
}

func TestHub_LeaveChannelStopsDelivery(t *testing.T) {
	hub := NewHub()

	client := NewClient(hub, nil, uuid.New())
	hub.registerClient(client)

	channel := client.UserID.String() + "-peer"
	hub.JoinChannel(client, channel)
	require.True(t, client.IsInChannel(channel))

	hub.LeaveChannel(client, channel)
	require.False(t, client.IsInChannel(channel))

	drain(client)
	hub.SendToChannel(channel, []byte("ignored"))
	require.Empty(t, client.Send)
}

func TestHub_OnlineTracking(t *testing.T) {
	hub := NewHub()

	client := NewClient(hub, nil, uuid.New())
	hub.registerClient(client)
	require.True(t, hub.IsOnline(client.UserID))
	require.Contains(t, hub.GetOnlineUsers(), client.UserID)

	hub.unregisterClient(client)
	require.False(t, hub.IsOnline(client.UserID))
}

func TestClient_OwnsChannel(t *testing.T) {
	client := NewClient(NewHub(), nil, uuid.New())

	require.True(t, client.ownsChannel(client.UserID.String()+"-peer"))
	require.True(t, client.ownsChannel("peer-"+client.UserID.String()))
	require.False(t, client.ownsChannel("someone-else"))
}

// drain очищает очередь клиента от служебных статусных сообщений
func drain(c *Client) {
	for {
		select {
		case <-c.Send:
		default:
			return
		}
	}
}
