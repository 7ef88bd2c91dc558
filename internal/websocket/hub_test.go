package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"baristabox-be/internal/dto"
	"baristabox-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(hub *Hub, sessionID string, turn TurnFunc) *Client {
	return &Client{Hub: hub, SessionID: sessionID, Send: make(chan []byte, 4), turn: turn}
}

func echoTurn(_ context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	return &dto.SendChatResponse{
		ChatSessionId: req.ChatSessionId,
		Reply:         &dto.SendChatResponseChat{Role: "assistant", Chat: "echo: " + req.Chat},
	}, nil
}

func decode(t *testing.T, raw []byte) Frame {
	var f Frame
	require.NoError(t, json.Unmarshal(raw, &f))
	return f
}

func TestHandleDeliversToEveryTab(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	a := newClient(hub, "s1", echoTurn)
	b := newClient(hub, "s1", echoTurn)
	other := newClient(hub, "s2", echoTurn)
	hub.add(a)
	hub.add(b)
	hub.add(other)

	assert.Nil(t, a.handle([]byte(`{"chat":" hello "}`)))

	for _, c := range []*Client{a, b} {
		require.Len(t, c.Send, 1)
		f := decode(t, <-c.Send)
		assert.Equal(t, "reply", f.Type)
		assert.Equal(t, "echo: hello", f.Data.Reply.Chat)
	}
	assert.Empty(t, other.Send)
}

func TestHandleBareText(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	c := newClient(hub, "s1", echoTurn)
	hub.add(c)

	c.handle([]byte("recipe for V60"))
	f := decode(t, <-c.Send)
	assert.Equal(t, "echo: recipe for V60", f.Data.Reply.Chat)
}

func TestHandleErrors(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	failing := func(context.Context, *dto.SendChatRequest) (*dto.SendChatResponse, error) {
		return nil, errors.New("chat session not found")
	}
	c := newClient(hub, "s1", failing)
	hub.add(c)

	f := decode(t, c.handle([]byte("hi")))
	assert.Equal(t, "error", f.Type)
	assert.Equal(t, "chat session not found", f.Message)

	f = decode(t, c.handle([]byte("   ")))
	assert.Equal(t, "empty message", f.Message)
	assert.Empty(t, c.Send)
}

func TestRemoveClosesSend(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	c := newClient(hub, "s1", echoTurn)
	hub.add(c)
	assert.Equal(t, 1, hub.Connected("s1"))

	hub.remove(c)
	assert.Equal(t, 0, hub.Connected("s1"))
	_, open := <-c.Send
	assert.False(t, open)

	hub.Deliver(context.Background(), "s1", []byte("late"))
}

func TestReceiveRefreshesReadDeadlineAfterTurn(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	var finished time.Time
	slow := func(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
		time.Sleep(20 * time.Millisecond)
		finished = time.Now()
		return echoTurn(ctx, req)
	}
	c := newClient(hub, "s1", slow)
	var deadlines []time.Time
	c.setReadDeadline = func(d time.Time) error {
		deadlines = append(deadlines, d)
		return nil
	}
	hub.add(c)

	c.receive([]byte("diagnose my bitter coffee"))

	require.Len(t, deadlines, 1)
	assert.False(t, deadlines[0].Before(finished.Add(pongWait)))
	require.Len(t, c.Send, 1)
	assert.Equal(t, "reply", decode(t, <-c.Send).Type)
}
