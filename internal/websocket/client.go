package websocket

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"baristabox-be/internal/dto"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	turnTimeout    = 90 * time.Second
)

// TurnFunc processes one chat message for a session.
type TurnFunc func(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)

// Frame is the JSON envelope written to the socket.
type Frame struct {
	Type    string                `json:"type"` // "reply" | "error"
	Data    *dto.SendChatResponse `json:"data,omitempty"`
	Message string                `json:"message,omitempty"`
}

type inbound struct {
	Chat string `json:"chat"`
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// SessionID is the chat session this socket talks to.
	SessionID string

	// Buffered channel of outbound frames.
	Send chan []byte

	turn TurnFunc

	// setReadDeadline defaults to Conn.SetReadDeadline.
	setReadDeadline func(time.Time) error
}

// parseInbound accepts either {"chat": "..."} or a bare text message.
func parseInbound(raw []byte) string {
	var msg inbound
	if err := json.Unmarshal(raw, &msg); err == nil && msg.Chat != "" {
		return strings.TrimSpace(msg.Chat)
	}
	return strings.TrimSpace(string(raw))
}

// handle runs one turn and returns the frame to send. Replies go through the
// hub so every tab on the session sees them; errors go to this socket only.
func (c *Client) handle(raw []byte) []byte {
	text := parseInbound(raw)
	if text == "" {
		return encodeFrame(Frame{Type: "error", Message: "empty message"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
	defer cancel()

	res, err := c.turn(ctx, &dto.SendChatRequest{ChatSessionId: c.SessionID, Chat: text})
	if err != nil {
		c.Hub.logger.Warn("WebSocket", "Turn failed", map[string]interface{}{"session_id": c.SessionID, "error": err.Error()})
		return encodeFrame(Frame{Type: "error", Message: err.Error()})
	}
	c.Hub.Deliver(ctx, c.SessionID, ReplyFrame(res))
	return nil
}

func ReplyFrame(res *dto.SendChatResponse) []byte {
	return encodeFrame(Frame{Type: "reply", Data: res})
}

func encodeFrame(f Frame) []byte {
	data, _ := json.Marshal(f)
	return data
}

// readPump pumps messages from the websocket connection into the chat.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	if c.setReadDeadline == nil {
		c.setReadDeadline = c.Conn.SetReadDeadline
	}
	c.Conn.SetReadLimit(maxMessageSize)
	c.setReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.setReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("WebSocket", "Unexpected close", map[string]interface{}{"session_id": c.SessionID, "error": err.Error()})
			}
			break
		}
		c.Hub.logger.Debug("WebSocket", "Frame received", map[string]interface{}{"session_id": c.SessionID, "bytes": len(raw)})
		c.receive(raw)
	}
}

// receive runs one turn. Pongs are not read while a turn runs, so the read
// deadline is pushed out again once it finishes.
func (c *Client) receive(raw []byte) {
	if frame := c.handle(raw); frame != nil {
		select {
		case c.Send <- frame:
		default:
		}
	}
	c.setReadDeadline(time.Now().Add(pongWait))
}

// writePump pumps frames from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
