package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs handles one chat socket. It returns when the peer disconnects.
func ServeWs(hub *Hub, c *websocket.Conn, sessionID string, turn TurnFunc) {
	client := &Client{Hub: hub, Conn: c, SessionID: sessionID, Send: make(chan []byte, 64), turn: turn}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
