package server

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"cashflow/protocol"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024
)

// client is one player's websocket connection to a room.
type client struct {
	playerID string
	conn     *websocket.Conn
	send     chan []byte
	room     *room
}

func newClient(playerID string, conn *websocket.Conn, rm *room) *client {
	return &client{
		playerID: playerID,
		conn:     conn,
		send:     make(chan []byte, 16),
		room:     rm,
	}
}

func (c *client) sendMessage(msg protocol.OutboundMessage) {
	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Println(err.Error())
		return
	}
	c.trySend(bytes)
}

func (c *client) sendError(detail string) {
	c.sendMessage(protocol.OutboundMessage{
		Command: protocol.Error,
		Error:   detail,
	})
}

// trySend drops the message rather than block the room loop on a slow
// connection.
func (c *client) trySend(bytes []byte) {
	select {
	case c.send <- bytes:
	default:
		log.Printf("dropping message for player %s: send buffer full", c.playerID)
	}
}

func (c *client) readPump() {
	defer func() {
		select {
		case c.room.unregisterCh <- c:
		case <-c.room.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("player %s: %v", c.playerID, err)
			}
			return
		}

		var msg protocol.InboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError("could not parse message")
			continue
		}

		// the socket, not the payload, decides who is speaking
		msg.PlayerID = c.playerID

		select {
		case c.room.inboundCh <- roomMessage{client: c, msg: msg}:
		case <-c.room.done:
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
