package chat

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"chatroom/internal/app/user"
	"chatroom/internal/pkg/logx"
	"chatroom/internal/pkg/randx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a message sent by the client.
	maxMessageSize = 8192

	// sendQueueSize is the number of frames buffered per connection.
	sendQueueSize = 256
)

// Client is a WebSocket connection implementing Conn.
//
// Frames queued with Send are written by WritePump alone, which keeps the per-connection
// order of history replay and live broadcasts.
type Client struct {
	id      string
	conn    *websocket.Conn
	session *user.Session

	// send queues outbound text frames for WritePump.
	send chan string

	// done is closed when the client shuts down; send is never closed.
	done      chan struct{}
	closeOnce sync.Once

	logger zerolog.Logger
}

// NewClient wraps an upgraded connection owned by session.
func NewClient(wsConn *websocket.Conn, session *user.Session) *Client {
	id := randx.ConnectionID()

	return &Client{
		id:      id,
		conn:    wsConn,
		session: session,
		send:    make(chan string, sendQueueSize),
		done:    make(chan struct{}),
		logger: logx.Component("client").With().
			Str("conn_id", id).
			Str("session_id", session.ID).
			Logger(),
	}
}

// ID returns the connection id.
func (c *Client) ID() string {
	return c.id
}

// Session returns the session the connection belongs to.
func (c *Client) Session() *user.Session {
	return c.session
}

// Send queues text without blocking.
func (c *Client) Send(text string) error {
	select {
	case <-c.done:
		return ErrConnClosed
	default:
	}

	select {
	case c.send <- text:
		return nil
	case <-c.done:
		return ErrConnClosed
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send queue full")
		return ErrSendQueueFull
	}
}

// ForceClose closes the connection with a protocol-error close frame.
func (c *Client) ForceClose() {
	c.shutdown(websocket.CloseProtocolError, "")
}

// Close closes the connection normally.
func (c *Client) Close() {
	c.shutdown(websocket.CloseNormalClosure, "")
}

// shutdown stops WritePump and tears the socket down in the background, so callers
// holding engine locks never wait on a stuck peer.
func (c *Client) shutdown(code int, reason string) {
	c.closeOnce.Do(func() {
		close(c.done)

		go func() {
			msg := websocket.FormatCloseMessage(code, reason)
			if err := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
				c.logger.Debug().Err(err).Msg("Close frame not delivered")
			}

			if err := c.conn.Close(); err != nil {
				c.logger.Debug().Err(err).Msg("Client connection close error")
			}
		}()
	})
}

// Done is closed once the client has been closed.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// ReadPump reads frames until the connection fails or closes, passing text frames to
// onText. Binary frames are ignored. It must run on a single goroutine.
func (c *Client) ReadPump(onText func(text string)) {
	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Connection closed unexpectedly")
			}
			return
		}

		if messageType != websocket.TextMessage {
			continue
		}

		onText(string(data))
	}
}

// WritePump writes queued frames and periodic pings until the client is closed. A
// failed write force-closes the client, which also ends ReadPump.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return

		case message := <-c.send:
			if !c.writeText(message) {
				c.ForceClose()
				return
			}

		case <-ticker.C:
			if !c.writePing() {
				c.ForceClose()
				return
			}
		}
	}
}

func (c *Client) writeText(message string) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(message)); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

func (c *Client) writePing() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
