/*
Package chat is the membership and broadcast engine of the chatroom server.

The Engine tracks which connections belong to which session, fans messages out to
rooms, keeps the recent-history buffer and turns join, leave and rename transitions
into server announcements. Transports plug in by implementing Conn.
*/
package chat

import "errors"

var (
	// ErrConnClosed is returned by Conn.Send once the connection has been closed.
	ErrConnClosed = errors.New("connection closed")

	// ErrSendQueueFull is returned by Conn.Send when the outbound queue cannot take more frames.
	ErrSendQueueFull = errors.New("send queue full")
)

// Conn is one live transport channel owned by the transport layer.
//
// Send must not block on network I/O and must preserve the order of calls made to the
// same Conn. ForceClose is best-effort and idempotent.
type Conn interface {
	// ID identifies the connection in logs.
	ID() string

	// Send queues one text frame for delivery.
	Send(text string) error

	// ForceClose tears the connection down after a delivery failure or at shutdown.
	ForceClose()
}
