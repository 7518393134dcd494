package chat

import (
	"errors"

	"github.com/rs/zerolog"

	"chatroom/internal/app/user"
	"chatroom/internal/pkg/metrics"
)

// Broadcaster delivers frames to the connections listed by a Registry.
// Delivery is best-effort per connection: a failed send force-closes that connection
// and the loop moves on.
type Broadcaster struct {
	registry *Registry
	logger   zerolog.Logger
}

// NewBroadcaster returns a broadcaster over registry.
func NewBroadcaster(registry *Registry, logger zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		registry: registry,
		logger:   logger,
	}
}

// BroadcastToRoom sends message to every connection of every session in roomID.
func (b *Broadcaster) BroadcastToRoom(roomID string, message string) {
	b.deliver(b.registry.ConnectionsInRoom(roomID), message)
}

// BroadcastToAll sends message to every registered connection.
func (b *Broadcaster) BroadcastToAll(message string) {
	b.deliver(b.registry.All(), message)
}

// SendDirect sends message to the connections of s only.
func (b *Broadcaster) SendDirect(s *user.Session, message string) {
	b.deliver(b.registry.ConnectionsFor(s), message)
}

func (b *Broadcaster) deliver(conns []Conn, message string) {
	for _, c := range conns {
		b.SendTo(c, message)
	}
}

// SendTo sends message to a single connection and reports whether it was accepted.
// A connection that is already closed is skipped quietly; the transport reports its MemberLeft.
func (b *Broadcaster) SendTo(c Conn, message string) bool {
	err := c.Send(message)
	if errors.Is(err, ErrConnClosed) {
		b.logger.Debug().Str("conn_id", c.ID()).Msg("Skipping closed connection.")
		return false
	}

	if err != nil {
		metrics.DeliveryFailuresTotal.Inc()
		b.logger.Warn().
			Err(err).
			Str("conn_id", c.ID()).
			Msg("Delivery failed, closing connection.")

		c.ForceClose()
		return false
	}
	return true
}
