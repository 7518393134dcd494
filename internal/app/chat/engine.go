package chat

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"chatroom/internal/app/user"
	"chatroom/internal/pkg/logx"
	"chatroom/internal/pkg/metrics"
)

// Engine coordinates the registry, the broadcaster and the history buffer.
// The transport calls MemberJoin once per new connection, ReceivedMessage for each
// text frame, and MemberLeft once when the connection ends.
type Engine struct {
	registry    *Registry
	history     *History
	broadcaster *Broadcaster

	// feedMu serializes every registry transition and outbound frame with history
	// replay, so a joining connection receives the snapshot before any later message or
	// announcement. Sends only enqueue, so no socket I/O happens under it.
	feedMu sync.Mutex

	logger zerolog.Logger
}

// Stats is a point-in-time view of the engine.
type Stats struct {
	Members     int `json:"members"`
	Connections int `json:"connections"`
	History     int `json:"history"`
}

// NewEngine returns an engine with an empty registry and a history of historySize
// messages (DefaultHistorySize when non-positive).
func NewEngine(historySize int) *Engine {
	logger := logx.Component("chat")
	registry := NewRegistry()

	return &Engine{
		registry:    registry,
		history:     NewHistory(historySize),
		broadcaster: NewBroadcaster(registry, logger),
		logger:      logger,
	}
}

// MemberJoin registers c for s. The first connection of a session is announced to
// everyone; every new connection then receives the history replay.
func (e *Engine) MemberJoin(s *user.Session, c Conn) {
	e.feedMu.Lock()
	defer e.feedMu.Unlock()

	first := e.registry.Join(s, c)
	e.updateGauges()

	e.logger.Debug().
		Str("session_id", s.ID).
		Str("conn_id", c.ID()).
		Bool("first", first).
		Msg("Connection joined.")

	if first {
		e.announce(metrics.KindJoined, fmt.Sprintf("Member joined: %s.", e.registry.DisplayName(s)))
	}

	for _, msg := range e.history.Snapshot() {
		if !e.broadcaster.SendTo(c, msg) {
			return
		}
	}
}

// MemberLeft unregisters c. When it was the session's last connection, the departure
// is announced. Pairs that are not registered are ignored.
func (e *Engine) MemberLeft(s *user.Session, c Conn) {
	e.feedMu.Lock()
	defer e.feedMu.Unlock()

	last, name := e.registry.Leave(s, c)
	e.updateGauges()

	e.logger.Debug().
		Str("session_id", s.ID).
		Str("conn_id", c.ID()).
		Bool("last", last).
		Msg("Connection left.")

	if last {
		e.announce(metrics.KindLeft, fmt.Sprintf("Member left: %s.", name))
	}
}

// MemberRenamed changes the display name of s and announces it. The session object
// itself is left untouched.
func (e *Engine) MemberRenamed(s *user.Session, newName string) {
	e.feedMu.Lock()
	defer e.feedMu.Unlock()

	oldName := e.registry.Rename(s, newName)
	e.announce(metrics.KindRenamed, fmt.Sprintf("Member renamed from %s to %s", oldName, newName))
}

// ReceivedMessage handles one text frame from s: a rename command or a chat message.
func (e *Engine) ReceivedMessage(s *user.Session, text string) {
	cmd := ParseCommand(text)

	switch cmd.Kind {
	case CommandRename:
		if err := ValidateName(cmd.Arg); err != nil {
			e.logger.Info().
				Err(err).
				Str("session_id", s.ID).
				Msg("Rename rejected.")

			e.feedMu.Lock()
			e.broadcaster.SendDirect(s, Format(HelpLabel, renameHelp(err)))
			e.feedMu.Unlock()
			return
		}
		e.MemberRenamed(s, cmd.Arg)

	default:
		e.message(s, cmd.Arg)
	}
}

// message broadcasts "[name] text" to the sender's room and records it in history.
func (e *Engine) message(s *user.Session, text string) {
	e.feedMu.Lock()
	formatted := Format(e.registry.DisplayName(s), text)
	e.broadcaster.BroadcastToRoom(s.RoomID(), formatted)
	e.history.Append(formatted)
	e.feedMu.Unlock()

	metrics.MessagesTotal.Inc()
}

// announce must be called with feedMu held.
func (e *Engine) announce(kind, text string) {
	metrics.AnnouncementsTotal.WithLabelValues(kind).Inc()
	e.broadcaster.BroadcastToAll(Format(ServerLabel, text))
}

// updateGauges must be called with feedMu held, so the last published count is current.
func (e *Engine) updateGauges() {
	members, conns := e.registry.Counts()
	metrics.MembersActive.Set(float64(members))
	metrics.ConnectionsActive.Set(float64(conns))
}

// Stats reports member, connection and history counts.
func (e *Engine) Stats() Stats {
	members, conns := e.registry.Counts()
	return Stats{
		Members:     members,
		Connections: conns,
		History:     e.history.Len(),
	}
}

// History returns a copy of the buffered chat messages.
func (e *Engine) History() []string {
	return e.history.Snapshot()
}

// Shutdown force-closes every registered connection. The transport still reports each
// of them through MemberLeft as their read loops end.
func (e *Engine) Shutdown() {
	conns := e.registry.All()

	e.logger.Info().Int("connections", len(conns)).Msg("Closing all connections.")

	for _, c := range conns {
		c.ForceClose()
	}
}
