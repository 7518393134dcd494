// Package metrics declares the Prometheus collectors of the chat server and
// exposes them over HTTP.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chatroom"

// Announcement kinds used as the "kind" label.
const (
	KindJoined  = "joined"
	KindLeft    = "left"
	KindRenamed = "renamed"
)

var (
	// ConnectionsActive counts live sockets registered with the engine.
	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "connections_active",
		Help:      "Live connections registered with the chat engine.",
	})

	// MembersActive counts sessions with at least one live connection.
	MembersActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "members_active",
		Help:      "Sessions with at least one live connection.",
	})

	// MessagesTotal counts chat messages broadcast to a room.
	MessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_total",
		Help:      "Chat messages broadcast to a room.",
	})

	// AnnouncementsTotal counts server-wide announcements by kind.
	AnnouncementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "announcements_total",
		Help:      "Server-wide announcements by kind.",
	}, []string{"kind"})

	// DeliveryFailuresTotal counts sends that failed and led to a forced close.
	DeliveryFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "delivery_failures_total",
		Help:      "Failed sends that caused the connection to be force-closed.",
	})

	// WSRejectedTotal counts WebSocket handshakes refused before reaching the engine.
	WSRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ws_rejected_total",
		Help:      "WebSocket handshakes refused before joining, by reason.",
	}, []string{"reason"})
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
