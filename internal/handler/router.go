/*
Package handler wires the HTTP surface of the chatroom server: the embedded web
client, the session endpoints, the WebSocket endpoint, health and metrics.
*/
package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"chatroom/internal/pkg/limiter"
	"chatroom/internal/pkg/logx"
	"chatroom/internal/pkg/metrics"
	"chatroom/internal/pkg/resp"
)

// Per-IP token bucket settings, in requests per second and bucket size.
const (
	// WSRate and WSBurst limit WebSocket handshakes.
	WSRate  = 0.5
	WSBurst = 10

	// SessionRate and SessionBurst limit session mutations.
	SessionRate  = 0.2
	SessionBurst = 5
)

// Router builds the chi router with logging, CORS and per-IP rate limiting.
func Router(deps *AppDeps) http.Handler {
	wsLimiter := limiter.NewIPRateLimiter("ws", rate.Limit(WSRate), WSBurst)
	sessionLimiter := limiter.NewIPRateLimiter("session", rate.Limit(SessionRate), SessionBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.IsDevelopment() {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}
			if sameHost(origin, r.Host) {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			metrics.WSRejectedTotal.WithLabelValues("origin").Inc()
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", HandleHealth(deps))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(deps.Sessions.SessionMiddleware)

		api.Get("/session", HandleGetSession())
		api.With(sessionLimiter.Middleware).Post("/session/room", HandleSetRoom(deps))
		api.With(sessionLimiter.Middleware).Post("/session/nickname", HandleSetNickname(deps))
	})

	r.Get("/ws", HandleWebSocket(deps, wsUpgrader, wsLimiter))

	r.Get("/*", HandleStatic(deps))

	return r
}

// HandleHealth reports liveness together with engine counters.
func HandleHealth(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]any{
			"status":  "ok",
			"service": "Chatroom Server",
			"engine":  deps.Engine.Stats(),
		})
	}
}

func sameHost(origin, host string) bool {
	if origin == "" {
		return false
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, host)
}
