package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"chatroom/internal/app/chat"
	"chatroom/internal/pkg/errs"
	"chatroom/internal/pkg/limiter"
	"chatroom/internal/pkg/logx"
	"chatroom/internal/pkg/metrics"
	"chatroom/internal/pkg/resp"
)

// NoSessionReason is the close reason sent to sockets opened without a session.
const NoSessionReason = "No session"

const closeWriteWait = 5 * time.Second

// HandleWebSocket upgrades the request and runs the connection against the engine
// until it ends. Sockets without a valid session are closed with a policy violation
// before they reach the engine.
func HandleWebSocket(deps *AppDeps, upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rateLimiter.Allow(r) {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "remote_ip", logx.AnonymizeIP(r.RemoteAddr))
			metrics.WSRejectedTotal.WithLabelValues("rate_limit").Inc()
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		session := deps.Sessions.Resolve(r)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			metrics.WSRejectedTotal.WithLabelValues("upgrade").Inc()
			return
		}

		if session == nil {
			logx.Info("WebSocket connection rejected: No session.", "remote_ip", logx.AnonymizeIP(r.RemoteAddr))
			metrics.WSRejectedTotal.WithLabelValues("no_session").Inc()
			closeWithPolicyViolation(conn, NoSessionReason)
			return
		}

		deps.Sessions.Pin(session)
		defer deps.Sessions.Unpin(session)

		client := chat.NewClient(conn, session)

		go client.WritePump()

		deps.Engine.MemberJoin(session, client)

		client.ReadPump(func(text string) {
			deps.Engine.ReceivedMessage(session, text)
		})

		deps.Engine.MemberLeft(session, client)
		client.Close()
	}
}

func closeWithPolicyViolation(conn *websocket.Conn, reason string) {
	msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWriteWait)); err != nil {
		logx.Warn("Failed to send policy violation close frame", "error", err.Error())
	}

	if err := conn.Close(); err != nil {
		logx.Warn("WebSocket close error", "error", err.Error())
	}
}
