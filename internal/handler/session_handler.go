package handler

import (
	"errors"
	"net/http"
	"strings"

	"chatroom/internal/app/chat"
	"chatroom/internal/app/user"
	"chatroom/internal/pkg/auth/jwt"
	"chatroom/internal/pkg/errs"
	"chatroom/internal/pkg/logx"
	"chatroom/internal/pkg/randx"
	"chatroom/internal/pkg/req"
	"chatroom/internal/pkg/resp"
	"chatroom/internal/web"
)

// SetRoomInput is the body of POST /api/session/room.
type SetRoomInput struct {
	RoomID string `json:"roomId"`
}

// SetNicknameInput is the body of POST /api/session/nickname.
type SetNicknameInput struct {
	Nickname string `json:"nickname"`
}

// HandleStatic serves the embedded web client. Visitors without a session get one;
// a valid ?room= query moves the session into that room.
func HandleStatic(deps *AppDeps) http.HandlerFunc {
	files := http.FileServer(http.FS(web.Static()))

	return func(w http.ResponseWriter, r *http.Request) {
		roomID := r.URL.Query().Get("room")
		if roomID != "" && !randx.IsValidRoomID(roomID) {
			logx.Warn("Ignoring invalid room query parameter", "room", roomID)
			roomID = ""
		}

		session := deps.Sessions.Resolve(r)

		switch {
		case session == nil:
			if roomID == "" {
				roomID = deps.Sessions.DefaultRoom()
			}
			created, err := deps.Sessions.Create(w, randx.PlaceholderNickname(), roomID)
			if err != nil {
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
				return
			}
			logx.Info("Session created", "session_id", created.ID, "room_id", roomID)

		case roomID != "" && roomID != session.RoomID():
			session.SetRoomID(roomID)
			if !reissue(w, r, deps, session) {
				return
			}
		}

		files.ServeHTTP(w, r)
	}
}

// HandleGetSession returns the caller's session.
func HandleGetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := jwt.GetSessionFromContext(r)
		if session == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrSessionMissing))
			return
		}

		resp.RespondSuccess(w, r, session.Snapshot())
	}
}

// HandleSetRoom moves the caller's session to another room. Open connections follow.
func HandleSetRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := jwt.GetSessionFromContext(r)
		if session == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrSessionMissing))
			return
		}

		var input SetRoomInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !randx.IsValidRoomID(input.RoomID) {
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomIDInvalid))
			return
		}

		session.SetRoomID(input.RoomID)
		if !reissue(w, r, deps, session) {
			return
		}

		resp.RespondSuccess(w, r, session.Snapshot())
	}
}

// HandleSetNickname changes the nickname stored on the session. Display names already
// held by the chat engine keep their value; only "/user" renames those.
func HandleSetNickname(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := jwt.GetSessionFromContext(r)
		if session == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrSessionMissing))
			return
		}

		var input SetNicknameInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		nickname := strings.TrimSpace(input.Nickname)
		if err := chat.ValidateName(nickname); err != nil {
			if errors.Is(err, chat.ErrNameTooLong) {
				resp.RespondError(w, r, errs.NewError(errs.ErrNicknameTooLong, chat.MaxNameLength))
				return
			}
			resp.RespondError(w, r, errs.NewError(errs.ErrNicknameEmpty))
			return
		}

		session.SetNickname(nickname)
		if !reissue(w, r, deps, session) {
			return
		}

		resp.RespondSuccess(w, r, session.Snapshot())
	}
}

// reissue refreshes the cookie after a session change, answering ErrUnknown on failure.
func reissue(w http.ResponseWriter, r *http.Request, deps *AppDeps, session *user.Session) bool {
	if err := deps.Sessions.Issue(w, session); err != nil {
		resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
		return false
	}
	return true
}
