package handler

import (
	"chatroom/internal/app/chat"
	"chatroom/internal/configs"
	"chatroom/internal/pkg/auth/jwt"
)

// AppDeps bundles what the handlers need.
type AppDeps struct {
	Engine   *chat.Engine
	Config   *configs.AppConfig
	Sessions *jwt.SessionManager
}
