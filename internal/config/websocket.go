package config

import (
	"net/http"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

func NewWebSocket() (*WebSocket, error) {
	ws := &WebSocket{
		Upgrader: websocket.Upgrader{
			// the game API is cookie-authed and public, cross-origin
			// connects are fine
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	return ws, nil
}
