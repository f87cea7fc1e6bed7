package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"sketchparty/game"
)

// Handler upgrades /ws requests and runs the session pumps. Origin policy is
// enforced by the server middleware before this point, so the upgrader
// accepts whatever reaches it.
func Handler(engine *game.Engine) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(*http.Request) bool { return true },
	}
	return func(ctx *gin.Context) {
		conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			log.Error().Err(err).Str("ip", ctx.ClientIP()).Msg("websocket upgrade failed")
			return
		}
		session := NewSession(conn, engine)
		go session.WritePump()
		session.ReadPump()
	}
}
