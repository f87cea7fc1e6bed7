// Package ws carries the websocket transport: one session per client with a
// read pump feeding the game engine and a write pump draining a buffered
// send channel. A slow or dead client never blocks the engine loop.
package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"sketchparty/game"
	"sketchparty/protocol"
)

const (
	sendBufferSize = 256
	writeDeadline  = 10 * time.Second
	pongWait       = time.Minute
	pingInterval   = 25 * time.Second

	// Chat is rate limited per connection; canvas traffic is exempt.
	chatRatePerSecond = 2
	chatBurst         = 5
)

// Session wraps one client connection. It implements game.Conn.
type Session struct {
	socket  *websocket.Conn
	engine  *game.Engine
	send    chan []byte
	closed  chan struct{}
	once    sync.Once
	limiter *rate.Limiter
}

func NewSession(socket *websocket.Conn, engine *game.Engine) *Session {
	socket.SetReadDeadline(time.Now().Add(pongWait))
	socket.SetPongHandler(func(string) error {
		return socket.SetReadDeadline(time.Now().Add(pongWait))
	})
	return &Session{
		socket:  socket,
		engine:  engine,
		send:    make(chan []byte, sendBufferSize),
		closed:  make(chan struct{}),
		limiter: rate.NewLimiter(chatRatePerSecond, chatBurst),
	}
}

// Send enqueues a frame without blocking. A closed session or a saturated
// buffer reports an error; the caller skips the write.
func (s *Session) Send(frame []byte) error {
	select {
	case <-s.closed:
		return game.ErrConnectionClosed
	default:
	}
	select {
	case s.send <- frame:
		return nil
	default:
		return game.ErrSendBufferFull
	}
}

// Close tears the connection down once; the reason travels in the close
// frame.
func (s *Session) Close(reason string) {
	s.once.Do(func() {
		close(s.closed)
		s.socket.SetWriteDeadline(time.Now().Add(writeDeadline))
		s.socket.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))
		s.socket.Close()
	})
}

// ReadPump decodes inbound frames and hands them to the engine. Malformed
// payloads are dropped with a diagnostic; spammy chat is shed by the rate
// limiter. Returns when the connection dies, funnelling the disconnect into
// the engine.
func (s *Session) ReadPump() {
	defer func() {
		s.engine.HandleDisconnect(s)
		s.Close("read-closed")
	}()
	for {
		_, raw, err := s.socket.ReadMessage()
		if err != nil {
			return
		}
		pkt, err := protocol.DecodeInbound(raw)
		if err != nil {
			log.Debug().Err(err).Msg("dropping malformed inbound frame")
			continue
		}
		if _, isChat := pkt.(protocol.SendMessage); isChat && !s.limiter.Allow() {
			log.Debug().Msg("chat rate limit exceeded, frame dropped")
			continue
		}
		s.engine.HandleInbound(s, pkt)
	}
}

// WritePump drains the send channel and keeps the connection alive with
// pings.
func (s *Session) WritePump() {
	pings := time.NewTicker(pingInterval)
	defer func() {
		pings.Stop()
		s.Close("write-closed")
	}()
	for {
		select {
		case <-s.closed:
			return
		case frame := <-s.send:
			s.socket.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := s.socket.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-pings.C:
			s.socket.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := s.socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
