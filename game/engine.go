package game

import (
	"math/rand"
	"sync"

	"github.com/rs/zerolog/log"

	"sketchparty/protocol"
)

// Engine is the single logical thread of the server: every room mutation,
// inbound event and timer tick runs on its loop, one at a time, so game
// state needs no locking. Transports and timers only post closures into the
// inbox.
type Engine struct {
	registry  *RoomRegistry
	directory *ConnectionDirectory
	scoring   ScoringConfig
	tickers   TickerGen
	rng       *rand.Rand

	inbox chan func()
	quit  chan struct{}
	done  chan struct{}
	stop  sync.Once

	// sessions maps a live connection to the player identity it announced
	// via create-room or join-room.
	sessions map[Conn]string
}

func NewEngine(registry *RoomRegistry, directory *ConnectionDirectory, scoring ScoringConfig, tickers TickerGen, rng *rand.Rand) *Engine {
	return &Engine{
		registry:  registry,
		directory: directory,
		scoring:   scoring,
		tickers:   tickers,
		rng:       rng,
		inbox:     make(chan func(), 1024),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		sessions:  make(map[Conn]string),
	}
}

// Run consumes the inbox until Stop is called. started is closed once the
// loop is accepting work.
func (e *Engine) Run(started chan<- struct{}) {
	if started != nil {
		close(started)
	}
	defer close(e.done)
	for {
		select {
		case fn := <-e.inbox:
			fn()
		case <-e.quit:
			return
		}
	}
}

// Stop halts the loop and waits for it to drain the event in flight.
func (e *Engine) Stop() {
	e.stop.Do(func() { close(e.quit) })
	<-e.done
}

func (e *Engine) post(fn func()) {
	select {
	case e.inbox <- fn:
	case <-e.quit:
	}
}

// HandleInbound schedules a decoded client event for processing. Safe to
// call from any goroutine.
func (e *Engine) HandleInbound(c Conn, pkt protocol.Inbound) {
	e.post(func() { e.dispatch(c, pkt) })
}

// HandleDisconnect funnels a connection loss through the same removal path
// as an explicit leave.
func (e *Engine) HandleDisconnect(c Conn) {
	e.post(func() { e.disconnect(c) })
}

func (e *Engine) dispatch(c Conn, pkt protocol.Inbound) {
	switch p := pkt.(type) {
	case protocol.CreateRoom:
		e.handleCreateRoom(c, p)
	case protocol.JoinRoom:
		e.handleJoinRoom(c, p)
	case protocol.StartGame:
		e.handleStartGame(c, p)
	case protocol.WordSelected:
		e.handleWordSelected(c, p)
	case protocol.SendMessage:
		e.handleChat(c, p)
	case protocol.LeaveRoom:
		e.leaveRoom(p.RoomID, p.PlayerID, " left the game")
	case protocol.Relay:
		e.handleRelay(c, p)
	}
}

func (e *Engine) handleCreateRoom(c Conn, p protocol.CreateRoom) {
	player := NewPlayer(p.Player)
	room := e.registry.Create(p.Settings, player)
	e.directory.Bind(player.ID, c)
	e.sessions[c] = player.ID

	log.Info().Str("room", room.ID).Str("player", player.Name).Msg("room created")

	e.sendToConn(c, protocol.EventRoomCreated, protocol.RoomCreated{RoomID: room.ID})
	e.sendToConn(c, protocol.EventPlayerJoined, protocol.PlayerJoined{Players: room.roster()})
	e.appendMessage(room, newSystemMessage("Welcome to the room! Share the room code: "+room.ID))
}

func (e *Engine) handleJoinRoom(c Conn, p protocol.JoinRoom) {
	room, reconnect, err := e.registry.Join(p.RoomID, p.Player)
	if err != nil {
		e.sendError(c, err)
		return
	}
	e.directory.Bind(p.Player.ID, c)
	e.sessions[c] = p.Player.ID

	if reconnect {
		log.Info().Str("room", room.ID).Str("player", p.Player.Name).Msg("player reconnected")
		e.sendToConn(c, protocol.EventPlayerJoined, protocol.PlayerJoined{Players: room.roster()})
		for _, msg := range room.log.All() {
			e.sendToConn(c, protocol.EventNewMessage, msg)
		}
		return
	}

	log.Info().Str("room", room.ID).Str("player", p.Player.Name).Int("players", len(room.Players)).Msg("player joined")
	e.broadcastRoster(room)
	e.appendMessage(room, newSystemMessage(p.Player.Name+" joined the game!"))
}

func (e *Engine) handleStartGame(c Conn, p protocol.StartGame) {
	room, ok := e.registry.Get(p.RoomID)
	if !ok {
		e.sendError(c, ErrRoomNotFound)
		return
	}
	host := room.host()
	if host == nil || e.sessions[c] != host.ID {
		e.sendError(c, ErrNotHost)
		return
	}
	if room.Game.IsPlaying {
		e.sendError(c, ErrGameAlreadyInProgress)
		return
	}
	if len(room.Players) < 2 {
		e.sendError(c, ErrInsufficientPlayers)
		return
	}

	room.Game.IsPlaying = true
	room.Game.CurrentRound = 0
	room.Game.CurrentDrawerIndex = -1
	for _, pl := range room.Players {
		pl.Score = 0
		pl.IsDrawing = false
	}

	log.Info().Str("room", room.ID).Int("players", len(room.Players)).Msg("game started")

	e.broadcast(room, protocol.EventGameStarted, protocol.GameStarted{
		IsPlaying:    true,
		TotalRounds:  room.Settings.TotalRounds,
		CurrentRound: 0,
	})
	e.schedulePending(room, gameStartDelay, e.startRound)
}

func (e *Engine) handleWordSelected(c Conn, p protocol.WordSelected) {
	room, ok := e.registry.Get(p.RoomID)
	if !ok {
		e.sendError(c, ErrRoomNotFound)
		return
	}
	drawer := room.drawer()
	if drawer == nil || e.sessions[c] != drawer.ID {
		e.sendError(c, ErrInvalidWordSelection)
		return
	}
	if !e.selectWord(room, p.SelectedWord) {
		e.sendError(c, ErrInvalidWordSelection)
	}
}

func (e *Engine) handleChat(c Conn, p protocol.SendMessage) {
	room, ok := e.registry.Get(p.RoomID)
	if !ok {
		log.Debug().Str("room", p.RoomID).Msg("chat for unknown room dropped")
		return
	}
	sender := room.player(p.PlayerID)
	if sender == nil {
		log.Debug().Str("room", room.ID).Str("player", p.PlayerID).Msg("chat from non-member dropped")
		return
	}

	g := &room.Game
	if g.IsPlaying && turnActive(room) && !sender.IsDrawing {
		if IsCorrectGuess(p.Text, g.CurrentWord) {
			if room.hasGuessed(sender.ID) {
				// Already scored this turn; repeating the word is not
				// relayed, it would disclose the answer.
				return
			}
			position := len(g.correctGuessOrder)
			points := e.scoring.CorrectGuessPoints(g.TimeLeft, room.Settings.DrawTime, position, g.HintsRevealed)
			sender.Score += points
			g.correctGuessOrder = append(g.correctGuessOrder, sender.ID)

			log.Info().Str("room", room.ID).Str("player", sender.Name).Int("points", points).Msg("correct guess")

			e.appendMessage(room, newCorrectGuessMessage(sender.ID, sender.Name, points))
			e.broadcast(room, protocol.EventPlayerGuessed, protocol.PlayerGuessed{
				PlayerID: sender.ID,
				Score:    sender.Score,
			})
			if room.everyoneGuessed() {
				e.endTurn(room)
			}
			return
		}
		if !room.hasGuessed(sender.ID) && !g.wrongGuessers[sender.ID] {
			g.wrongGuessers[sender.ID] = true
			sender.Score = e.scoring.WrongGuessScore(sender.Score)
		}
		e.appendMessage(room, newChatMessage(sender.ID, sender.Name, p.Text))
		return
	}

	// Lobby chat, or an idle phase of a running game. The drawer's chat is
	// suppressed while the game runs.
	if !g.IsPlaying || !sender.IsDrawing {
		e.appendMessage(room, newChatMessage(sender.ID, sender.Name, p.Text))
	}
}

func (e *Engine) handleRelay(c Conn, p protocol.Relay) {
	room, ok := e.registry.Get(p.RoomID)
	if !ok {
		return
	}
	target, ok := protocol.RelayTarget(p.Event)
	if !ok {
		return
	}
	sender := e.sessions[c]
	frame, err := protocol.Encode(target, p.Data)
	if err != nil {
		log.Error().Err(err).Str("event", target).Msg("relay encode failed")
		return
	}
	for _, member := range room.Players {
		if member.ID == sender {
			continue
		}
		e.sendFrame(member.ID, frame)
	}
}

// leaveRoom is the single removal path, shared by explicit leaves and
// connection loss. suffix distinguishes the departure system message.
func (e *Engine) leaveRoom(roomID, playerID, suffix string) {
	room, removed, index, empty := e.registry.Leave(roomID, playerID)
	if room == nil || removed == nil {
		return
	}
	e.directory.Unbind(playerID)

	if empty {
		room.cancelAllTimers()
		e.registry.Remove(room.ID)
		log.Info().Str("room", room.ID).Msg("room deleted, empty")
		return
	}

	wasDrawer := removed.IsDrawing
	if room.Game.CurrentDrawerIndex >= 0 && index <= room.Game.CurrentDrawerIndex {
		room.Game.CurrentDrawerIndex--
	}

	log.Info().Str("room", room.ID).Str("player", removed.Name).Int("players", len(room.Players)).Msg("player left")
	e.broadcastRoster(room)
	e.appendMessage(room, newSystemMessage(removed.Name+suffix))

	if !room.Game.IsPlaying {
		return
	}
	if len(room.Players) < 2 {
		e.endGame(room)
		return
	}
	if wasDrawer {
		e.endTurn(room)
		return
	}
	if turnActive(room) && room.everyoneGuessed() {
		e.endTurn(room)
	}
}

func (e *Engine) disconnect(c Conn) {
	playerID, ok := e.sessions[c]
	delete(e.sessions, c)
	if !ok || playerID == "" {
		return
	}
	// A reconnect may already have replaced this connection; removing the
	// player then would evict the live session.
	if !e.directory.Bound(playerID, c) {
		return
	}
	if room, ok := e.registry.RoomOf(playerID); ok {
		e.leaveRoom(room.ID, playerID, " disconnected")
		return
	}
	e.directory.Unbind(playerID)
}

// --- fan-out ---

func (e *Engine) sendToConn(c Conn, event string, data any) {
	frame, err := protocol.Encode(event, data)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("encode failed")
		return
	}
	if err := c.Send(frame); err != nil {
		log.Debug().Err(err).Str("event", event).Msg("send skipped, connection not live")
	}
}

// sendTo addresses one player through the directory; a stale or missing
// connection is silently skipped.
func (e *Engine) sendTo(playerID, event string, data any) {
	c, ok := e.directory.Lookup(playerID)
	if !ok {
		return
	}
	e.sendToConn(c, event, data)
}

func (e *Engine) sendFrame(playerID string, frame []byte) {
	c, ok := e.directory.Lookup(playerID)
	if !ok {
		return
	}
	if err := c.Send(frame); err != nil {
		log.Debug().Err(err).Str("player", playerID).Msg("send skipped, connection not live")
	}
}

func (e *Engine) broadcast(r *Room, event string, data any) {
	frame, err := protocol.Encode(event, data)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("encode failed")
		return
	}
	for _, p := range r.Players {
		e.sendFrame(p.ID, frame)
	}
}

func (e *Engine) broadcastRoster(r *Room) {
	e.broadcast(r, protocol.EventPlayerJoined, protocol.PlayerJoined{Players: r.roster()})
}

func (e *Engine) sendError(c Conn, err error) {
	e.sendToConn(c, protocol.EventError, protocol.ErrorPayload{Message: err.Error()})
}

// appendMessage records a feed entry and fans it out to the room.
func (e *Engine) appendMessage(r *Room, msg protocol.Message) {
	r.log.Append(msg)
	e.broadcast(r, protocol.EventNewMessage, msg)
}
