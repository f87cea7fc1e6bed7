package game

// Conn is the transport surface the game addresses. Send must never block
// the engine loop: implementations enqueue and report a stale or saturated
// connection through the returned error, which callers treat as a silent
// skip.
type Conn interface {
	Send(frame []byte) error
	Close(reason string)
}

// ConnectionDirectory maps a stable player identity to its current live
// connection. Rebinding an id on reconnect overwrites the mapping; the
// replaced connection is stale and never addressed again.
//
// The directory is touched only from the engine loop and needs no locking.
type ConnectionDirectory struct {
	conns map[string]Conn
}

func NewConnectionDirectory() *ConnectionDirectory {
	return &ConnectionDirectory{conns: make(map[string]Conn)}
}

func (d *ConnectionDirectory) Bind(playerID string, c Conn) {
	d.conns[playerID] = c
}

func (d *ConnectionDirectory) Lookup(playerID string) (Conn, bool) {
	c, ok := d.conns[playerID]
	return c, ok
}

func (d *ConnectionDirectory) Unbind(playerID string) {
	delete(d.conns, playerID)
}

// Bound reports whether c is still the live connection for playerID. A
// disconnect of a replaced connection must not unbind its successor.
func (d *ConnectionDirectory) Bound(playerID string, c Conn) bool {
	return d.conns[playerID] == c
}

func (d *ConnectionDirectory) Len() int {
	return len(d.conns)
}
