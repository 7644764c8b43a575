package net

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/rectalogic/terp/internal/logging"
)

// MaxProjectSize bounds a project pushed to a player.
const MaxProjectSize = 64 << 20

// ProjectPath is the websocket endpoint a Host serves.
const ProjectPath = "/project"

type peer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (p *peer) send(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.WriteMessage(websocket.BinaryMessage, data)
}

// Host pushes the current project to every connected player, and again
// whenever it is republished.
type Host struct {
	upgrader websocket.Upgrader
	peers    map[*peer]struct{}
	project  []byte
	mu       sync.RWMutex
}

// NewHost creates a host with nothing published yet.
func NewHost() *Host {
	return &Host{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[*peer]struct{}),
	}
}

// Publish replaces the shared project and sends it to all players.
func (h *Host) Publish(data []byte) {
	h.mu.Lock()
	h.project = data
	peers := make([]*peer, 0, len(h.peers))
	for p := range h.peers {
		peers = append(peers, p)
	}
	h.mu.Unlock()

	for _, p := range peers {
		if err := p.send(data); err != nil {
			logging.L().Warn("send project", "peer", p.conn.RemoteAddr().String(), "err", err)
		}
	}
}

// Peers returns the number of connected players.
func (h *Host) Peers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

func (h *Host) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.L().Warn("upgrade", "err", err)
		return
	}
	p := &peer{conn: conn}
	addr := conn.RemoteAddr().String()

	// p.mu is taken before the peer becomes visible to Publish, so the
	// initial project always goes out ahead of any newer one.
	p.mu.Lock()
	h.mu.Lock()
	h.peers[p] = struct{}{}
	project := h.project
	h.mu.Unlock()
	logging.L().Info("player connected", "addr", addr)

	defer func() {
		h.mu.Lock()
		delete(h.peers, p)
		h.mu.Unlock()
		conn.Close()
		logging.L().Info("player disconnected", "addr", addr)
	}()

	err = nil
	if project != nil {
		err = p.conn.WriteMessage(websocket.BinaryMessage, project)
	}
	p.mu.Unlock()
	if err != nil {
		return
	}
	// Players never send anything; reading only notices the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Join connects to the host at addr ("host:port") and calls loaded with
// every project it pushes, until ctx is done or the host goes away.
func Join(ctx context.Context, addr string, loaded func([]byte)) error {
	url := fmt.Sprintf("ws://%s%s", addr, ProjectPath)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("join %s: %w", addr, err)
	}
	defer conn.Close()
	conn.SetReadLimit(MaxProjectSize)

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	logging.L().Info("joined host", "addr", addr)
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read from %s: %w", addr, err)
		}
		if kind != websocket.BinaryMessage {
			continue
		}
		loaded(data)
	}
}
