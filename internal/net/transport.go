package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// FeedPath is where the command feed listens.
	FeedPath    = "/feed"
	// MaxSequence caps the runes accepted in one message.
	MaxSequence = 256

	readLimit    = 4 * MaxSequence
	writeTimeout = 5 * time.Second
)

var (
	ErrEmptySequence = errors.New("empty sequence")
	ErrLongSequence  = fmt.Errorf("sequence longer than %d commands", MaxSequence)
)

// Reply is sent back for every message a peer writes.
type Reply struct {
	Type     string `json:"type"`
	PeerID   string `json:"peer_id"`
	Commands int    `json:"commands,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Peer is a connected feed client.
type Peer struct {
	ID   string
	Addr string
	conn *websocket.Conn
}

// PeerManager tracks the open feed connections.
type PeerManager struct {
	peers map[string]*Peer
	mu    sync.RWMutex
}

// NewPeerManager creates a new manager.
func NewPeerManager() *PeerManager {
	return &PeerManager{
		peers: make(map[string]*Peer),
	}
}

func (pm *PeerManager) Add(peer *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.peers[peer.ID] = peer
}

func (pm *PeerManager) Remove(id string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.peers, id)
}

// Len returns the number of connected peers.
func (pm *PeerManager) Len() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// CloseAll drops every connection.
func (pm *PeerManager) CloseAll() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	for id, p := range pm.peers {
		p.conn.Close()
		delete(pm.peers, id)
	}
}

// Server accepts command sequences over websocket and hands them to
// OnSequence, which returns how many commands it scheduled.
type Server struct {
	OnSequence func(peerID, seq string) int

	peers    *PeerManager
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewServer returns a feed server. onSequence must not block.
func NewServer(onSequence func(peerID, seq string) int, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		OnSequence: onSequence,
		peers:      NewPeerManager(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The feed is meant for other machines on the LAN.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Peers returns the connection manager.
func (s *Server) Peers() *PeerManager { return s.peers }

// Handler returns an http.Handler serving FeedPath.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(FeedPath, s.serveFeed)
	return mux
}

// ListenAndServe serves the feed on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("feed listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves the feed on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.peers.CloseAll()
		srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("feed listening", "addr", ln.Addr().String(), "path", FeedPath)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("feed serve: %w", err)
	}
	return nil
}

func (s *Server) serveFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("feed upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	peer := &Peer{ID: uuid.NewString(), Addr: r.RemoteAddr, conn: conn}
	s.peers.Add(peer)
	s.logger.Info("feed peer connected", "peer", peer.ID, "remote", peer.Addr)

	defer func() {
		s.peers.Remove(peer.ID)
		conn.Close()
		s.logger.Info("feed peer disconnected", "peer", peer.ID)
	}()

	conn.SetReadLimit(readLimit)
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("feed read failed", "peer", peer.ID, "err", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		reply := s.handle(peer.ID, string(data))
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(reply); err != nil {
			s.logger.Warn("feed reply failed", "peer", peer.ID, "err", err)
			return
		}
	}
}

func (s *Server) handle(peerID, raw string) Reply {
	seq, err := CleanSequence(raw)
	if err != nil {
		s.logger.Warn("feed sequence rejected", "peer", peerID, "err", err)
		return Reply{Type: "error", PeerID: peerID, Error: err.Error()}
	}
	n := 0
	if s.OnSequence != nil {
		n = s.OnSequence(peerID, seq)
	}
	s.logger.Debug("feed sequence", "peer", peerID, "sequence", seq, "commands", n)
	return Reply{Type: "ack", PeerID: peerID, Commands: n}
}

// CleanSequence trims surrounding whitespace and checks the length of a
// remote sequence.
func CleanSequence(raw string) (string, error) {
	seq := strings.TrimSpace(raw)
	switch n := utf8.RuneCountInString(seq); {
	case n == 0:
		return "", ErrEmptySequence
	case n > MaxSequence:
		return "", ErrLongSequence
	}
	return seq, nil
}

// Send dials the feed at addr (host:port), submits seq and waits for the
// reply. It returns how many commands the board scheduled.
func Send(ctx context.Context, addr, seq string) (int, error) {
	url := "ws://" + addr + FeedPath
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return 0, fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
		conn.SetWriteDeadline(deadline)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(seq)); err != nil {
		return 0, fmt.Errorf("send sequence: %w", err)
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		return 0, fmt.Errorf("read reply: %w", err)
	}
	var reply Reply
	if err := json.Unmarshal(data, &reply); err != nil {
		return 0, fmt.Errorf("decode reply: %w", err)
	}
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

	if reply.Type == "error" {
		return 0, fmt.Errorf("board rejected sequence: %s", reply.Error)
	}
	return reply.Commands, nil
}
