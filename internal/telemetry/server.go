// Package telemetry exposes an optional, single-client debug WebSocket
// stream of RenderSnapshots, plus an optional on-disk capture sink. Neither
// is required for the simulation to run; both exist purely to let a
// developer (or a browser debug overlay) observe live frames.
package telemetry

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"drivesim/internal/logging"
	"drivesim/internal/snapshot"
)

const (
	writeWait        = 5 * time.Second
	pongWaitMultiple = 3
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server pushes one RenderSnapshot per frame to a single connected debug
// client. Grounded on the broker's websocket upgrade/ping/pong keepalive
// loop in main.go, collapsed from a fan-out client registry (this host
// serves exactly one browser tab) to a single guarded connection slot.
type Server struct {
	logger       *logging.Logger
	planner      *BudgetPlanner
	pingInterval time.Duration
	limiter      *SlidingWindowLimiter

	mu       sync.Mutex
	conn     *websocket.Conn
	sequence uint64
}

// Option configures a Server at construction time.
type Option func(*Server)

// WithLogger overrides the package-level logger used for connection events.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithPingInterval overrides the keepalive ping cadence.
func WithPingInterval(interval time.Duration) Option {
	return func(s *Server) { s.pingInterval = interval }
}

// WithConnectLimiter installs a SlidingWindowLimiter gating new debug-client
// connections.
func WithConnectLimiter(limiter *SlidingWindowLimiter) Option {
	return func(s *Server) { s.limiter = limiter }
}

// NewServer constructs a Server that budgets outbound frames to maxPayloadBytes.
func NewServer(maxPayloadBytes int, opts ...Option) *Server {
	s := &Server{
		logger:       logging.L(),
		planner:      NewBudgetPlanner(maxPayloadBytes),
		pingInterval: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler to mount at the debug WebSocket path.
// Only one client may be connected at a time; a second connection attempt
// is refused with 409 Conflict.
func (s *Server) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			http.Error(w, "too many connection attempts", http.StatusTooManyRequests)
			return
		}

		s.mu.Lock()
		if s.conn != nil {
			s.mu.Unlock()
			http.Error(w, "a debug client is already connected", http.StatusConflict)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.mu.Unlock()
			s.logger.Warn("telemetry upgrade failed", logging.Error(err))
			return
		}
		s.conn = conn
		s.mu.Unlock()

		waitDuration := pongWaitMultiple * s.pingInterval
		_ = conn.SetReadDeadline(time.Now().Add(waitDuration))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(waitDuration))
		})

		go s.drainReads(conn)
		go s.pingLoop(conn, waitDuration)
	}
}

// drainReads discards inbound frames (the debug client is read-only from
// this server's perspective) until the connection closes, releasing the
// single connection slot.
func (s *Server) drainReads(conn *websocket.Conn) {
	defer s.release(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// pingLoop sends periodic keepalive pings until the connection closes.
func (s *Server) pingLoop(conn *websocket.Conn, waitDuration time.Duration) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()
	for range ticker.C {
		s.mu.Lock()
		live := s.conn == conn
		s.mu.Unlock()
		if !live {
			return
		}
		if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
			s.release(conn)
			return
		}
	}
}

func (s *Server) release(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
	_ = conn.Close()
}

// Publish encodes snap, budgets it to the configured payload limit, and
// pushes it to the connected debug client, if any. With no client it only
// plans the payload; a write to a slow client is bounded by writeWait.
func (s *Server) Publish(snap snapshot.RenderSnapshot) BudgetResult {
	s.mu.Lock()
	conn := s.conn
	s.sequence++
	seq := s.sequence
	s.mu.Unlock()

	result := s.planner.Plan(seq, snap)
	if conn == nil {
		return result
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, result.Payload); err != nil {
		s.logger.Warn("telemetry write failed", logging.Error(err))
		s.release(conn)
	}
	return result
}
