package pose

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/fruit-catch/internal/catch"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	maxFrameSize = 16 << 10
)

// BridgeConfig holds configuration for the pose bridge server.
type BridgeConfig struct {
	// Address is the host:port to listen on (e.g., ":8765").
	Address string

	// MinConfidence and StableFrames configure each connection's Stabilizer.
	MinConfidence float64
	StableFrames  int

	// Labels maps classifier class names to zone labels.
	Labels LabelMap

	// AllowedOrigins restricts browser origins. Empty allows all.
	AllowedOrigins []string
}

// Frame is one message from a pose client. Either Predictions carries a
// raw classifier frame, or Zone names a zone directly.
type Frame struct {
	Predictions []Prediction `json:"predictions,omitempty"`
	Zone        string       `json:"zone,omitempty"`
}

// Snapshot is the engine view served on /state.
type Snapshot struct {
	State catch.State `json:"state"`
	Items []ItemView  `json:"items"`
}

// ItemView is the JSON form of a falling item.
type ItemView struct {
	ID       uint64     `json:"id"`
	Kind     string     `json:"kind"`
	Glyph    string     `json:"glyph"`
	Score    int        `json:"score"`
	Bomb     bool       `json:"bomb"`
	Zone     catch.Zone `json:"zone"`
	Progress float64    `json:"progress"`
}

// Bridge accepts classifier frames over websocket and delivers
// stabilized zone labels on a channel. It also serves the latest
// published engine snapshot so a browser can render the game.
type Bridge struct {
	cfg      BridgeConfig
	logger   *log.Logger
	labels   chan string
	router   chi.Router
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	snapshot Snapshot
}

// NewBridge creates a pose bridge. A nil logger discards output.
func NewBridge(cfg BridgeConfig, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Labels == nil {
		cfg.Labels = DefaultLabelMap()
	}

	b := &Bridge{
		cfg:    cfg,
		logger: logger,
		labels: make(chan string, 32),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return originAllowed(cfg.AllowedOrigins, r) },
		},
		snapshot: Snapshot{Items: []ItemView{}},
	}
	b.router = b.routes()
	return b
}

func (b *Bridge) routes() chi.Router {
	r := chi.NewRouter()

	origins := b.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/state", b.handleState)
	r.Get("/pose", b.handlePose)
	return r
}

// Handler returns the bridge's HTTP handler.
func (b *Bridge) Handler() http.Handler {
	return b.router
}

// Labels delivers stabilized zone labels in arrival order.
func (b *Bridge) Labels() <-chan string {
	return b.labels
}

// Publish replaces the snapshot served on /state. Safe for concurrent use.
func (b *Bridge) Publish(state catch.State, items []catch.Item) {
	views := make([]ItemView, len(items))
	for i, it := range items {
		views[i] = ItemView{
			ID:       it.ID,
			Kind:     it.Kind.ID,
			Glyph:    it.Kind.Glyph,
			Score:    it.Kind.Score,
			Bomb:     it.Kind.Bomb,
			Zone:     it.Zone,
			Progress: it.Progress,
		}
	}

	b.mu.Lock()
	b.snapshot = Snapshot{State: state, Items: views}
	b.mu.Unlock()
}

// ListenAndServe binds the configured address and serves until ctx is
// cancelled.
func (b *Bridge) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", b.cfg.Address)
	if err != nil {
		return fmt.Errorf("pose bridge: %w", err)
	}
	return b.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (b *Bridge) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           b.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		b.logger.Info("pose bridge listening", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("pose bridge: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		b.logger.Info("pose bridge shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (b *Bridge) handleState(w http.ResponseWriter, _ *http.Request) {
	b.mu.RLock()
	snap := b.snapshot
	b.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		b.logger.Warn("encode state", "error", err)
	}
}

func (b *Bridge) handlePose(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		b.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	id := uuid.NewString()
	b.logger.Info("pose client connected", "id", id, "remote", r.RemoteAddr)
	defer func() {
		conn.Close()
		b.logger.Info("pose client disconnected", "id", id)
	}()

	done := make(chan struct{})
	defer close(done)
	go b.keepAlive(conn, done)

	b.readFrames(conn, id)
}

// readFrames decodes frames until the connection closes. Malformed
// frames are logged and skipped.
func (b *Bridge) readFrames(conn *websocket.Conn, id string) {
	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	stab := NewStabilizer(b.cfg.MinConfidence, b.cfg.StableFrames)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				b.logger.Warn("pose client read error", "id", id, "error", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			b.logger.Debug("malformed pose frame", "id", id, "error", err)
			continue
		}

		if f.Zone != "" {
			b.deliver(id, f.Zone)
			continue
		}
		if label, ok := stab.Feed(f.Predictions); ok {
			b.deliver(id, b.cfg.Labels.Zone(label))
		}
	}
}

func (b *Bridge) deliver(id, zone string) {
	select {
	case b.labels <- zone:
		b.logger.Debug("pose", "id", id, "zone", zone)
	default:
		b.logger.Warn("pose queue full, dropping label", "id", id, "zone", zone)
	}
}

func (b *Bridge) keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(10 * time.Second)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

func originAllowed(allowed []string, r *http.Request) bool {
	if len(allowed) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}
