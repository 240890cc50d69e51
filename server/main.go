package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/gorilla/websocket"

	"snakeos/portfolio"
)

// ipRateLimiter tracks last connection time per IP to prevent abuse
type ipRateLimiter struct {
	mu       sync.Mutex
	times    map[string]time.Time
	cooldown time.Duration
	now      func() time.Time
}

func newIPRateLimiter(cooldown time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		times:    make(map[string]time.Time),
		cooldown: cooldown,
		now:      time.Now,
	}
}

// sweep drops stale entries every minute until ctx ends.
func (rl *ipRateLimiter) sweep(ctx context.Context) {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := rl.now().Add(-rl.cooldown)
			for ip, t := range rl.times {
				if t.Before(cutoff) {
					delete(rl.times, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// allow returns true if this IP can connect, and records the attempt.
// A zero cooldown disables the check.
func (rl *ipRateLimiter) allow(ip string) bool {
	if rl.cooldown <= 0 {
		return true
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	if last, ok := rl.times[ip]; ok && now.Sub(last) < rl.cooldown {
		return false
	}
	rl.times[ip] = now
	return true
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development; tighten in production
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Enable per-message deflate compression (RFC 7692)
	EnableCompression: true,
}

// sendErrorAndClose sends an error message via WebSocket then closes the connection
func sendErrorAndClose(ws *websocket.Conn, msg string) {
	data, _ := json.Marshal(ErrorMsg{Type: MsgError, Message: msg})
	_ = ws.WriteMessage(websocket.TextMessage, data)
	ws.Close()
}

// clientIP extracts client IP (handles X-Forwarded-For for reverse proxies)
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// server bundles what the handlers share.
type server struct {
	settings Settings
	conns    *ConnManager
	limiter  *ipRateLimiter
	ctx      context.Context // cancelled on shutdown; parents every game loop
}

func newServer(ctx context.Context, settings Settings) *server {
	return &server{
		settings: settings,
		conns:    NewConnManager(),
		limiter:  newIPRateLimiter(settings.IPCooldown),
		ctx:      ctx,
	}
}

// routes builds the chi router: socket, JSON API and the static client.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get(WebSocketPath, s.handleWebSocket)
	r.Route("/api", func(r chi.Router) {
		r.Get("/sections", handleSections)
		r.Post("/hire", handleHire(s.settings.SubmitDelay))
		r.Get("/contact/qr.png", handleContactQR)
	})

	fileServer := http.FileServer(http.Dir(s.settings.StaticDir))
	r.Handle("/*", fileServer)
	return r
}

func (s *server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	// Check limits after upgrade so client can receive error messages
	if !s.limiter.allow(ip) {
		sendErrorAndClose(ws, "Too many connections. Please wait a moment.")
		return
	}

	// Enable per-message write compression at best-speed level
	ws.EnableWriteCompression(true)

	conn := NewConn(ws, ip)
	if !s.conns.Add(conn, s.settings.MaxSessions) {
		sendErrorAndClose(ws, "Server full. Please try again later.")
		return
	}
	log.Printf("player connected: %s (%s)", conn.ID, ip)

	cfg := s.settings.GameConfig(portfolio.Count())
	loop := conn.Bind(cfg, s.settings.TickRate)

	// Send welcome immediately so client knows its ID and how to paint
	_ = conn.Send(WelcomeMsg{
		Type:     MsgWelcome,
		ID:       conn.ID,
		Sections: cfg.Sections,
		Owner:    portfolio.Owner,
		Theme:    defaultTheme(cfg),
	})

	// The loop renders the menu until the client sends start.
	loop.Start(s.ctx)

	onDisconnect := func(c *Conn) {
		s.conns.Remove(c.ID)
		log.Printf("player disconnected: %s", c.ID)
	}

	// Blocking read loop, runs until client disconnects
	conn.ReadLoop(s.ctx, onDisconnect)
}

func main() {
	settings, err := LoadSettings()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := newServer(ctx, settings)
	go srv.limiter.sweep(ctx)

	httpServer := &http.Server{
		Addr:    settings.Addr(),
		Handler: srv.routes(),
	}

	go func() {
		<-ctx.Done()
		log.Printf("shutting down")
		srv.conns.CloseAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	log.Printf("server listening on %s (tick=%d/s, static=%s)", settings.Addr(), settings.TickRate, settings.StaticDir)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
