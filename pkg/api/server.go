//nolint:revive // api is a standard package name for API servers
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/jwoglom/glycemiabot/pkg/dosage"
	"github.com/jwoglom/glycemiabot/pkg/gateway"
	"github.com/jwoglom/glycemiabot/pkg/reply"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// ErrConnectionClosed is returned when replying on a chat whose websocket is gone
var ErrConnectionClosed = errors.New("websocket connection closed")

// StatsProvider reports runtime statistics
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server is a WebSocket chat gateway. Every connection is one chat: text
// frames carry inbound messages and replies are pushed back as events.
type Server struct {
	handler gateway.IncomingMessageHandler
	stats   StatsProvider
	mux     *http.ServeMux

	reminderDelay time.Duration
}

// ChatCommand is a frame received from a websocket client
type ChatCommand struct {
	Command string `json:"command"`
	Body    string `json:"body,omitempty"`
}

// ChatEvent is a frame sent to a websocket client
type ChatEvent struct {
	Type    string                 `json:"type"`
	Body    string                 `json:"body,omitempty"`
	Message string                 `json:"message,omitempty"`
	Stats   map[string]interface{} `json:"stats,omitempty"`
}

// Constants is the dosing configuration exposed by the API
type Constants struct {
	IdealGlycemia  int    `json:"idealGlycemia"`
	UnitsPerStep   int    `json:"unitsPerStep"`
	LowThreshold   int    `json:"lowThreshold"`
	DoseThreshold  int    `json:"doseThreshold"`
	ReminderDelay  string `json:"reminderDelay"`
	BreakfastUnits int    `json:"breakfastUnits"`
	LunchUnits     int    `json:"lunchUnits"`
	BedtimeUnits   int    `json:"bedtimeUnits"`
}

// New creates a new API server delivering messages to handler
func New(handler gateway.IncomingMessageHandler, reminderDelay time.Duration) *Server {
	s := &Server{
		handler:       handler,
		mux:           http.NewServeMux(),
		reminderDelay: reminderDelay,
	}
	s.setupRoutes()
	return s
}

// SetStatsProvider sets the source for the stats endpoint
func (s *Server) SetStatsProvider(stats StatsProvider) {
	s.stats = stats
}

// Handler returns the HTTP handler serving all routes
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves on addr until ctx is done
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warnf("HTTP server shutdown failed: %v", err)
		}
	}()

	log.Infof("Glycemia bot API listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if _, err := fmt.Fprintf(w, "Glycemia Bot API - Connect via WebSocket at /ws\n\n  send {\"command\":\"message\",\"body\":\"180 jejum\"}\n\nAPI:\n  GET    /api/constants\n  GET    /api/stats"); err != nil {
			log.Warnf("Failed to write response: %v", err)
		}
	})
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/api/constants", s.handleConstantsAPI)
	s.mux.HandleFunc("/api/stats", s.handleStatsAPI)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	log.Infof("WebSocket connection from: %s", r.RemoteAddr)

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("WebSocket upgrade failed: %v", err)
		return
	}

	chat := newChatConn(ws)
	s.reader(chat)
}

func (s *Server) reader(chat *chatConn) {
	defer chat.close()

	for {
		_, p, err := chat.conn.ReadMessage()
		if err != nil {
			log.Infof("WebSocket read error: %v", err)
			return
		}
		log.Debugf("Received WebSocket message: %s", string(p))
		s.handleCommand(chat, p)
	}
}

func (s *Server) handleCommand(chat *chatConn, data []byte) {
	var cmd ChatCommand
	if err := json.Unmarshal(data, &cmd); err != nil {
		log.Errorf("Failed to parse command: %v", err)
		chat.sendEvent(ChatEvent{Type: "error", Message: "invalid JSON frame"})
		return
	}

	switch cmd.Command {
	case "message":
		s.handler.OnIncomingMessage(cmd.Body, chat)
	case "getStats":
		chat.sendEvent(ChatEvent{Type: "stats", Stats: s.currentStats()})
	default:
		log.Warnf("Unknown command: %q", cmd.Command)
		chat.sendEvent(ChatEvent{Type: "error", Message: fmt.Sprintf("unknown command: %s", cmd.Command)})
	}
}

func (s *Server) currentStats() map[string]interface{} {
	if s.stats == nil {
		return map[string]interface{}{}
	}
	return s.stats.GetStats()
}

// handleConstantsAPI returns the dosing constants
func (s *Server) handleConstantsAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Constants{
		IdealGlycemia:  dosage.IdealGlycemia,
		UnitsPerStep:   dosage.UnitsPerStep,
		LowThreshold:   dosage.LowThreshold,
		DoseThreshold:  dosage.DoseThreshold,
		ReminderDelay:  s.reminderDelay.String(),
		BreakfastUnits: reply.BreakfastUnits,
		LunchUnits:     reply.LunchUnits,
		BedtimeUnits:   reply.BedtimeUnits,
	}); err != nil {
		log.Errorf("Failed to encode constants: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// handleStatsAPI returns runtime statistics
func (s *Server) handleStatsAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.currentStats()); err != nil {
		log.Errorf("Failed to encode stats: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// chatConn is the reply sink for one websocket client
type chatConn struct {
	conn   *websocket.Conn
	mtx    sync.Mutex
	closed bool
}

func newChatConn(conn *websocket.Conn) *chatConn {
	return &chatConn{conn: conn}
}

// Reply pushes a reply event. Writes are serialized because reminders fire
// from timer goroutines.
func (c *chatConn) Reply(text string) error {
	return c.sendEvent(ChatEvent{Type: "reply", Body: text})
}

func (c *chatConn) sendEvent(event ChatEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		log.Errorf("Failed to marshal event: %v", err)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.closed {
		return ErrConnectionClosed
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Errorf("Failed to send websocket message: %v", err)
		return fmt.Errorf("failed to send websocket message: %w", err)
	}
	return nil
}

func (c *chatConn) close() {
	c.mtx.Lock()
	c.closed = true
	c.mtx.Unlock()

	if err := c.conn.Close(); err != nil {
		log.Debugf("Error closing websocket: %v", err)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}
