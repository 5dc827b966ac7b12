package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/emiliopalmerini/brandkit/internal/adapters/prometheus"
	"github.com/emiliopalmerini/brandkit/internal/branding"
)

const writeWait = time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// previewConn wraps a WebSocket connection with its own mutex for thread-safe writes.
type previewConn struct {
	conn   *websocket.Conn
	tenant string
	mu     sync.Mutex
}

// PreviewHub tracks live preview connections per tenant for broadcasting.
type PreviewHub struct {
	mu          sync.RWMutex
	connections map[*websocket.Conn]*previewConn
	metrics     *prometheus.Metrics
}

func NewPreviewHub(metrics *prometheus.Metrics) *PreviewHub {
	return &PreviewHub{
		connections: make(map[*websocket.Conn]*previewConn),
		metrics:     metrics,
	}
}

// Add registers a connection for tenant.
func (h *PreviewHub) Add(conn *websocket.Conn, tenant string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[conn]; ok {
		return
	}
	h.connections[conn] = &previewConn{conn: conn, tenant: tenant}
	h.metrics.PreviewClients.Inc()
}

// Remove drops a connection. Removing twice is a no-op.
func (h *PreviewHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[conn]; !ok {
		return
	}
	delete(h.connections, conn)
	h.metrics.PreviewClients.Dec()
}

// Count is the number of open connections.
func (h *PreviewHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Broadcast sends message to every connection of tenant and returns how many
// received it. Dead connections are dropped.
func (h *PreviewHub) Broadcast(tenant string, message any) int {
	h.mu.RLock()
	conns := make([]*previewConn, 0, len(h.connections))
	for _, pc := range h.connections {
		if pc.tenant == tenant {
			conns = append(conns, pc)
		}
	}
	h.mu.RUnlock()

	sent := 0
	for _, pc := range conns {
		pc.mu.Lock()
		err := pc.conn.WriteJSON(message)
		pc.mu.Unlock()

		if err != nil {
			h.Remove(pc.conn)
			_ = pc.conn.Close()
			continue
		}
		sent++
	}
	if sent > 0 {
		h.metrics.Broadcasts.Inc()
	}
	return sent
}

// WriteJSON safely writes to a single connection.
func (h *PreviewHub) WriteJSON(conn *websocket.Conn, message any) error {
	h.mu.RLock()
	pc, exists := h.connections[conn]
	h.mu.RUnlock()

	if !exists {
		return conn.WriteJSON(message)
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.conn.WriteJSON(message)
}

// CloseAll closes and forgets every connection.
func (h *PreviewHub) CloseAll() {
	h.mu.Lock()
	conns := h.connections
	h.connections = make(map[*websocket.Conn]*previewConn)
	h.mu.Unlock()

	for _, pc := range conns {
		h.metrics.PreviewClients.Dec()
		pc.mu.Lock()
		_ = pc.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), time.Now().Add(writeWait))
		_ = pc.conn.Close()
		pc.mu.Unlock()
	}
}

type brandingMessage struct {
	Type         string `json:"type"`
	TenantID     string `json:"tenantId"`
	RevisionID   string `json:"revisionId,omitempty"`
	PrimaryColor string `json:"primaryColor"`
	CSS          string `json:"css"`
}

func newBrandingMessage(kind, tenant, revision, color, css string) brandingMessage {
	return brandingMessage{
		Type:         kind,
		TenantID:     tenant,
		RevisionID:   revision,
		PrimaryColor: color,
		CSS:          css,
	}
}

func (s *Server) broadcastUpdate(u branding.Update) {
	msg := newBrandingMessage("branding", u.TenantID, u.RevisionID, u.Palette.Base.Hex(), u.Palette.Stylesheet(".dark"))
	n := s.hub.Broadcast(u.TenantID, msg)
	s.logger.Debug("broadcast branding update",
		zap.String("tenant", u.TenantID),
		zap.String("revision", u.RevisionID),
		zap.Int("clients", n))
}

func (s *Server) handleBrandingWS(w http.ResponseWriter, r *http.Request) {
	tenant := s.tenantFrom(r)
	snap, err := s.branding.Current(r.Context(), tenant)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	s.hub.Add(conn, tenant)
	defer func() {
		s.hub.Remove(conn)
		_ = conn.Close()
	}()

	hello := newBrandingMessage("hello", tenant, "", snap.Palette.Base.Hex(), snap.Palette.Stylesheet(".dark"))
	if err := s.hub.WriteJSON(conn, hello); err != nil {
		return
	}

	// Clients only listen; reading keeps control frames flowing and detects
	// the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
