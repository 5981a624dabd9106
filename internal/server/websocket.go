package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// wsHub tracks the broadcast group of each room. Group membership
// mirrors roster membership: a connection is added when its player
// joins a room and removed on disconnect.
type wsHub struct {
	mu     sync.Mutex
	groups map[string]map[*websocket.Conn]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{
		groups: make(map[string]map[*websocket.Conn]struct{}),
	}
}

func (h *wsHub) Add(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[code]
	if group == nil {
		group = make(map[*websocket.Conn]struct{})
		h.groups[code] = group
	}
	group[conn] = struct{}{}
}

func (h *wsHub) Remove(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[code]
	if group == nil {
		return
	}
	delete(group, conn)
	if len(group) == 0 {
		delete(h.groups, code)
	}
}

func (h *wsHub) Send(conn *websocket.Conn, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, data)
}

func (h *wsHub) Broadcast(code string, payload any) {
	h.mu.Lock()
	group := h.groups[code]
	conns := make([]*websocket.Conn, 0, len(group))
	for conn := range group {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(code, conn)
		}
	}
}

// client is one websocket connection. The id doubles as the player
// identity in whichever room the connection joins.
type client struct {
	id   string
	conn *websocket.Conn
	room string
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{id: uuid.NewString(), conn: conn}
	log.Printf("ws connected conn_id=%s remote=%s", c.id, r.RemoteAddr)
	go s.readWS(c)
}

func (s *Server) readWS(c *client) {
	defer s.handleDisconnect(c)
	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			log.Printf("ws disconnected conn_id=%s error=%v", c.id, err)
			return
		}
		s.dispatch(c, payload)
	}
}

func (s *Server) dispatch(c *client, payload []byte) {
	var envelope eventEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return
	}
	switch envelope.Type {
	case evCreateGame:
		s.handleCreateGame(c, envelope.Data)
	case evJoinGame:
		s.handleJoinGame(c, envelope.Data)
	case evStartRound:
		s.handleStartRound(c, envelope.Data)
	case evDraft:
		s.handleDraft(c, envelope.Data)
	case evSubmitAnswers:
		s.handleSubmitAnswers(c, envelope.Data)
	case evForceReview:
		s.handleForceReview(c, envelope.Data)
	case evSetReviewIndex:
		s.handleSetReviewIndex(c, envelope.Data)
	case evToggleValidation:
		s.handleToggleValidation(c, envelope.Data)
	case evEndRound:
		s.handleEndRound(c, envelope.Data)
	}
}
