package server

import (
	"encoding/json"
	"errors"
	"log"
	"slices"
	"strings"
	"time"
)

// The session gateway: resolves each inbound event to a (connection,
// room) pair, runs the state machine under the store lock, and
// broadcasts the resulting views. Per the failure model, only the two
// join-time errors ever reach a client; everything else that is
// rejected stays silent.

var errAlreadyStarted = errors.New("game already started")

func (s *Server) handleCreateGame(c *client, data json.RawMessage) {
	var req createGameRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	arbiterPlays := true
	if req.ArbiterPlays != nil {
		arbiterPlays = *req.ArbiterPlays
	}
	categories := s.sanitizeCategories(req.Categories)
	if len(categories) == 0 {
		categories = slices.Clone(s.categories.Defaults)
	}
	room := s.store.CreateRoom(RoomConfig{
		Categories:   categories,
		ArbiterPlays: arbiterPlays,
		EndMode:      req.EndMode,
		RandomThemes: req.RandomThemes,
	})

	var ack joinAck
	var view RoomView
	if _, err := s.store.UpdateRoom(room.Code, func(room *Room) error {
		player := room.join(c.id, req.Name, s.cfg.MaxNameLength, time.Now())
		ack = joinAck{Code: room.Code, PlayerID: player.ID, Arbiter: room.isArbiter(player.ID)}
		view = publicView(room)
		return nil
	}); err != nil {
		return
	}

	s.leaveCurrentRoom(c)
	c.room = room.Code
	s.ws.Add(room.Code, c.conn)
	log.Printf("room created code=%s conn_id=%s end_mode=%s arbiter_plays=%v random_themes=%v",
		room.Code, c.id, room.EndMode, room.ArbiterPlays, room.RandomThemes)

	s.ws.Send(c.conn, newEvent(evCreated, ack))
	s.ws.Broadcast(room.Code, newEvent(evLobbyUpdate, view))
}

func (s *Server) handleJoinGame(c *client, data json.RawMessage) {
	var req joinGameRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}
	room, ok := s.store.GetRoom(req.Code)
	if !ok {
		s.ws.Send(c.conn, newEvent(evErrorMsg, errorMessage{Message: msgInvalidCode}))
		return
	}

	var ack joinAck
	var view RoomView
	_, err := s.store.UpdateRoom(room.Code, func(room *Room) error {
		if room.findPlayer(c.id) == nil && room.Status != statusLobby {
			return errAlreadyStarted
		}
		player := room.join(c.id, req.Name, s.cfg.MaxNameLength, time.Now())
		ack = joinAck{Code: room.Code, PlayerID: player.ID, Arbiter: room.isArbiter(player.ID)}
		view = publicView(room)
		return nil
	})
	switch {
	case errors.Is(err, errRoomNotFound):
		s.ws.Send(c.conn, newEvent(evErrorMsg, errorMessage{Message: msgInvalidCode}))
		return
	case errors.Is(err, errAlreadyStarted):
		s.ws.Send(c.conn, newEvent(evErrorMsg, errorMessage{Message: msgAlreadyStarted}))
		return
	case err != nil:
		return
	}

	if c.room != room.Code {
		s.leaveCurrentRoom(c)
		c.room = room.Code
		s.ws.Add(room.Code, c.conn)
	}
	log.Printf("player joined code=%s conn_id=%s", room.Code, c.id)

	s.ws.Send(c.conn, newEvent(evJoined, ack))
	s.ws.Broadcast(room.Code, newEvent(evLobbyUpdate, view))
}

func (s *Server) handleStartRound(c *client, data json.RawMessage) {
	var req startRoundRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	var started roundStartedEvent
	ok := false
	if _, err := s.store.UpdateRoom(req.Code, func(room *Room) error {
		if !room.startRound(c.id, req.Letter, s.sanitizeCategories(req.Categories),
			s.categories.Pool, s.cfg.CategoriesPerRound) {
			return nil
		}
		ok = true
		started = roundStartedEvent{
			Round:      room.Round,
			Letter:     room.Letter,
			Categories: slices.Clone(room.Categories),
			EndMode:    room.EndMode,
		}
		return nil
	}); err != nil || !ok {
		return
	}

	code := normalizeCode(req.Code)
	log.Printf("round started code=%s round=%d letter=%s", code, started.Round, started.Letter)
	s.ws.Broadcast(code, newEvent(evRoundStarted, started))
}

func (s *Server) handleDraft(c *client, data json.RawMessage) {
	var req answersRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}
	// Private working state: mutate, never broadcast.
	_, _ = s.store.UpdateRoom(req.Code, func(room *Room) error {
		room.setDraft(c.id, req.Answers)
		return nil
	})
}

func (s *Server) handleSubmitAnswers(c *client, data json.RawMessage) {
	var req answersRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	var progress progressEvent
	var review ReviewView
	counted, advanced := false, false
	if _, err := s.store.UpdateRoom(req.Code, func(room *Room) error {
		var submitted, total int
		counted, advanced, submitted, total = room.submit(c.id, req.Answers)
		if !counted {
			return nil
		}
		progress = progressEvent{Submitted: submitted, Total: total}
		if advanced {
			review = reviewView(room)
		}
		return nil
	}); err != nil || !counted {
		return
	}

	code := normalizeCode(req.Code)
	s.ws.Broadcast(code, newEvent(evProgress, progress))
	if advanced {
		log.Printf("round review code=%s submitted=%d total=%d", code, progress.Submitted, progress.Total)
		s.ws.Broadcast(code, newEvent(evReviewPhase, review))
		s.ws.Broadcast(code, newEvent(evReviewNavigate, reviewNavigateEvent{Index: review.Index}))
	}
}

func (s *Server) handleForceReview(c *client, data json.RawMessage) {
	var req roomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	var review ReviewView
	ok := false
	if _, err := s.store.UpdateRoom(req.Code, func(room *Room) error {
		if !room.forceReview(c.id) {
			return nil
		}
		ok = true
		review = reviewView(room)
		return nil
	}); err != nil || !ok {
		return
	}

	code := normalizeCode(req.Code)
	log.Printf("round review forced code=%s", code)
	s.ws.Broadcast(code, newEvent(evReviewPhase, review))
	s.ws.Broadcast(code, newEvent(evReviewNavigate, reviewNavigateEvent{Index: review.Index}))
}

func (s *Server) handleSetReviewIndex(c *client, data json.RawMessage) {
	var req reviewIndexRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	index, ok := 0, false
	if _, err := s.store.UpdateRoom(req.Code, func(room *Room) error {
		index, ok = room.setReviewIndex(c.id, req.Index)
		return nil
	}); err != nil || !ok {
		return
	}
	s.ws.Broadcast(normalizeCode(req.Code), newEvent(evReviewNavigate, reviewNavigateEvent{Index: index}))
}

func (s *Server) handleToggleValidation(c *client, data json.RawMessage) {
	var req validationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	valid, ok := false, false
	if _, err := s.store.UpdateRoom(req.Code, func(room *Room) error {
		valid, ok = room.toggleValidation(c.id, req.PlayerID, req.Category)
		return nil
	}); err != nil || !ok {
		return
	}
	// A single mark, not the whole room: cheap and idempotent to replay.
	s.ws.Broadcast(normalizeCode(req.Code), newEvent(evValidationUpdated, validationUpdatedEvent{
		PlayerID: req.PlayerID,
		Category: req.Category,
		Valid:    valid,
	}))
}

func (s *Server) handleEndRound(c *client, data json.RawMessage) {
	var req roomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	var ranking []LeaderboardEntry
	var view RoomView
	ok := false
	if _, err := s.store.UpdateRoom(req.Code, func(room *Room) error {
		if !room.endRound(c.id) {
			return nil
		}
		ok = true
		ranking = leaderboard(room)
		view = publicView(room)
		return nil
	}); err != nil || !ok {
		return
	}

	code := normalizeCode(req.Code)
	log.Printf("round ended code=%s players=%d", code, len(ranking))
	s.ws.Broadcast(code, newEvent(evRoundEnded, roundEndedEvent{Players: ranking}))
	s.ws.Broadcast(code, newEvent(evLobbyUpdate, view))
}

// handleDisconnect runs when a connection's read loop ends: the player
// leaves their room, the arbiter role passes on if needed, and an
// emptied room is retired by the store.
func (s *Server) handleDisconnect(c *client) {
	code := c.room
	c.room = ""
	if code == "" {
		_ = c.conn.Close()
		return
	}
	s.ws.Remove(code, c.conn)
	_ = c.conn.Close()

	var view RoomView
	removed, empty := false, false
	if _, err := s.store.UpdateRoom(code, func(room *Room) error {
		if removed = room.removePlayer(c.id); !removed {
			return nil
		}
		empty = len(room.Players) == 0
		if !empty {
			view = publicView(room)
		}
		return nil
	}); err != nil || !removed {
		return
	}
	if empty {
		log.Printf("room closed code=%s", code)
		return
	}
	s.ws.Broadcast(code, newEvent(evLobbyUpdate, view))
}

// leaveCurrentRoom detaches the connection from its previous room when
// it creates or joins another one, mirroring a disconnect for that
// room only.
func (s *Server) leaveCurrentRoom(c *client) {
	code := c.room
	if code == "" {
		return
	}
	c.room = ""
	s.ws.Remove(code, c.conn)

	var view RoomView
	removed, empty := false, false
	if _, err := s.store.UpdateRoom(code, func(room *Room) error {
		if removed = room.removePlayer(c.id); !removed {
			return nil
		}
		empty = len(room.Players) == 0
		if !empty {
			view = publicView(room)
		}
		return nil
	}); err != nil || !removed || empty {
		return
	}
	s.ws.Broadcast(code, newEvent(evLobbyUpdate, view))
}

// sanitizeCategories trims, drops empties and duplicates, and caps the
// list length.
func (s *Server) sanitizeCategories(categories []string) []string {
	if len(categories) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(categories))
	out := make([]string, 0, len(categories))
	for _, category := range categories {
		category = strings.TrimSpace(category)
		if category == "" {
			continue
		}
		if _, dup := seen[category]; dup {
			continue
		}
		seen[category] = struct{}{}
		out = append(out, category)
		if s.cfg.MaxCategories > 0 && len(out) >= s.cfg.MaxCategories {
			break
		}
	}
	return out
}
