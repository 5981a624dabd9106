package server

import (
	"maps"
	"slices"
	"sort"
)

// Derived read views, built under the store lock and broadcast, never
// stored. Map-valued fields are copied so a later mutation cannot race
// the encoder.

type RoomView struct {
	Code         string       `json:"code"`
	Status       string       `json:"status"`
	Round        int          `json:"round"`
	Letter       string       `json:"letter,omitempty"`
	Categories   []string     `json:"categories"`
	EndMode      string       `json:"endMode"`
	ArbiterPlays bool         `json:"arbiterPlays"`
	RandomThemes bool         `json:"randomThemes"`
	Players      []PlayerView `json:"players"`
}

// PlayerView is the public face of a player: no answers, no drafts.
type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Submitted bool   `json:"submitted"`
	Arbiter   bool   `json:"arbiter"`
}

type ReviewView struct {
	Code       string             `json:"code"`
	Round      int                `json:"round"`
	Letter     string             `json:"letter"`
	Categories []string           `json:"categories"`
	Index      int                `json:"index"`
	Players    []ReviewPlayerView `json:"players"`
}

// ReviewPlayerView exposes committed answers and validation marks to
// everyone in the room, so the arbiter's decisions stay transparent.
type ReviewPlayerView struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Answers     map[string]string `json:"answers"`
	Validations map[string]bool   `json:"validations"`
}

type LeaderboardEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func publicView(r *Room) RoomView {
	players := make([]PlayerView, 0, len(r.Players))
	for i := range r.Players {
		player := &r.Players[i]
		players = append(players, PlayerView{
			ID:        player.ID,
			Name:      player.Name,
			Score:     player.Score,
			Submitted: player.Submitted,
			Arbiter:   player.ID == r.ArbiterID,
		})
	}
	return RoomView{
		Code:         r.Code,
		Status:       r.Status,
		Round:        r.Round,
		Letter:       r.Letter,
		Categories:   slices.Clone(r.Categories),
		EndMode:      r.EndMode,
		ArbiterPlays: r.ArbiterPlays,
		RandomThemes: r.RandomThemes,
		Players:      players,
	}
}

func reviewView(r *Room) ReviewView {
	players := make([]ReviewPlayerView, 0, len(r.Players))
	for i := range r.Players {
		player := &r.Players[i]
		players = append(players, ReviewPlayerView{
			ID:          player.ID,
			Name:        player.Name,
			Answers:     cloneAnswers(player.Answers),
			Validations: maps.Clone(player.Validations),
		})
	}
	return ReviewView{
		Code:       r.Code,
		Round:      r.Round,
		Letter:     r.Letter,
		Categories: slices.Clone(r.Categories),
		Index:      r.ReviewIndex,
		Players:    players,
	}
}

// leaderboard ranks players by score, descending. The sort is stable
// so equal scores keep roster (join) order.
func leaderboard(r *Room) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(r.Players))
	for i := range r.Players {
		player := &r.Players[i]
		entries = append(entries, LeaderboardEntry{
			ID:    player.ID,
			Name:  player.Name,
			Score: player.Score,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}
