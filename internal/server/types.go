package server

import "time"

const (
	statusLobby   = "lobby"
	statusPlaying = "playing"
	statusReview  = "review"
)

const (
	endModeFirst = "first"
	endModeAll   = "all"
)

// RoomConfig carries the creation-time options of a room. Zero values
// are resolved by the store: empty categories fall back to the default
// list and an unknown end mode becomes endModeAll.
type RoomConfig struct {
	Categories   []string
	ArbiterPlays bool
	EndMode      string
	RandomThemes bool
}

type Room struct {
	Code         string
	Status       string
	Round        int
	Letter       string
	Categories   []string
	ReviewIndex  int
	EndMode      string
	ArbiterPlays bool
	RandomThemes bool

	// ArbiterID names the player holding the arbiter role. It is set
	// when the first player joins and only reassigned by succession on
	// disconnect, never inferred.
	ArbiterID string

	// Players is kept in join order; succession ties and leaderboard
	// ties both resolve against this order.
	Players []Player
}

type Player struct {
	ID          string
	Name        string
	Score       int
	Submitted   bool
	Answers     map[string]string
	Draft       map[string]string
	Validations map[string]bool
	JoinedAt    time.Time
}
