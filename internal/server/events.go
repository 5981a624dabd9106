package server

import "encoding/json"

// The wire protocol: a closed set of tagged events, one request struct
// per inbound type. Unknown types and undecodable payloads are dropped
// without a reply.

const (
	evCreateGame       = "createGame"
	evJoinGame         = "joinGame"
	evStartRound       = "startRound"
	evDraft            = "draft"
	evSubmitAnswers    = "submitAnswers"
	evForceReview      = "forceReview"
	evSetReviewIndex   = "setReviewIndex"
	evToggleValidation = "toggleValidation"
	evEndRound         = "endRound"
)

const (
	evCreated           = "created"
	evJoined            = "joined"
	evErrorMsg          = "errorMsg"
	evLobbyUpdate       = "lobbyUpdate"
	evRoundStarted      = "roundStarted"
	evProgress          = "progress"
	evReviewPhase       = "reviewPhase"
	evReviewNavigate    = "reviewNavigate"
	evValidationUpdated = "validationUpdated"
	evRoundEnded        = "roundEnded"
)

const (
	msgInvalidCode    = "invalid code"
	msgAlreadyStarted = "already started"
)

type eventEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func newEvent(eventType string, data any) event {
	return event{Type: eventType, Data: data}
}

type createGameRequest struct {
	Name         string   `json:"name"`
	Categories   []string `json:"categories"`
	ArbiterPlays *bool    `json:"arbiterPlays"`
	EndMode      string   `json:"endMode"`
	RandomThemes bool     `json:"randomThemes"`
}

type joinGameRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type startRoundRequest struct {
	Code       string   `json:"code"`
	Letter     string   `json:"letter"`
	Categories []string `json:"categories"`
}

type answersRequest struct {
	Code    string            `json:"code"`
	Answers map[string]string `json:"answers"`
}

type roomRequest struct {
	Code string `json:"code"`
}

type reviewIndexRequest struct {
	Code  string `json:"code"`
	Index int    `json:"index"`
}

type validationRequest struct {
	Code     string `json:"code"`
	PlayerID string `json:"playerId"`
	Category string `json:"category"`
}

type joinAck struct {
	Code     string `json:"code"`
	PlayerID string `json:"playerId"`
	Arbiter  bool   `json:"arbiter"`
}

type errorMessage struct {
	Message string `json:"message"`
}

type roundStartedEvent struct {
	Round      int      `json:"round"`
	Letter     string   `json:"letter"`
	Categories []string `json:"categories"`
	EndMode    string   `json:"endMode"`
}

type progressEvent struct {
	Submitted int `json:"submitted"`
	Total     int `json:"total"`
}

type reviewNavigateEvent struct {
	Index int `json:"index"`
}

type validationUpdatedEvent struct {
	PlayerID string `json:"playerId"`
	Category string `json:"category"`
	Valid    bool   `json:"valid"`
}

type roundEndedEvent struct {
	Players []LeaderboardEntry `json:"players"`
}
