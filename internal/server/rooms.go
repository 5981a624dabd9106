package server

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// The room state machine. Every method takes the identity of the
// requesting connection and authorizes it itself; rejected or
// mismatched calls return false and leave the room untouched. The
// gateway broadcasts nothing for a false return.

func (r *Room) findPlayer(id string) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

func (r *Room) isArbiter(id string) bool {
	return id != "" && r.ArbiterID == id
}

// join adds a player, or renames them when the connection already owns
// a record (a re-join never resets game state). The first player to
// join becomes the arbiter.
func (r *Room) join(id, name string, maxName int, now time.Time) *Player {
	if player := r.findPlayer(id); player != nil {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			player.Name = sanitizeName(trimmed, len(r.Players), maxName)
		}
		return player
	}
	r.Players = append(r.Players, Player{
		ID:          id,
		Name:        sanitizeName(name, len(r.Players)+1, maxName),
		Answers:     map[string]string{},
		Draft:       map[string]string{},
		Validations: map[string]bool{},
		JoinedAt:    now,
	})
	if r.ArbiterID == "" {
		r.ArbiterID = id
	}
	return &r.Players[len(r.Players)-1]
}

// startRound begins a new round from the lobby. Letter and category
// overrides are optional; random-theme rooms draw their categories
// from the pool instead. Per-player round state resets here, which is
// also what wipes the previous round's validation marks.
func (r *Room) startRound(id, letter string, categories, pool []string, sampleSize int) bool {
	if !r.isArbiter(id) || r.Status != statusLobby {
		return false
	}

	r.Status = statusPlaying
	r.Round++

	if letter = strings.ToUpper(strings.TrimSpace(letter)); letter != "" {
		first, _ := utf8.DecodeRuneInString(letter)
		r.Letter = string(first)
	} else {
		r.Letter = drawLetter()
	}

	switch {
	case r.RandomThemes && len(pool) > 0:
		r.Categories = sampleCategories(pool, sampleSize)
	case len(categories) > 0:
		r.Categories = slices.Clone(categories)
	}

	for i := range r.Players {
		player := &r.Players[i]
		player.Submitted = false
		player.Answers = map[string]string{}
		player.Draft = map[string]string{}
		player.Validations = map[string]bool{}
	}
	return true
}

// setDraft replaces the player's working answers. Private state, no
// status check: drafts may arrive at any time while the room exists.
func (r *Room) setDraft(id string, answers map[string]string) bool {
	player := r.findPlayer(id)
	if player == nil {
		return false
	}
	player.Draft = cloneAnswers(answers)
	return true
}

// submit commits the player's answers for the round. With no answers
// supplied the last draft is committed instead. The returned counts
// are taken at commit time, before any auto-advance force-commits the
// rest of the roster.
func (r *Room) submit(id string, answers map[string]string) (counted, advanced bool, submitted, total int) {
	if r.Status != statusPlaying {
		return false, false, 0, 0
	}
	player := r.findPlayer(id)
	if player == nil {
		return false, false, 0, 0
	}

	if len(answers) == 0 {
		answers = player.Draft
	}
	player.Answers = cloneAnswers(answers)
	player.Submitted = true
	counted = true

	submitted, total = r.submissionProgress()
	if r.EndMode == endModeFirst || submitted >= total {
		r.advanceToReview()
		advanced = true
	}
	return counted, advanced, submitted, total
}

// forceReview is the arbiter's override: usable from any status.
func (r *Room) forceReview(id string) bool {
	if !r.isArbiter(id) {
		return false
	}
	r.advanceToReview()
	return true
}

// advanceToReview force-commits every unsubmitted player from their
// draft, then opens review at the first category.
func (r *Room) advanceToReview() {
	for i := range r.Players {
		player := &r.Players[i]
		if !player.Submitted {
			player.Answers = cloneAnswers(player.Draft)
			player.Submitted = true
		}
	}
	r.Status = statusReview
	r.ReviewIndex = 0
}

// setReviewIndex moves the review cursor, clamped into the category
// range.
func (r *Room) setReviewIndex(id string, index int) (int, bool) {
	if !r.isArbiter(id) || len(r.Categories) == 0 {
		return 0, false
	}
	if index < 0 {
		index = 0
	}
	if index > len(r.Categories)-1 {
		index = len(r.Categories) - 1
	}
	r.ReviewIndex = index
	return index, true
}

// toggleValidation flips one (player, category) mark. An unseen mark
// counts as invalid, so the first toggle marks the answer valid.
func (r *Room) toggleValidation(id, targetID, category string) (valid, ok bool) {
	if !r.isArbiter(id) || !slices.Contains(r.Categories, category) {
		return false, false
	}
	target := r.findPlayer(targetID)
	if target == nil {
		return false, false
	}
	target.Validations[category] = !target.Validations[category]
	return target.Validations[category], true
}

// endRound settles scores from the validation marks and returns the
// room to the lobby. Marks are left in place; they reset at the next
// startRound.
func (r *Room) endRound(id string) bool {
	if !r.isArbiter(id) {
		return false
	}
	for i := range r.Players {
		player := &r.Players[i]
		for _, valid := range player.Validations {
			if valid {
				player.Score++
			}
		}
	}
	r.Status = statusLobby
	return true
}

// removePlayer drops the player from the roster. When the departing
// connection held the arbiter role it passes to the longest-tenured
// remaining player, ties broken by smallest id.
func (r *Room) removePlayer(id string) bool {
	before := len(r.Players)
	r.Players = slices.DeleteFunc(r.Players, func(p Player) bool {
		return p.ID == id
	})
	if len(r.Players) == before {
		return false
	}
	if r.ArbiterID == id {
		r.electArbiter()
	}
	return true
}

func (r *Room) electArbiter() {
	if len(r.Players) == 0 {
		r.ArbiterID = ""
		return
	}
	next := &r.Players[0]
	for i := range r.Players[1:] {
		candidate := &r.Players[i+1]
		if candidate.JoinedAt.Before(next.JoinedAt) ||
			(candidate.JoinedAt.Equal(next.JoinedAt) && candidate.ID < next.ID) {
			next = candidate
		}
	}
	r.ArbiterID = next.ID
}

// submissionProgress counts submitted vs eligible players. The arbiter
// is not eligible when the room is configured with the arbiter not
// playing.
func (r *Room) submissionProgress() (submitted, total int) {
	for i := range r.Players {
		player := &r.Players[i]
		if !r.ArbiterPlays && player.ID == r.ArbiterID {
			continue
		}
		total++
		if player.Submitted {
			submitted++
		}
	}
	return submitted, total
}

func sanitizeName(name string, index, maxLen int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Sprintf("Player %d", index)
	}
	if maxLen > 0 && utf8.RuneCountInString(name) > maxLen {
		runes := []rune(name)
		name = string(runes[:maxLen])
	}
	return name
}

func cloneAnswers(answers map[string]string) map[string]string {
	clone := make(map[string]string, len(answers))
	maps.Copy(clone, answers)
	return clone
}
