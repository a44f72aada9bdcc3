// Package scoring rates how complete a marketplace listing is. The score is
// shown on the admin dashboard so the team can chase providers with thin
// profiles.
package scoring

import (
	"strings"

	"github.com/adpulse/opensea-api/internal/entity"
)

const (
	categoryContact = "contact_completeness"
	categoryProfile = "profile_completeness"
	categoryWeb     = "web_presence"
)

// ScoreResult reports the aggregate score and the per-category breakdown.
type ScoreResult struct {
	Total     int            `json:"total"`
	Breakdown map[string]int `json:"breakdown"`
}

// ComputeScore evaluates the listing and returns the score breakdown.
// The maximum total is 100.
func ComputeScore(s *entity.Service) ScoreResult {
	breakdown := map[string]int{
		categoryContact: scoreContacts(s),
		categoryProfile: scoreProfile(s),
		categoryWeb:     scoreWebPresence(s),
	}

	total := 0
	for _, value := range breakdown {
		total += value
	}

	return ScoreResult{
		Total:     total,
		Breakdown: breakdown,
	}
}

// scoreContacts rewards reachable providers: phone, WhatsApp and a direct
// channel each count. Max 40.
func scoreContacts(s *entity.Service) int {
	score := 0
	if hasValue(s.Phone) {
		score += 15
	}
	if hasValue(s.WhatsApp) {
		score += 15
	}
	if hasValue(s.Instagram) {
		score += 10
	}
	if score > 40 {
		return 40
	}
	return score
}

// scoreProfile rewards listings customers can evaluate: description, price,
// photo and location. Max 40.
func scoreProfile(s *entity.Service) int {
	score := 0
	if s.Description != nil && len(strings.TrimSpace(*s.Description)) >= 30 {
		score += 15
	}
	if s.Price != nil && *s.Price > 0 {
		score += 10
	}
	if hasValue(s.ImageURL) {
		score += 10
	}
	if hasValue(s.Location) {
		score += 5
	}
	if score > 40 {
		return 40
	}
	return score
}

// scoreWebPresence rewards a working HTTPS website. Max 20.
func scoreWebPresence(s *entity.Service) int {
	if !hasValue(s.Website) {
		return 0
	}
	score := 10
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(*s.Website)), "https://") {
		score += 10
	}
	return score
}

func hasValue(value *string) bool {
	return value != nil && strings.TrimSpace(*value) != ""
}
