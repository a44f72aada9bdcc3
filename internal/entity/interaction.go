package entity

import (
	"time"

	"github.com/google/uuid"
)

// Response source tags recorded per chat turn. The tag must reflect which
// responder actually produced the text returned to the user.
const (
	SourceSupabase = "supabase" // structured search hit
	SourceGPT      = "gpt"      // model-generated completion
	SourceFallback = "fallback" // canned apology after a model failure
)

// Interaction is one audited chat turn: what the user asked, what we
// answered, and which path served it. Rows are written once and never
// updated.
type Interaction struct {
	ID        uuid.UUID  `json:"id"`
	UserInput string     `json:"user_input"`
	Response  string     `json:"response"`
	Source    string     `json:"source"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
