package store

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/cardfx/internal/ir"
)

// ErrRunNotFound is returned when a run id or digest has no stored run.
var ErrRunNotFound = errors.New("run not found")

// IDGenerator produces run ids.
// Implemented by UUIDv7Generator (production) and testutil.FixedIDGenerator.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run ids.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Run is one stored analysis.
type Run struct {
	ID          string      `json:"id"`
	Seq         int64       `json:"seq"`
	DeckName    string      `json:"deck_name,omitempty"`
	ToolVersion string      `json:"tool_version"`
	CardIDs     []string    `json:"card_ids"`
	CreatedAt   time.Time   `json:"created_at"`
	Analysis    ir.Analysis `json:"analysis"`
}

// RunSummary is the list view of a run.
type RunSummary struct {
	ID               string    `json:"id"`
	Seq              int64     `json:"seq"`
	DeckName         string    `json:"deck_name,omitempty"`
	DeckDigest       string    `json:"deck_digest"`
	CardCount        int       `json:"card_count"`
	InteractionCount int       `json:"interaction_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewRun packages an analysis for storage. Seq is assigned on write.
func NewRun(gen IDGenerator, now time.Time, deck ir.Deck, analysis ir.Analysis) Run {
	ids := make([]string, len(deck.Cards))
	for i, c := range deck.Cards {
		ids[i] = c.ID
	}
	return Run{
		ID:          gen.Generate(),
		DeckName:    deck.Name,
		ToolVersion: ir.ToolVersion,
		CardIDs:     ids,
		CreatedAt:   now.UTC(),
		Analysis:    analysis,
	}
}
