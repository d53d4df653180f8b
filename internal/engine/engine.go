package engine

import (
	"log/slog"

	"github.com/roach88/cardfx/internal/ir"
	"github.com/roach88/cardfx/internal/rules"
)

// SignificanceThreshold is the strength a pair must exceed to be reported
// by CalculateCardInteractions.
const SignificanceThreshold = 0.1

// Engine evaluates interaction rules and layout modifiers.
//
// INVARIANTS:
//   - rules order never changes after construction
//   - neither rules nor table is mutated after construction
type Engine struct {
	table  *rules.Table
	rules  []ir.InteractionRule // Private snapshot in table order
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-rule debug output.
// Default: slog.Default() at call time.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine over the given tables.
// A nil table means rules.Default().
func New(table *rules.Table, opts ...Option) *Engine {
	if table == nil {
		table = rules.Default()
	}
	e := &Engine{
		table: table,
		rules: table.Rules(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New(rules.Default())

// Default returns the engine over the built-in tables.
func Default() *Engine {
	return defaultEngine
}

// Table returns the tables this engine evaluates.
func (e *Engine) Table() *rules.Table {
	return e.table
}

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}

// CalculateInteractionStrength scores tagsA against tagsB using the
// built-in tables. See Engine.CalculateInteractionStrength.
func CalculateInteractionStrength(tagsA, tagsB []string) float64 {
	return defaultEngine.CalculateInteractionStrength(tagsA, tagsB)
}

// GetApplicableInteractions returns built-in rules touching tags.
// See Engine.ApplicableInteractions.
func GetApplicableInteractions(tags []string) []ir.InteractionRule {
	return defaultEngine.ApplicableInteractions(tags)
}

// CalculateLayoutModifiers resolves private attributes against the
// built-in modifier table. See Engine.CalculateLayoutModifiers.
func CalculateLayoutModifiers(attrs ir.Attributes) []ir.ResolvedModifier {
	return defaultEngine.CalculateLayoutModifiers(attrs)
}

// CalculateCardInteractions scores every card pair with the built-in
// tables. See Engine.CalculateCardInteractions.
func CalculateCardInteractions(cards []ir.Card) []ir.PairInteraction {
	return defaultEngine.CalculateCardInteractions(cards)
}
