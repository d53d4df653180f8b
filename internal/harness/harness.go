package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/cardfx/internal/engine"
	"github.com/roach88/cardfx/internal/store"
	"github.com/roach88/cardfx/internal/testutil"
)

// Harness runs scenarios against one engine.
type Harness struct {
	engine *engine.Engine
	logger *slog.Logger
}

// New creates a harness. A nil engine means the built-in tables with
// engine logging suppressed.
func New(eng *engine.Engine) *Harness {
	if eng == nil {
		eng = engine.New(nil, engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	}
	return &Harness{engine: eng, logger: slog.Default()}
}

// Run executes a scenario with the built-in tables.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Analyze the scenario deck
// 2. Write the run with a fixed id and clock, then read it back
// 3. Evaluate every assertion against the stored analysis
//
// A returned error means the scenario could not be executed; failed
// assertions are reported in the Result instead.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:", store.WithLogger(h.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	deck := scenario.Deck()
	analysis, err := h.engine.Analyze(deck)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", scenario.Name, err)
	}

	ctx := context.Background()
	gen := testutil.NewFixedIDGenerator(scenario.Name)
	clock := testutil.NewFixedClock(time.Time{}, 0)

	run, err := st.WriteRun(ctx, store.NewRun(gen, clock.Now(), deck, analysis))
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", scenario.Name, err)
	}
	stored, err := st.ReadRun(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("reload %s: %w", scenario.Name, err)
	}

	result := NewResult()
	result.Analysis = stored.Analysis

	index := make(map[string]int, len(scenario.Cards))
	for i, c := range scenario.Cards {
		index[c.ID] = i
	}
	ids := stored.CardIDs

	for i, assertion := range scenario.Assertions {
		if err := evaluateAssertion(assertion, stored.Analysis, index, ids); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}

	h.logger.Debug("scenario complete",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"failures", len(result.Errors),
	)
	return result, nil
}
