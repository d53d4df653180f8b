package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/cardfx/internal/ir"
)

// ReadRun loads a run with all its rows.
// Returns ErrRunNotFound if no run has the id.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, deck_name, deck_digest, table_version, tool_version, created_at
		FROM runs WHERE id = ?
	`, id)
	return s.readRunRow(ctx, row)
}

// LatestRunForDigest loads the most recent run of a deck.
// Returns ErrRunNotFound if the deck was never analyzed.
func (s *Store) LatestRunForDigest(ctx context.Context, digest string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, deck_name, deck_digest, table_version, tool_version, created_at
		FROM runs WHERE deck_digest = ?
		ORDER BY seq DESC
		LIMIT 1
	`, digest)
	return s.readRunRow(ctx, row)
}

func (s *Store) readRunRow(ctx context.Context, row *sql.Row) (Run, error) {
	var (
		run       Run
		createdAt string
	)
	err := row.Scan(
		&run.ID,
		&run.Seq,
		&run.DeckName,
		&run.Analysis.DeckDigest,
		&run.Analysis.TableVersion,
		&run.ToolVersion,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run: %w", err)
	}

	run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: created_at: %w", run.ID, err)
	}

	if run.CardIDs, err = s.readCardIDs(ctx, run.ID); err != nil {
		return Run{}, err
	}
	if run.Analysis.Interactions, err = s.readInteractions(ctx, run.ID); err != nil {
		return Run{}, err
	}
	if run.Analysis.Modifiers, err = s.readModifiers(ctx, run.ID, run.CardIDs); err != nil {
		return Run{}, err
	}
	return run, nil
}

func (s *Store) readCardIDs(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT card_id FROM run_cards
		WHERE run_id = ?
		ORDER BY card_index ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("read run cards: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run card: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) readInteractions(ctx context.Context, runID string) ([]ir.PairInteraction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT index_a, index_b, strength, effects
		FROM pair_interactions
		WHERE run_id = ?
		ORDER BY idx ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("read interactions: %w", err)
	}
	defer rows.Close()

	pairs := make([]ir.PairInteraction, 0)
	for rows.Next() {
		var (
			p       ir.PairInteraction
			effects string
		)
		if err := rows.Scan(&p.IndexA, &p.IndexB, &p.Strength, &effects); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		if p.Effects, err = unmarshalEffects(effects); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

func (s *Store) readModifiers(ctx context.Context, runID string, cardIDs []string) ([]ir.CardModifiers, error) {
	out := make([]ir.CardModifiers, len(cardIDs))
	for i, id := range cardIDs {
		out[i] = ir.CardModifiers{CardIndex: i, CardID: id, Modifiers: make([]ir.ResolvedModifier, 0)}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT card_index, tag, value, effect, params, description
		FROM layout_modifiers
		WHERE run_id = ?
		ORDER BY card_index ASC, idx ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("read modifiers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cardIndex     int
			m             ir.ResolvedModifier
			value, params string
		)
		if err := rows.Scan(&cardIndex, &m.Tag, &value, &m.Effect, &params, &m.Description); err != nil {
			return nil, fmt.Errorf("scan modifier: %w", err)
		}
		if cardIndex < 0 || cardIndex >= len(out) {
			return nil, fmt.Errorf("modifier references card %d of %d", cardIndex, len(out))
		}
		if m.Value, err = unmarshalValue(value); err != nil {
			return nil, err
		}
		if m.Params, err = unmarshalParams(params); err != nil {
			return nil, err
		}
		out[cardIndex].Modifiers = append(out[cardIndex].Modifiers, m)
	}
	return out, rows.Err()
}

// ListRuns returns run summaries, newest first. limit <= 0 means no limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.seq, r.deck_name, r.deck_digest, r.card_count, r.created_at,
		       (SELECT COUNT(*) FROM pair_interactions p WHERE p.run_id = r.id)
		FROM runs r
		ORDER BY r.seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunSummary, 0)
	for rows.Next() {
		var (
			r         RunSummary
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.Seq, &r.DeckName, &r.DeckDigest, &r.CardCount, &createdAt, &r.InteractionCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("run %s: created_at: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
