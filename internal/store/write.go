package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// WriteRun stores a run and all its rows in one transaction.
// The run's Seq is assigned here as one past the highest stored seq and
// written back into the returned Run.
func (s *Store) WriteRun(ctx context.Context, run Run) (Run, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("write run: begin: %w", err)
	}
	defer tx.Rollback()

	var maxSeq sql.NullInt64
	if err := tx.QueryRowContext(ctx, `SELECT MAX(seq) FROM runs`).Scan(&maxSeq); err != nil {
		return Run{}, fmt.Errorf("write run: next seq: %w", err)
	}
	run.Seq = maxSeq.Int64 + 1

	a := run.Analysis
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, deck_name, deck_digest, table_version, tool_version, card_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Seq,
		run.DeckName,
		a.DeckDigest,
		a.TableVersion,
		run.ToolVersion,
		len(run.CardIDs),
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	for i, id := range run.CardIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO run_cards (run_id, card_index, card_id) VALUES (?, ?, ?)
		`, run.ID, i, id); err != nil {
			return Run{}, fmt.Errorf("write run card %d: %w", i, err)
		}
	}

	for i, p := range a.Interactions {
		effects, err := marshalEffects(p.Effects)
		if err != nil {
			return Run{}, fmt.Errorf("write pair %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pair_interactions (run_id, idx, index_a, index_b, strength, effects)
			VALUES (?, ?, ?, ?, ?, ?)
		`, run.ID, i, p.IndexA, p.IndexB, p.Strength, effects); err != nil {
			return Run{}, fmt.Errorf("write pair %d: %w", i, err)
		}
	}

	for _, cm := range a.Modifiers {
		for i, m := range cm.Modifiers {
			value, err := marshalValue(m.Value)
			if err != nil {
				return Run{}, fmt.Errorf("write modifier %d/%d: %w", cm.CardIndex, i, err)
			}
			params, err := marshalParams(m.Params)
			if err != nil {
				return Run{}, fmt.Errorf("write modifier %d/%d: %w", cm.CardIndex, i, err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO layout_modifiers
				(run_id, card_index, idx, tag, value, effect, params, description)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, run.ID, cm.CardIndex, i, m.Tag, value, m.Effect, params, m.Description); err != nil {
				return Run{}, fmt.Errorf("write modifier %d/%d: %w", cm.CardIndex, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("write run: commit: %w", err)
	}

	s.log().Info("run written",
		"run_id", run.ID,
		"seq", run.Seq,
		"digest", a.DeckDigest,
		"interactions", len(a.Interactions),
	)
	return run, nil
}

// DeleteRun removes a run and its rows. Deleting a missing run is not an error.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	return nil
}
