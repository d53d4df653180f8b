// Package store provides SQLite-backed history of deck analyses.
//
// Each analysis run is stored as:
//   - runs: one row per run, keyed by a UUIDv7 run id
//   - run_cards: the card ids of the analyzed deck, by index
//   - pair_interactions: significant pairs in scan order
//   - layout_modifiers: resolved modifiers per card in attribute order
//
// # Deterministic Reads
//
// All queries order by explicit integer columns (seq, idx, card_index), so
// a run reads back in exactly the order the engine produced it.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait on lock contention
//   - foreign_keys=ON: Cascade run deletion
package store
