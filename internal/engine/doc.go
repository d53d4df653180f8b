// Package engine implements the cardfx interaction engine.
//
// Given the public tags of two cards, the engine scores how strongly they
// interact and which visual effects the pair should show. Given a card's
// private attributes, it resolves the layout modifiers to apply.
//
// The engine is a pure function of its inputs and its rule table:
//   - Rules are evaluated in table order; outputs follow that order
//   - Pairs are scanned in ascending (i, j) order, i < j
//   - Missing data degrades to zero or empty results, never to an error
//
// An Engine never mutates its tables after construction and holds no
// per-call state, so one Engine can serve concurrent callers.
package engine
