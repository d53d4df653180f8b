// Package ir provides the shared value types for cardfx.
//
// This package contains type definitions, canonical JSON and content hashing
// only. All other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Rule and modifier records are immutable once built; copies are handed out
//   - Attribute values are a closed set: string, number, bool
//   - Attribute order is significant and preserved end to end
//   - All JSON tags use snake_case
package ir
