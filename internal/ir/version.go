package ir

// Version constants for the table schema and the tool.
const (
	// TableVersion identifies the built-in rule and modifier tables.
	// Bump it whenever a rule, strength or modifier changes so stored
	// analyses can be told apart.
	TableVersion = "1"

	// ToolVersion is the cardfx version.
	ToolVersion = "0.1.0"
)
