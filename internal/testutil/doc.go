// Package testutil provides deterministic stand-ins for run ids and wall
// clock time so stored runs and CLI output are reproducible in tests.
package testutil
