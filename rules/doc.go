// Package rules evaluates game bonuses locally so the pet can preview
// outcomes without a backend round trip.
//
// Every function is pure apart from the random roll in Resolve. Invalid
// selections are reported as not evaluable instead of failing, so callers
// can keep showing a neutral preview.
package rules
