package config

import "sync/atomic"

// LimitsHolder publishes a RiskLimits instance to concurrent readers.
// Updates replace the whole instance atomically so a reader never observes
// a partially updated limit set. The held value must be treated as
// immutable; to change a threshold, build a new RiskLimits and Swap it in.
type LimitsHolder struct {
	current atomic.Pointer[RiskLimits]
}

// NewLimitsHolder creates a holder seeded with the given limits.
func NewLimitsHolder(limits *RiskLimits) *LimitsHolder {
	h := &LimitsHolder{}
	h.current.Store(limits)
	return h
}

// Load returns the current limits.
func (h *LimitsHolder) Load() *RiskLimits {
	return h.current.Load()
}

// Swap replaces the current limits and returns the previous instance.
func (h *LimitsHolder) Swap(limits *RiskLimits) *RiskLimits {
	return h.current.Swap(limits)
}
