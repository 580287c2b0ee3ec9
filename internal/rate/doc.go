// Package rate enforces fixed-window attempt budgets for login and
// refresh using Redis counters.
//
// Counters are plain INCR keys with a cooldown TTL set on first
// increment; a missing key reads as zero and never reveals whether an
// identifier exists.
package rate
