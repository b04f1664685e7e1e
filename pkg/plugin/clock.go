package plugin

import "time"

// DefaultTimestamp is the placeholder timestamp emitted when no clock is
// configured. It matches the fixed value historic plugins always reported,
// so default responses stay byte-for-byte stable.
const DefaultTimestamp = "2024-01-01T00:00:00Z"

// Clock supplies the timestamp stamped into plugin responses. It is an
// injected dependency so tests and hosts control the emitted value.
type Clock interface {
	Now() string
}

// FixedClock always reports the same timestamp.
type FixedClock string

// Now returns the fixed timestamp.
func (c FixedClock) Now() string { return string(c) }

// SystemClock reports the current wall-clock time in RFC 3339 UTC.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() string { return time.Now().UTC().Format(time.RFC3339) }

// DefaultClock returns the clock used when none is injected.
func DefaultClock() Clock { return FixedClock(DefaultTimestamp) }
