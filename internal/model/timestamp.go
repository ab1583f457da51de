package model

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// referenceEpoch is 2001-01-01T00:00:00Z as Unix seconds. Stored dates are
// offsets from it.
const referenceEpoch int64 = 978307200

// Timestamp is a UTC instant with microsecond precision, encoded in JSON as
// fractional seconds since 2001-01-01T00:00:00Z.
type Timestamp struct {
	time.Time
}

// NewTimestamp converts t to UTC and truncates it to microseconds so that it
// survives an encode/decode round trip unchanged.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Microsecond)}
}

// ReferenceSeconds returns the number of seconds since the reference epoch.
func (ts Timestamp) ReferenceSeconds() float64 {
	whole := ts.Unix() - referenceEpoch
	return float64(whole) + float64(ts.Nanosecond())/1e9
}

// TimestampFromReferenceSeconds is the inverse of ReferenceSeconds.
func TimestampFromReferenceSeconds(secs float64) (Timestamp, error) {
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return Timestamp{}, fmt.Errorf("invalid timestamp %v", secs)
	}
	whole := math.Floor(secs)
	micros := int64(math.Round((secs - whole) * 1e6))
	t := time.Unix(int64(whole)+referenceEpoch, micros*int64(time.Microsecond)).UTC()
	return Timestamp{Time: t}, nil
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, ts.ReferenceSeconds(), 'f', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	secs, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("timestamp must be a number of seconds: %w", err)
	}
	parsed, err := TimestampFromReferenceSeconds(secs)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// Before reports whether ts is before other.
func (ts Timestamp) Before(other Timestamp) bool {
	return ts.Time.Before(other.Time)
}

// After reports whether ts is after other.
func (ts Timestamp) After(other Timestamp) bool {
	return ts.Time.After(other.Time)
}
