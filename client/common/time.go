package common

import (
	"encoding/json"
	"time"

	"github.com/whitekid/goxp/fx"
)

// Timestamp RFC3339 timestamp
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) *Timestamp { return &Timestamp{t} }
func NewTimestampP(t *time.Time) *Timestamp {
	return fx.TernaryCF(t == nil, func() *Timestamp { return nil }, func() *Timestamp { return &Timestamp{*t} })
}
func ParseTimestamp(s string) (*Timestamp, error) {
	tm, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}

	return NewTimestamp(tm), nil
}

func (t *Timestamp) String() string               { return t.Format(time.RFC3339) }
func (t *Timestamp) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string

	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	tm, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}

	t.Time = tm
	return nil
}

func (t *Timestamp) MarshalYAML() (interface{}, error) { return t.String(), nil }
func (t *Timestamp) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	tm, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}

	t.Time = tm
	return nil
}
