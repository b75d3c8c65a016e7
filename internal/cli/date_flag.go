package cli

import (
	"time"

	"github.com/spf13/pflag"
)

// dateValue is a pflag.Value accepting YYYY-MM-DD, today or tomorrow. It
// only validates and keeps the raw argument; App.resolveStartDate parses it
// once the configured timezone is known.
type dateValue struct {
	raw *string
	now func() time.Time
}

var _ pflag.Value = (*dateValue)(nil)

func newDateValue(raw *string, now func() time.Time) *dateValue {
	return &dateValue{raw: raw, now: now}
}

func (d *dateValue) String() string {
	if d.raw == nil {
		return ""
	}
	return *d.raw
}

func (d *dateValue) Set(s string) error {
	if _, err := parseDateArg(s, d.now()); err != nil {
		return err
	}
	*d.raw = s
	return nil
}

func (d *dateValue) Type() string { return "date" }
