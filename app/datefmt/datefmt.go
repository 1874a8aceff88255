// Package datefmt renders publication instants as pt-BR labels.
package datefmt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/pt_BR"
)

// ErrInvalidTime is returned for instants that cannot be formatted.
var ErrInvalidTime = errors.New("invalid time value")

// ISOLayout is the machine readable layout used for datetime attributes.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// Formatter produces absolute and relative labels for an instant. Nothing is
// cached: every call reads the clock again.
type Formatter struct {
	loc    *time.Location
	now    func() time.Time
	locale locales.Translator
}

// New creates a Formatter rendering in loc and measuring distances against
// now. A nil loc means UTC and a nil now means time.Now.
func New(loc *time.Location, now func() time.Time) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Formatter{
		loc:    loc,
		now:    now,
		locale: pt_BR.New(),
	}
}

// Location returns the location absolute labels are rendered in.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Absolute formats t as "1 de janeiro às 14:05h".
func (f *Formatter) Absolute(t time.Time) (string, error) {
	if t.IsZero() {
		return "", ErrInvalidTime
	}
	t = t.In(f.loc)
	return fmt.Sprintf("%d de %s às %02d:%02dh",
		t.Day(), f.locale.MonthWide(t.Month()), t.Hour(), t.Minute()), nil
}

// Relative describes the distance between t and the current time with a
// direction prefix, e.g. "há cerca de 2 horas" or "em 3 dias".
func (f *Formatter) Relative(t time.Time) (string, error) {
	if t.IsZero() {
		return "", ErrInvalidTime
	}
	now := f.now()
	d := distance(t, now)
	if t.After(now) {
		return "em " + d, nil
	}
	return "há " + d, nil
}

// ISO formats t for a datetime attribute, always in UTC.
func ISO(t time.Time) (string, error) {
	if t.IsZero() {
		return "", ErrInvalidTime
	}
	return t.UTC().Format(ISOLayout), nil
}
