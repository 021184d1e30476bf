package session

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/cespare/xxhash/v2"
)

// DateLayout is the wall-clock format of Session.Date in Europe/Madrid.
const DateLayout = "2006-01-02 15:04"

var madrid = mustLoadMadrid()

func mustLoadMadrid() *time.Location {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		panic(fmt.Sprintf("load Europe/Madrid: %v", err))
	}
	return loc
}

// Location is the time zone every session date is expressed in.
func Location() *time.Location {
	return madrid
}

// Session is one dated occurrence of an event. Two sessions are the same
// session when all four fields are equal.
type Session struct {
	Date  string
	URL   string
	Title string
	Full  bool
}

func New(date, url string) Session {
	return Session{Date: strings.TrimSpace(date), URL: strings.TrimSpace(url)}
}

// ID is a stable surrogate derived from the date digits and the url.
func (s Session) ID() string {
	var b strings.Builder
	for _, r := range s.Date {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	b.WriteByte('|')
	b.WriteString(s.URL)
	return strconv.FormatUint(xxhash.Sum64String(b.String()), 36)
}

func (s Session) Time() (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s.Date, madrid)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse session date %q: %w", s.Date, err)
	}
	return t, nil
}

// Day is the calendar part of Date.
func (s Session) Day() string {
	if day, _, ok := strings.Cut(s.Date, " "); ok {
		return day
	}
	return s.Date
}

// Hour is the "HH:MM" part of Date, empty when Date has no time.
func (s Session) Hour() string {
	if _, hour, ok := strings.Cut(s.Date, " "); ok {
		return hour
	}
	return ""
}

// IsWorkingHours reports a start from Monday to Friday within [08:00, 15:00).
func (s Session) IsWorkingHours() bool {
	t, err := s.Time()
	if err != nil {
		return false
	}
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= 8*60 && minutes < 15*60
}

// IsBefore reports whether the session starts before now.
func (s Session) IsBefore(now time.Time) bool {
	t, err := s.Time()
	if err != nil {
		return false
	}
	return t.Before(now)
}

// Compare orders by date, then url, title and full flag.
func Compare(a, b Session) int {
	if c := cmp.Compare(a.Date, b.Date); c != 0 {
		return c
	}
	if c := cmp.Compare(a.URL, b.URL); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	switch {
	case a.Full == b.Full:
		return 0
	case !a.Full:
		return -1
	default:
		return 1
	}
}

// Normalize returns a sorted copy of items without duplicates.
func Normalize(items []Session) []Session {
	if len(items) == 0 {
		return nil
	}
	out := make([]Session, len(items))
	for i, s := range items {
		out[i] = Session{
			Date:  strings.TrimSpace(s.Date),
			URL:   strings.TrimSpace(s.URL),
			Title: strings.TrimSpace(s.Title),
			Full:  s.Full,
		}
	}
	slices.SortFunc(out, Compare)
	return slices.Compact(out)
}
