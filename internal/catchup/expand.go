// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package catchup

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the wall-clock format of programme start/stop values.
const TimeLayout = "02.01.2006 15:04:05"

// TestStart makes Expand return the template untouched (preview path).
const TestStart = "TEST"

// ErrInvalidTime is returned when start or end do not follow TimeLayout.
var ErrInvalidTime = errors.New("catchup: invalid programme time")

var (
	// A single left-to-right scan over {token} and ${token}.
	tokenRe  = regexp.MustCompile(`\$?\{([^{}]*)\}`)
	fieldsRe = regexp.MustCompile(`^[YmdHMS-]+$`)
	intRe    = regexp.MustCompile(`^-?[0-9]+$`)
)

// Expander substitutes time placeholders into URL templates.
// The zero value uses time.Now and time.Local.
type Expander struct {
	Now      func() time.Time
	Location *time.Location
}

func (e Expander) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e Expander) location() *time.Location {
	if e.Location != nil {
		return e.Location
	}
	return time.Local
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// Expand substitutes placeholders using the default Expander.
func Expand(start, end, catchupID, template string) (string, error) {
	return Expander{}.Expand(start, end, catchupID, template)
}

// ExpandNow substitutes only the current-time placeholders using the default Expander.
func ExpandNow(template string) string {
	return Expander{}.ExpandNow(template)
}

type window struct {
	start    int64
	end      int64
	now      int64
	duration int64
	offset   int64
	id       string
	// Y m d H M S exactly as written in the start value
	fields map[string]string
}

// Expand replaces the time placeholders of template for the programme
// running from start to end (both in TimeLayout, local time).
func (e Expander) Expand(start, end, catchupID, template string) (string, error) {
	if start == TestStart {
		return template, nil
	}
	loc := e.location()
	st, err := parseWallClock(start, loc)
	if err != nil {
		return "", err
	}
	et, err := parseWallClock(end, loc)
	if err != nil {
		return "", err
	}

	w := window{
		start: st.Unix(),
		now:   e.now().Unix(),
		id:    catchupID,
		fields: map[string]string{
			"d": start[0:2],
			"m": start[3:5],
			"Y": start[6:10],
			"H": start[11:13],
			"M": start[14:16],
			"S": start[17:19],
		},
	}
	w.duration = et.Unix() - w.start
	w.end = w.start + w.duration
	w.offset = w.now - w.start

	return tokenRe.ReplaceAllStringFunc(template, func(tok string) string {
		if v, ok := w.resolve(tokenName(tok), loc); ok {
			return v
		}
		return tok
	}), nil
}

// ExpandNow replaces the lutc/now/timestamp family, including compound
// forms, and leaves every other placeholder untouched.
func (e Expander) ExpandNow(template string) string {
	now := e.now().Unix()
	loc := e.location()
	return tokenRe.ReplaceAllStringFunc(template, func(tok string) string {
		name := tokenName(tok)
		switch name {
		case "lutc", "now", "timestamp":
			return strconv.FormatInt(now, 10)
		}
		if src, fields, ok := strings.Cut(name, ":"); ok && isNowSource(src) && fieldsRe.MatchString(fields) {
			return formatFields(now, fields, loc)
		}
		return tok
	})
}

func parseWallClock(v string, loc *time.Location) (time.Time, error) {
	// ParseInLocation accepts single-digit hours; positional fields need the full width
	if len(v) != len(TimeLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, v)
	}
	t, err := time.ParseInLocation(TimeLayout, v, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidTime, v, err)
	}
	return t, nil
}

func tokenName(tok string) string {
	tok = strings.TrimPrefix(tok, "$")
	return tok[1 : len(tok)-1]
}

func (w window) resolve(name string, loc *time.Location) (string, bool) {
	switch name {
	case "utc", "start":
		return strconv.FormatInt(w.start, 10), true
	case "lutc", "now", "timestamp":
		return strconv.FormatInt(w.now, 10), true
	case "utcend", "end":
		return strconv.FormatInt(w.end, 10), true
	case "duration":
		return strconv.FormatInt(w.duration, 10), true
	case "catchup-id":
		return w.id, true
	case "Y", "m", "d", "H", "M", "S":
		return w.fields[name], true
	}

	src, arg, ok := strings.Cut(name, ":")
	if !ok {
		return "", false
	}
	switch src {
	case "duration", "offset":
		if !intRe.MatchString(arg) {
			return "", false
		}
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || n == 0 {
			return "", false
		}
		v := w.duration
		if src == "offset" {
			v = w.offset
		}
		return strconv.FormatInt(floorDiv(v, n), 10), true
	}
	if !fieldsRe.MatchString(arg) {
		return "", false
	}
	switch src {
	case "utc", "start":
		return formatFields(w.start, arg, loc), true
	case "lutc", "now", "timestamp":
		return formatFields(w.now, arg, loc), true
	case "utcend", "end":
		return formatFields(w.end, arg, loc), true
	}
	return "", false
}

func isNowSource(src string) bool {
	return src == "lutc" || src == "now" || src == "timestamp"
}

// formatFields renders ts field by field, e.g. "Y-m-d" -> "2024-01-31".
func formatFields(ts int64, fields string, loc *time.Location) string {
	t := time.Unix(ts, 0).In(loc)
	var b strings.Builder
	for _, c := range fields {
		switch c {
		case 'Y':
			fmt.Fprintf(&b, "%04d", t.Year())
		case 'm':
			fmt.Fprintf(&b, "%02d", int(t.Month()))
		case 'd':
			fmt.Fprintf(&b, "%02d", t.Day())
		case 'H':
			fmt.Fprintf(&b, "%02d", t.Hour())
		case 'M':
			fmt.Fprintf(&b, "%02d", t.Minute())
		case 'S':
			fmt.Fprintf(&b, "%02d", t.Second())
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
