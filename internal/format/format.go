// Package format renders date/time layout strings built from a small token
// vocabulary (YYYY, MM, DD, ...). Anything that is not a token passes
// through verbatim.
package format

import (
	"fmt"
	"strings"
	"time"
)

// tokens in match order: longer tokens shadow their shorter prefixes
// (MMMM before MMM before MM).
var tokens = []string{"YYYY", "MMMM", "MMM", "MM", "DD", "HH", "hh", "mm", "ss", "A"}

// Render substitutes the recognized tokens in layout with the corresponding
// parts of t. The scan is single-pass, left-to-right, and each token kind is
// substituted at most once: a token appearing twice stays literal on its
// second occurrence. That matches the behavior stamped photos have always
// had, so keep it.
func Render(layout string, t time.Time) string {
	var b strings.Builder
	b.Grow(len(layout))

	used := make(map[string]bool, len(tokens))
	for i := 0; i < len(layout); {
		matched := false
		for _, tok := range tokens {
			if used[tok] || !strings.HasPrefix(layout[i:], tok) {
				continue
			}
			b.WriteString(value(tok, t))
			used[tok] = true
			i += len(tok)
			matched = true
			break
		}
		if !matched {
			b.WriteByte(layout[i])
			i++
		}
	}
	return b.String()
}

// Combine joins a date layout and a time layout with a single space. An
// empty time layout yields the date layout alone.
func Combine(dateLayout, timeLayout string) string {
	if strings.TrimSpace(timeLayout) == "" {
		return dateLayout
	}
	return dateLayout + " " + timeLayout
}

// timeTokens are the tokens DateOnly strips. Case matters: mm is minutes,
// MM is months.
var timeTokens = []string{"HH", "hh", "mm", "ss", "A"}

// DateOnly reduces a layout to its date portion by dropping every
// whitespace-separated field that carries a time token, so a stored layout
// like "YYYY-MM-DD HH:mm" can be recombined with a different time layout.
func DateOnly(layout string) string {
	var kept []string
fields:
	for _, field := range strings.Fields(layout) {
		for _, tok := range timeTokens {
			if strings.Contains(field, tok) {
				continue fields
			}
		}
		kept = append(kept, field)
	}
	return strings.Join(kept, " ")
}

func value(tok string, t time.Time) string {
	switch tok {
	case "YYYY":
		return fmt.Sprintf("%04d", t.Year())
	case "MMMM":
		return t.Month().String()
	case "MMM":
		return t.Month().String()[:3]
	case "MM":
		return fmt.Sprintf("%02d", int(t.Month()))
	case "DD":
		return fmt.Sprintf("%02d", t.Day())
	case "HH":
		return fmt.Sprintf("%02d", t.Hour())
	case "hh":
		h := t.Hour() % 12
		if h == 0 {
			h = 12 // noon and midnight read as 12, not 00
		}
		return fmt.Sprintf("%02d", h)
	case "mm":
		return fmt.Sprintf("%02d", t.Minute())
	case "ss":
		return fmt.Sprintf("%02d", t.Second())
	case "A":
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"
	}
	return tok
}

// DatePresets are the named date layouts offered alongside a raw format
// string.
var DatePresets = map[string]string{
	"iso":   "YYYY-MM-DD",
	"us":    "MM/DD/YYYY",
	"eu":    "DD/MM/YYYY",
	"long":  "MMMM DD, YYYY",
	"short": "MMM DD, YYYY",
	"dots":  "YYYY.MM.DD",
}

// TimePresets are the named time layouts. "none" leaves the date alone.
var TimePresets = map[string]string{
	"none":    "",
	"24h":     "HH:mm",
	"seconds": "HH:mm:ss",
	"12h":     "hh:mm A",
}
