package tool

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	contractx "github.com/qtickhq/agent-gateway/agent/contract"
)

var (
	timezoneTokenPattern = regexp.MustCompile(`(?i)\b(singapore|sg|sgt)\b`)
	clockPattern         = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
	dateClockPattern     = regexp.MustCompile(`(?i)(\d{4}-\d{2}-\d{2})\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
)

// singaporeLocation is the assumed timezone for natural language datetimes.
func singaporeLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Singapore")
	if err != nil {
		return time.FixedZone("SGT", 8*3600)
	}
	return loc
}

// executeDatetimeTool converts natural language like "tomorrow 5pm" into an
// ISO 8601 string. Unparseable text comes back as an error field in the
// result, not a fault, so the engine can rephrase and retry.
func executeDatetimeTool(tool string, args map[string]any) (contractx.ToolResult, error) {
	text, err := requireString(args, "text")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	result := parseNaturalDatetime(text, time.Now())
	return contractx.ToolResult{Tool: tool, Result: result}, nil
}

func parseNaturalDatetime(text string, now time.Time) map[string]any {
	loc := singaporeLocation()
	localNow := now.In(loc)

	cleaned := strings.TrimSpace(timezoneTokenPattern.ReplaceAllString(strings.TrimSpace(text), ""))

	if parsed, ok := parseExplicit(cleaned, loc); ok {
		return map[string]any{"iso8601": parsed.Format(time.RFC3339)}
	}

	lower := strings.ToLower(cleaned)
	if hour, minute, ok := extractClock(lower); ok {
		if dayOffset, matched := relativeDayOffset(lower); matched {
			target := localNow.AddDate(0, 0, dayOffset)
			parsed := time.Date(target.Year(), target.Month(), target.Day(), hour, minute, 0, 0, loc)
			return map[string]any{"iso8601": parsed.Format(time.RFC3339)}
		}
		if dayOffset, matched := weekdayOffset(lower, localNow, hour, minute); matched {
			target := localNow.AddDate(0, 0, dayOffset)
			parsed := time.Date(target.Year(), target.Month(), target.Day(), hour, minute, 0, 0, loc)
			return map[string]any{"iso8601": parsed.Format(time.RFC3339)}
		}
	}

	if m := dateClockPattern.FindStringSubmatch(cleaned); m != nil {
		date, err := time.ParseInLocation("2006-01-02", m[1], loc)
		if err == nil {
			hour, minute := applyMeridiem(m[2], m[3], m[4])
			parsed := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc)
			return map[string]any{"iso8601": parsed.Format(time.RFC3339)}
		}
	}

	return map[string]any{"error": fmt.Sprintf("Could not parse datetime from: %s", text)}
}

// parseExplicit covers machine-ish inputs the model sometimes hands over
// unchanged.
func parseExplicit(text string, loc *time.Location) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(time.RFC3339, text); err == nil {
		return parsed.In(loc), true
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if parsed, err := time.ParseInLocation(layout, text, loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func relativeDayOffset(lower string) (int, bool) {
	switch {
	case strings.Contains(lower, "tomorrow"):
		return 1, true
	case strings.Contains(lower, "today"), strings.Contains(lower, "tonight"):
		return 0, true
	default:
		return 0, false
	}
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// weekdayOffset resolves a weekday name to its next occurrence. A weekday
// matching today stays today while the requested clock time is still ahead,
// otherwise it rolls a full week forward.
func weekdayOffset(lower string, localNow time.Time, hour, minute int) (int, bool) {
	for name, day := range weekdayNames {
		if !strings.Contains(lower, name) {
			continue
		}
		offset := (int(day) - int(localNow.Weekday()) + 7) % 7
		if offset == 0 {
			sameDay := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), hour, minute, 0, 0, localNow.Location())
			if !sameDay.After(localNow) {
				offset = 7
			}
		}
		return offset, true
	}
	return 0, false
}

func extractClock(lower string) (int, int, bool) {
	m := clockPattern.FindStringSubmatch(lower)
	if m == nil {
		return 0, 0, false
	}
	hour, minute := applyMeridiem(m[1], m[2], m[3])
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

func applyMeridiem(rawHour, rawMinute, rawMeridiem string) (int, int) {
	hour, _ := strconv.Atoi(rawHour)
	minute := 0
	if rawMinute != "" {
		minute, _ = strconv.Atoi(rawMinute)
	}
	switch strings.ToLower(rawMeridiem) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	return hour, minute
}
