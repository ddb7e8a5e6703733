package schedule

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/workhive-app/workhive-backend-go/internal/domain/schedule"
)

const (
	// DefaultOccurrenceLimit caps how many occurrences one generation run may
	// produce. 365 is also the hard ceiling.
	DefaultOccurrenceLimit = 365
	MaxOccurrenceLimit     = 365

	minShiftDuration     = 30 * time.Minute
	maxShiftDuration     = 72 * time.Hour
	defaultShiftDuration = 4 * time.Hour

	defaultWindowDays   = 35
	monthlyWindowMonths = 6
)

// GenerateOccurrences expands a schedule rule into concrete shift intervals.
// All computation is in UTC. Occurrences whose end is not strictly after now
// are excluded, so calling twice at the same instant yields the same set.
func GenerateOccurrences(rule schedule.Rule, now time.Time, limit int) []schedule.Occurrence {
	if limit <= 0 || limit > MaxOccurrenceLimit {
		limit = DefaultOccurrenceLimit
	}
	now = now.UTC()

	switch rule.Recurrence {
	case schedule.RecurrenceOneTime:
		return generateOneTime(rule, now)
	case schedule.RecurrenceCustom:
		return generateCustom(rule, now, limit)
	default:
		// weekly, monthly, and unrecognized recurrences all walk the window.
		return generateRecurring(rule, now, limit)
	}
}

func generateOneTime(rule schedule.Rule, now time.Time) []schedule.Occurrence {
	start := combineDayAndClock(startOfDay(rule.StartDate), startClock(rule))

	var end time.Time
	if rule.EndDate != nil && rule.EndDate.After(start) && rule.EndDate.Sub(start) <= maxShiftDuration {
		end = rule.EndDate.UTC()
	} else {
		end = start.Add(ruleDuration(rule))
	}

	if !end.After(now) {
		return nil
	}
	return []schedule.Occurrence{{Start: start, End: end}}
}

func generateRecurring(rule schedule.Rule, now time.Time, limit int) []schedule.Occurrence {
	dur := ruleDuration(rule)
	clock := startClock(rule)

	windowStart := startOfDay(rule.StartDate)
	if today := startOfDay(now); today.After(windowStart) {
		windowStart = today
	}

	var windowEnd time.Time
	if rule.EndDate != nil && !startOfDay(*rule.EndDate).Before(windowStart) {
		windowEnd = startOfDay(*rule.EndDate)
	} else if rule.Recurrence == schedule.RecurrenceMonthly {
		windowEnd = windowStart.AddDate(0, monthlyWindowMonths, 0)
	} else {
		windowEnd = windowStart.AddDate(0, 0, defaultWindowDays)
	}

	targets := resolveWorkDays(rule.WorkDays, rule.StartDate.UTC().Weekday())

	var occurrences []schedule.Occurrence
	for day := windowStart; !day.After(windowEnd); day = day.AddDate(0, 0, 1) {
		if !targets[day.Weekday()] {
			continue
		}
		start := combineDayAndClock(day, clock)
		end := start.Add(dur)
		if !end.After(now) {
			continue
		}
		occurrences = append(occurrences, schedule.Occurrence{Start: start, End: end})
		if len(occurrences) >= limit {
			break
		}
	}
	return occurrences
}

func generateCustom(rule schedule.Rule, now time.Time, limit int) []schedule.Occurrence {
	dates := rule.CustomDates
	if len(dates) == 0 {
		// Older rules stored custom dates in WorkDays.
		dates = rule.WorkDays
	}

	seen := make(map[string]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		d = strings.TrimSpace(d)
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, parsed)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	dur := ruleDuration(rule)
	clock := startClock(rule)

	var occurrences []schedule.Occurrence
	for _, day := range days {
		start := combineDayAndClock(day, clock)
		end := start.Add(dur)
		if !end.After(now) {
			continue
		}
		occurrences = append(occurrences, schedule.Occurrence{Start: start, End: end})
		if len(occurrences) >= limit {
			break
		}
	}
	return occurrences
}

// ruleDuration derives the per-occurrence duration from the rule's
// time-of-day parts. A window wrapping past midnight gains 24 hours before
// the difference is taken. The result is clamped to [30m, 72h].
func ruleDuration(rule schedule.Rule) time.Duration {
	dur := defaultShiftDuration

	if rule.StartTime != nil && rule.EndTime != nil {
		startSec, okStart := parseTimeOfDay(*rule.StartTime)
		endSec, okEnd := parseTimeOfDay(*rule.EndTime)
		if okStart && okEnd {
			diff := endSec - startSec
			if diff <= 0 {
				diff += 24 * 3600
			}
			dur = time.Duration(diff) * time.Second
		}
	}

	return clampDuration(dur)
}

func clampDuration(d time.Duration) time.Duration {
	if d < minShiftDuration {
		return minShiftDuration
	}
	if d > maxShiftDuration {
		return maxShiftDuration
	}
	return d
}

type clockTime struct {
	hour, minute, second int
}

// startClock resolves the time-of-day occurrences begin at: the rule's
// start-time part when present, else the start date's own clock time.
func startClock(rule schedule.Rule) clockTime {
	if rule.StartTime != nil {
		if sec, ok := parseTimeOfDay(*rule.StartTime); ok {
			return clockTime{hour: sec / 3600, minute: (sec / 60) % 60, second: sec % 60}
		}
	}
	t := rule.StartDate.UTC()
	return clockTime{hour: t.Hour(), minute: t.Minute(), second: t.Second()}
}

// parseTimeOfDay parses "15:04" or "15:04:05" into seconds since midnight.
func parseTimeOfDay(s string) (int, bool) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("15:04", s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return 0, false
		}
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), true
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func combineDayAndClock(day time.Time, c clockTime) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.hour, c.minute, c.second, 0, time.UTC)
}

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

// resolveWorkDays maps workday tokens onto a weekday set. Tokens may be
// numeric indices (0=Sunday), weekday names or unambiguous prefixes, or the
// groups weekday/weekend/daily/all. An empty or unresolvable set falls back
// to the single weekday of the rule's start date.
func resolveWorkDays(tokens []string, fallback time.Weekday) map[time.Weekday]bool {
	targets := make(map[time.Weekday]bool)

	for _, token := range tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}

		switch token {
		case "weekday", "weekdays":
			for d := time.Monday; d <= time.Friday; d++ {
				targets[d] = true
			}
			continue
		case "weekend", "weekends":
			targets[time.Saturday] = true
			targets[time.Sunday] = true
			continue
		case "daily", "all":
			for d := time.Sunday; d <= time.Saturday; d++ {
				targets[d] = true
			}
			continue
		}

		if n, err := strconv.Atoi(token); err == nil {
			if n >= 0 && n <= 6 {
				targets[time.Weekday(n)] = true
			}
			continue
		}

		if day, ok := matchWeekdayName(token); ok {
			targets[day] = true
		}
	}

	if len(targets) == 0 {
		targets[fallback] = true
	}
	return targets
}

func matchWeekdayName(token string) (time.Weekday, bool) {
	var match time.Weekday
	count := 0
	for day, name := range weekdayNames {
		if strings.HasPrefix(name, token) {
			match = day
			count++
		}
	}
	if count == 1 {
		return match, true
	}
	return 0, false
}
