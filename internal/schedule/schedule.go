// Package schedule computes time-segment charts, upcoming-event filtering
// and calendar-boundary arithmetic for load-shedding schedules. Every "now"
// comparison takes the instant as a parameter so callers can pin time.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"SePushMonitor/internal/domain"
)

// TimeSegment is one half-hour cell of a day chart.
type TimeSegment struct {
	Active      bool   `json:"active"`
	Color       string `json:"color"`
	FromTime    string `json:"fromTime"`
	ToTime      string `json:"toTime"`
	CurrentTime bool   `json:"currentTime"`
	ShowLabel   bool   `json:"showLabel"`
}

const segmentsPerDay = 48

// InactiveColor is the palette name of a segment with no outage.
const InactiveColor = "stage0"

// StageColor maps a stage number to its palette name; anything above the
// named range falls back to the highest band.
func StageColor(stage int) string {
	if stage < 0 {
		stage = 0
	}
	if stage > 6 {
		stage = 6
	}
	return fmt.Sprintf("stage%d", stage)
}

// DayTimeSegments produces the 48 fixed half-hour segments of a day, each
// inactive and flagged when now falls inside it.
func DayTimeSegments(now time.Time) []TimeSegment {
	nowMinutes := now.Hour()*60 + now.Minute()

	segments := make([]TimeSegment, 0, segmentsPerDay)
	for from := 0; from < 24*60; from += 30 {
		to := from + 30
		segments = append(segments, TimeSegment{
			Active:      false,
			Color:       InactiveColor,
			FromTime:    clockString(from),
			ToTime:      clockString(to),
			CurrentTime: nowMinutes >= from && nowMinutes < to,
		})
	}
	return segments
}

// clockString renders minutes-of-day as "HH:MM"; a day boundary wraps to
// "00:00".
func clockString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", (minutes/60)%24, minutes%60)
}

// ApplySchedule colors the live slot ranges of one day onto a fresh copy of
// segments. A slot is live when it overlaps an active event window of the
// same stage and its end is still in the future; the first segment of a
// live range is marked for labeling only while the range start is upcoming.
func ApplySchedule(segments []TimeSegment, day domain.AreaInfoDay, events []domain.AreaEvent, now time.Time) []TimeSegment {
	out := append([]TimeSegment(nil), segments...)

	for _, stage := range day.Stages {
		for _, slot := range stage.TimeSlots {
			start, end, ok := slotWindow(day.Date, slot, now.Location())
			if !ok || !slotLive(stage.Stage, start, end, events, now) {
				continue
			}

			fromIdx, toIdx := segmentRange(out, slot)
			if fromIdx < 0 {
				continue
			}
			for i := fromIdx; i < toIdx; i++ {
				out[i].Active = true
				out[i].Color = StageColor(stage.Stage)
			}
			if start.After(now) {
				out[fromIdx].ShowLabel = true
			}
		}
	}
	return out
}

// FilterUpcoming returns only the days, stages and slots that are still
// live. The input is never mutated and each call iterates from scratch.
func FilterUpcoming(info domain.AreaInfo, now time.Time) []domain.AreaInfoDay {
	var days []domain.AreaInfoDay
	for _, day := range info.Schedule.Days {
		var stages []domain.StageSchedule
		for _, stage := range day.Stages {
			var slots []string
			for _, slot := range stage.TimeSlots {
				start, end, ok := slotWindow(day.Date, slot, now.Location())
				if ok && slotLive(stage.Stage, start, end, info.Events, now) {
					slots = append(slots, slot)
				}
			}
			if len(slots) > 0 {
				stages = append(stages, domain.StageSchedule{
					Name:      stage.Name,
					Stage:     stage.Stage,
					TimeSlots: slots,
				})
			}
		}
		if len(stages) > 0 {
			days = append(days, domain.AreaInfoDay{
				Date:   day.Date,
				Name:   day.Name,
				Stages: stages,
			})
		}
	}
	return days
}

// MinutesUntilNextUTCDay sizes TTLs that must lapse at the next quota-reset
// boundary (midnight UTC). Rounds up so the entry survives to the boundary.
func MinutesUntilNextUTCDay(now time.Time) int {
	utc := now.UTC()
	boundary := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	remaining := boundary.Sub(utc)
	return int((remaining + time.Minute - 1) / time.Minute)
}

// slotLive applies the liveness rule: the slot's end is still in the
// future, and the slot overlaps at least one not-yet-ended event window of
// the matching stage.
func slotLive(stage int, slotStart, slotEnd time.Time, events []domain.AreaEvent, now time.Time) bool {
	if !slotEnd.After(now) {
		return false
	}
	for _, event := range events {
		if EventStage(event.Note) != stage {
			continue
		}
		if !event.End.After(now) {
			continue
		}
		if slotStart.Before(event.End) && slotEnd.After(event.Start) {
			return true
		}
	}
	return false
}

// EventStage extracts the stage number from an event note such as
// "Stage 2"; unrecognized notes report stage 0.
func EventStage(note string) int {
	for _, field := range strings.Fields(note) {
		if n, err := strconv.Atoi(field); err == nil {
			return n
		}
	}
	return 0
}

// slotWindow resolves a "HH:MM-HH:MM" slot on the given date to concrete
// instants in loc; an end at or before the start rolls into the next day.
func slotWindow(date, slot string, loc *time.Location) (time.Time, time.Time, bool) {
	parts := strings.Split(slot, "-")
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, false
	}

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	start, ok := clockOn(day, parts[0])
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := clockOn(day, parts[1])
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, true
}

func clockOn(day time.Time, clock string) (time.Time, bool) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), true
}

func segmentRange(segments []TimeSegment, slot string) (int, int) {
	parts := strings.Split(slot, "-")
	if len(parts) != 2 {
		return -1, -1
	}

	from := -1
	to := len(segments)
	for i, segment := range segments {
		if segment.FromTime == parts[0] {
			from = i
		}
		if segment.FromTime == parts[1] {
			to = i
		}
	}
	// A slot ending past midnight has no matching segment; color to the end
	// of the chart.
	if from >= 0 && to < from {
		to = len(segments)
	}
	return from, to
}
