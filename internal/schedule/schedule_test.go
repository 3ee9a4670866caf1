package schedule

import (
	"reflect"
	"testing"
	"time"

	"SePushMonitor/internal/domain"
)

func TestDayTimeSegments(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 10, 13, 40, 0, 0, time.UTC)
	segments := DayTimeSegments(now)

	if len(segments) != 48 {
		t.Fatalf("expected 48 segments, got %d", len(segments))
	}
	if segments[0].FromTime != "00:00" || segments[0].ToTime != "00:30" {
		t.Fatalf("unexpected first segment: %+v", segments[0])
	}
	if segments[47].FromTime != "23:30" || segments[47].ToTime != "00:00" {
		t.Fatalf("unexpected last segment: %+v", segments[47])
	}

	var current []int
	for i, segment := range segments {
		if segment.Active || segment.Color != InactiveColor {
			t.Fatalf("segment %d must start inactive: %+v", i, segment)
		}
		if segment.CurrentTime {
			current = append(current, i)
		}
	}
	// 13:40 falls in the 13:30-14:00 cell, index 27.
	if len(current) != 1 || current[0] != 27 {
		t.Fatalf("expected exactly segment 27 current, got %v", current)
	}
}

func TestStageColor(t *testing.T) {
	t.Parallel()

	if got := StageColor(0); got != "stage0" {
		t.Fatalf("stage 0: %s", got)
	}
	if got := StageColor(4); got != "stage4" {
		t.Fatalf("stage 4: %s", got)
	}
	if got := StageColor(9); got != "stage6" {
		t.Fatalf("stage above palette must clamp: %s", got)
	}
	if got := StageColor(-1); got != "stage0" {
		t.Fatalf("negative stage must clamp: %s", got)
	}
}

func TestApplyScheduleColorsLiveSlots(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	day := domain.AreaInfoDay{
		Date: "2026-03-10",
		Stages: []domain.StageSchedule{
			{Name: "Stage 2", Stage: 2, TimeSlots: []string{"08:00-10:30", "16:00-18:30"}},
		},
	}
	events := []domain.AreaEvent{
		{
			Note:  "Stage 2",
			Start: time.Date(2026, time.March, 10, 16, 0, 0, 0, time.UTC),
			End:   time.Date(2026, time.March, 10, 18, 30, 0, 0, time.UTC),
		},
	}

	segments := DayTimeSegments(now)
	applied := ApplySchedule(segments, day, events, now)

	// The morning slot already ended; nothing before noon gets colored.
	for i := 0; i < 32; i++ {
		if applied[i].Active {
			t.Fatalf("segment %d (%s) must stay inactive", i, applied[i].FromTime)
		}
	}
	// 16:00-18:30 covers indexes 32..36.
	for i := 32; i <= 36; i++ {
		if !applied[i].Active || applied[i].Color != "stage2" {
			t.Fatalf("segment %d (%s) must be stage2: %+v", i, applied[i].FromTime, applied[i])
		}
	}
	if applied[37].Active {
		t.Fatalf("segment past the slot end must stay inactive: %+v", applied[37])
	}

	// The range start is upcoming, so its first segment carries the label.
	if !applied[32].ShowLabel {
		t.Fatal("first segment of an upcoming range must show the label")
	}
	if applied[33].ShowLabel {
		t.Fatal("only the first segment carries the label")
	}

	// Input stays untouched.
	if segments[32].Active {
		t.Fatal("ApplySchedule must not mutate its input")
	}
}

func TestApplyScheduleIgnoresSlotsWithoutMatchingEvent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	day := domain.AreaInfoDay{
		Date: "2026-03-10",
		Stages: []domain.StageSchedule{
			{Name: "Stage 3", Stage: 3, TimeSlots: []string{"16:00-18:30"}},
		},
	}
	// Only a stage 2 event is active; the stage 3 slot stays dark.
	events := []domain.AreaEvent{
		{
			Note:  "Stage 2",
			Start: time.Date(2026, time.March, 10, 16, 0, 0, 0, time.UTC),
			End:   time.Date(2026, time.March, 10, 18, 30, 0, 0, time.UTC),
		},
	}

	applied := ApplySchedule(DayTimeSegments(now), day, events, now)
	for i, segment := range applied {
		if segment.Active {
			t.Fatalf("segment %d must stay inactive without a matching event", i)
		}
	}
}

func TestFilterUpcoming(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	info := domain.AreaInfo{
		AreaInfoID: "jhb-sandton",
		Events: []domain.AreaEvent{
			{
				Note:  "Stage 2",
				Start: time.Date(2026, time.March, 10, 16, 0, 0, 0, time.UTC),
				End:   time.Date(2026, time.March, 10, 18, 30, 0, 0, time.UTC),
			},
		},
		Schedule: domain.AreaSchedule{
			Days: []domain.AreaInfoDay{
				{
					Date: "2026-03-10",
					Name: "Tuesday",
					Stages: []domain.StageSchedule{
						{Name: "Stage 1", Stage: 1, TimeSlots: []string{"16:00-18:30"}},
						{Name: "Stage 2", Stage: 2, TimeSlots: []string{"08:00-10:30", "16:00-18:30"}},
					},
				},
				{
					Date: "2026-03-11",
					Name: "Wednesday",
					Stages: []domain.StageSchedule{
						{Name: "Stage 2", Stage: 2, TimeSlots: []string{"16:00-18:30"}},
					},
				},
			},
		},
	}
	original := info.Schedule.Days[0].Stages[1].TimeSlots

	days := FilterUpcoming(info, now)

	// Only the stage 2 slot overlapping the live event survives; the morning
	// slot has ended and the stage 1 slot has no matching event. The second
	// day's slot window does not overlap the event.
	if len(days) != 1 {
		t.Fatalf("expected 1 surviving day, got %d", len(days))
	}
	if len(days[0].Stages) != 1 || days[0].Stages[0].Stage != 2 {
		t.Fatalf("unexpected surviving stages: %+v", days[0].Stages)
	}
	if !reflect.DeepEqual(days[0].Stages[0].TimeSlots, []string{"16:00-18:30"}) {
		t.Fatalf("unexpected surviving slots: %v", days[0].Stages[0].TimeSlots)
	}

	// The input was not mutated and a second call repeats the result.
	if !reflect.DeepEqual(info.Schedule.Days[0].Stages[1].TimeSlots, original) {
		t.Fatal("FilterUpcoming must not mutate its input")
	}
	again := FilterUpcoming(info, now)
	if !reflect.DeepEqual(days, again) {
		t.Fatal("FilterUpcoming must be repeatable")
	}
}

func TestSlotWindowWrapsMidnight(t *testing.T) {
	t.Parallel()

	start, end, ok := slotWindow("2026-03-10", "22:00-00:30", time.UTC)
	if !ok {
		t.Fatal("slotWindow rejected a valid slot")
	}
	if start.Day() != 10 || end.Day() != 11 {
		t.Fatalf("end must roll into the next day: %v .. %v", start, end)
	}
	if end.Sub(start) != 2*time.Hour+30*time.Minute {
		t.Fatalf("unexpected window length: %v", end.Sub(start))
	}
}

func TestEventStage(t *testing.T) {
	t.Parallel()

	if got := EventStage("Stage 4"); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	if got := EventStage("Load Shedding Stage 2 (Eskom)"); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := EventStage("maintenance"); got != 0 {
		t.Fatalf("unrecognized note must report 0, got %d", got)
	}
}

func TestMinutesUntilNextUTCDay(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 10, 23, 0, 0, 0, time.UTC)
	if got := MinutesUntilNextUTCDay(now); got != 60 {
		t.Fatalf("expected 60, got %d", got)
	}

	// Partial minutes round up so the entry survives to the boundary.
	now = time.Date(2026, time.March, 10, 23, 59, 30, 0, time.UTC)
	if got := MinutesUntilNextUTCDay(now); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}

	now = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	if got := MinutesUntilNextUTCDay(now); got != 24*60 {
		t.Fatalf("expected a full day, got %d", got)
	}
}
