package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"SePushMonitor/internal/domain"
)

func TestToStatusDerivesAggregate(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"status": {
			"eskom": {
				"name": "National",
				"stage": "2",
				"stage_updated": "2026-03-10T08:00:00+02:00",
				"next_stages": [
					{"stage": "3", "stage_start_timestamp": "2026-03-10T16:00:00+02:00"}
				]
			},
			"capetown": {
				"name": "Cape Town",
				"stage": "1",
				"stage_updated": "2026-03-10T08:00:00+02:00",
				"next_stages": []
			}
		}
	}`)

	var resp domain.StatusResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	status := ToStatus(resp)
	if status.Eskom.Name != "National" || status.Eskom.Stage != "2" {
		t.Fatalf("unexpected eskom mapping: %+v", status.Eskom)
	}
	if len(status.Eskom.NextStages) != 1 || status.Eskom.NextStages[0].Stage != "3" {
		t.Fatalf("unexpected next stages: %+v", status.Eskom.NextStages)
	}
	if len(status.All) != 2 {
		t.Fatalf("expected aggregate of 2 locations, got %d", len(status.All))
	}
	if status.All[0].Name != status.Eskom.Name || status.All[1].Name != status.CapeTown.Name {
		t.Fatal("aggregate order must be eskom then capetown")
	}
}

func TestToAreaInfoDerivesStageNumbers(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"events": [
			{"end": "2026-03-10T22:30:00+02:00", "note": "Stage 2", "start": "2026-03-10T20:00:00+02:00"},
			{"end": "bogus", "note": "Stage 1", "start": "also bogus"}
		],
		"info": {"name": "Sandton", "region": "Johannesburg"},
		"schedule": {
			"days": [
				{
					"date": "2026-03-10",
					"name": "Tuesday",
					"stages": [["16:00-18:30"], ["16:00-18:30", "20:00-22:30"]]
				}
			],
			"source": "https://example.test/schedule"
		}
	}`)

	var resp domain.AreaInfoResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	info := ToAreaInfo(resp, "jhb-sandton")
	if info.AreaInfoID != "jhb-sandton" {
		t.Fatalf("unexpected area id: %s", info.AreaInfoID)
	}
	if info.Info.Name != "Sandton" {
		t.Fatalf("unexpected info: %+v", info.Info)
	}

	day := info.Schedule.Days[0]
	if day.Stages[0].Stage != 1 || day.Stages[0].Name != "Stage 1" {
		t.Fatalf("first slot group must be stage 1: %+v", day.Stages[0])
	}
	if day.Stages[1].Stage != 2 || len(day.Stages[1].TimeSlots) != 2 {
		t.Fatalf("second slot group must be stage 2: %+v", day.Stages[1])
	}

	wantStart := time.Date(2026, time.March, 10, 20, 0, 0, 0, time.FixedZone("", 2*60*60))
	if !info.Events[0].Start.Equal(wantStart) {
		t.Fatalf("unexpected event start: %v", info.Events[0].Start)
	}
	// Malformed timestamps degrade to zero instead of failing the mapping.
	if !info.Events[1].Start.IsZero() || !info.Events[1].End.IsZero() {
		t.Fatalf("malformed timestamps must map to zero: %+v", info.Events[1])
	}
}

func TestToAreasNearbyCarriesCoordinates(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"areas": [{"id": "a1", "name": "Rosebank", "region": "Johannesburg", "count": 12}]}`)
	var resp domain.AreasNearbyResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	nearby := ToAreasNearby(resp, -26.2041, 28.0473)
	if nearby.Latitude != -26.2041 || nearby.Longitude != 28.0473 {
		t.Fatalf("query coordinates not carried: %+v", nearby)
	}
	if len(nearby.Areas) != 1 || nearby.Areas[0].ID != "a1" || nearby.Areas[0].Count != 12 {
		t.Fatalf("unexpected areas: %+v", nearby.Areas)
	}
}

func TestToAllowanceMergesPriorBreakdown(t *testing.T) {
	t.Parallel()

	resp := domain.AllowanceResponse{Allowance: domain.Quota{Count: 21, Limit: 50, Type: "daily"}}

	fresh := ToAllowance(resp, nil)
	if fresh.APIUtilizationBreakdown != (domain.UsageBreakdown{}) {
		t.Fatalf("nil prior must start counters at zero: %+v", fresh.APIUtilizationBreakdown)
	}

	prior := domain.UsageBreakdown{GetStatus: 4, SearchArea: 1}
	merged := ToAllowance(resp, &prior)
	if merged.APIUtilizationBreakdown != prior {
		t.Fatalf("prior counters must survive the refresh: %+v", merged.APIUtilizationBreakdown)
	}
	if merged.Allowance.Count != 21 || merged.Allowance.Limit != 50 {
		t.Fatalf("unexpected quota: %+v", merged.Allowance)
	}
}
