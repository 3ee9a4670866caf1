// Package mapper holds the pure transformations from raw EskomSePush
// payloads to internal entities. Mapping is total: well-formed payloads
// never fail, and malformed timestamps degrade to zero values.
package mapper

import (
	"fmt"
	"time"

	"SePushMonitor/internal/domain"
)

// ToStatus denormalizes the status payload and derives the aggregate list.
func ToStatus(data domain.StatusResponse) domain.Status {
	eskom := toStatusLocation(data.Status.Eskom)
	capeTown := toStatusLocation(data.Status.CapeTown)
	return domain.Status{
		Eskom:    eskom,
		CapeTown: capeTown,
		All:      []domain.StatusLocation{eskom, capeTown},
	}
}

func toStatusLocation(raw domain.RawStatusLocation) domain.StatusLocation {
	next := make([]domain.NextStage, 0, len(raw.NextStages))
	for _, stage := range raw.NextStages {
		next = append(next, domain.NextStage{
			Stage:         stage.Stage,
			StageStartsAt: stage.StageStartTimestamp,
		})
	}
	return domain.StatusLocation{
		Name:         raw.Name,
		Stage:        raw.Stage,
		StageUpdated: raw.StageUpdated,
		NextStages:   next,
	}
}

// ToAreaInfo maps a schedule payload, carrying the areaInfoID the schedule
// was requested for and deriving the stage number of each slot group from
// its position.
func ToAreaInfo(data domain.AreaInfoResponse, areaInfoID string) domain.AreaInfo {
	days := make([]domain.AreaInfoDay, 0, len(data.Schedule.Days))
	for _, day := range data.Schedule.Days {
		stages := make([]domain.StageSchedule, 0, len(day.Stages))
		for i, slots := range day.Stages {
			stage := i + 1
			stages = append(stages, domain.StageSchedule{
				Name:      fmt.Sprintf("Stage %d", stage),
				Stage:     stage,
				TimeSlots: slots,
			})
		}
		days = append(days, domain.AreaInfoDay{
			Date:   day.Date,
			Name:   day.Name,
			Stages: stages,
		})
	}

	events := make([]domain.AreaEvent, 0, len(data.Events))
	for _, event := range data.Events {
		events = append(events, domain.AreaEvent{
			Note:  event.Note,
			Start: parseEventTime(event.Start),
			End:   parseEventTime(event.End),
		})
	}

	return domain.AreaInfo{
		AreaInfoID: areaInfoID,
		Info: domain.Area{
			Name:   data.Info.Name,
			Region: data.Info.Region,
		},
		Events: events,
		Schedule: domain.AreaSchedule{
			Days:   days,
			Source: data.Schedule.Source,
		},
	}
}

// ToAreasNearby carries the query coordinates into the entity so cache
// validity can be checked by value equality later.
func ToAreasNearby(data domain.AreasNearbyResponse, lat, long float64) domain.AreasNearby {
	areas := make([]domain.NearbyArea, 0, len(data.Areas))
	for _, area := range data.Areas {
		areas = append(areas, domain.NearbyArea{
			Area: domain.Area{
				ID:     area.ID,
				Name:   area.Name,
				Region: area.Region,
			},
			Count: area.Count,
		})
	}
	return domain.AreasNearby{
		Areas:     areas,
		Latitude:  lat,
		Longitude: long,
	}
}

// ToAreaSearch maps a name-search payload.
func ToAreaSearch(data domain.AreaSearchResponse) domain.AreaSearch {
	areas := make([]domain.Area, 0, len(data.Areas))
	for _, area := range data.Areas {
		areas = append(areas, domain.Area{
			ID:     area.ID,
			Name:   area.Name,
			Region: area.Region,
		})
	}
	return domain.AreaSearch{Areas: areas}
}

// ToTopicsNearby maps the topic feed payload.
func ToTopicsNearby(data domain.TopicsNearbyResponse) domain.TopicsNearby {
	topics := make([]domain.Topic, 0, len(data.Topics))
	for _, topic := range data.Topics {
		topics = append(topics, domain.Topic{
			Active:    topic.Active,
			Body:      topic.Body,
			Category:  topic.Category,
			Distance:  topic.Distance,
			Followers: topic.Followers,
			Timestamp: topic.Timestamp,
		})
	}
	return domain.TopicsNearby{Topics: topics}
}

// ToAllowance merges fresh remote quota figures with the prior local
// breakdown; the payload itself never carries the per-endpoint counters, so
// a nil prior starts them at zero.
func ToAllowance(data domain.AllowanceResponse, prior *domain.UsageBreakdown) domain.Allowance {
	breakdown := domain.UsageBreakdown{}
	if prior != nil {
		breakdown = *prior
	}
	return domain.Allowance{
		Allowance:               data.Allowance,
		APIUtilizationBreakdown: breakdown,
	}
}

func parseEventTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
