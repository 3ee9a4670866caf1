package domain

import "time"

// Area is a named geographic zone for which a schedule can be queried.
type Area struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// SavedAreas is the user's ordered area selection, persisted as one cache
// entry; every mutation re-writes the whole set.
type SavedAreas struct {
	Areas []Area `json:"areas"`
}

// AreaSearch holds the results of a name-based area lookup.
type AreaSearch struct {
	Areas []Area `json:"areas"`
}

// NearbyArea is an area close to a queried position.
type NearbyArea struct {
	Area
	Count int `json:"count"`
}

// AreasNearby is a geolocation-scoped result. Cache validity depends on the
// stored coordinates matching the current query, not just TTL.
type AreasNearby struct {
	Areas     []NearbyArea `json:"areas"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
}

// AreaEvent is a scheduled outage window for an area. Start/End are zero
// when the upstream timestamp was unparseable.
type AreaEvent struct {
	Note  string    `json:"note"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// StageSchedule groups one stage's time slots within a day.
type StageSchedule struct {
	Name      string   `json:"name"`
	Stage     int      `json:"stage"`
	TimeSlots []string `json:"timeSlots"`
}

// AreaInfoDay is one calendar day of an area's schedule.
type AreaInfoDay struct {
	Date   string          `json:"date"`
	Name   string          `json:"name"`
	Stages []StageSchedule `json:"stages"`
}

// AreaSchedule is the day list plus its upstream source attribution.
type AreaSchedule struct {
	Days   []AreaInfoDay `json:"days"`
	Source string        `json:"source"`
}

// AreaInfo is per-area schedule data keyed by AreaInfoID. Entries accumulate
// in a growing cache array rather than replacing each other.
type AreaInfo struct {
	AreaInfoID string       `json:"areaInfoId"`
	Info       Area         `json:"info"`
	Events     []AreaEvent  `json:"events"`
	Schedule   AreaSchedule `json:"schedule"`
}

// Topic is a crowd-sourced report near a position.
type Topic struct {
	Active    string  `json:"active"`
	Body      string  `json:"body"`
	Category  string  `json:"category"`
	Distance  float64 `json:"distance"`
	Followers int     `json:"followers"`
	Timestamp string  `json:"timestamp"`
}

// TopicsNearby is the geolocation-scoped topic feed.
type TopicsNearby struct {
	Topics []Topic `json:"topics"`
}
