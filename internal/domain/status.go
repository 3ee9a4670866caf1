package domain

// NextStage is an announced future stage change for a status location.
type NextStage struct {
	Stage         string `json:"stage"`
	StageStartsAt string `json:"stageStartsAt"`
}

// StatusLocation is one region's current outage stage.
type StatusLocation struct {
	Name         string      `json:"name"`
	Stage        string      `json:"stage"`
	StageUpdated string      `json:"stageUpdated"`
	NextStages   []NextStage `json:"nextStages"`
}

// Status is the global outage-stage entity; replace-on-refresh semantics.
type Status struct {
	Eskom    StatusLocation   `json:"eskom"`
	CapeTown StatusLocation   `json:"capetown"`
	All      []StatusLocation `json:"all"`
}

// StageAlert announces that a location's stage changed between two syncs.
// Rendering is left to the outbound channel.
type StageAlert struct {
	Location string
	Stage    string
}
