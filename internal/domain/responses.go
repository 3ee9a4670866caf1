package domain

// Raw EskomSePush payload shapes. These mirror the wire contract only as far
// as the mapper consumes it; anything else the API returns is ignored.

// StatusResponse is the /status payload.
type StatusResponse struct {
	Status struct {
		CapeTown RawStatusLocation `json:"capetown"`
		Eskom    RawStatusLocation `json:"eskom"`
	} `json:"status"`
}

// RawStatusLocation is one region inside a StatusResponse.
type RawStatusLocation struct {
	Name         string `json:"name"`
	Stage        string `json:"stage"`
	StageUpdated string `json:"stage_updated"`
	NextStages   []struct {
		Stage               string `json:"stage"`
		StageStartTimestamp string `json:"stage_start_timestamp"`
	} `json:"next_stages"`
}

// AreaInfoResponse is the /area payload.
type AreaInfoResponse struct {
	Events []struct {
		End   string `json:"end"`
		Note  string `json:"note"`
		Start string `json:"start"`
	} `json:"events"`
	Info struct {
		Name   string `json:"name"`
		Region string `json:"region"`
	} `json:"info"`
	Schedule struct {
		Days []struct {
			Date   string     `json:"date"`
			Name   string     `json:"name"`
			Stages [][]string `json:"stages"`
		} `json:"days"`
		Source string `json:"source"`
	} `json:"schedule"`
}

// AreasNearbyResponse is the /areas_nearby payload.
type AreasNearbyResponse struct {
	Areas []struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Region string `json:"region"`
		Count  int    `json:"count"`
	} `json:"areas"`
}

// AreaSearchResponse is the /areas_search payload.
type AreaSearchResponse struct {
	Areas []struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Region string `json:"region"`
	} `json:"areas"`
}

// TopicsNearbyResponse is the /topics_nearby payload.
type TopicsNearbyResponse struct {
	Topics []struct {
		Active    string  `json:"active"`
		Body      string  `json:"body"`
		Category  string  `json:"category"`
		Distance  float64 `json:"distance"`
		Followers int     `json:"followers"`
		Timestamp string  `json:"timestamp"`
	} `json:"topics"`
}

// AllowanceResponse is the /api_allowance payload.
type AllowanceResponse struct {
	Allowance Quota `json:"allowance"`
}
