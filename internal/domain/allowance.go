package domain

// Endpoint identifies a quota-counted remote operation for usage tracking.
type Endpoint string

const (
	EndpointGetStatus          Endpoint = "getStatus"
	EndpointGetAreaInformation Endpoint = "getAreaInformation"
	EndpointGetAreasNearby     Endpoint = "getAreasNearby"
	EndpointSearchArea         Endpoint = "searchArea"
	EndpointGetTopicsNearby    Endpoint = "getTopicsNearby"
)

// Quota is the remote-side subscription allowance.
type Quota struct {
	Count int    `json:"count"`
	Limit int    `json:"limit"`
	Type  string `json:"type"`
}

// UsageBreakdown tracks locally how many calls each endpoint consumed.
// Counters are monotonically non-decreasing within a quota period.
type UsageBreakdown struct {
	GetStatus          int `json:"getStatus"`
	GetAreaInformation int `json:"getAreaInformation"`
	GetAreasNearby     int `json:"getAreasNearby"`
	SearchArea         int `json:"searchArea"`
	GetTopicsNearby    int `json:"getTopicsNearby"`
}

// Increment bumps the counter for one endpoint.
func (b *UsageBreakdown) Increment(endpoint Endpoint) {
	switch endpoint {
	case EndpointGetStatus:
		b.GetStatus++
	case EndpointGetAreaInformation:
		b.GetAreaInformation++
	case EndpointGetAreasNearby:
		b.GetAreasNearby++
	case EndpointSearchArea:
		b.SearchArea++
	case EndpointGetTopicsNearby:
		b.GetTopicsNearby++
	}
}

// Allowance pairs the remote quota figures with the local usage breakdown.
// Fresh remote figures never reset the local counters.
type Allowance struct {
	Allowance               Quota          `json:"allowance"`
	APIUtilizationBreakdown UsageBreakdown `json:"apiUtilizationBreakdown"`
}
