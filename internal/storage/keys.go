package storage

// Logical cache keys, one per entity kind. These are an external contract:
// consumers address entries with exactly these names.
const (
	KeyUserSettings      = "user-settings"
	KeySavedAreas        = "saved-areas"
	KeyAllowance         = "allowance"
	KeyStatus            = "status"
	KeyAreasNearby       = "areas-nearby"
	KeyAreaSearchResults = "area-search-results"
	KeyAreaInformation   = "area-information"
	KeyTopicsNearby      = "topics-nearby"
)

// APIManagedKeys lists entries owned by remote syncs, cleared on soft reset.
func APIManagedKeys() []string {
	return []string{
		KeyStatus,
		KeyAreasNearby,
		KeyAreaSearchResults,
		KeyAreaInformation,
		KeyTopicsNearby,
	}
}

// UserManagedKeys lists entries owned by the user, cleared on hard reset only.
func UserManagedKeys() []string {
	return []string{
		KeyUserSettings,
		KeySavedAreas,
		KeyAllowance,
	}
}
