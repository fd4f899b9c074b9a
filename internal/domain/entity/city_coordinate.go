package entity

// CityCoordinateEntry is one row of the static coordinate table. Absent
// lat/lon is a valid state meaning the name is known but its location is not.
type CityCoordinateEntry struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// CoordinateTable maps canonical city names to their coordinates. It is
// loaded once at startup and never mutated, so concurrent reads are safe.
type CoordinateTable map[string]CityCoordinateEntry
