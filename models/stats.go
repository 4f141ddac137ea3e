package models

type ActivityCount struct {
    Activity  string `json:"activity"`
    Count     int    `json:"count"`
    Locations int    `json:"locations"`
}

type DistrictCount struct {
    District      string `json:"district"`
    LocationCount int    `json:"location_count"`
}

type FacilityTypeCount struct {
    FacilityType string `json:"facility_type"`
    Count        int    `json:"count"`
}

type SummaryStats struct {
    TotalLocations      int `json:"total_locations"`
    LocationsWithCoords int `json:"locations_with_coords"`
    DropinPrograms      int `json:"dropin_programs"`
    RegisteredPrograms  int `json:"registered_programs"`
    TotalFacilities     int `json:"total_facilities"`
    TotalWards          int `json:"total_wards"`
    Districts           int `json:"districts"`
    FacilityTypes       int `json:"facility_types"`
}

type DistrictStats struct {
    District           string `json:"district"`
    Locations          int    `json:"locations"`
    DropinPrograms     int    `json:"dropin_programs"`
    RegisteredPrograms int    `json:"registered_programs"`
    Facilities         int    `json:"facilities"`
}

// TypeCountPair is the per-program-type slice of the search stats response.
type TypeCountPair struct {
    Programs int `json:"programs"`
    Centres  int `json:"centres"`
}

type SearchStats struct {
    Dropin     TypeCountPair `json:"dropin"`
    Registered TypeCountPair `json:"registered"`
    Total      TypeCountPair `json:"total"`
}
