package models

// CentreSummary is one row of the filtered centre list. Pointer fields are
// nullable in storage.
type CentreSummary struct {
    LocationID      string   `json:"location_id"`
    Name            *string  `json:"name"`
    Address         *string  `json:"address"`
    District        *string  `json:"district"`
    FacilityType    *string  `json:"facility_type"`
    Accessibility   *string  `json:"accessibility"`
    Phone           *string  `json:"phone"`
    URL             *string  `json:"url"`
    Lon             *float64 `json:"lon"`
    Lat             *float64 `json:"lat"`
    DropinCount     int      `json:"dropin_count"`
    RegisteredCount int      `json:"registered_count"`
    TotalPrograms   int      `json:"total_programs"`
}

type CentreDetail struct {
    LocationID     string   `json:"location_id"`
    Name           *string  `json:"name"`
    AssetName      *string  `json:"asset_name"`
    LocationName   *string  `json:"location_name"`
    Address        *string  `json:"address"`
    District       *string  `json:"district"`
    FacilityType   *string  `json:"facility_type"`
    Amenities      *string  `json:"amenities"`
    Accessibility  *string  `json:"accessibility"`
    Intersection   *string  `json:"intersection"`
    TTCInformation *string  `json:"ttc_information"`
    Phone          *string  `json:"phone"`
    URL            *string  `json:"url"`
    Description    *string  `json:"description"`
    PostalCode     *string  `json:"postal_code"`
    Lon            *float64 `json:"lon"`
    Lat            *float64 `json:"lat"`
}

type NearbyCentre struct {
    LocationID    string   `json:"location_id"`
    Name          *string  `json:"name"`
    Address       *string  `json:"address"`
    District      *string  `json:"district"`
    FacilityType  *string  `json:"facility_type"`
    Lon           *float64 `json:"lon"`
    Lat           *float64 `json:"lat"`
    DistanceKM    float64  `json:"distance_km"`
    TotalPrograms int      `json:"total_programs"`
}
