package models

// Facility is a sub-resource at a centre (a specific court, pool, rink, ...).
type Facility struct {
    FacilityID       *string `json:"facility_id"`
    FacilityType     *string `json:"facility_type"`
    FacilityTypeCode *string `json:"facility_type_code"`
    AssetName        *string `json:"asset_name"`
    Permit           *string `json:"permit"`
    FacilityRating   *string `json:"facility_rating"`
}
