package handlers

import (
    "net/http"

    "github.com/anne116/toronto-recreation-finder/config"
    "github.com/anne116/toronto-recreation-finder/models"
)

// GetSummaryStats returns overall dataset totals.
func GetSummaryStats(w http.ResponseWriter, r *http.Request) {
    var s models.SummaryStats
    err := config.DB.QueryRow(`
        SELECT
            (SELECT COUNT(*) FROM locations) AS total_locations,
            (SELECT COUNT(*) FROM locations WHERE geom IS NOT NULL) AS locations_with_coords,
            (SELECT COUNT(*) FROM programs_dropin) AS dropin_programs,
            (SELECT COUNT(*) FROM programs_registered) AS registered_programs,
            (SELECT COUNT(*) FROM facilities) AS total_facilities,
            (SELECT COUNT(*) FROM wards) AS total_wards,
            (SELECT COUNT(DISTINCT district) FROM locations WHERE district IS NOT NULL) AS districts,
            (SELECT COUNT(DISTINCT facility_type) FROM locations WHERE facility_type IS NOT NULL) AS facility_types`).Scan(
        &s.TotalLocations, &s.LocationsWithCoords, &s.DropinPrograms,
        &s.RegisteredPrograms, &s.TotalFacilities, &s.TotalWards,
        &s.Districts, &s.FacilityTypes)
    if err != nil {
        sendErrorResponse(w, "Database error", http.StatusInternalServerError)
        return
    }

    sendJSONResponse(w, s)
}

// GetStatsByDistrict returns per-district location, program and facility
// counts, largest districts first.
func GetStatsByDistrict(w http.ResponseWriter, r *http.Request) {
    rows, err := config.DB.Query(`
        SELECT
            l.district,
            COUNT(DISTINCT l.location_id) AS locations,
            COUNT(DISTINCT pd.id) AS dropin_programs,
            COUNT(DISTINCT pr.id) AS registered_programs,
            COUNT(DISTINCT f.id) AS facilities
        FROM locations l
        LEFT JOIN programs_dropin pd ON l.location_id = pd.location_id
        LEFT JOIN programs_registered pr ON l.location_id = pr.location_id
        LEFT JOIN facilities f ON l.location_id = f.location_id
        WHERE l.district IS NOT NULL
        GROUP BY l.district
        ORDER BY locations DESC`)
    if err != nil {
        sendErrorResponse(w, "Database error", http.StatusInternalServerError)
        return
    }
    defer rows.Close()

    stats := make([]models.DistrictStats, 0)
    for rows.Next() {
        var d models.DistrictStats
        if err := rows.Scan(
            &d.District, &d.Locations, &d.DropinPrograms,
            &d.RegisteredPrograms, &d.Facilities); err != nil {
            sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
            return
        }
        stats = append(stats, d)
    }
    if err := rows.Err(); err != nil {
        sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
        return
    }

    sendJSONResponse(w, stats)
}
