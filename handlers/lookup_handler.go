package handlers

import (
    "net/http"

    "github.com/patrickmn/go-cache"

    "github.com/anne116/toronto-recreation-finder/config"
    "github.com/anne116/toronto-recreation-finder/models"
)

// GetActivities returns the distinct program titles with popularity counts,
// most offered first. Optionally narrowed to one program type. Results are
// cached; the dataset only changes on reload.
func GetActivities(w http.ResponseWriter, r *http.Request) {
    q := r.URL.Query()
    programType := q.Get("program_type")
    if programType != "" && programType != "dropin" && programType != "registered" {
        sendErrorResponse(w, "program_type must be 'dropin' or 'registered'", http.StatusBadRequest)
        return
    }
    limit := parseLimit(q, 50, 200)

    cacheKey := config.GetCacheKey("activities", programType, limit)
    if cached, found := config.LookupCache.Get(cacheKey); found {
        sendJSONResponse(w, cached)
        return
    }

    var query string
    switch programType {
    case "dropin":
        query = `
            SELECT
                course_title AS activity,
                COUNT(*) AS count,
                COUNT(DISTINCT location_id) AS locations
            FROM programs_dropin
            WHERE course_title IS NOT NULL
            GROUP BY course_title
            ORDER BY count DESC
            LIMIT $1`
    case "registered":
        query = `
            SELECT
                course_title AS activity,
                COUNT(*) AS count,
                COUNT(DISTINCT location_id) AS locations
            FROM programs_registered
            WHERE course_title IS NOT NULL
            GROUP BY course_title
            ORDER BY count DESC
            LIMIT $1`
    default:
        query = `
            SELECT
                course_title AS activity,
                SUM(count) AS count,
                SUM(locations) AS locations
            FROM (
                SELECT
                    course_title,
                    COUNT(*) AS count,
                    COUNT(DISTINCT location_id) AS locations
                FROM programs_dropin
                WHERE course_title IS NOT NULL
                GROUP BY course_title
                UNION ALL
                SELECT
                    course_title,
                    COUNT(*) AS count,
                    COUNT(DISTINCT location_id) AS locations
                FROM programs_registered
                WHERE course_title IS NOT NULL
                GROUP BY course_title
            ) combined
            GROUP BY course_title
            ORDER BY count DESC
            LIMIT $1`
    }

    rows, err := config.DB.Query(query, limit)
    if err != nil {
        sendErrorResponse(w, "Database error", http.StatusInternalServerError)
        return
    }
    defer rows.Close()

    activities := make([]models.ActivityCount, 0)
    for rows.Next() {
        var a models.ActivityCount
        if err := rows.Scan(&a.Activity, &a.Count, &a.Locations); err != nil {
            sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
            return
        }
        activities = append(activities, a)
    }
    if err := rows.Err(); err != nil {
        sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
        return
    }

    config.LookupCache.Set(cacheKey, activities, cache.DefaultExpiration)
    sendJSONResponse(w, activities)
}

// GetDistricts returns every district with its location count.
func GetDistricts(w http.ResponseWriter, r *http.Request) {
    cacheKey := config.GetCacheKey("districts")
    if cached, found := config.LookupCache.Get(cacheKey); found {
        sendJSONResponse(w, cached)
        return
    }

    rows, err := config.DB.Query(`
        SELECT
            district,
            COUNT(*) AS location_count
        FROM locations
        WHERE district IS NOT NULL
        GROUP BY district
        ORDER BY district`)
    if err != nil {
        sendErrorResponse(w, "Database error", http.StatusInternalServerError)
        return
    }
    defer rows.Close()

    districts := make([]models.DistrictCount, 0)
    for rows.Next() {
        var d models.DistrictCount
        if err := rows.Scan(&d.District, &d.LocationCount); err != nil {
            sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
            return
        }
        districts = append(districts, d)
    }
    if err := rows.Err(); err != nil {
        sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
        return
    }

    config.LookupCache.Set(cacheKey, districts, cache.DefaultExpiration)
    sendJSONResponse(w, districts)
}

// GetFacilityTypes returns every facility type with its location count.
func GetFacilityTypes(w http.ResponseWriter, r *http.Request) {
    cacheKey := config.GetCacheKey("facility-types")
    if cached, found := config.LookupCache.Get(cacheKey); found {
        sendJSONResponse(w, cached)
        return
    }

    rows, err := config.DB.Query(`
        SELECT
            facility_type,
            COUNT(*) AS count
        FROM locations
        WHERE facility_type IS NOT NULL
        GROUP BY facility_type
        ORDER BY count DESC`)
    if err != nil {
        sendErrorResponse(w, "Database error", http.StatusInternalServerError)
        return
    }
    defer rows.Close()

    types := make([]models.FacilityTypeCount, 0)
    for rows.Next() {
        var t models.FacilityTypeCount
        if err := rows.Scan(&t.FacilityType, &t.Count); err != nil {
            sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
            return
        }
        types = append(types, t)
    }
    if err := rows.Err(); err != nil {
        sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
        return
    }

    config.LookupCache.Set(cacheKey, types, cache.DefaultExpiration)
    sendJSONResponse(w, types)
}
