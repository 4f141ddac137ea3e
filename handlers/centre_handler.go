package handlers

import (
    "database/sql"
    "fmt"
    "math"
    "net/http"
    "strings"

    "github.com/gorilla/mux"
    "github.com/patrickmn/go-cache"

    "github.com/anne116/toronto-recreation-finder/config"
    "github.com/anne116/toronto-recreation-finder/models"
)

// centreFilters is the shared optional filter set of the centre list and
// map endpoints.
type centreFilters struct {
    conditions []string
    args       []interface{}
}

// buildCentreFilters turns the optional query parameters into SQL conditions
// with positional arguments, starting at argIdx $1.
func buildCentreFilters(activity string, weekday *int, district, facilityType string) centreFilters {
    var f centreFilters
    argIdx := 1

    if activity != "" {
        f.conditions = append(f.conditions, fmt.Sprintf(
            "(pd.course_title ILIKE $%d OR pr.course_title ILIKE $%d)", argIdx, argIdx))
        f.args = append(f.args, "%"+activity+"%")
        argIdx++
    }
    if weekday != nil {
        f.conditions = append(f.conditions, fmt.Sprintf("pd.weekday = $%d", argIdx))
        f.args = append(f.args, *weekday)
        argIdx++
    }
    if district != "" {
        f.conditions = append(f.conditions, fmt.Sprintf("l.district = $%d", argIdx))
        f.args = append(f.args, district)
        argIdx++
    }
    if facilityType != "" {
        f.conditions = append(f.conditions, fmt.Sprintf("l.facility_type ILIKE $%d", argIdx))
        f.args = append(f.args, "%"+facilityType+"%")
        argIdx++
    }
    return f
}

func (f centreFilters) whereSuffix() string {
    if len(f.conditions) == 0 {
        return ""
    }
    return " AND " + strings.Join(f.conditions, " AND ")
}

// GetCentres returns recreation centres with optional activity, weekday,
// district and facility-type filters, ordered by program count.
func GetCentres(w http.ResponseWriter, r *http.Request) {
    q := r.URL.Query()

    weekday, err := parseWeekday(q)
    if err != nil {
        sendErrorResponse(w, err.Error(), http.StatusBadRequest)
        return
    }
    limit := parseLimit(q, 100, 1000)

    filters := buildCentreFilters(q.Get("activity"), weekday, q.Get("district"), q.Get("facility_type"))

    query := fmt.Sprintf(`
        WITH location_programs AS (
            SELECT
                l.location_id,
                l.location_name,
                l.asset_name,
                l.address,
                l.district,
                l.facility_type,
                l.accessibility,
                l.phone,
                l.url,
                ST_X(l.geom) AS lon,
                ST_Y(l.geom) AS lat,
                COUNT(DISTINCT pd.id) AS dropin_count,
                COUNT(DISTINCT pr.id) AS registered_count
            FROM locations l
            LEFT JOIN programs_dropin pd ON l.location_id = pd.location_id
            LEFT JOIN programs_registered pr ON l.location_id = pr.location_id
            WHERE l.geom IS NOT NULL%s
            GROUP BY l.location_id, l.location_name, l.asset_name, l.address,
                     l.district, l.facility_type, l.accessibility, l.phone, l.url,
                     l.geom
        )
        SELECT
            location_id,
            COALESCE(location_name, asset_name) AS name,
            address,
            district,
            facility_type,
            accessibility,
            phone,
            url,
            lon,
            lat,
            dropin_count,
            registered_count,
            dropin_count + registered_count AS total_programs
        FROM location_programs
        ORDER BY total_programs DESC, name
        LIMIT $%d`, filters.whereSuffix(), len(filters.args)+1)

    args := append(filters.args, limit)

    rows, err := config.DB.Query(query, args...)
    if err != nil {
        sendErrorResponse(w, "Database error", http.StatusInternalServerError)
        return
    }
    defer rows.Close()

    centres := make([]models.CentreSummary, 0)
    for rows.Next() {
        var c models.CentreSummary
        if err := rows.Scan(
            &c.LocationID, &c.Name, &c.Address, &c.District, &c.FacilityType,
            &c.Accessibility, &c.Phone, &c.URL, &c.Lon, &c.Lat,
            &c.DropinCount, &c.RegisteredCount, &c.TotalPrograms); err != nil {
            sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
            return
        }
        centres = append(centres, c)
    }
    if err := rows.Err(); err != nil {
        sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
        return
    }

    sendJSONResponse(w, centres)
}

// GetCentresGeoJSON returns the same filtered centre set as a GeoJSON
// FeatureCollection for mapping. The collection is assembled in SQL.
func GetCentresGeoJSON(w http.ResponseWriter, r *http.Request) {
    q := r.URL.Query()

    weekday, err := parseWeekday(q)
    if err != nil {
        sendErrorResponse(w, err.Error(), http.StatusBadRequest)
        return
    }

    filters := buildCentreFilters(q.Get("activity"), weekday, q.Get("district"), q.Get("facility_type"))

    cacheKey := config.GetCacheKey("centres-geojson",
        q.Get("activity"), q.Get("weekday"), q.Get("district"), q.Get("facility_type"))
    if cached, found := config.CentreCache.Get(cacheKey); found {
        sendRawJSON(w, cached.([]byte))
        return
    }

    query := fmt.Sprintf(`
        WITH centre_counts AS (
            SELECT
                l.location_id,
                l.location_name,
                l.asset_name,
                l.address,
                l.district,
                l.facility_type,
                l.geom,
                COUNT(DISTINCT pd.id) AS dropin_count,
                COUNT(DISTINCT pr.id) AS registered_count
            FROM locations l
            LEFT JOIN programs_dropin pd ON l.location_id = pd.location_id
            LEFT JOIN programs_registered pr ON l.location_id = pr.location_id
            WHERE l.geom IS NOT NULL%s
            GROUP BY l.location_id, l.location_name, l.asset_name, l.address,
                     l.district, l.facility_type, l.geom
        )
        SELECT jsonb_build_object(
            'type', 'FeatureCollection',
            'features', COALESCE(jsonb_agg(
                jsonb_build_object(
                    'type', 'Feature',
                    'geometry', ST_AsGeoJSON(geom)::jsonb,
                    'properties', jsonb_build_object(
                        'id', location_id,
                        'name', COALESCE(location_name, asset_name),
                        'address', address,
                        'district', district,
                        'facility_type', facility_type,
                        'dropin_count', dropin_count,
                        'registered_count', registered_count,
                        'total_programs', dropin_count + registered_count
                    )
                )
            ), '[]'::jsonb)
        )
        FROM centre_counts`, filters.whereSuffix())

    var body []byte
    if err := config.DB.QueryRow(query, filters.args...).Scan(&body); err != nil {
        sendErrorResponse(w, "Database error", http.StatusInternalServerError)
        return
    }
    config.CentreCache.Set(cacheKey, body, cache.DefaultExpiration)
    sendRawJSON(w, body)
}

// GetCentreDetail returns everything stored about one centre. An unknown id
// is a 404, not a fault.
func GetCentreDetail(w http.ResponseWriter, r *http.Request) {
    locationID := mux.Vars(r)["id"]

    var c models.CentreDetail
    err := config.DB.QueryRow(`
        SELECT
            location_id,
            COALESCE(location_name, asset_name) AS name,
            asset_name,
            location_name,
            address,
            district,
            facility_type,
            amenities,
            accessibility,
            intersection,
            ttc_information,
            phone,
            url,
            description,
            postal_code,
            ST_X(geom) AS lon,
            ST_Y(geom) AS lat
        FROM locations
        WHERE location_id = $1`, locationID).Scan(
        &c.LocationID, &c.Name, &c.AssetName, &c.LocationName, &c.Address,
        &c.District, &c.FacilityType, &c.Amenities, &c.Accessibility,
        &c.Intersection, &c.TTCInformation, &c.Phone, &c.URL,
        &c.Description, &c.PostalCode, &c.Lon, &c.Lat)

    if err == sql.ErrNoRows {
        sendErrorResponse(w, "Location not found", http.StatusNotFound)
        return
    }
    if err != nil {
        sendErrorResponse(w, "Database error", http.StatusInternalServerError)
        return
    }

    sendJSONResponse(w, c)
}

// GetNearbyCentres finds centres within radius_km of a point, ordered by
// ascending geodesic distance. The radius check is strict: a centre exactly
// on the boundary is excluded.
func GetNearbyCentres(w http.ResponseWriter, r *http.Request) {
    q := r.URL.Query()

    lat, err := requireFloat(q, "lat")
    if err != nil {
        sendErrorResponse(w, err.Error(), http.StatusBadRequest)
        return
    }
    lon, err := requireFloat(q, "lon")
    if err != nil {
        sendErrorResponse(w, err.Error(), http.StatusBadRequest)
        return
    }
    radiusKM := parseClampedFloat(q, "radius_km", 5.0, 0.1, 50)
    limit := parseLimit(q, 20, 100)

    rows, err := config.DB.Query(`
        SELECT
            l.location_id,
            COALESCE(l.location_name, l.asset_name) AS name,
            l.address,
            l.district,
            l.facility_type,
            ST_X(l.geom) AS lon,
            ST_Y(l.geom) AS lat,
            ST_Distance(
                l.geom::geography,
                ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography
            ) / 1000 AS distance_km,
            COUNT(DISTINCT pd.id) + COUNT(DISTINCT pr.id) AS total_programs
        FROM locations l
        LEFT JOIN programs_dropin pd ON l.location_id = pd.location_id
        LEFT JOIN programs_registered pr ON l.location_id = pr.location_id
        WHERE l.geom IS NOT NULL
            AND ST_DWithin(
                l.geom::geography,
                ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
                $3 * 1000
            )
        GROUP BY l.location_id, l.location_name, l.asset_name, l.address,
                 l.district, l.facility_type, l.geom
        ORDER BY distance_km
        LIMIT $4`, lon, lat, radiusKM, limit)
    if err != nil {
        sendErrorResponse(w, "Database error", http.StatusInternalServerError)
        return
    }
    defer rows.Close()

    centres := make([]models.NearbyCentre, 0)
    for rows.Next() {
        var c models.NearbyCentre
        if err := rows.Scan(
            &c.LocationID, &c.Name, &c.Address, &c.District, &c.FacilityType,
            &c.Lon, &c.Lat, &c.DistanceKM, &c.TotalPrograms); err != nil {
            sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
            return
        }
        centres = append(centres, c)
    }
    if err := rows.Err(); err != nil {
        sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
        return
    }
    centres = filterNearby(centres, radiusKM)

    sendJSONResponse(w, map[string]interface{}{
        "centres":   centres,
        "count":     len(centres),
        "radius_km": radiusKM,
    })
}

// filterNearby applies the strict radius cut and rounds the reported
// distance. The cut compares the same geodesic distance the query filtered
// and ordered by, so a kept row's distance_km is always inside the radius.
func filterNearby(centres []models.NearbyCentre, radiusKM float64) []models.NearbyCentre {
    kept := make([]models.NearbyCentre, 0, len(centres))
    for _, c := range centres {
        // ST_DWithin is inclusive; the boundary itself is excluded.
        if c.DistanceKM >= radiusKM {
            continue
        }
        c.DistanceKM = math.Round(c.DistanceKM*100) / 100
        kept = append(kept, c)
    }
    return kept
}
