package handlers

import (
    "net/http"

    "github.com/anne116/toronto-recreation-finder/config"
)

// GetWardsGeoJSON returns all ward boundary polygons as a GeoJSON
// FeatureCollection, assembled in SQL.
func GetWardsGeoJSON(w http.ResponseWriter, r *http.Request) {
    var body []byte
    err := config.DB.QueryRow(`
        SELECT json_build_object(
            'type', 'FeatureCollection',
            'features', COALESCE(json_agg(
                json_build_object(
                    'type', 'Feature',
                    'geometry', ST_AsGeoJSON(geom)::json,
                    'properties', json_build_object(
                        'id', id,
                        'area_id', area_id,
                        'area_name', area_name,
                        'area_short_code', area_short_code
                    )
                )
            ), '[]'::json)
        )::text
        FROM wards`).Scan(&body)
    if err != nil {
        sendErrorResponse(w, "Failed to build wards GeoJSON", http.StatusInternalServerError)
        return
    }
    sendRawJSON(w, body)
}

// GetWardsHealth reports the ward row count, confirming the spatial store
// is reachable and populated.
func GetWardsHealth(w http.ResponseWriter, r *http.Request) {
    var count int
    if err := config.DB.QueryRow(`SELECT COUNT(*) FROM wards`).Scan(&count); err != nil {
        sendErrorResponse(w, "Database error", http.StatusInternalServerError)
        return
    }
    sendJSONResponse(w, map[string]interface{}{
        "ok":   true,
        "rows": count,
    })
}
