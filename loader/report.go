package loader

import (
    "database/sql"
    "log"

    "github.com/anne116/toronto-recreation-finder/utils"
)

// City Hall, the reference point for the coordinate-outlier check.
const (
    cityCoreLat = 43.6534
    cityCoreLon = -79.3841

    outlierRadiusKM = 60
)

// RunQAChecks prints the end-of-run data quality summary. Skip counts logged
// by the loaders plus this report are the only signal of source data
// problems; nothing here fails the load.
func RunQAChecks(db *sql.DB) error {
    log.Printf("Running QA checks...")

    var total, withGeom int
    err := db.QueryRow(`SELECT COUNT(*), COUNT(geom) FROM locations`).Scan(&total, &withGeom)
    if err != nil {
        return err
    }
    if total > 0 {
        log.Printf("  Locations: %d/%d have coordinates (%.1f%%)",
            withGeom, total, float64(withGeom)/float64(total)*100)
    }

    // A point far outside the city means a bad source row (swapped or
    // mis-scaled coordinates), not a real facility.
    coordRows, err := db.Query(`
        SELECT location_id, ST_Y(geom), ST_X(geom)
        FROM locations
        WHERE geom IS NOT NULL`)
    if err != nil {
        return err
    }
    defer coordRows.Close()

    outliers := 0
    for coordRows.Next() {
        var id string
        var lat, lon float64
        if err := coordRows.Scan(&id, &lat, &lon); err != nil {
            return err
        }
        if utils.CalculateDistance(cityCoreLat, cityCoreLon, lat, lon) > outlierRadiusKM {
            log.Printf("    Coordinate outlier: %s at (%f, %f)", id, lat, lon)
            outliers++
        }
    }
    if err := coordRows.Err(); err != nil {
        return err
    }
    log.Printf("  Coordinate outliers (>%d km from City Hall): %d", outlierRadiusKM, outliers)

    rows, err := db.Query(`
        SELECT
            COALESCE(l.location_name, l.asset_name, l.location_id) AS name,
            COUNT(DISTINCT pd.id) AS dropin_count,
            COUNT(DISTINCT pr.id) AS registered_count
        FROM locations l
        LEFT JOIN programs_dropin pd ON l.location_id = pd.location_id
        LEFT JOIN programs_registered pr ON l.location_id = pr.location_id
        GROUP BY l.location_id, l.location_name, l.asset_name
        HAVING COUNT(pd.id) > 0 OR COUNT(pr.id) > 0
        ORDER BY (COUNT(DISTINCT pd.id) + COUNT(DISTINCT pr.id)) DESC
        LIMIT 5`)
    if err != nil {
        return err
    }
    defer rows.Close()

    log.Printf("  Top 5 locations by program count:")
    for rows.Next() {
        var name string
        var dropin, registered int
        if err := rows.Scan(&name, &dropin, &registered); err != nil {
            return err
        }
        log.Printf("    %s: %d drop-in, %d registered", name, dropin, registered)
    }
    if err := rows.Err(); err != nil {
        return err
    }

    districtRows, err := db.Query(`
        SELECT district, COUNT(*) AS count
        FROM locations
        WHERE district IS NOT NULL
        GROUP BY district
        ORDER BY count DESC`)
    if err != nil {
        return err
    }
    defer districtRows.Close()

    log.Printf("  Locations by district:")
    for districtRows.Next() {
        var district string
        var count int
        if err := districtRows.Scan(&district, &count); err != nil {
            return err
        }
        log.Printf("    %s: %d locations", district, count)
    }
    if err := districtRows.Err(); err != nil {
        return err
    }

    var locations, dropin, registered, facilities, wards int
    err = db.QueryRow(`
        SELECT
            (SELECT COUNT(*) FROM locations),
            (SELECT COUNT(*) FROM programs_dropin),
            (SELECT COUNT(*) FROM programs_registered),
            (SELECT COUNT(*) FROM facilities),
            (SELECT COUNT(*) FROM wards)`).Scan(&locations, &dropin, &registered, &facilities, &wards)
    if err != nil {
        return err
    }

    log.Printf("  Data summary:")
    log.Printf("    Locations: %d", locations)
    log.Printf("    Drop-in programs: %d", dropin)
    log.Printf("    Registered programs: %d", registered)
    log.Printf("    Facilities: %d", facilities)
    log.Printf("    Wards: %d", wards)
    return nil
}
