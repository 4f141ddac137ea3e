package loader

import (
    "database/sql"
    "fmt"
    "log"
    "path/filepath"
    "time"
)

// Source file names inside the data directory, as published by the open
// data portal.
const (
    facilitiesGeoJSONFile = "parks-and-recreation-facilities-4326.geojson"
    locationsCSVFile      = "locations.csv"
    wardsGeoJSONFile      = "city-wards-data-4326.geojson"
    dropinCSVFile         = "drop-in.csv"
    registeredCSVFile     = "registered-programs.csv"
    facilitiesCSVFile     = "facilities.csv"
)

// Run resets the schema and executes the full ingestion pipeline. Stages run
// strictly in dependency order: locations first, then boundaries, then the
// entities that reference locations. A failure to read a source file aborts
// the run; individual bad rows never do.
func Run(db *sql.DB, dataDir string) error {
    start := time.Now()
    log.Printf("Starting data load from %s", dataDir)

    if err := ResetSchema(db); err != nil {
        return err
    }

    // Locations: GeoJSON + CSV merge
    features, err := ReadFeatureCollection(filepath.Join(dataDir, facilitiesGeoJSONFile))
    if err != nil {
        return fmt.Errorf("reading facilities GeoJSON: %v", err)
    }
    csvRecords, err := ReadCSVTable(filepath.Join(dataDir, locationsCSVFile))
    if err != nil {
        return fmt.Errorf("reading locations CSV: %v", err)
    }
    log.Printf("  Found %d locations in GeoJSON", len(features.Features))
    log.Printf("  Found %d locations in CSV", len(csvRecords))

    merged, mergeStats := MergeLocations(features.Features, csvRecords)
    log.Printf("  Merged %d locations (%d matched with CSV details, %d features skipped)",
        mergeStats.Merged, mergeStats.Matched, mergeStats.Skipped)

    if _, err := LoadLocations(db, merged); err != nil {
        return err
    }

    // Ward boundaries
    wardFeatures, err := ReadFeatureCollection(filepath.Join(dataDir, wardsGeoJSONFile))
    if err != nil {
        return fmt.Errorf("reading wards GeoJSON: %v", err)
    }
    if _, err := LoadWards(db, wardFeatures.Features); err != nil {
        return err
    }

    // Dependent entities need the persisted id set for their existence check
    locationIDs, err := LocationIDSet(db)
    if err != nil {
        return fmt.Errorf("fetching location ids: %v", err)
    }

    dropinRecords, err := ReadCSVTable(filepath.Join(dataDir, dropinCSVFile))
    if err != nil {
        return fmt.Errorf("reading drop-in CSV: %v", err)
    }
    if _, err := LoadDropinPrograms(db, dropinRecords, locationIDs); err != nil {
        return err
    }

    registeredRecords, err := ReadCSVTable(filepath.Join(dataDir, registeredCSVFile))
    if err != nil {
        return fmt.Errorf("reading registered programs CSV: %v", err)
    }
    if _, err := LoadRegisteredPrograms(db, registeredRecords, locationIDs); err != nil {
        return err
    }

    facilityRecords, err := ReadCSVTable(filepath.Join(dataDir, facilitiesCSVFile))
    if err != nil {
        return fmt.Errorf("reading facilities CSV: %v", err)
    }
    if _, err := LoadFacilities(db, facilityRecords, locationIDs); err != nil {
        return err
    }

    if err := RunQAChecks(db); err != nil {
        log.Printf("QA checks failed: %v", err)
    }

    log.Printf("Data load finished in %v", time.Since(start))
    return nil
}
