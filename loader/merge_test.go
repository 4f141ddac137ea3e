package loader

import (
    "encoding/json"
    "testing"

    "github.com/anne116/toronto-recreation-finder/models"
)

func pointFeature(props map[string]interface{}, lon, lat float64) models.Feature {
    coords, _ := json.Marshal([]float64{lon, lat})
    return models.Feature{
        Type: "Feature",
        Geometry: &models.Geometry{
            Type:        "Point",
            Coordinates: coords,
        },
        Properties: props,
    }
}

func fieldValue(t *testing.T, loc MergedLocation, column string) interface{} {
    t.Helper()
    for i, rule := range LocationFields {
        if rule.Column == column {
            return loc.Values[i]
        }
    }
    t.Fatalf("no field rule for column %q", column)
    return nil
}

func TestMergeLocationsMatched(t *testing.T) {
    features := []models.Feature{
        pointFeature(map[string]interface{}{
            "LOCATIONID": float64(1000),
            "ASSET_ID":   float64(42),
            "ASSET_NAME": "Main Community Centre",
            "TYPE":       "Community Centre",
        }, -79.38, 43.65),
    }
    csvRecords := []Record{
        {
            "Location ID":   "1000",
            "Location Name": "Main CC",
            "District":      "scarborough",
            "Postal Code":   "M1B 1B1",
        },
    }

    merged, stats := MergeLocations(features, csvRecords)

    if stats.Merged != 1 || stats.Matched != 1 || stats.Skipped != 0 {
        t.Fatalf("stats = %+v, want merged=1 matched=1 skipped=0", stats)
    }
    loc := merged[0]
    if loc.LocationID != "1000" {
        t.Errorf("LocationID = %q, want 1000", loc.LocationID)
    }
    if !loc.Matched {
        t.Error("expected location to be matched against the CSV")
    }
    if loc.Lon == nil || loc.Lat == nil {
        t.Fatal("expected coordinates from the Point geometry")
    }
    if *loc.Lon != -79.38 || *loc.Lat != 43.65 {
        t.Errorf("point = (%v, %v), want (-79.38, 43.65)", *loc.Lon, *loc.Lat)
    }
    if got := fieldValue(t, loc, "asset_name"); got != "Main Community Centre" {
        t.Errorf("asset_name = %v, want GeoJSON value", got)
    }
    if got := fieldValue(t, loc, "location_name"); got != "Main CC" {
        t.Errorf("location_name = %v, want CSV value", got)
    }
    if got := fieldValue(t, loc, "district"); got != "Scarborough" {
        t.Errorf("district = %v, want normalized Scarborough", got)
    }
    if got := fieldValue(t, loc, "asset_id"); got != 42 {
        t.Errorf("asset_id = %v, want 42", got)
    }
}

func TestMergeLocationsUnmatchedFeature(t *testing.T) {
    features := []models.Feature{
        pointFeature(map[string]interface{}{
            "LOCATIONID": "2000",
            "ASSET_NAME": "Orphan Rink",
        }, -79.4, 43.7),
    }

    merged, stats := MergeLocations(features, nil)

    if stats.Merged != 1 || stats.Matched != 0 {
        t.Fatalf("stats = %+v, want merged=1 matched=0", stats)
    }
    loc := merged[0]
    if loc.Matched {
        t.Error("location should not be matched")
    }
    if got := fieldValue(t, loc, "location_name"); got != nil {
        t.Errorf("location_name = %v, want nil for unmatched feature", got)
    }
    if got := fieldValue(t, loc, "asset_name"); got != "Orphan Rink" {
        t.Errorf("asset_name = %v, want GeoJSON value", got)
    }
}

func TestMergeLocationsCSVOnlyDropped(t *testing.T) {
    csvRecords := []Record{
        {"Location ID": "3000", "Location Name": "No Geometry Here"},
    }

    merged, stats := MergeLocations(nil, csvRecords)

    if len(merged) != 0 || stats.Merged != 0 {
        t.Fatalf("CSV-only records must be dropped, got %d merged", len(merged))
    }
}

func TestMergeLocationsSkipsFeatureWithoutID(t *testing.T) {
    features := []models.Feature{
        pointFeature(map[string]interface{}{"ASSET_NAME": "Nameless"}, -79.0, 43.0),
    }

    merged, stats := MergeLocations(features, nil)

    if len(merged) != 0 {
        t.Fatalf("feature without LOCATIONID must be skipped, got %d merged", len(merged))
    }
    if stats.Skipped != 1 {
        t.Errorf("stats.Skipped = %d, want 1", stats.Skipped)
    }
}

func TestMergeLocationsBadGeometryKept(t *testing.T) {
    features := []models.Feature{
        {
            Type: "Feature",
            Geometry: &models.Geometry{
                Type:        "Polygon",
                Coordinates: json.RawMessage(`[[[0,0],[1,1],[0,1],[0,0]]]`),
            },
            Properties: map[string]interface{}{"LOCATIONID": "4000"},
        },
        {
            Type:       "Feature",
            Geometry:   nil,
            Properties: map[string]interface{}{"LOCATIONID": "4001"},
        },
    }

    merged, stats := MergeLocations(features, nil)

    if stats.Merged != 2 {
        t.Fatalf("stats.Merged = %d, want 2 (bad geometry must not drop the row)", stats.Merged)
    }
    for _, loc := range merged {
        if loc.Lon != nil || loc.Lat != nil {
            t.Errorf("location %s: expected nil coordinates for unusable geometry", loc.LocationID)
        }
    }
}

func TestMergeLocationsMultiPoint(t *testing.T) {
    coords, _ := json.Marshal([][]float64{{-79.5, 43.6}, {-79.6, 43.7}})
    features := []models.Feature{
        {
            Type: "Feature",
            Geometry: &models.Geometry{
                Type:        "MultiPoint",
                Coordinates: coords,
            },
            Properties: map[string]interface{}{"LOCATIONID": "5000"},
        },
    }

    merged, _ := MergeLocations(features, nil)

    if len(merged) != 1 || merged[0].Lon == nil {
        t.Fatal("expected a merged location with coordinates")
    }
    if *merged[0].Lon != -79.5 || *merged[0].Lat != 43.6 {
        t.Errorf("point = (%v, %v), want first point of the MultiPoint", *merged[0].Lon, *merged[0].Lat)
    }
}
