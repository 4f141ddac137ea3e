package loader

import (
    "log"

    "github.com/anne116/toronto-recreation-finder/models"
)

// fieldSource says which input owns a merged column. Geometry and identity
// always come from the GeoJSON side; descriptive fields come from the CSV
// side when a matching record exists.
type fieldSource int

const (
    fromGeoJSON fieldSource = iota
    fromCSV
)

// FieldRule maps one locations column to its owning source and source key.
// The table is the merge policy: reordering or editing it changes what gets
// loaded, with no conditional logic hidden in the merge loop.
type FieldRule struct {
    Column    string
    Source    fieldSource
    Key       string
    Numeric   bool                // integer column (asset ids)
    Transform func(string) string // applied to CSV values only
}

// LocationFields is the field-provenance table for the locations entity.
var LocationFields = []FieldRule{
    {Column: "asset_id", Source: fromGeoJSON, Key: "ASSET_ID", Numeric: true},
    {Column: "asset_name", Source: fromGeoJSON, Key: "ASSET_NAME"},
    {Column: "facility_type", Source: fromGeoJSON, Key: "TYPE"},
    {Column: "amenities", Source: fromGeoJSON, Key: "AMENITIES"},
    {Column: "address", Source: fromGeoJSON, Key: "ADDRESS"},
    {Column: "phone", Source: fromGeoJSON, Key: "PHONE"},
    {Column: "url", Source: fromGeoJSON, Key: "URL"},
    {Column: "parent_location_id", Source: fromCSV, Key: "Parent Location ID"},
    {Column: "location_name", Source: fromCSV, Key: "Location Name"},
    {Column: "location_type", Source: fromCSV, Key: "Location Type"},
    {Column: "accessibility", Source: fromCSV, Key: "Accessibility"},
    {Column: "intersection", Source: fromCSV, Key: "Intersection"},
    {Column: "ttc_information", Source: fromCSV, Key: "TTC Information"},
    {Column: "district", Source: fromCSV, Key: "District", Transform: NormalizeDistrict},
    {Column: "description", Source: fromCSV, Key: "Description"},
    {Column: "street_no", Source: fromCSV, Key: "Street No"},
    {Column: "street_no_suffix", Source: fromCSV, Key: "Street No Suffix"},
    {Column: "street_name", Source: fromCSV, Key: "Street Name"},
    {Column: "street_type", Source: fromCSV, Key: "Street Type"},
    {Column: "street_direction", Source: fromCSV, Key: "Street Direction"},
    {Column: "postal_code", Source: fromCSV, Key: "Postal Code"},
}

// MergedLocation is one reconciled location. Values is aligned with
// LocationFields; Lon/Lat are nil when the source geometry was unusable.
type MergedLocation struct {
    LocationID string
    Lon        *float64
    Lat        *float64
    Values     []interface{}
    Matched    bool
}

type MergeStats struct {
    Merged  int
    Matched int
    Skipped int
}

// MergeLocations reconciles the facilities GeoJSON with the locations CSV,
// producing one merged record per feature keyed by the shared external id.
// Features without a usable id are logged and skipped; CSV records without a
// matching feature are dropped because they carry no geometry.
func MergeLocations(features []models.Feature, csvRecords []Record) ([]MergedLocation, MergeStats) {
    csvLookup := make(map[string]Record, len(csvRecords))
    for _, rec := range csvRecords {
        if id := rec.Get("Location ID"); id != nil {
            csvLookup[*id] = rec
        }
    }

    var merged []MergedLocation
    var stats MergeStats

    for _, feature := range features {
        id := propString(feature.Properties, "LOCATIONID")
        if id == nil {
            log.Printf("Skipping feature without LOCATIONID")
            stats.Skipped++
            continue
        }

        loc := MergedLocation{LocationID: *id}

        if lon, lat, ok := FirstPoint(feature.Geometry); ok {
            loc.Lon = &lon
            loc.Lat = &lat
        } else {
            // The location is still created; it just has no point.
            log.Printf("Location %s: unusable geometry, loading without coordinates", *id)
        }

        csvRec, matched := csvLookup[*id]
        if matched {
            loc.Matched = true
            stats.Matched++
        }

        loc.Values = make([]interface{}, len(LocationFields))
        for i, rule := range LocationFields {
            loc.Values[i] = mergeField(rule, feature.Properties, csvRec, matched)
        }

        merged = append(merged, loc)
        stats.Merged++
    }

    return merged, stats
}

// mergeField pulls one column's value from the source the provenance table
// assigns it to. Absent values stay nil.
func mergeField(rule FieldRule, props map[string]interface{}, csvRec Record, matched bool) interface{} {
    switch rule.Source {
    case fromGeoJSON:
        if rule.Numeric {
            if n := propInt(props, rule.Key); n != nil {
                return *n
            }
            return nil
        }
        if s := propString(props, rule.Key); s != nil {
            return *s
        }
        return nil
    case fromCSV:
        if !matched {
            return nil
        }
        value := csvRec.Get(rule.Key)
        if value == nil {
            return nil
        }
        if rule.Transform != nil {
            return rule.Transform(*value)
        }
        return *value
    }
    return nil
}
