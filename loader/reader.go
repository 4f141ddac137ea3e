package loader

import (
    "bufio"
    "encoding/csv"
    "encoding/json"
    "fmt"
    "os"
    "strconv"
    "strings"

    "github.com/anne116/toronto-recreation-finder/models"
)

// Record is one CSV row keyed by trimmed header name.
type Record map[string]string

// Get returns the trimmed value for a column, or nil when the column is
// absent or empty.
func (r Record) Get(key string) *string {
    value, ok := r[key]
    if !ok {
        return nil
    }
    value = strings.TrimSpace(value)
    if value == "" {
        return nil
    }
    return &value
}

// GetInt parses a column as an integer. Absent or unparseable values yield
// nil, never a default that could be mistaken for real data.
func (r Record) GetInt(key string) *int {
    value := r.Get(key)
    if value == nil {
        return nil
    }
    // Some source files carry integer columns as "9.0"
    f, err := strconv.ParseFloat(*value, 64)
    if err != nil {
        return nil
    }
    n := int(f)
    return &n
}

// ReadCSVTable reads a whole CSV file into header-keyed records. Short rows
// are tolerated; missing cells read as absent.
func ReadCSVTable(path string) ([]Record, error) {
    f, err := os.Open(path)
    if err != nil {
        return nil, err
    }
    defer f.Close()

    r := csv.NewReader(bufio.NewReader(f))
    r.FieldsPerRecord = -1

    rows, err := r.ReadAll()
    if err != nil {
        return nil, err
    }
    if len(rows) < 1 {
        return nil, fmt.Errorf("%s: csv has no header row", path)
    }

    header := rows[0]
    // Handle BOM on first header cell
    if len(header) > 0 {
        header[0] = strings.TrimPrefix(header[0], "\ufeff")
    }
    for i := range header {
        header[i] = strings.TrimSpace(header[i])
    }

    records := make([]Record, 0, len(rows)-1)
    for _, row := range rows[1:] {
        rec := make(Record, len(header))
        for i, name := range header {
            if i < len(row) {
                rec[name] = row[i]
            }
        }
        records = append(records, rec)
    }
    return records, nil
}

// ReadFeatureCollection parses a GeoJSON feature collection file.
func ReadFeatureCollection(path string) (*models.FeatureCollection, error) {
    f, err := os.Open(path)
    if err != nil {
        return nil, err
    }
    defer f.Close()

    var fc models.FeatureCollection
    if err := json.NewDecoder(bufio.NewReader(f)).Decode(&fc); err != nil {
        return nil, fmt.Errorf("%s: %v", path, err)
    }
    return &fc, nil
}

// FirstPoint extracts a (lon, lat) pair from a Point or MultiPoint geometry,
// taking the first point of a MultiPoint. Coordinate order is GeoJSON's
// [lon, lat].
func FirstPoint(g *models.Geometry) (lon, lat float64, ok bool) {
    if g == nil {
        return 0, 0, false
    }
    switch g.Type {
    case "Point":
        var coords []float64
        if err := json.Unmarshal(g.Coordinates, &coords); err != nil || len(coords) < 2 {
            return 0, 0, false
        }
        return coords[0], coords[1], true
    case "MultiPoint":
        var coords [][]float64
        if err := json.Unmarshal(g.Coordinates, &coords); err != nil || len(coords) == 0 || len(coords[0]) < 2 {
            return 0, 0, false
        }
        return coords[0][0], coords[0][1], true
    }
    return 0, 0, false
}

// propString reads a GeoJSON property as a trimmed string. Numeric ids in
// the source files come through json as float64 and are rendered without a
// fractional part.
func propString(props map[string]interface{}, key string) *string {
    raw, ok := props[key]
    if !ok || raw == nil {
        return nil
    }
    var value string
    switch v := raw.(type) {
    case string:
        value = strings.TrimSpace(v)
    case float64:
        value = strconv.FormatFloat(v, 'f', -1, 64)
    default:
        value = strings.TrimSpace(fmt.Sprintf("%v", v))
    }
    if value == "" {
        return nil
    }
    return &value
}

// propInt reads a GeoJSON property as an integer, nil when absent or not
// numeric.
func propInt(props map[string]interface{}, key string) *int {
    raw, ok := props[key]
    if !ok || raw == nil {
        return nil
    }
    switch v := raw.(type) {
    case float64:
        n := int(v)
        return &n
    case string:
        if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
            n := int(f)
            return &n
        }
    }
    return nil
}
