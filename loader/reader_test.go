package loader

import (
    "encoding/json"
    "os"
    "path/filepath"
    "testing"

    "github.com/anne116/toronto-recreation-finder/models"
)

func writeTempFile(t *testing.T, name, content string) string {
    t.Helper()
    path := filepath.Join(t.TempDir(), name)
    if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
        t.Fatalf("writing %s: %v", name, err)
    }
    return path
}

func TestReadCSVTable(t *testing.T) {
    path := writeTempFile(t, "locations.csv",
        "\ufeffLocation ID, Location Name ,District\n"+
            "1000,Main CC,Scarborough\n"+
            "1001, ,North York\n"+
            "1002,Short Row\n")

    records, err := ReadCSVTable(path)
    if err != nil {
        t.Fatalf("ReadCSVTable: %v", err)
    }
    if len(records) != 3 {
        t.Fatalf("got %d records, want 3", len(records))
    }

    // BOM stripped and headers trimmed
    if got := records[0].Get("Location ID"); got == nil || *got != "1000" {
        t.Errorf("Location ID = %v, want 1000", got)
    }
    if got := records[0].Get("Location Name"); got == nil || *got != "Main CC" {
        t.Errorf("Location Name = %v, want Main CC", got)
    }

    // Blank cells read as absent
    if got := records[1].Get("Location Name"); got != nil {
        t.Errorf("blank cell = %q, want nil", *got)
    }

    // Short rows tolerated; missing cell is absent
    if got := records[2].Get("District"); got != nil {
        t.Errorf("missing cell = %q, want nil", *got)
    }
}

func TestReadCSVTableMissingFile(t *testing.T) {
    if _, err := ReadCSVTable(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
        t.Fatal("expected an error for a missing file")
    }
}

func TestRecordGetInt(t *testing.T) {
    rec := Record{
        "Plain":   "9",
        "Float":   "9.0",
        "Bad":     "nine",
        "Blank":   "",
        "Spacing": " 12 ",
    }
    if got := rec.GetInt("Plain"); got == nil || *got != 9 {
        t.Errorf("GetInt(Plain) = %v, want 9", got)
    }
    if got := rec.GetInt("Float"); got == nil || *got != 9 {
        t.Errorf("GetInt(Float) = %v, want 9", got)
    }
    if got := rec.GetInt("Spacing"); got == nil || *got != 12 {
        t.Errorf("GetInt(Spacing) = %v, want 12", got)
    }
    for _, key := range []string{"Bad", "Blank", "Absent"} {
        if got := rec.GetInt(key); got != nil {
            t.Errorf("GetInt(%s) = %d, want nil", key, *got)
        }
    }
}

func TestReadFeatureCollection(t *testing.T) {
    path := writeTempFile(t, "facilities.geojson", `{
        "type": "FeatureCollection",
        "features": [
            {
                "type": "Feature",
                "geometry": {"type": "Point", "coordinates": [-79.38, 43.65]},
                "properties": {"LOCATIONID": 1000, "ASSET_NAME": "Main CC"}
            }
        ]
    }`)

    fc, err := ReadFeatureCollection(path)
    if err != nil {
        t.Fatalf("ReadFeatureCollection: %v", err)
    }
    if len(fc.Features) != 1 {
        t.Fatalf("got %d features, want 1", len(fc.Features))
    }

    lon, lat, ok := FirstPoint(fc.Features[0].Geometry)
    if !ok {
        t.Fatal("expected a usable point")
    }
    if lon != -79.38 || lat != 43.65 {
        t.Errorf("point = (%v, %v), want (-79.38, 43.65)", lon, lat)
    }

    // Numeric ids render without a fractional part
    if got := propString(fc.Features[0].Properties, "LOCATIONID"); got == nil || *got != "1000" {
        t.Errorf("LOCATIONID = %v, want \"1000\"", got)
    }
}

func TestFirstPoint(t *testing.T) {
    multi := &models.Geometry{
        Type:        "MultiPoint",
        Coordinates: json.RawMessage(`[[-79.5, 43.6], [-79.6, 43.7]]`),
    }
    lon, lat, ok := FirstPoint(multi)
    if !ok || lon != -79.5 || lat != 43.6 {
        t.Errorf("MultiPoint = (%v, %v, %v), want first point", lon, lat, ok)
    }

    bad := []*models.Geometry{
        nil,
        {Type: "Point", Coordinates: json.RawMessage(`"oops"`)},
        {Type: "Point", Coordinates: json.RawMessage(`[-79.5]`)},
        {Type: "MultiPoint", Coordinates: json.RawMessage(`[]`)},
        {Type: "Polygon", Coordinates: json.RawMessage(`[[[0,0],[1,1],[0,1],[0,0]]]`)},
    }
    for i, g := range bad {
        if _, _, ok := FirstPoint(g); ok {
            t.Errorf("case %d: expected no usable point", i)
        }
    }
}

func TestPropInt(t *testing.T) {
    props := map[string]interface{}{
        "Number": float64(42),
        "String": "42.0",
        "Bad":    "forty-two",
        "Nil":    nil,
    }
    if got := propInt(props, "Number"); got == nil || *got != 42 {
        t.Errorf("propInt(Number) = %v, want 42", got)
    }
    if got := propInt(props, "String"); got == nil || *got != 42 {
        t.Errorf("propInt(String) = %v, want 42", got)
    }
    for _, key := range []string{"Bad", "Nil", "Absent"} {
        if got := propInt(props, key); got != nil {
            t.Errorf("propInt(%s) = %d, want nil", key, *got)
        }
    }
}
