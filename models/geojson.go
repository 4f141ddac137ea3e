package models

import "encoding/json"

// Geometry is a GeoJSON geometry. Coordinates stay raw because their shape
// depends on Type (Point, MultiPoint, MultiPolygon, ...).
type Geometry struct {
    Type        string          `json:"type"`
    Coordinates json.RawMessage `json:"coordinates"`
}

type Feature struct {
    Type       string                 `json:"type"`
    Geometry   *Geometry              `json:"geometry"`
    Properties map[string]interface{} `json:"properties"`
}

type FeatureCollection struct {
    Type     string    `json:"type"`
    Features []Feature `json:"features"`
}
