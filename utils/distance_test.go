package utils

import (
    "math"
    "testing"
)

func TestCalculateDistanceZero(t *testing.T) {
    if d := CalculateDistance(43.65, -79.38, 43.65, -79.38); d != 0 {
        t.Errorf("distance to self = %v, want 0", d)
    }
}

func TestCalculateDistanceKnownPairs(t *testing.T) {
    cases := []struct {
        name                   string
        lat1, lon1, lat2, lon2 float64
        want                   float64 // kilometers
        tolerance              float64
    }{
        {
            // Union Station to Scarborough Town Centre
            name: "downtown to scarborough",
            lat1: 43.6453, lon1: -79.3806,
            lat2: 43.7764, lon2: -79.2573,
            want: 17.7, tolerance: 0.5,
        },
        {
            // Toronto to Ottawa
            name: "toronto to ottawa",
            lat1: 43.6532, lon1: -79.3832,
            lat2: 45.4215, lon2: -75.6972,
            want: 352, tolerance: 5,
        },
    }
    for _, c := range cases {
        got := CalculateDistance(c.lat1, c.lon1, c.lat2, c.lon2)
        if math.Abs(got-c.want) > c.tolerance {
            t.Errorf("%s: distance = %v km, want %v±%v", c.name, got, c.want, c.tolerance)
        }
    }
}

func TestCalculateDistanceSymmetry(t *testing.T) {
    d1 := CalculateDistance(43.65, -79.38, 43.78, -79.25)
    d2 := CalculateDistance(43.78, -79.25, 43.65, -79.38)
    if math.Abs(d1-d2) > 1e-9 {
        t.Errorf("distance not symmetric: %v vs %v", d1, d2)
    }
}
