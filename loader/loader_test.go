package loader

import (
    "errors"
    "testing"
)

// fakeRowWriter records every exec call so tests can assert exactly which
// rows a loader tried to persist, without a database.
type fakeRowWriter struct {
    queries []string
    calls   [][]interface{}
    failOn  map[int]error // exec call index -> error to return
    flushed bool
    lost    int
}

func (f *fakeRowWriter) exec(query string, args ...interface{}) error {
    idx := len(f.calls)
    f.queries = append(f.queries, query)
    f.calls = append(f.calls, args)
    if err, ok := f.failOn[idx]; ok {
        return err
    }
    return nil
}

func (f *fakeRowWriter) flush() error { f.flushed = true; return nil }

func (f *fakeRowWriter) lostRows() int { return f.lost }

func TestFoldOutcomes(t *testing.T) {
    outcomes := []Outcome{
        rowLoaded(),
        rowSkipped("unknown location"),
        rowLoaded(),
        rowSkipped("missing location id"),
        rowSkipped("insert failed"),
    }
    counts := FoldOutcomes(outcomes)
    if counts.Loaded != 2 || counts.Skipped != 3 {
        t.Errorf("counts = %+v, want loaded=2 skipped=3", counts)
    }
    if c := FoldOutcomes(nil); c.Loaded != 0 || c.Skipped != 0 {
        t.Errorf("empty fold = %+v, want zero", c)
    }
}

func TestReconcileLost(t *testing.T) {
    c := reconcileLost(Counts{Loaded: 100, Skipped: 2}, 99)
    if c.Loaded != 1 || c.Skipped != 101 {
        t.Errorf("counts = %+v, want loaded=1 skipped=101", c)
    }
    c = reconcileLost(Counts{Loaded: 5, Skipped: 1}, 0)
    if c.Loaded != 5 || c.Skipped != 1 {
        t.Errorf("counts = %+v, want unchanged", c)
    }
}

func TestLoadDropinProgramsUnknownLocation(t *testing.T) {
    writer := &fakeRowWriter{}
    records := []Record{
        {"Location ID": "9999", "Course Title": "Swim"},
    }

    counts, err := loadDropinPrograms(writer, records, map[string]bool{"1000": true})
    if err != nil {
        t.Fatalf("loadDropinPrograms: %v", err)
    }
    if counts.Loaded != 0 || counts.Skipped != 1 {
        t.Errorf("counts = %+v, want loaded=0 skipped=1", counts)
    }
    if len(writer.calls) != 0 {
        t.Errorf("got %d insert attempts, want 0 for an unknown location", len(writer.calls))
    }
}

func TestLoadDropinProgramsMissingLocationID(t *testing.T) {
    writer := &fakeRowWriter{}
    records := []Record{
        {"Course Title": "Swim"},
        {"Location ID": "   "},
    }

    counts, err := loadDropinPrograms(writer, records, map[string]bool{"1000": true})
    if err != nil {
        t.Fatalf("loadDropinPrograms: %v", err)
    }
    if counts.Loaded != 0 || counts.Skipped != 2 {
        t.Errorf("counts = %+v, want loaded=0 skipped=2", counts)
    }
    if len(writer.calls) != 0 {
        t.Errorf("got %d insert attempts, want 0", len(writer.calls))
    }
}

func TestLoadDropinProgramsNormalizedRow(t *testing.T) {
    writer := &fakeRowWriter{}
    records := []Record{
        {
            "Location ID":  "1000",
            "Course_ID":    "C1",
            "Course Title": "Lane Swim",
            "Age Min":      "6.0",
            "Start Hour":   "9",
            "End Hour":     "10",
            "End Min":      "30",
            "DayOftheWeek": "Tues",
            "First Date":   "2025-06-30",
        },
    }

    counts, err := loadDropinPrograms(writer, records, map[string]bool{"1000": true})
    if err != nil {
        t.Fatalf("loadDropinPrograms: %v", err)
    }
    if counts.Loaded != 1 || counts.Skipped != 0 {
        t.Fatalf("counts = %+v, want loaded=1 skipped=0", counts)
    }
    if len(writer.calls) != 1 {
        t.Fatalf("got %d insert attempts, want 1", len(writer.calls))
    }
    if !writer.flushed {
        t.Error("final flush was not called")
    }

    // Args align with the INSERT column list: location_id, course_id,
    // course_title, section, age_min, age_max, date_range, start_hour,
    // start_minute, end_hour, end_minute, first_date, last_date,
    // day_of_week, start_time, end_time, weekday.
    args := writer.calls[0]
    if args[0] != "1000" {
        t.Errorf("location_id = %v, want 1000", args[0])
    }
    if args[2] != "Lane Swim" {
        t.Errorf("course_title = %v", args[2])
    }
    if args[4] != 6 {
        t.Errorf("age_min = %v, want 6 (parsed from \"6.0\")", args[4])
    }
    if args[7] != 9 || args[8] != 0 {
        t.Errorf("start hour/minute = %v/%v, want 9/0 (minute defaults to 0)", args[7], args[8])
    }
    if args[14] != "09:00:00" {
        t.Errorf("start_time = %v, want 09:00:00", args[14])
    }
    if args[15] != "10:30:00" {
        t.Errorf("end_time = %v, want 10:30:00", args[15])
    }
    if args[16] != 1 {
        t.Errorf("weekday = %v, want 1 for Tues", args[16])
    }
    if args[12] != nil {
        t.Errorf("last_date = %v, want nil when absent", args[12])
    }
}

func TestLoadDropinProgramsRowErrorContinues(t *testing.T) {
    writer := &fakeRowWriter{failOn: map[int]error{0: errors.New("value too long")}}
    records := []Record{
        {"Location ID": "1000", "Course Title": "Bad Row"},
        {"Location ID": "1000", "Course Title": "Good Row"},
    }

    counts, err := loadDropinPrograms(writer, records, map[string]bool{"1000": true})
    if err != nil {
        t.Fatalf("loadDropinPrograms: %v", err)
    }
    if counts.Loaded != 1 || counts.Skipped != 1 {
        t.Errorf("counts = %+v, want loaded=1 skipped=1", counts)
    }
    if len(writer.calls) != 2 {
        t.Errorf("got %d insert attempts, want 2 (a failed row must not stop the run)", len(writer.calls))
    }
}

func TestLoadRegisteredProgramsUnknownLocation(t *testing.T) {
    writer := &fakeRowWriter{}
    records := []Record{
        {"Location ID": "9999", "Course Title": "Art Camp"},
        {"Location ID": "1000", "Course Title": "Art Camp", "Min Age": "5", "Max Age": "12"},
    }

    counts, err := loadRegisteredPrograms(writer, records, map[string]bool{"1000": true})
    if err != nil {
        t.Fatalf("loadRegisteredPrograms: %v", err)
    }
    if counts.Loaded != 1 || counts.Skipped != 1 {
        t.Errorf("counts = %+v, want loaded=1 skipped=1", counts)
    }
    if len(writer.calls) != 1 {
        t.Fatalf("got %d insert attempts, want 1", len(writer.calls))
    }
    if writer.calls[0][0] != "1000" {
        t.Errorf("location_id = %v, want 1000", writer.calls[0][0])
    }
    // min_age/max_age stay raw ints
    if writer.calls[0][12] != 5 || writer.calls[0][13] != 12 {
        t.Errorf("min/max age = %v/%v, want 5/12", writer.calls[0][12], writer.calls[0][13])
    }
}

func TestLoadFacilitiesUnknownLocation(t *testing.T) {
    writer := &fakeRowWriter{}
    records := []Record{
        {"Location ID": "9999", "Facility ID": "F1"},
    }

    counts, err := loadFacilities(writer, records, map[string]bool{"1000": true})
    if err != nil {
        t.Fatalf("loadFacilities: %v", err)
    }
    if counts.Loaded != 0 || counts.Skipped != 1 {
        t.Errorf("counts = %+v, want loaded=0 skipped=1", counts)
    }
    if len(writer.calls) != 0 {
        t.Errorf("got %d insert attempts, want 0 for an unknown location", len(writer.calls))
    }
}

func TestLoadLocationsLostRowsReported(t *testing.T) {
    lon, lat := -79.38, 43.65
    merged := []MergedLocation{
        {LocationID: "1000", Lon: &lon, Lat: &lat, Values: make([]interface{}, len(LocationFields))},
        {LocationID: "1001", Values: make([]interface{}, len(LocationFields))},
    }

    writer := &fakeRowWriter{lost: 1}
    counts, err := loadLocations(writer, merged)
    if err != nil {
        t.Fatalf("loadLocations: %v", err)
    }
    if counts.Loaded != 1 || counts.Skipped != 1 {
        t.Errorf("counts = %+v, want a lost row moved to skipped", counts)
    }
}
