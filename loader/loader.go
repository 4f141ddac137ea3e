package loader

import (
    "database/sql"
    "encoding/json"
    "fmt"
    "log"
    "strings"

    "github.com/anne116/toronto-recreation-finder/models"
)

// batchSize is how many rows go into one transaction before it commits.
// A mid-run failure leaves prior batches durable; there is no rollback of
// committed batches.
const batchSize = 100

// Outcome is the per-row result of a loader: the row was either loaded or
// skipped with a reason. Loaders produce one Outcome per source row and the
// caller folds them into counts, so no error is silently swallowed.
type Outcome struct {
    Loaded bool
    Reason string
}

func rowLoaded() Outcome { return Outcome{Loaded: true} }

func rowSkipped(reason string) Outcome { return Outcome{Reason: reason} }

// Counts is the fold of a loader's outcomes, used for the end-of-run report.
type Counts struct {
    Loaded  int
    Skipped int
}

func FoldOutcomes(outcomes []Outcome) Counts {
    var c Counts
    for _, o := range outcomes {
        if o.Loaded {
            c.Loaded++
        } else {
            c.Skipped++
        }
    }
    return c
}

// reconcileLost moves rows lost to a failed batch commit from the loaded
// column to the skipped column, so the report only counts durable rows.
func reconcileLost(c Counts, lost int) Counts {
    c.Loaded -= lost
    c.Skipped += lost
    return c
}

// rowWriter is the sink the loaders write rows through. batchWriter is the
// real implementation.
type rowWriter interface {
    exec(query string, args ...interface{}) error
    flush() error
    lostRows() int
}

// batchWriter executes row inserts inside a transaction and commits every
// batchSize rows. Each row runs under a savepoint so one bad row does not
// poison the rest of its batch.
type batchWriter struct {
    db      *sql.DB
    tx      *sql.Tx
    rows    int
    pending int // rows exec'd into the current uncommitted transaction
    lost    int // rows reported loaded but rolled back by a failed commit
}

func newBatchWriter(db *sql.DB) *batchWriter {
    return &batchWriter{db: db}
}

func (b *batchWriter) exec(query string, args ...interface{}) error {
    if b.tx == nil {
        tx, err := b.db.Begin()
        if err != nil {
            return fmt.Errorf("begin batch: %v", err)
        }
        b.tx = tx
    }

    if _, err := b.tx.Exec("SAVEPOINT row_entry"); err != nil {
        return err
    }
    if _, err := b.tx.Exec(query, args...); err != nil {
        b.tx.Exec("ROLLBACK TO SAVEPOINT row_entry")
        return err
    }
    if _, err := b.tx.Exec("RELEASE SAVEPOINT row_entry"); err != nil {
        return err
    }

    b.pending++
    b.rows++
    if b.rows%batchSize == 0 {
        if err := b.flush(); err != nil {
            // flush moved the whole batch into lost, but the caller records
            // this row as skipped itself; take it back out.
            b.lost--
            return err
        }
    }
    return nil
}

func (b *batchWriter) flush() error {
    if b.tx == nil {
        return nil
    }
    err := b.tx.Commit()
    b.tx = nil
    if err != nil {
        // Every row exec'd into this transaction is gone, not just the one
        // that triggered the commit.
        b.lost += b.pending
        b.pending = 0
        return fmt.Errorf("commit batch: %v", err)
    }
    b.pending = 0
    return nil
}

func (b *batchWriter) lostRows() int { return b.lost }

// locationInsertSQL is generated from the provenance table so the INSERT can
// never drift from the merge policy.
func locationInsertSQL() string {
    cols := []string{"location_id"}
    for _, rule := range LocationFields {
        cols = append(cols, rule.Column)
    }

    placeholders := make([]string, len(cols))
    for i := range cols {
        placeholders[i] = fmt.Sprintf("$%d", i+1)
    }
    lonPos := len(cols) + 1
    latPos := len(cols) + 2

    return fmt.Sprintf(`
        INSERT INTO locations (%s, geom)
        VALUES (%s, ST_SetSRID(ST_MakePoint($%d, $%d), 4326))
        ON CONFLICT (location_id) DO UPDATE SET
            asset_id = EXCLUDED.asset_id,
            geom = EXCLUDED.geom`,
        strings.Join(cols, ", "), strings.Join(placeholders, ", "), lonPos, latPos)
}

// LoadLocations persists the merged locations. A duplicate external id
// overwrites only the point and asset id (last write wins).
func LoadLocations(db *sql.DB, merged []MergedLocation) (Counts, error) {
    return loadLocations(newBatchWriter(db), merged)
}

func loadLocations(writer rowWriter, merged []MergedLocation) (Counts, error) {
    log.Printf("Loading locations from GeoJSON + CSV merge...")

    query := locationInsertSQL()
    var outcomes []Outcome

    for _, loc := range merged {
        args := make([]interface{}, 0, len(LocationFields)+3)
        args = append(args, loc.LocationID)
        args = append(args, loc.Values...)
        args = append(args, loc.Lon, loc.Lat)

        if err := writer.exec(query, args...); err != nil {
            log.Printf("Error loading location %s: %v", loc.LocationID, err)
            outcomes = append(outcomes, rowSkipped(err.Error()))
            continue
        }
        outcomes = append(outcomes, rowLoaded())

        if len(outcomes)%batchSize == 0 {
            log.Printf("  Loaded %d locations...", len(outcomes))
        }
    }

    if err := writer.flush(); err != nil {
        return reconcileLost(FoldOutcomes(outcomes), writer.lostRows()), err
    }

    counts := reconcileLost(FoldOutcomes(outcomes), writer.lostRows())
    log.Printf("Loaded %d locations (%d skipped)", counts.Loaded, counts.Skipped)
    return counts, nil
}

// LoadWards persists the administrative boundary polygons. Wards have no
// relationship to locations; containment is computed at query time.
func LoadWards(db *sql.DB, features []models.Feature) (Counts, error) {
    return loadWards(newBatchWriter(db), features)
}

func loadWards(writer rowWriter, features []models.Feature) (Counts, error) {
    log.Printf("Loading ward boundaries...")

    var outcomes []Outcome

    for _, feature := range features {
        if feature.Geometry == nil {
            log.Printf("Skipping ward without geometry")
            outcomes = append(outcomes, rowSkipped("missing geometry"))
            continue
        }
        geomJSON, err := json.Marshal(feature.Geometry)
        if err != nil {
            log.Printf("Error encoding ward geometry: %v", err)
            outcomes = append(outcomes, rowSkipped(err.Error()))
            continue
        }

        err = writer.exec(`
            INSERT INTO wards (area_id, area_name, area_short_code, area_desc, geom)
            VALUES ($1, $2, $3, $4, ST_GeomFromGeoJSON($5))`,
            toNullable(propInt(feature.Properties, "AREA_ID")),
            toNullableString(propString(feature.Properties, "AREA_NAME")),
            toNullableString(propString(feature.Properties, "AREA_SHORT_CODE")),
            toNullableString(propString(feature.Properties, "AREA_DESC")),
            string(geomJSON))
        if err != nil {
            log.Printf("Error loading ward: %v", err)
            outcomes = append(outcomes, rowSkipped(err.Error()))
            continue
        }
        outcomes = append(outcomes, rowLoaded())
    }

    if err := writer.flush(); err != nil {
        return reconcileLost(FoldOutcomes(outcomes), writer.lostRows()), err
    }

    counts := reconcileLost(FoldOutcomes(outcomes), writer.lostRows())
    log.Printf("Loaded %d wards (%d skipped)", counts.Loaded, counts.Skipped)
    return counts, nil
}

// LoadDropinPrograms persists the drop-in schedule. Rows referencing an
// unknown location are skipped and counted, not treated as errors.
func LoadDropinPrograms(db *sql.DB, records []Record, locationIDs map[string]bool) (Counts, error) {
    return loadDropinPrograms(newBatchWriter(db), records, locationIDs)
}

func loadDropinPrograms(writer rowWriter, records []Record, locationIDs map[string]bool) (Counts, error) {
    log.Printf("Loading drop-in programs...")

    var outcomes []Outcome

    for _, rec := range records {
        locationID := rec.Get("Location ID")
        if locationID == nil {
            outcomes = append(outcomes, rowSkipped("missing location id"))
            continue
        }
        if !locationIDs[*locationID] {
            outcomes = append(outcomes, rowSkipped("unknown location"))
            continue
        }

        startHour := rec.GetInt("Start Hour")
        startMinute := minuteOrZero(rec.GetInt("Start Minute"))
        endHour := rec.GetInt("End Hour")
        endMinute := minuteOrZero(rec.GetInt("End Min"))

        startTime := ComposeTime(startHour, &startMinute)
        endTime := ComposeTime(endHour, &endMinute)

        weekday := ParseDayOfWeek(stringOrEmpty(rec.Get("DayOftheWeek")))
        firstDate := ParseLenientDate(rec.Get("First Date"))
        lastDate := ParseLenientDate(rec.Get("Last Date"))

        err := writer.exec(`
            INSERT INTO programs_dropin (
                location_id, course_id, course_title, section,
                age_min, age_max, date_range,
                start_hour, start_minute, end_hour, end_minute,
                first_date, last_date, day_of_week,
                start_time, end_time, weekday
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
            *locationID,
            toNullableString(rec.Get("Course_ID")),
            toNullableString(rec.Get("Course Title")),
            toNullableString(rec.Get("Section")),
            toNullable(rec.GetInt("Age Min")),
            toNullable(rec.GetInt("Age Max")),
            toNullableString(rec.Get("Date Range")),
            toNullable(startHour), startMinute,
            toNullable(endHour), endMinute,
            toNullableTime(firstDate), toNullableTime(lastDate),
            toNullableString(rec.Get("DayOftheWeek")),
            toNullableString(startTime), toNullableString(endTime),
            toNullable(weekday))
        if err != nil {
            log.Printf("Error loading drop-in program: %v", err)
            outcomes = append(outcomes, rowSkipped(err.Error()))
            continue
        }
        outcomes = append(outcomes, rowLoaded())
    }

    if err := writer.flush(); err != nil {
        return reconcileLost(FoldOutcomes(outcomes), writer.lostRows()), err
    }

    counts := reconcileLost(FoldOutcomes(outcomes), writer.lostRows())
    log.Printf("Loaded %d drop-in programs (%d skipped)", counts.Loaded, counts.Skipped)
    return counts, nil
}

// LoadRegisteredPrograms persists the registered-program feed. Unlike the
// drop-in loader the hour/minute fields stay raw with no minute defaulting,
// and the day/time descriptors are kept as free text.
func LoadRegisteredPrograms(db *sql.DB, records []Record, locationIDs map[string]bool) (Counts, error) {
    return loadRegisteredPrograms(newBatchWriter(db), records, locationIDs)
}

func loadRegisteredPrograms(writer rowWriter, records []Record, locationIDs map[string]bool) (Counts, error) {
    log.Printf("Loading registered programs...")

    var outcomes []Outcome

    for _, rec := range records {
        locationID := rec.Get("Location ID")
        if locationID == nil {
            outcomes = append(outcomes, rowSkipped("missing location id"))
            continue
        }
        if !locationIDs[*locationID] {
            outcomes = append(outcomes, rowSkipped("unknown location"))
            continue
        }

        registrationDate := ParseLenientDate(rec.Get("Registration Date"))

        err := writer.exec(`
            INSERT INTO programs_registered (
                location_id, course_id, section, activity_title,
                course_title, days_of_week, from_to,
                start_hour, start_minute, end_hour, end_minute,
                activity_url, min_age, max_age, program_category,
                registration_date, status_info
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
            *locationID,
            toNullableString(rec.Get("Course_ID")),
            toNullableString(rec.Get("Section")),
            toNullableString(rec.Get("Activity Title")),
            toNullableString(rec.Get("Course Title")),
            toNullableString(rec.Get("Days of The Week")),
            toNullableString(rec.Get("From To")),
            toNullable(rec.GetInt("Start Hour")),
            toNullable(rec.GetInt("Start Min")),
            toNullable(rec.GetInt("End Hour")),
            toNullable(rec.GetInt("End Min")),
            toNullableString(rec.Get("Activity URL")),
            toNullable(rec.GetInt("Min Age")),
            toNullable(rec.GetInt("Max Age")),
            toNullableString(rec.Get("Program Category")),
            toNullableTime(registrationDate),
            toNullableString(rec.Get("Status / Information")))
        if err != nil {
            log.Printf("Error loading registered program: %v", err)
            outcomes = append(outcomes, rowSkipped(err.Error()))
            continue
        }
        outcomes = append(outcomes, rowLoaded())
    }

    if err := writer.flush(); err != nil {
        return reconcileLost(FoldOutcomes(outcomes), writer.lostRows()), err
    }

    counts := reconcileLost(FoldOutcomes(outcomes), writer.lostRows())
    log.Printf("Loaded %d registered programs (%d skipped)", counts.Loaded, counts.Skipped)
    return counts, nil
}

// LoadFacilities persists the per-centre facility rows.
func LoadFacilities(db *sql.DB, records []Record, locationIDs map[string]bool) (Counts, error) {
    return loadFacilities(newBatchWriter(db), records, locationIDs)
}

func loadFacilities(writer rowWriter, records []Record, locationIDs map[string]bool) (Counts, error) {
    log.Printf("Loading facilities...")

    var outcomes []Outcome

    for _, rec := range records {
        locationID := rec.Get("Location ID")
        if locationID == nil {
            outcomes = append(outcomes, rowSkipped("missing location id"))
            continue
        }
        if !locationIDs[*locationID] {
            outcomes = append(outcomes, rowSkipped("unknown location"))
            continue
        }

        err := writer.exec(`
            INSERT INTO facilities (
                facility_id, location_id, facility_type, permit,
                facility_type_code, facility_rating, asset_name
            ) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
            toNullableString(rec.Get("Facility ID")),
            *locationID,
            toNullableString(rec.Get("Facility Type (Display Name)")),
            toNullableString(rec.Get("Permit")),
            toNullableString(rec.Get("FacilityType")),
            toNullableString(rec.Get("Facility Rating")),
            toNullableString(rec.Get("Asset Name")))
        if err != nil {
            log.Printf("Error loading facility: %v", err)
            outcomes = append(outcomes, rowSkipped(err.Error()))
            continue
        }
        outcomes = append(outcomes, rowLoaded())
    }

    if err := writer.flush(); err != nil {
        return reconcileLost(FoldOutcomes(outcomes), writer.lostRows()), err
    }

    counts := reconcileLost(FoldOutcomes(outcomes), writer.lostRows())
    log.Printf("Loaded %d facilities (%d skipped)", counts.Loaded, counts.Skipped)
    return counts, nil
}

// LocationIDSet fetches every persisted external id, used by the dependent
// loaders for their referential existence check.
func LocationIDSet(db *sql.DB) (map[string]bool, error) {
    rows, err := db.Query(`SELECT location_id FROM locations`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    ids := make(map[string]bool)
    for rows.Next() {
        var id string
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids[id] = true
    }
    return ids, rows.Err()
}
