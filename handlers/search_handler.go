package handlers

import (
    "fmt"
    "net/http"

    "github.com/anne116/toronto-recreation-finder/config"
    "github.com/anne116/toronto-recreation-finder/models"
)

// ageFilterClause returns the SQL predicate for an age bracket over the
// given min/max column names. A stored row with an absent bound is treated
// as non-restrictive, so a program with no recorded ages matches every
// bracket.
func ageFilterClause(age, minCol, maxCol string) string {
    switch age {
    case "young": // 12 and under
        return fmt.Sprintf("(%s <= 12 OR %s < 12 OR %s IS NULL)", maxCol, minCol, maxCol)
    case "teen": // 13-18
        return fmt.Sprintf("(%s <= 18 OR %s IS NULL) AND (%s >= 13 OR %s IS NULL)",
            minCol, minCol, maxCol, maxCol)
    case "adult": // 19-65
        return fmt.Sprintf("(%s <= 65 OR %s IS NULL) AND (%s >= 19 OR %s IS NULL)",
            minCol, minCol, maxCol, maxCol)
    case "senior": // 55+
        return fmt.Sprintf("(%s >= 55 OR %s IS NULL)", minCol, minCol)
    }
    return ""
}

func validAgeBracket(age string) bool {
    switch age {
    case "", "young", "teen", "adult", "senior":
        return true
    }
    return false
}

// SearchPrograms searches programs across all centres with the full filter
// set, for the weekly calendar grid.
func SearchPrograms(w http.ResponseWriter, r *http.Request) {
    q := r.URL.Query()

    weekday, err := parseWeekday(q)
    if err != nil {
        sendErrorResponse(w, err.Error(), http.StatusBadRequest)
        return
    }
    age := q.Get("age")
    if !validAgeBracket(age) {
        sendErrorResponse(w, "age must be one of 'young', 'teen', 'adult', 'senior'", http.StatusBadRequest)
        return
    }
    activity := q.Get("activity")
    district := q.Get("district")
    limit := parseLimit(q, 200, 500)

    programType := q.Get("program_type")
    if programType == "" {
        programType = "dropin"
    }

    filters := map[string]interface{}{
        "activity": orNil(activity),
        "age":      orNil(age),
        "weekday":  weekday,
        "district": orNil(district),
    }

    switch programType {
    case "dropin":
        programs, err := searchDropin(activity, age, weekday, district, limit)
        if err != nil {
            sendErrorResponse(w, "Database error", http.StatusInternalServerError)
            return
        }
        sendJSONResponse(w, map[string]interface{}{
            "program_type": "dropin",
            "total":        len(programs),
            "filters":      filters,
            "programs":     programs,
        })
    case "registered":
        programs, err := searchRegistered(activity, age, district, limit)
        if err != nil {
            sendErrorResponse(w, "Database error", http.StatusInternalServerError)
            return
        }
        sendJSONResponse(w, map[string]interface{}{
            "program_type": "registered",
            "total":        len(programs),
            "filters":      filters,
            "programs":     programs,
        })
    default:
        sendErrorResponse(w, "program_type must be 'dropin' or 'registered'", http.StatusBadRequest)
    }
}

func searchDropin(activity, age string, weekday *int, district string, limit int) ([]models.DropinSearchRow, error) {
    query := `
        SELECT
            pd.id,
            pd.course_id,
            pd.course_title,
            pd.section,
            pd.day_of_week,
            pd.start_time::text,
            pd.end_time::text,
            pd.age_min,
            pd.age_max,
            pd.location_id,
            l.location_name,
            l.asset_name,
            l.address,
            l.district,
            ST_X(l.geom) AS lon,
            ST_Y(l.geom) AS lat,
            pd.weekday,
            pd.date_range,
            pd.first_date::text,
            pd.last_date::text
        FROM programs_dropin pd
        JOIN locations l ON pd.location_id = l.location_id
        WHERE 1=1`
    var args []interface{}
    argIdx := 1

    if activity != "" {
        query += fmt.Sprintf(" AND pd.course_title ILIKE $%d", argIdx)
        args = append(args, "%"+activity+"%")
        argIdx++
    }
    if age != "" {
        query += " AND " + ageFilterClause(age, "pd.age_min", "pd.age_max")
    }
    if weekday != nil {
        query += fmt.Sprintf(" AND pd.weekday = $%d", argIdx)
        args = append(args, *weekday)
        argIdx++
    }
    if district != "" {
        query += fmt.Sprintf(" AND l.district = $%d", argIdx)
        args = append(args, district)
        argIdx++
    }

    query += fmt.Sprintf(`
        ORDER BY
            pd.weekday,
            pd.start_time,
            l.location_name
        LIMIT $%d`, argIdx)
    args = append(args, limit)

    rows, err := config.DB.Query(query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    results := make([]models.DropinSearchRow, 0)
    for rows.Next() {
        var p models.DropinSearchRow
        if err := rows.Scan(
            &p.ID, &p.CourseID, &p.CourseTitle, &p.Section, &p.DayOfWeek,
            &p.StartTime, &p.EndTime, &p.AgeMin, &p.AgeMax, &p.LocationID,
            &p.LocationName, &p.AssetName, &p.Address, &p.District,
            &p.Lon, &p.Lat, &p.Weekday, &p.DateRange,
            &p.FirstDate, &p.LastDate); err != nil {
            return nil, err
        }
        results = append(results, p)
    }
    return results, rows.Err()
}

func searchRegistered(activity, age, district string, limit int) ([]models.RegisteredSearchRow, error) {
    query := `
        SELECT
            pr.id,
            pr.course_id,
            pr.course_title,
            pr.activity_title,
            pr.section,
            pr.days_of_week,
            pr.from_to,
            pr.start_hour,
            pr.start_minute,
            pr.end_hour,
            pr.end_minute,
            pr.min_age,
            pr.max_age,
            pr.location_id,
            l.location_name,
            l.asset_name,
            l.address,
            l.district,
            ST_X(l.geom) AS lon,
            ST_Y(l.geom) AS lat,
            pr.program_category,
            pr.registration_date::text,
            pr.status_info,
            pr.activity_url
        FROM programs_registered pr
        JOIN locations l ON pr.location_id = l.location_id
        WHERE 1=1`
    var args []interface{}
    argIdx := 1

    if activity != "" {
        query += fmt.Sprintf(" AND (pr.course_title ILIKE $%d OR pr.activity_title ILIKE $%d)", argIdx, argIdx)
        args = append(args, "%"+activity+"%")
        argIdx++
    }
    if age != "" {
        query += " AND " + ageFilterClause(age, "pr.min_age", "pr.max_age")
    }
    if district != "" {
        query += fmt.Sprintf(" AND l.district = $%d", argIdx)
        args = append(args, district)
        argIdx++
    }

    query += fmt.Sprintf(`
        ORDER BY
            pr.course_title,
            l.location_name
        LIMIT $%d`, argIdx)
    args = append(args, limit)

    rows, err := config.DB.Query(query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    results := make([]models.RegisteredSearchRow, 0)
    for rows.Next() {
        var p models.RegisteredSearchRow
        if err := rows.Scan(
            &p.ID, &p.CourseID, &p.CourseTitle, &p.ActivityTitle, &p.Section,
            &p.DaysOfWeek, &p.FromTo, &p.StartHour, &p.StartMinute,
            &p.EndHour, &p.EndMinute, &p.MinAge, &p.MaxAge, &p.LocationID,
            &p.LocationName, &p.AssetName, &p.Address, &p.District,
            &p.Lon, &p.Lat, &p.ProgramCategory, &p.RegistrationDate,
            &p.StatusInfo, &p.ActivityURL); err != nil {
            return nil, err
        }
        results = append(results, p)
    }
    return results, rows.Err()
}

// GetSearchStats returns quick aggregate counts for a search, for
// "Found 25 programs at 12 centres" style messages. The combined centre
// count is the maximum across program types, not the union of centres — a
// deliberate approximation kept from the original product behavior.
func GetSearchStats(w http.ResponseWriter, r *http.Request) {
    q := r.URL.Query()

    weekday, err := parseWeekday(q)
    if err != nil {
        sendErrorResponse(w, err.Error(), http.StatusBadRequest)
        return
    }
    age := q.Get("age")
    if !validAgeBracket(age) {
        sendErrorResponse(w, "age must be one of 'young', 'teen', 'adult', 'senior'", http.StatusBadRequest)
        return
    }
    activity := q.Get("activity")
    district := q.Get("district")

    dropin, err := countDropin(activity, age, weekday, district)
    if err != nil {
        sendErrorResponse(w, "Database error", http.StatusInternalServerError)
        return
    }
    registered, err := countRegistered(activity, age, district)
    if err != nil {
        sendErrorResponse(w, "Database error", http.StatusInternalServerError)
        return
    }

    stats := models.SearchStats{
        Dropin:     dropin,
        Registered: registered,
        Total: models.TypeCountPair{
            Programs: dropin.Programs + registered.Programs,
            Centres:  maxInt(dropin.Centres, registered.Centres),
        },
    }
    sendJSONResponse(w, stats)
}

func countDropin(activity, age string, weekday *int, district string) (models.TypeCountPair, error) {
    query := `
        SELECT COUNT(DISTINCT pd.id), COUNT(DISTINCT pd.location_id)
        FROM programs_dropin pd
        JOIN locations l ON pd.location_id = l.location_id
        WHERE 1=1`
    var args []interface{}
    argIdx := 1

    if activity != "" {
        query += fmt.Sprintf(" AND pd.course_title ILIKE $%d", argIdx)
        args = append(args, "%"+activity+"%")
        argIdx++
    }
    if age != "" {
        query += " AND " + ageFilterClause(age, "pd.age_min", "pd.age_max")
    }
    if weekday != nil {
        query += fmt.Sprintf(" AND pd.weekday = $%d", argIdx)
        args = append(args, *weekday)
        argIdx++
    }
    if district != "" {
        query += fmt.Sprintf(" AND l.district = $%d", argIdx)
        args = append(args, district)
        argIdx++
    }

    var pair models.TypeCountPair
    err := config.DB.QueryRow(query, args...).Scan(&pair.Programs, &pair.Centres)
    return pair, err
}

func countRegistered(activity, age, district string) (models.TypeCountPair, error) {
    query := `
        SELECT COUNT(DISTINCT pr.id), COUNT(DISTINCT pr.location_id)
        FROM programs_registered pr
        JOIN locations l ON pr.location_id = l.location_id
        WHERE 1=1`
    var args []interface{}
    argIdx := 1

    if activity != "" {
        query += fmt.Sprintf(" AND (pr.course_title ILIKE $%d OR pr.activity_title ILIKE $%d)", argIdx, argIdx)
        args = append(args, "%"+activity+"%")
        argIdx++
    }
    if age != "" {
        query += " AND " + ageFilterClause(age, "pr.min_age", "pr.max_age")
    }
    if district != "" {
        query += fmt.Sprintf(" AND l.district = $%d", argIdx)
        args = append(args, district)
        argIdx++
    }

    var pair models.TypeCountPair
    err := config.DB.QueryRow(query, args...).Scan(&pair.Programs, &pair.Centres)
    return pair, err
}

func maxInt(a, b int) int {
    if a > b {
        return a
    }
    return b
}

func orNil(s string) interface{} {
    if s == "" {
        return nil
    }
    return s
}
