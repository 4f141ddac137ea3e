package handlers

import (
    "net/http"

    "github.com/gorilla/mux"
    "github.com/lib/pq"

    "github.com/anne116/toronto-recreation-finder/config"
    "github.com/anne116/toronto-recreation-finder/models"
)

// GetCentrePrograms returns the programs at one centre, optionally narrowed
// to a single program type.
func GetCentrePrograms(w http.ResponseWriter, r *http.Request) {
    locationID := mux.Vars(r)["id"]
    programType := r.URL.Query().Get("program_type")

    if programType != "" && programType != "dropin" && programType != "registered" {
        sendErrorResponse(w, "program_type must be 'dropin' or 'registered'", http.StatusBadRequest)
        return
    }

    dropin := make([]models.DropinProgram, 0)
    registered := make([]models.RegisteredProgram, 0)

    if programType == "" || programType == "dropin" {
        rows, err := config.DB.Query(`
            SELECT
                course_id,
                course_title,
                section,
                age_min,
                age_max,
                day_of_week,
                start_time::text,
                end_time::text,
                date_range,
                first_date::text,
                last_date::text
            FROM programs_dropin
            WHERE location_id = $1
            ORDER BY weekday, start_time`, locationID)
        if err != nil {
            sendErrorResponse(w, "Database error", http.StatusInternalServerError)
            return
        }
        defer rows.Close()

        for rows.Next() {
            var p models.DropinProgram
            if err := rows.Scan(
                &p.CourseID, &p.CourseTitle, &p.Section, &p.AgeMin, &p.AgeMax,
                &p.DayOfWeek, &p.StartTime, &p.EndTime, &p.DateRange,
                &p.FirstDate, &p.LastDate); err != nil {
                sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
                return
            }
            dropin = append(dropin, p)
        }
        if err := rows.Err(); err != nil {
            sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
            return
        }
    }

    if programType == "" || programType == "registered" {
        rows, err := config.DB.Query(`
            SELECT
                course_id,
                course_title,
                activity_title,
                section,
                min_age,
                max_age,
                days_of_week,
                from_to,
                start_hour,
                start_minute,
                end_hour,
                end_minute,
                program_category,
                registration_date::text,
                status_info,
                activity_url
            FROM programs_registered
            WHERE location_id = $1
            ORDER BY course_title`, locationID)
        if err != nil {
            sendErrorResponse(w, "Database error", http.StatusInternalServerError)
            return
        }
        defer rows.Close()

        for rows.Next() {
            var p models.RegisteredProgram
            if err := rows.Scan(
                &p.CourseID, &p.CourseTitle, &p.ActivityTitle, &p.Section,
                &p.MinAge, &p.MaxAge, &p.DaysOfWeek, &p.FromTo,
                &p.StartHour, &p.StartMinute, &p.EndHour, &p.EndMinute,
                &p.ProgramCategory, &p.RegistrationDate, &p.StatusInfo,
                &p.ActivityURL); err != nil {
                sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
                return
            }
            registered = append(registered, p)
        }
        if err := rows.Err(); err != nil {
            sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
            return
        }
    }

    sendJSONResponse(w, map[string]interface{}{
        "dropin":     dropin,
        "registered": registered,
    })
}

type programTypeTitles struct {
    Titles []string `json:"titles"`
    Count  int      `json:"count"`
}

// GetCentreProgramTypes returns the distinct program titles offered at one
// centre, split by program type.
func GetCentreProgramTypes(w http.ResponseWriter, r *http.Request) {
    locationID := mux.Vars(r)["id"]

    rows, err := config.DB.Query(`
        SELECT
            'dropin' AS program_type,
            ARRAY_AGG(DISTINCT course_title ORDER BY course_title)
                FILTER (WHERE course_title IS NOT NULL) AS titles,
            COUNT(DISTINCT course_title) AS count
        FROM programs_dropin
        WHERE location_id = $1
        UNION ALL
        SELECT
            'registered' AS program_type,
            ARRAY_AGG(DISTINCT course_title ORDER BY course_title)
                FILTER (WHERE course_title IS NOT NULL) AS titles,
            COUNT(DISTINCT course_title) AS count
        FROM programs_registered
        WHERE location_id = $1`, locationID)
    if err != nil {
        sendErrorResponse(w, "Database error", http.StatusInternalServerError)
        return
    }
    defer rows.Close()

    response := map[string]programTypeTitles{
        "dropin":     {Titles: []string{}},
        "registered": {Titles: []string{}},
    }
    for rows.Next() {
        var programType string
        var titles pq.StringArray
        var count int
        if err := rows.Scan(&programType, &titles, &count); err != nil {
            sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
            return
        }
        if titles == nil {
            titles = pq.StringArray{}
        }
        response[programType] = programTypeTitles{Titles: titles, Count: count}
    }
    if err := rows.Err(); err != nil {
        sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
        return
    }

    sendJSONResponse(w, response)
}

// GetCentreFacilities returns the facilities at one centre.
func GetCentreFacilities(w http.ResponseWriter, r *http.Request) {
    locationID := mux.Vars(r)["id"]

    rows, err := config.DB.Query(`
        SELECT
            facility_id,
            facility_type,
            facility_type_code,
            asset_name,
            permit,
            facility_rating
        FROM facilities
        WHERE location_id = $1
        ORDER BY facility_type`, locationID)
    if err != nil {
        sendErrorResponse(w, "Database error", http.StatusInternalServerError)
        return
    }
    defer rows.Close()

    facilities := make([]models.Facility, 0)
    for rows.Next() {
        var f models.Facility
        if err := rows.Scan(
            &f.FacilityID, &f.FacilityType, &f.FacilityTypeCode,
            &f.AssetName, &f.Permit, &f.FacilityRating); err != nil {
            sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
            return
        }
        facilities = append(facilities, f)
    }
    if err := rows.Err(); err != nil {
        sendErrorResponse(w, "Error processing results", http.StatusInternalServerError)
        return
    }

    sendJSONResponse(w, facilities)
}
