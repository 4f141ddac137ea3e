package models

// DropinProgram is a drop-in schedule entry at one centre.
type DropinProgram struct {
    CourseID    *string `json:"course_id"`
    CourseTitle *string `json:"course_title"`
    Section     *string `json:"section"`
    AgeMin      *int    `json:"age_min"`
    AgeMax      *int    `json:"age_max"`
    DayOfWeek   *string `json:"day_of_week"`
    StartTime   *string `json:"start_time"`
    EndTime     *string `json:"end_time"`
    DateRange   *string `json:"date_range"`
    FirstDate   *string `json:"first_date"`
    LastDate    *string `json:"last_date"`
}

// RegisteredProgram is a registration-based offering at one centre. Day and
// time descriptors stay free-text; hour/minute fields are kept as raw ints.
type RegisteredProgram struct {
    CourseID         *string `json:"course_id"`
    CourseTitle      *string `json:"course_title"`
    ActivityTitle    *string `json:"activity_title"`
    Section          *string `json:"section"`
    MinAge           *int    `json:"min_age"`
    MaxAge           *int    `json:"max_age"`
    DaysOfWeek       *string `json:"days_of_week"`
    FromTo           *string `json:"from_to"`
    StartHour        *int    `json:"start_hour"`
    StartMinute      *int    `json:"start_minute"`
    EndHour          *int    `json:"end_hour"`
    EndMinute        *int    `json:"end_minute"`
    ProgramCategory  *string `json:"program_category"`
    RegistrationDate *string `json:"registration_date"`
    StatusInfo       *string `json:"status_info"`
    ActivityURL      *string `json:"activity_url"`
}

// DropinSearchRow is a drop-in program joined with its centre, as returned
// by the cross-centre program search.
type DropinSearchRow struct {
    ID           int      `json:"id"`
    CourseID     *string  `json:"course_id"`
    CourseTitle  *string  `json:"course_title"`
    Section      *string  `json:"section"`
    DayOfWeek    *string  `json:"day_of_week"`
    StartTime    *string  `json:"start_time"`
    EndTime      *string  `json:"end_time"`
    AgeMin       *int     `json:"age_min"`
    AgeMax       *int     `json:"age_max"`
    LocationID   string   `json:"location_id"`
    LocationName *string  `json:"location_name"`
    AssetName    *string  `json:"asset_name"`
    Address      *string  `json:"address"`
    District     *string  `json:"district"`
    Lon          *float64 `json:"lon"`
    Lat          *float64 `json:"lat"`
    Weekday      *int     `json:"weekday"`
    DateRange    *string  `json:"date_range"`
    FirstDate    *string  `json:"first_date"`
    LastDate     *string  `json:"last_date"`
}

type RegisteredSearchRow struct {
    ID               int      `json:"id"`
    CourseID         *string  `json:"course_id"`
    CourseTitle      *string  `json:"course_title"`
    ActivityTitle    *string  `json:"activity_title"`
    Section          *string  `json:"section"`
    DaysOfWeek       *string  `json:"days_of_week"`
    FromTo           *string  `json:"from_to"`
    StartHour        *int     `json:"start_hour"`
    StartMinute      *int     `json:"start_minute"`
    EndHour          *int     `json:"end_hour"`
    EndMinute        *int     `json:"end_minute"`
    MinAge           *int     `json:"min_age"`
    MaxAge           *int     `json:"max_age"`
    LocationID       string   `json:"location_id"`
    LocationName     *string  `json:"location_name"`
    AssetName        *string  `json:"asset_name"`
    Address          *string  `json:"address"`
    District         *string  `json:"district"`
    Lon              *float64 `json:"lon"`
    Lat              *float64 `json:"lat"`
    ProgramCategory  *string  `json:"program_category"`
    RegistrationDate *string  `json:"registration_date"`
    StatusInfo       *string  `json:"status_info"`
    ActivityURL      *string  `json:"activity_url"`
}
