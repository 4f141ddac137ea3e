package loader

import (
    "fmt"
    "strings"
    "time"
)

// districtMap fixes the handful of spellings the source files use for the
// four community council districts. Anything else is Title-cased.
var districtMap = map[string]string{
    "etobicoke york":        "Etobicoke York",
    "north york":            "North York",
    "scarborough":           "Scarborough",
    "toronto and east york": "Toronto and East York",
    "toronto east york":     "Toronto and East York",
}

// NormalizeDistrict canonicalizes a district name ("scarborough" ->
// "Scarborough"). Empty input stays empty.
func NormalizeDistrict(district string) string {
    district = strings.TrimSpace(district)
    if district == "" {
        return ""
    }
    if canonical, ok := districtMap[strings.ToLower(district)]; ok {
        return canonical
    }
    return titleWords(district)
}

// titleWords uppercases the first letter of each word. The district names
// are plain ASCII; no locale-aware casing needed.
func titleWords(s string) string {
    words := strings.Fields(strings.ToLower(s))
    for i, w := range words {
        words[i] = strings.ToUpper(w[:1]) + w[1:]
    }
    return strings.Join(words, " ")
}

// dayMap covers full names, 3-letter abbreviations and the irregular short
// forms that appear in the drop-in feed.
var dayMap = map[string]int{
    "monday": 0, "mon": 0,
    "tuesday": 1, "tue": 1, "tues": 1,
    "wednesday": 2, "wed": 2,
    "thursday": 3, "thu": 3, "thur": 3, "thurs": 3,
    "friday": 4, "fri": 4,
    "saturday": 5, "sat": 5,
    "sunday": 6, "sun": 6,
}

// ParseDayOfWeek maps a day label to a weekday ordinal, 0=Monday through
// 6=Sunday. Unrecognized or empty labels yield nil, which callers must keep
// distinct from Monday.
func ParseDayOfWeek(day string) *int {
    weekday, ok := dayMap[strings.ToLower(strings.TrimSpace(day))]
    if !ok {
        return nil
    }
    return &weekday
}

// dateLayouts are tried in order by ParseLenientDate.
var dateLayouts = []string{
    "2006-01-02",
    "2006-01-02T15:04:05",
    "01/02/2006",
    "Jan 2, 2006",
    "January 2, 2006",
}

// ParseLenientDate parses a calendar date from any of the layouts the open
// data feeds have used. Unparseable input yields nil rather than an error;
// a bad date never fails the row.
func ParseLenientDate(value *string) *time.Time {
    if value == nil {
        return nil
    }
    for _, layout := range dateLayouts {
        if t, err := time.Parse(layout, *value); err == nil {
            return &t
        }
    }
    return nil
}

// ComposeTime builds an "HH:MM:00" time-of-day string. A nil hour yields nil;
// a nil minute defaults to 0 when the hour is present.
func ComposeTime(hour, minute *int) *string {
    if hour == nil {
        return nil
    }
    m := 0
    if minute != nil {
        m = *minute
    }
    s := fmt.Sprintf("%02d:%02d:00", *hour, m)
    return &s
}

// minuteOrZero applies the drop-in feed's minute default.
func minuteOrZero(minute *int) int {
    if minute == nil {
        return 0
    }
    return *minute
}
