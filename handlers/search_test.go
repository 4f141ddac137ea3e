package handlers

import (
    "net/url"
    "strings"
    "testing"
)

func TestAgeFilterClause(t *testing.T) {
    cases := []struct {
        age  string
        want string
    }{
        {"young", "(age_max <= 12 OR age_min < 12 OR age_max IS NULL)"},
        {"teen", "(age_min <= 18 OR age_min IS NULL) AND (age_max >= 13 OR age_max IS NULL)"},
        {"adult", "(age_min <= 65 OR age_min IS NULL) AND (age_max >= 19 OR age_max IS NULL)"},
        {"senior", "(age_min >= 55 OR age_min IS NULL)"},
        {"", ""},
        {"child", ""},
    }
    for _, c := range cases {
        if got := ageFilterClause(c.age, "age_min", "age_max"); got != c.want {
            t.Errorf("ageFilterClause(%q) = %q, want %q", c.age, got, c.want)
        }
    }
}

func TestAgeFilterClauseUsesGivenColumns(t *testing.T) {
    got := ageFilterClause("senior", "pr.min_age", "pr.max_age")
    if !strings.Contains(got, "pr.min_age") {
        t.Errorf("clause %q should reference pr.min_age", got)
    }
}

func TestValidAgeBracket(t *testing.T) {
    for _, age := range []string{"", "young", "teen", "adult", "senior"} {
        if !validAgeBracket(age) {
            t.Errorf("validAgeBracket(%q) = false, want true", age)
        }
    }
    for _, age := range []string{"child", "YOUNG", "65+"} {
        if validAgeBracket(age) {
            t.Errorf("validAgeBracket(%q) = true, want false", age)
        }
    }
}

func TestParseLimit(t *testing.T) {
    cases := []struct {
        raw  string
        want int
    }{
        {"", 100},
        {"abc", 100},
        {"50", 50},
        {"0", 1},
        {"-5", 1},
        {"9999", 1000},
    }
    for _, c := range cases {
        q := url.Values{}
        if c.raw != "" {
            q.Set("limit", c.raw)
        }
        if got := parseLimit(q, 100, 1000); got != c.want {
            t.Errorf("parseLimit(%q) = %d, want %d", c.raw, got, c.want)
        }
    }
}

func TestParseWeekday(t *testing.T) {
    q := url.Values{}
    got, err := parseWeekday(q)
    if err != nil || got != nil {
        t.Errorf("absent weekday = (%v, %v), want (nil, nil)", got, err)
    }

    q.Set("weekday", "3")
    got, err = parseWeekday(q)
    if err != nil || got == nil || *got != 3 {
        t.Errorf("weekday=3 = (%v, %v), want 3", got, err)
    }

    for _, raw := range []string{"7", "-1", "mon", "3.5"} {
        q.Set("weekday", raw)
        if _, err := parseWeekday(q); err == nil {
            t.Errorf("weekday=%q: expected an error", raw)
        }
    }
}

func TestParseClampedFloat(t *testing.T) {
    cases := []struct {
        raw  string
        want float64
    }{
        {"", 5},
        {"abc", 5},
        {"2.5", 2.5},
        {"0.01", 0.1},
        {"100", 50},
    }
    for _, c := range cases {
        q := url.Values{}
        if c.raw != "" {
            q.Set("radius_km", c.raw)
        }
        if got := parseClampedFloat(q, "radius_km", 5, 0.1, 50); got != c.want {
            t.Errorf("parseClampedFloat(%q) = %v, want %v", c.raw, got, c.want)
        }
    }
}

func TestRequireFloat(t *testing.T) {
    q := url.Values{}
    if _, err := requireFloat(q, "lat"); err == nil {
        t.Error("absent parameter: expected an error")
    }

    q.Set("lat", "not-a-number")
    if _, err := requireFloat(q, "lat"); err == nil {
        t.Error("non-numeric parameter: expected an error")
    }

    q.Set("lat", "43.65")
    got, err := requireFloat(q, "lat")
    if err != nil || got != 43.65 {
        t.Errorf("requireFloat = (%v, %v), want 43.65", got, err)
    }
}
