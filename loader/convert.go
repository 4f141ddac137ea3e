package loader

import "time"

// SQL argument helpers: absent optional values become NULL, never a default.

func toNullable(n *int) interface{} {
    if n == nil {
        return nil
    }
    return *n
}

func toNullableString(s *string) interface{} {
    if s == nil {
        return nil
    }
    return *s
}

func toNullableTime(t *time.Time) interface{} {
    if t == nil {
        return nil
    }
    return *t
}

func stringOrEmpty(s *string) string {
    if s == nil {
        return ""
    }
    return *s
}
