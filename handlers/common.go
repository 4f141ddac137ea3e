package handlers

import (
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "net/url"
    "strconv"
    "time"
)

func sendErrorResponse(w http.ResponseWriter, message string, code int) {
    log.Printf("Error: %s (Code: %d)", message, code)

    response := map[string]interface{}{
        "error":     message,
        "code":      code,
        "status":    http.StatusText(code),
        "timestamp": time.Now().Format(time.RFC3339),
    }

    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(code)
    json.NewEncoder(w).Encode(response)
}

func sendJSONResponse(w http.ResponseWriter, payload interface{}) {
    w.Header().Set("Content-Type", "application/json")
    if err := json.NewEncoder(w).Encode(payload); err != nil {
        log.Printf("Error encoding response: %v", err)
    }
}

// sendRawJSON writes JSON that was already built by the database.
func sendRawJSON(w http.ResponseWriter, body []byte) {
    w.Header().Set("Content-Type", "application/json")
    w.Write(body)
}

// parseLimit reads the limit query parameter, clamped to [1, max]. Absent or
// unparseable input falls back to the default.
func parseLimit(q url.Values, def, max int) int {
    raw := q.Get("limit")
    if raw == "" {
        return def
    }
    n, err := strconv.Atoi(raw)
    if err != nil {
        return def
    }
    if n < 1 {
        return 1
    }
    if n > max {
        return max
    }
    return n
}

// parseWeekday reads the optional weekday parameter. nil means not supplied;
// anything outside 0=Monday..6=Sunday is an error.
func parseWeekday(q url.Values) (*int, error) {
    raw := q.Get("weekday")
    if raw == "" {
        return nil, nil
    }
    n, err := strconv.Atoi(raw)
    if err != nil || n < 0 || n > 6 {
        return nil, fmt.Errorf("weekday must be an integer between 0 (Monday) and 6 (Sunday)")
    }
    return &n, nil
}

// parseClampedFloat reads a float parameter clamped to [min, max], with a
// default when absent.
func parseClampedFloat(q url.Values, key string, def, min, max float64) float64 {
    raw := q.Get(key)
    if raw == "" {
        return def
    }
    f, err := strconv.ParseFloat(raw, 64)
    if err != nil {
        return def
    }
    if f < min {
        return min
    }
    if f > max {
        return max
    }
    return f
}

// requireFloat reads a mandatory float parameter.
func requireFloat(q url.Values, key string) (float64, error) {
    raw := q.Get(key)
    if raw == "" {
        return 0, fmt.Errorf("query parameter '%s' is required", key)
    }
    f, err := strconv.ParseFloat(raw, 64)
    if err != nil {
        return 0, fmt.Errorf("query parameter '%s' must be a number", key)
    }
    return f, nil
}
