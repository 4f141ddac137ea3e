package config

import (
    "fmt"
    "time"

    "github.com/patrickmn/go-cache"
)

var (
    // Cache instances for different query types. The dataset is read-only
    // between loads, so long TTLs are safe.
    LookupCache *cache.Cache
    CentreCache *cache.Cache
)

const (
    // Cache durations
    lookupCacheDuration = 24 * time.Hour
    centreCacheDuration = 6 * time.Hour

    // Cleanup intervals
    lookupCleanupInterval = 48 * time.Hour
    centreCleanupInterval = 12 * time.Hour
)

func InitCache() {
    LookupCache = cache.New(lookupCacheDuration, lookupCleanupInterval)
    CentreCache = cache.New(centreCacheDuration, centreCleanupInterval)
}

func ClearAllCaches() {
    LookupCache.Flush()
    CentreCache.Flush()
}

func GetCacheKey(prefix string, params ...interface{}) string {
    key := prefix
    for _, param := range params {
        key += ":" + fmt.Sprintf("%v", param)
    }
    return key
}
