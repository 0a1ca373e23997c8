package cache

import "strings"

const (
	GlobalKeyPrefix = "alltagslabor"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// CatalogKey is the key of the raw dataset JSON of one language.
func CatalogKey(language string) string {
	return GenerateCacheKey("catalog", "experiments", language)
}

// ResourceKey is the key of a raw resource file such as subjects.json.
func ResourceKey(name string) string {
	return GenerateCacheKey("catalog", "resources", name)
}
