package resource

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Field extraction helpers shared by all normalizers. Each takes the keys to
// try in precedence order: when both a canonical field and a legacy alias are
// present, the first listed key wins.

// id returns the record identifier, preferring the backend's "_id" over "id".
func id(r Raw) string {
	return str(r, "_id", "id")
}

// str returns the first non-empty string value among keys, or "".
func str(r Raw, keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// strOr is str with a non-empty default.
func strOr(r Raw, def string, keys ...string) string {
	if v := str(r, keys...); v != "" {
		return v
	}
	return def
}

// strs returns the string slice at key, or an empty slice. Non-string
// elements are skipped.
func strs(r Raw, key string) []string {
	out := []string{}
	switch v := r[key].(type) {
	case []string:
		out = append(out, v...)
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// num returns the integer value at key, or 0. JSON numbers arrive as
// float64; numeric strings are tolerated.
func num(r Raw, keys ...string) int {
	for _, k := range keys {
		switch v := r[k].(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return 0
}

// boolOr returns the boolean at key, or def when absent. Defaults differ per
// resource (e.g. verified testimonials vs unverified accounts) and are
// documented on each normalizer.
func boolOr(r Raw, def bool, key string) bool {
	if v, ok := r[key].(bool); ok {
		return v
	}
	return def
}

// createdAt returns the record's creation date, defaulting to today.
func createdAt(r Raw) string {
	return strOr(r, time.Now().Format("2006-01-02"), "createdAt", "created_at")
}

var nonWord = regexp.MustCompile(`[^a-z0-9 -]+`)
var spaces = regexp.MustCompile(`\s+`)

// Slugify derives a URL slug from a display name: lowercase, non-word
// characters stripped, runs of whitespace collapsed to single hyphens.
// "Health Tech" becomes "health-tech".
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonWord.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
