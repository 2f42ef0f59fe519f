// Package pathutil maps request paths onto route templates for metric labels.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns are evaluated in order. Saved article ids are decimal for
// postgres and memory stores and 24-char hex for mongo, so any single segment matches.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/saved-articles/[^/]+$`), Template: "/api/saved-articles/:id"},
	{Pattern: regexp.MustCompile(`^/api/country/[^/]+$`), Template: "/api/country/:iso"},
	{Pattern: regexp.MustCompile(`^/swagger/.+$`), Template: "/swagger/*"},
}

// NormalizePath converts paths with dynamic segments to their template so
// metric label cardinality stays bounded. Static paths are returned unchanged.
//
//	NormalizePath("/api/saved-articles/42")        // "/api/saved-articles/:id"
//	NormalizePath("/api/country/gb?page=2")        // "/api/country/:iso"
//	NormalizePath("/api/all-news")                 // "/api/all-news"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}

// FromPattern turns a ServeMux pattern such as "DELETE /api/saved-articles/{id}"
// into the template NormalizePath would produce. It returns "" for an empty pattern.
func FromPattern(pattern string) string {
	if pattern == "" {
		return ""
	}
	if i := strings.IndexByte(pattern, ' '); i != -1 {
		pattern = pattern[i+1:]
	}
	if i := strings.IndexByte(pattern, '/'); i > 0 {
		// host-qualified pattern
		pattern = pattern[i:]
	}
	pattern = strings.ReplaceAll(pattern, "{$}", "")
	var b strings.Builder
	for {
		open := strings.IndexByte(pattern, '{')
		if open == -1 {
			b.WriteString(pattern)
			break
		}
		end := strings.IndexByte(pattern[open:], '}')
		if end == -1 {
			b.WriteString(pattern)
			break
		}
		name := strings.TrimSuffix(pattern[open+1:open+end], "...")
		b.WriteString(pattern[:open])
		b.WriteString(":" + name)
		pattern = pattern[open+end+1:]
	}
	out := b.String()
	if out == "" {
		return "/"
	}
	return out
}
