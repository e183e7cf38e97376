package gatekeeper

import "strings"

// MatchPath reports whether a concrete request path matches a route
// template. Template segments starting with ':' are positional placeholders
// matching exactly one non-empty segment ("/resource/:id" matches
// "/resource/abc" but not "/resource" or "/resource/a/b").
func MatchPath(template, path string) bool {
	if template == path {
		return true
	}
	tsegs := splitPath(template)
	psegs := splitPath(path)
	if len(tsegs) != len(psegs) {
		return false
	}
	for i, ts := range tsegs {
		if strings.HasPrefix(ts, ":") {
			if psegs[i] == "" {
				return false
			}
			continue
		}
		if ts != psegs[i] {
			return false
		}
	}
	return true
}

// HasPathParam reports whether a route template contains a positional
// placeholder segment. The ability builder uses it to tell collection GETs
// apart from instance GETs when narrowing file access.
func HasPathParam(template string) bool {
	for _, seg := range splitPath(template) {
		if strings.HasPrefix(seg, ":") {
			return true
		}
	}
	return false
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}
