package internal

import (
	"fmt"
	"regexp"
	"strings"
)

// Route maps a URL pattern to a controller name.
// A pattern is a `/`-delimited string whose non-empty segments are regular
// expressions matched anchored against the corresponding request segment.
// An empty pattern matches the root path.
type Route struct {
	Pattern    string
	Controller string
}

// Routes is an ordered route table. Routes are evaluated in declaration
// order; the first full match wins.
type Routes []Route

// compiledRoute is a route with its segment patterns compiled once at startup.
type compiledRoute struct {
	controller string
	segments   []*regexp.Regexp
}

// routeSet is a compiled, ordered route table for one scope (global or module).
type routeSet []compiledRoute

// compileRoutes compiles the segment patterns of a route table.
// Invalid patterns are configuration errors and fail startup.
func compileRoutes(routes Routes) (routeSet, error) {
	set := make(routeSet, 0, len(routes))
	for _, route := range routes {
		segments := splitPath(route.Pattern)
		compiled := make([]*regexp.Regexp, len(segments))
		for i, seg := range segments {
			re, err := regexp.Compile("^(?:" + seg + ")$")
			if err != nil {
				return nil, fmt.Errorf("strut: route %q segment %q: %w", route.Pattern, seg, err)
			}
			compiled[i] = re
		}
		set = append(set, compiledRoute{controller: route.Controller, segments: compiled})
	}
	return set, nil
}

// match finds the first route whose segment count equals len(params) and
// whose every segment pattern matches the corresponding request segment.
func (s routeSet) match(params []string) (string, bool) {
	for _, route := range s {
		if len(route.segments) != len(params) {
			continue
		}
		matched := true
		for i, re := range route.segments {
			if !re.MatchString(params[i]) {
				matched = false
				break
			}
		}
		if matched {
			return route.controller, true
		}
	}
	return "", false
}

// splitPath splits a request path or route pattern on "/" and drops empty
// segments, preserving order. The result is the match unit for routing.
func splitPath(p string) []string {
	parts := strings.Split(p, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
