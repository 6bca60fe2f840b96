// Package pattern implements dotted-path glob matching for view filters.
package pattern

import (
	"regexp"
	"strings"
)

// Matches reports whether path matches any of the glob patterns. In a glob,
// `.` is a literal separator and `*` matches any run of characters; the
// translated expression must cover the whole path, never a substring.
// Iteration order affects only short-circuit cost, never the result.
func Matches(patterns []string, path string) bool {
	for _, p := range patterns {
		if translate(p).MatchString(path) {
			return true
		}
	}
	return false
}

// translate turns a glob into an anchored regular expression. Everything but
// `*` is taken literally.
func translate(glob string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	for i, seg := range strings.Split(glob, "*") {
		if i > 0 {
			b.WriteString(".*")
		}
		b.WriteString(regexp.QuoteMeta(seg))
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}
