package stages

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

type matcher struct {
	patterns []*regexp.Regexp
}

// newMatcher compiles patterns. An empty pattern list matches everything.
func newMatcher(patterns []string) (*matcher, error) {
	m := &matcher{}
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		re, err := compileGlob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to compile pattern %q", pattern)
		}
		m.patterns = append(m.patterns, re)
	}

	return m, nil
}

func compileGlob(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")

	return regexp.Compile(sb.String())
}

func (m *matcher) all() bool {
	return len(m.patterns) == 0
}

// index returns the position of the first pattern matching path, -1 if none.
func (m *matcher) index(path string) int {
	for i, re := range m.patterns {
		if re.MatchString(path) {
			return i
		}
	}

	return -1
}

func (m *matcher) match(path string) bool {
	return m.all() || m.index(path) >= 0
}
