// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ignore provides helpers to support ignore-files similar to
// .gitignore, used by cmd/vgram to skip paths when walking a corpus
// directory for collect-frequent/analyze.
package ignore

import (
	"bufio"
	"io"
	"strings"

	"github.com/gobwas/glob"
)

var (
	lineComment = "#"
	IgnoreFile  = ".vgramignore"
)

// DefaultPatterns are corpus-walk exclusions a collect-frequent/analyze/
// build-fgt run applies even without a .vgramignore present: version
// control metadata and binary file extensions whose bytes are not text
// and would otherwise pollute the gram statistics with non-word noise
// (spurious high-frequency byte runs that are not real words at all).
var DefaultPatterns = []string{
	".git/**", ".hg/**", ".svn/**",
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.ico", "*.pdf", "*.bmp", "*.webp",
	"*.zip", "*.tar", "*.gz", "*.tgz", "*.bz2", "*.xz", "*.7z",
	"*.exe", "*.o", "*.so", "*.dylib", "*.a", "*.dll",
	"*.woff", "*.woff2", "*.ttf", "*.eot",
}

type Matcher struct {
	ignoreList []glob.Glob
}

// ParseIgnoreFile parses an ignore-file according to the following rules
//
// - each line represents a glob-pattern relative to the root of the repository
// - for patterns without any glob-characters, a trailing ** is implicit
// - lines starting with # are ignored
// - empty lines are ignored
func ParseIgnoreFile(r io.Reader) (matcher *Matcher, error error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// ignore empty lines
		if line == "" {
			continue
		}
		// ignore comments
		if strings.HasPrefix(line, lineComment) {
			continue
		}
		line = strings.TrimPrefix(line, "/")
		// implicit ** for patterns without glob-characters
		if !strings.ContainsAny(line, ".][*?") {
			line += "**"
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	patterns, err := compileGlobs(lines)
	if err != nil {
		return nil, err
	}
	return &Matcher{ignoreList: patterns}, nil
}

// NewDefaultMatcher returns a Matcher seeded with DefaultPatterns, for
// callers that want the binary/VCS exclusions applied regardless of
// whether a .vgramignore is present.
func NewDefaultMatcher() (*Matcher, error) {
	patterns, err := compileGlobs(DefaultPatterns)
	if err != nil {
		return nil, err
	}
	return &Matcher{ignoreList: patterns}, nil
}

// Merge returns a Matcher that ignores a path if either m or other would.
// A nil receiver or argument is treated as an empty Matcher.
func (m *Matcher) Merge(other *Matcher) *Matcher {
	merged := &Matcher{}
	if m != nil {
		merged.ignoreList = append(merged.ignoreList, m.ignoreList...)
	}
	if other != nil {
		merged.ignoreList = append(merged.ignoreList, other.ignoreList...)
	}
	return merged
}

// Match returns true if path has a prefix in common with any item in m.ignoreList
func (m *Matcher) Match(path string) bool {
	if m == nil || len(m.ignoreList) == 0 {
		return false
	}
	for _, pattern := range m.ignoreList {
		if pattern.Match(path) {
			return true
		}
	}
	return false
}

// compileGlobs compiles lines (already normalized by ParseIgnoreFile, or
// literal globs for DefaultPatterns) without a path separator, so '*'
// also matches across directory boundaries: "*.png" ignores a PNG file at
// any depth, not only at the corpus root.
func compileGlobs(lines []string) ([]glob.Glob, error) {
	patterns := make([]glob.Glob, 0, len(lines))
	for _, line := range lines {
		pattern, err := glob.Compile(line)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}
