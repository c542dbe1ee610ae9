package ignore

import (
	"bytes"
	"testing"
)

func TestParseIgnoreFile(t *testing.T) {
	tests := []struct {
		name       string
		ignoreFile []byte
		match      []string
		noMatch    []string
	}{
		{
			name:       "comments and blank lines skipped, implicit **",
			ignoreFile: []byte("# ignore this \n  \n foo\n bar"),
			match:      []string{"foo/file.go", "bar/sub/file.go"},
			noMatch:    []string{"baz/file.go"},
		},
		{
			name:       "leading slash stripped, nested path",
			ignoreFile: []byte("/foo/bar \n /qux"),
			match:      []string{"foo/bar/file.go", "qux/file.go"},
			noMatch:    []string{"foo/file.go"},
		},
		{
			name:       "explicit glob left untouched",
			ignoreFile: []byte("*.tmp"),
			match:      []string{"a.tmp", "dir/b.tmp"},
			noMatch:    []string{"a.tmp.bak"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseIgnoreFile(bytes.NewReader(tt.ignoreFile))
			if err != nil {
				t.Fatal(err)
			}
			for _, p := range tt.match {
				if !m.Match(p) {
					t.Errorf("expected %q to match", p)
				}
			}
			for _, p := range tt.noMatch {
				if m.Match(p) {
					t.Errorf("expected %q not to match", p)
				}
			}
		})
	}
}

func TestMatcherEmpty(t *testing.T) {
	var m *Matcher
	if m.Match("anything") {
		t.Error("nil Matcher should never match")
	}

	empty, err := ParseIgnoreFile(bytes.NewReader(nil))
	if err != nil {
		t.Fatal(err)
	}
	if empty.Match("anything") {
		t.Error("Matcher parsed from an empty ignore-file should never match")
	}
}

func TestNewDefaultMatcher(t *testing.T) {
	m, err := NewDefaultMatcher()
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{".git/HEAD", "vendor/logo.png", "lib.so", "font.woff2"} {
		if !m.Match(p) {
			t.Errorf("expected default matcher to ignore %q", p)
		}
	}
	for _, p := range []string{"main.go", "README.md"} {
		if m.Match(p) {
			t.Errorf("expected default matcher not to ignore %q", p)
		}
	}
}

func TestMatcherMerge(t *testing.T) {
	a, err := ParseIgnoreFile(bytes.NewReader([]byte("foo")))
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseIgnoreFile(bytes.NewReader([]byte("bar")))
	if err != nil {
		t.Fatal(err)
	}

	merged := a.Merge(b)
	if !merged.Match("foo/file.go") || !merged.Match("bar/file.go") {
		t.Error("merged matcher should ignore paths matched by either side")
	}
	if merged.Match("baz/file.go") {
		t.Error("merged matcher should not ignore unrelated paths")
	}

	// nil on either side is treated as empty, not a panic.
	if got := (*Matcher)(nil).Merge(b); !got.Match("bar/file.go") {
		t.Error("merging into a nil receiver should still honor the non-nil side")
	}
}
