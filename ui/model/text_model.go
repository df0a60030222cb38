package model

import (
	"unicode"
	"unicode/utf8"
)

// Match is one search hit, as byte offsets into the text.
type Match struct {
	Start int
	End   int
}

// TextModel holds the extracted text shown in the text panel. Zero value is
// empty and usable. No synchronization needed: updates occur on the UI thread.
type TextModel struct {
	content string
	query   string
	matches []Match
}

func NewTextModel() *TextModel { return &TextModel{} }

// SetContent replaces the text with the result of a recognition pass and
// drops any active search, since the old offsets no longer apply.
func (m *TextModel) SetContent(s string) {
	if m == nil {
		return
	}
	m.content = s
	m.query = ""
	m.matches = nil
}

// Append adds text to the end of the panel, dropping any active search.
func (m *TextModel) Append(s string) {
	if m == nil || s == "" {
		return
	}
	m.content += s
	m.query = ""
	m.matches = nil
}

// Clear empties the panel. Clearing an empty panel is a no-op.
func (m *TextModel) Clear() {
	if m == nil {
		return
	}
	m.SetContent("")
}

// Content returns the current text (may be empty).
func (m *TextModel) Content() string {
	if m == nil {
		return ""
	}
	return m.content
}

// Empty reports whether there is any text to copy or save.
func (m *TextModel) Empty() bool { return m == nil || m.content == "" }

// Search finds all case-insensitive, non-overlapping occurrences of query
// and remembers them for the view to highlight. An empty query clears the
// highlights. Returns the number of matches.
//
// Matching folds case rune by rune so the recorded offsets always point into
// the original content, even where lowercasing changes the byte length.
func (m *TextModel) Search(query string) int {
	if m == nil {
		return 0
	}
	m.query = query
	m.matches = nil
	if query == "" || m.content == "" {
		return 0
	}
	for i := 0; i < len(m.content); {
		if n := foldPrefixLen(m.content[i:], query); n > 0 {
			m.matches = append(m.matches, Match{Start: i, End: i + n})
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(m.content[i:])
		i += size
	}
	return len(m.matches)
}

// foldPrefixLen returns the byte length of the prefix of s that matches
// needle case-insensitively, or -1 when s does not start with needle.
func foldPrefixLen(s, needle string) int {
	i := 0
	for _, nr := range needle {
		r, size := utf8.DecodeRuneInString(s[i:])
		if size == 0 {
			return -1
		}
		if r != nr && unicode.ToLower(r) != unicode.ToLower(nr) {
			return -1
		}
		i += size
	}
	return i
}

// Matches returns the hits of the last search.
func (m *TextModel) Matches() []Match {
	if m == nil {
		return nil
	}
	return m.matches
}

// Query returns the last search query.
func (m *TextModel) Query() string {
	if m == nil {
		return ""
	}
	return m.query
}
