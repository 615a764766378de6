package genkit

// Snippet records P calls so code can be built before the file that will
// hold it exists. Identifiers are resolved when the snippet is printed.
type Snippet struct {
	lines [][]any
}

// P records a line.
func (s *Snippet) P(v ...any) {
	s.lines = append(s.lines, v)
}

// Append records all lines of other.
func (s *Snippet) Append(other *Snippet) {
	if other != nil {
		s.lines = append(s.lines, other.lines...)
	}
}

// Len returns the number of recorded lines.
func (s *Snippet) Len() int { return len(s.lines) }

// IsEmpty reports whether nothing was recorded.
func (s *Snippet) IsEmpty() bool { return len(s.lines) == 0 }

// PrintTo replays the recorded lines into g.
func (s *Snippet) PrintTo(g *GeneratedFile) {
	for _, line := range s.lines {
		g.P(line...)
	}
}

// Printer is implemented by both GeneratedFile and Snippet.
type Printer interface {
	P(v ...any)
}

var (
	_ Printer     = (*GeneratedFile)(nil)
	_ Printer     = (*Snippet)(nil)
	_ TSPrintable = (*Snippet)(nil)
)
