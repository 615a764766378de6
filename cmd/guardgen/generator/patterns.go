package generator

import (
	"fmt"

	"github.com/tlipoca9/guardgen/genkit"
)

// PatternTable hoists regular expressions into module constants.
// Identical patterns share one constant.
type PatternTable struct {
	names map[string]string // pattern -> constant name
	order []string
}

// NewPatternTable creates an empty table.
func NewPatternTable() *PatternTable {
	return &PatternTable{names: make(map[string]string)}
}

// Name returns the constant holding pattern, creating one if needed.
func (t *PatternTable) Name(pattern string) string {
	if name, ok := t.names[pattern]; ok {
		return name
	}
	name := fmt.Sprintf("PATTERN_%d", len(t.order)+1)
	t.names[pattern] = name
	t.order = append(t.order, pattern)
	return name
}

// Len returns the number of distinct patterns.
func (t *PatternTable) Len() int { return len(t.order) }

func writePatterns(g genkit.Printer, t *PatternTable) {
	if t.Len() == 0 {
		return
	}
	g.P()
	for _, p := range t.order {
		g.P("const ", t.names[p], " = new RegExp(", genkit.Quote(p), ");")
	}
}
