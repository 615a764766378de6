package genkit

import (
	"bytes"
	"fmt"
	"strings"
)

const indentUnit = "  "

// FormatTS re-indents TypeScript source by bracket depth.
// A line opening several brackets indents its successors by one level only.
// Consecutive blank lines collapse into one and the result ends with a
// single newline. It fails when brackets do not balance.
func FormatTS(src []byte) ([]byte, error) {
	var (
		out   bytes.Buffer
		open  levels
		blank = true // suppresses leading blank lines
		inDoc bool
	)

	for n, raw := range strings.Split(string(src), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			if !blank {
				out.WriteByte('\n')
			}
			blank = true
			continue
		}
		blank = false

		if inDoc || strings.HasPrefix(line, "/*") {
			prefix := strings.Repeat(indentUnit, len(open))
			if strings.HasPrefix(line, "*") {
				prefix += " "
			}
			out.WriteString(prefix + line + "\n")
			inDoc = !strings.HasSuffix(line, "*/")
			continue
		}

		opens, closes, leading := scanBrackets(line)
		if !open.close(leading) {
			return nil, fmt.Errorf("line %d: unbalanced closing bracket", n+1)
		}
		out.WriteString(strings.Repeat(indentUnit, len(open)) + line + "\n")
		switch net := opens - (closes - leading); {
		case net > 0:
			open = append(open, net)
		case net < 0:
			if !open.close(-net) {
				return nil, fmt.Errorf("line %d: unbalanced closing bracket", n+1)
			}
		}
	}
	if len(open) > 0 {
		total := 0
		for _, c := range open {
			total += c
		}
		return nil, fmt.Errorf("%d unclosed bracket(s)", total)
	}
	return append(bytes.TrimRight(out.Bytes(), "\n"), '\n'), nil
}

// levels holds, per indentation level, how many brackets are still open.
type levels []int

func (l *levels) close(n int) bool {
	for n > 0 {
		if len(*l) == 0 {
			return false
		}
		top := len(*l) - 1
		if (*l)[top] > n {
			(*l)[top] -= n
			return true
		}
		n -= (*l)[top]
		*l = (*l)[:top]
	}
	return true
}

// scanBrackets counts brackets outside string literals and line comments.
// leading is the number of closing brackets before any other token.
func scanBrackets(line string) (opens, closes, leading int) {
	var quote byte
	atStart := true
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			switch {
			case c == '\\':
				i++
			case c == quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
			atStart = false
		case '/':
			if i+1 < len(line) && line[i+1] == '/' {
				return opens, closes, leading
			}
			atStart = false
		case '{', '(', '[':
			opens++
			atStart = false
		case '}', ')', ']':
			closes++
			if atStart {
				leading++
			}
		case ' ', '\t':
		default:
			atStart = false
		}
	}
	return opens, closes, leading
}
