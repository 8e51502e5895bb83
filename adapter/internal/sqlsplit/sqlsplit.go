// Package sqlsplit splits a raw SQL script into individual statements for
// engines without native multi-statement execution. The splitter understands
// single- and double-quoted strings, Postgres dollar-quoted strings, line
// comments and block comments, so semicolons inside them never terminate a
// statement.
package sqlsplit

import "strings"

// Statements splits script on statement terminators. Empty statements and
// pure-whitespace fragments are dropped.
func Statements(script string) []string {
	var (
		stmts []string
		buf   strings.Builder
	)

	flush := func() {
		s := strings.TrimSpace(buf.String())
		if s != "" {
			stmts = append(stmts, s)
		}
		buf.Reset()
	}

	i := 0
	for i < len(script) {
		c := script[i]

		switch {
		case c == '\'' || c == '"':
			end := scanQuoted(script, i, c)
			buf.WriteString(script[i:end])
			i = end

		case c == '$':
			if end, ok := scanDollarQuoted(script, i); ok {
				buf.WriteString(script[i:end])
				i = end
				continue
			}
			buf.WriteByte(c)
			i++

		case c == '-' && i+1 < len(script) && script[i+1] == '-':
			end := strings.IndexByte(script[i:], '\n')
			if end < 0 {
				i = len(script)
				continue
			}
			i += end // keep the newline as statement whitespace

		case c == '/' && i+1 < len(script) && script[i+1] == '*':
			end := strings.Index(script[i+2:], "*/")
			if end < 0 {
				i = len(script)
				continue
			}
			i += end + 4

		case c == ';':
			flush()
			i++

		default:
			buf.WriteByte(c)
			i++
		}
	}
	flush()

	return stmts
}

// scanQuoted returns the index just past the closing quote. A doubled quote
// character inside the literal is an escape, not a terminator.
func scanQuoted(s string, start int, quote byte) int {
	i := start + 1
	for i < len(s) {
		if s[i] == quote {
			if i+1 < len(s) && s[i+1] == quote {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return len(s)
}

// scanDollarQuoted matches $tag$ ... $tag$ literals. Returns ok=false when
// start does not open a dollar quote.
func scanDollarQuoted(s string, start int) (int, bool) {
	rest := s[start+1:]
	end := strings.IndexByte(rest, '$')
	if end < 0 {
		return 0, false
	}
	tag := rest[:end]
	for j := 0; j < len(tag); j++ {
		c := tag[j]
		isAlpha := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isAlpha {
			return 0, false
		}
	}

	delim := "$" + tag + "$"
	body := start + len(delim)
	if body > len(s) {
		return 0, false
	}
	close := strings.Index(s[body:], delim)
	if close < 0 {
		return len(s), true
	}
	return body + close + len(delim), true
}
