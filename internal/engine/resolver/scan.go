package resolver

import (
	"regexp"
	"strings"

	"github.com/foundry-rs/compilers/internal/core/domain"
)

// ScanResult holds everything the lexical scan extracts from one source
// file: import strings in declaration order, raw version pragmas, declared
// contract names and the SPDX license identifier.
type ScanResult struct {
	Imports   []string
	Pragmas   []string
	Contracts []string
	License   string
}

var (
	reSolImport = regexp.MustCompile(
		`import\s+(?:(?:"(?P<p1>[^"]+)"|'(?P<p2>[^']+)')(?:\s+as\s+\w+)?|` +
			`(?:\w+(?:\s+as\s+\w+)?|\*\s+as\s+\w+|\{[^}]*\})\s+from\s+` +
			`(?:"(?P<p3>[^"]+)"|'(?P<p4>[^']+)'))\s*;`)

	reSolPragma   = regexp.MustCompile(`pragma\s+solidity\s+([^;]+);`)
	reSolContract = regexp.MustCompile(`(?m)^\s*(?:abstract\s+)?(?:contract|interface|library)\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	reLicense     = regexp.MustCompile(`SPDX-License-Identifier:\s*([^\s*]+)`)

	reVyImport     = regexp.MustCompile(`^\s*import\s+([A-Za-z_.][\w.]*)`)
	reVyFromImport = regexp.MustCompile(`^\s*from\s+([A-Za-z_.][\w.]*)\s+import\s+([A-Za-z_]\w*)`)
	reVyPragma     = regexp.MustCompile(`^\s*#\s*(?:pragma\s+version|@version)\s+(\S+.*)$`)
)

// ScanSource lexically scans content for the given language. It is a
// tolerant scan, not a parse: it keeps working on malformed files and across
// dialect versions, and it ignores import-like text inside comments and
// string literals.
func ScanSource(content string, lang domain.Language) ScanResult {
	switch lang {
	case domain.LangVyper:
		return scanVyper(content)
	default:
		return scanSolidity(content)
	}
}

func scanSolidity(content string) ScanResult {
	var res ScanResult
	if m := reLicense.FindStringSubmatch(content); m != nil {
		res.License = m[1]
	}

	masked, literals := maskSolidity(content)

	for _, idx := range reSolImport.FindAllStringSubmatchIndex(masked, -1) {
		if literals.contains(idx[0]) {
			continue
		}
		// Exactly one of the four path groups is populated.
		for group := 1; group <= 4; group++ {
			if start := idx[2*group]; start >= 0 {
				res.Imports = append(res.Imports, masked[start:idx[2*group+1]])
				break
			}
		}
	}

	for _, idx := range reSolPragma.FindAllStringSubmatchIndex(masked, -1) {
		if literals.contains(idx[0]) {
			continue
		}
		res.Pragmas = append(res.Pragmas, strings.TrimSpace(masked[idx[2]:idx[3]]))
	}

	for _, idx := range reSolContract.FindAllStringSubmatchIndex(masked, -1) {
		if literals.contains(idx[0]) {
			continue
		}
		res.Contracts = append(res.Contracts, masked[idx[2]:idx[3]])
	}

	return res
}

// spanSet records the byte ranges of string literals so regex matches that
// start inside one can be rejected.
type spanSet [][2]int

func (s spanSet) contains(off int) bool {
	for _, sp := range s {
		if off >= sp[0] && off < sp[1] {
			return true
		}
	}
	return false
}

// maskSolidity blanks comment bodies with spaces, preserving offsets, and
// records the spans of string literals. Import paths live inside string
// literals themselves, which is why literals are kept in the masked text and
// tracked as spans instead of being blanked.
func maskSolidity(content string) (string, spanSet) {
	const (
		code = iota
		lineComment
		blockComment
		dquote
		squote
	)

	out := []byte(content)
	var literals spanSet
	state := code
	literalStart := 0

	for i := 0; i < len(content); i++ {
		c := content[i]
		switch state {
		case code:
			switch {
			case c == '/' && i+1 < len(content) && content[i+1] == '/':
				state = lineComment
				out[i] = ' '
			case c == '/' && i+1 < len(content) && content[i+1] == '*':
				state = blockComment
				out[i] = ' '
			case c == '"':
				state = dquote
				literalStart = i
			case c == '\'':
				state = squote
				literalStart = i
			}
		case lineComment:
			if c == '\n' {
				state = code
			} else {
				out[i] = ' '
			}
		case blockComment:
			if c == '*' && i+1 < len(content) && content[i+1] == '/' {
				out[i] = ' '
				out[i+1] = ' '
				i++
				state = code
			} else if c != '\n' {
				out[i] = ' '
			}
		case dquote, squote:
			closing := byte('"')
			if state == squote {
				closing = '\''
			}
			switch {
			case c == '\\':
				i++
			case c == closing || c == '\n':
				literals = append(literals, [2]int{literalStart, i + 1})
				state = code
			}
		}
	}
	if state == dquote || state == squote {
		literals = append(literals, [2]int{literalStart, len(content)})
	}

	return string(out), literals
}

func scanVyper(content string) ScanResult {
	var res ScanResult
	if m := reLicense.FindStringSubmatch(content); m != nil {
		res.License = m[1]
	}

	for line := range strings.Lines(content) {
		if m := reVyPragma.FindStringSubmatch(line); m != nil {
			res.Pragmas = append(res.Pragmas, strings.TrimSpace(m[1]))
			continue
		}
		stripped := stripVyperComment(line)
		if m := reVyFromImport.FindStringSubmatch(stripped); m != nil {
			if p, ok := modulePath(m[1], m[2]); ok {
				res.Imports = append(res.Imports, p)
			}
		} else if m := reVyImport.FindStringSubmatch(stripped); m != nil {
			if p, ok := modulePath(m[1], ""); ok {
				res.Imports = append(res.Imports, p)
			}
		}
	}

	return res
}

// stripVyperComment cuts a line at the first # that is not inside a string
// literal.
func stripVyperComment(line string) string {
	inString := byte(0)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inString != 0:
			if c == '\\' {
				i++
			} else if c == inString {
				inString = 0
			}
		case c == '"' || c == '\'':
			inString = c
		case c == '#':
			return line[:i]
		}
	}
	return line
}

// modulePath converts a dotted Vyper module reference to a path without
// extension; the resolver probes .vy and .vyi candidates. A name from a
// `from X import Y` form is the path's final element. Leading dots walk up
// from the importing file: one dot is the file's own directory, each further
// dot one level above it. Built-in vyper modules are not files and report
// ok=false.
func modulePath(module, name string) (string, bool) {
	dots := 0
	for dots < len(module) && module[dots] == '.' {
		dots++
	}

	var parts []string
	if rest := module[dots:]; rest != "" {
		parts = strings.Split(rest, ".")
	}
	if name != "" {
		parts = append(parts, name)
	}
	if len(parts) == 0 {
		return "", false
	}
	if dots == 0 && parts[0] == "vyper" {
		return "", false
	}

	path := strings.Join(parts, "/")
	switch {
	case dots == 1:
		path = "./" + path
	case dots > 1:
		path = strings.Repeat("../", dots-1) + path
	}
	return path, true
}
