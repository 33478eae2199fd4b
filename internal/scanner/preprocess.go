package scanner

import (
	"bytes"
	"regexp"
	"strings"
)

// Sentinel replaces semicolons inside quoted literals so the boundary
// matcher sees only real statement terminators. The corpus contains no
// legitimate '~'.
const Sentinel = '~'

// literalPattern locates quoted literal spans: a quote, optional interior
// content, a closing quote, tolerant of surrounding whitespace.
var literalPattern = regexp.MustCompile(`"[^"]*" *`)

// NeutralizeLiterals replaces every semicolon found inside a quoted
// literal with the sentinel, mutating buf in place. Positions outside
// literals are untouched and the buffer length never changes.
//
// The buffer is tens of megabytes and this pass runs once per scrape, so
// it must not build per-replacement copies.
func NeutralizeLiterals(buf []byte) int {
	replaced := 0
	for _, span := range literalPattern.FindAllIndex(buf, -1) {
		for i := span[0]; i < span[1]; i++ {
			if buf[i] == ';' {
				buf[i] = Sentinel
				replaced++
			}
		}
	}
	return replaced
}

// RestoreSentinels converts sentinel characters in an extracted field back
// to literal semicolons.
func RestoreSentinels(s string) string {
	return strings.ReplaceAll(s, string(Sentinel), ";")
}

// Normalize prepares a raw dump for matching: line endings are unified,
// the leading declaration prefix is dropped, and the remaining lines are
// joined into one space-separated buffer. The result is a fresh mutable
// buffer suitable for in-place neutralization.
func Normalize(raw []byte, skipLines int) []byte {
	unified := bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	lines := bytes.Split(unified, []byte("\n"))
	if skipLines < 0 {
		skipLines = 0
	}
	if skipLines > len(lines) {
		skipLines = len(lines)
	}
	return bytes.Join(lines[skipLines:], []byte(" "))
}
