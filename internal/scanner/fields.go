package scanner

import (
	"strconv"
	"strings"

	"github.com/Ragora/T2-EngineScraper/pkg/types"
)

// symbolPatches is the enumerable list of decompiled-symbol artifacts that
// must be rewritten to a fixed name. The engine registers functions for
// the Sky type through an offset pointer instead of a quoted literal.
var symbolPatches = map[string]string{
	"(int)&off_7957AC": "Sky",
}

// ExtractName recovers the quoted literal at a field position: leading
// whitespace stripped, text after the first quote taken, trailing quote
// and padding removed, known symbol artifacts patched.
func ExtractName(fields []string, index int) string {
	if index < 0 || index >= len(fields) {
		return ""
	}
	name := strings.TrimLeft(fields[index], " \t")
	if quote := strings.IndexByte(name, '"'); quote >= 0 {
		name = name[quote+1:]
	}
	name = strings.TrimRight(name, `" `)
	for artifact, fixed := range symbolPatches {
		name = strings.ReplaceAll(name, artifact, fixed)
	}
	return name
}

// ExtractAddress recovers a hex address from a field: everything up to and
// including the registration routine's prefix separator is dropped, then
// quotes and padding are trimmed. The result is used as a raw address key.
func ExtractAddress(fields []string, index int) string {
	if index < 0 || index >= len(fields) {
		return ""
	}
	address := fields[index]
	if underscore := strings.IndexByte(address, '_'); underscore >= 0 {
		address = address[underscore+1:]
	}
	address = strings.TrimRight(address, `" `)
	address = strings.TrimLeft(address, " ")
	return strings.ToUpper(address)
}

// ExtractInt parses a field as a base-10 integer. Callers discard the
// entire surrounding match on error; one bad record never aborts a scan.
func ExtractInt(fields []string, index int) (int, error) {
	if index < 0 || index >= len(fields) {
		return 0, types.ErrMissingArgument
	}
	value, err := strconv.Atoi(strings.TrimSpace(fields[index]))
	if err != nil {
		return 0, types.ErrMalformedField
	}
	return value, nil
}
