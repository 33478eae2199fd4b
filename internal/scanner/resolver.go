package scanner

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/Ragora/T2-EngineScraper/pkg/types"
)

// declarationMarker opens every subroutine declaration header emitted by
// the decompiler, e.g. "//----- (0061E7A0) -----------------------------".
var declarationMarker = []byte("//----- ")

// OwnerResolver infers which datablock type owns a property registration.
// Property calls are emitted from within per-type constructor subroutines
// without the owning type ever appearing as an argument, so the owner is
// recovered structurally: walk backward to the enclosing declaration
// header, pull the registering subroutine's address out of it, and map
// that address through the configured type table.
type OwnerResolver struct {
	table      map[string]string
	unresolved []string
}

// NewOwnerResolver creates a resolver over a copy of the address table.
// The copy grows as unknown addresses are auto-registered; the injected
// configuration is never mutated.
func NewOwnerResolver(table map[string]string) *OwnerResolver {
	owned := make(map[string]string, len(table))
	for address, name := range table {
		owned[address] = name
	}
	return &OwnerResolver{table: owned}
}

// Resolve returns the datablock type name owning a property registration
// that starts at matchStart in the preprocessed buffer. Addresses absent
// from the table are registered under their own hex string so the
// property is always assigned to some datablock rather than dropped.
func (r *OwnerResolver) Resolve(buf []byte, matchStart int) (string, error) {
	address, err := r.callerAddress(buf, matchStart)
	if err != nil {
		return "", err
	}

	typeName, known := r.table[address]
	if !known {
		r.table[address] = address
		r.unresolved = append(r.unresolved, address)
		typeName = address
	}
	return typeName, nil
}

// Unresolved lists the addresses auto-registered during resolution, in
// first-seen order. They mark curation debt in the type table.
func (r *OwnerResolver) Unresolved() []string {
	return r.unresolved
}

// callerAddress extracts the address of the subroutine performing the
// registration from the nearest preceding declaration header. The header
// slice runs from the marker to the last dash of its ruler; the first
// parenthesized expression inside it is the subroutine address in hex.
func (r *OwnerResolver) callerAddress(buf []byte, matchStart int) (string, error) {
	if matchStart > len(buf) {
		matchStart = len(buf)
	}
	headerStart := bytes.LastIndex(buf[:matchStart], declarationMarker)
	if headerStart < 0 {
		return "", types.ErrNoDeclaration
	}
	headerEnd := bytes.LastIndexByte(buf[headerStart:matchStart], '-')
	if headerEnd < 0 {
		return "", types.ErrNoDeclaration
	}
	header := buf[headerStart : headerStart+headerEnd]

	opening := bytes.IndexByte(header, '(')
	if opening < 0 {
		return "", types.ErrNoDeclaration
	}
	closing := bytes.IndexByte(header[opening:], ')')
	if closing < 0 {
		return "", types.ErrNoDeclaration
	}

	raw := string(header[opening+1 : opening+closing])
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 16, 64)
	if err != nil {
		return "", types.ErrNoDeclaration
	}
	return strings.ToUpper(strconv.FormatUint(value, 16)), nil
}
