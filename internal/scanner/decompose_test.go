package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeCall_RoundTrip(t *testing.T) {
	// Crafted registration call whose description carried a semicolon
	// before neutralization.
	match := `sub_ABCDEF("MyFunc", &sub_5B1C20, "quote~inside", 2, 5); `

	args := DecomposeCall(match)

	assert.Equal(t, "quote;inside", args.Description)
	assert.Equal(t, "MyFunc", ExtractName(args.Fields, 0))
	assert.Equal(t, "5B1C20", ExtractAddress(args.Fields, 1))

	minArgs, err := ExtractInt(args.Fields, 3)
	require.NoError(t, err)
	maxArgs, err := ExtractInt(args.Fields, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, minArgs)
	assert.Equal(t, 5, maxArgs)
}

func TestDecomposeCall_CommasInsideDescription(t *testing.T) {
	match := `sub_426650("strReplace", &sub_5A1200, "strReplace(text, from, to)~ replaces all", 3, 3); `

	args := DecomposeCall(match)

	assert.Equal(t, "strReplace(text, from, to); replaces all", args.Description)
	assert.Equal(t, "strReplace", ExtractName(args.Fields, 0))

	minArgs, err := ExtractInt(args.Fields, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, minArgs)
}

func TestDecomposeCall_CastArtifactInDescription(t *testing.T) {
	match := `sub_426650("echo", &sub_5A0000, (int)"prints text", 2, 2); `

	args := DecomposeCall(match)

	assert.Equal(t, "prints text", args.Description)
}

func TestDecomposeCall_TypeMethodLayout(t *testing.T) {
	match := `sub_426450(&unk_765F10, "Player", "setDamage", &sub_5CF230, "applies damage", 3, 4); `

	args := DecomposeCall(match)

	assert.Equal(t, "applies damage", args.Description)
	assert.Equal(t, "Player", ExtractName(args.Fields, 1))
	assert.Equal(t, "setDamage", ExtractName(args.Fields, 2))
	assert.Equal(t, "5CF230", ExtractAddress(args.Fields, 3))

	minArgs, err := ExtractInt(args.Fields, 5)
	require.NoError(t, err)
	maxArgs, err := ExtractInt(args.Fields, 6)
	require.NoError(t, err)
	assert.Equal(t, 3, minArgs)
	assert.Equal(t, 4, maxArgs)
}

func TestDecomposeCall_NoQuotes(t *testing.T) {
	args := DecomposeCall("sub_4263B0(1, 2, 3); ")

	assert.Empty(t, args.Description)
	assert.Len(t, args.Fields, 3)
}

// A lone quoted field has no qualifying comma before it: the boundary
// degrades to -1 and the description stays empty. Known edge case of the
// call-boundary ambiguity.
func TestDecomposeCall_NoQualifyingComma(t *testing.T) {
	args := DecomposeCall(`sub_426650("solo"); `)

	assert.Empty(t, args.Description)
}

func TestSplitArguments(t *testing.T) {
	fields := SplitArguments(`sub_4263B0("pref::name", 5, &dword_88AE10); `)

	require.Len(t, fields, 3)
	assert.Equal(t, "pref::name", ExtractName(fields, 0))
	assert.Equal(t, "88AE10", ExtractAddress(fields, 2))

	code, err := ExtractInt(fields, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, code)
}

func TestSplitArguments_NoParens(t *testing.T) {
	assert.Equal(t, []string{""}, SplitArguments("garbage"))
}
