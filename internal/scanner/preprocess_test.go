package scanner

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeutralizeLiterals_InsideOnly(t *testing.T) {
	buf := []byte(`sub_426650("name", &sub_5A0F00, "echo(text); prints it", 2, 5); next`)
	original := append([]byte(nil), buf...)

	replaced := NeutralizeLiterals(buf)

	assert.Equal(t, 1, replaced)
	assert.NotContains(t, string(buf), "text); prints")
	assert.Contains(t, string(buf), "echo(text)~ prints it")

	// Statement terminators outside literals are untouched.
	assert.Equal(t, byte(';'), buf[len(buf)-6])

	// Length and every position outside literal spans are unchanged.
	assert.Equal(t, len(original), len(buf))
	for i := range buf {
		if original[i] != ';' {
			assert.Equal(t, original[i], buf[i], "position %d changed", i)
		}
	}
}

func TestNeutralizeLiterals_MultipleLiterals(t *testing.T) {
	buf := []byte(`"a;b" plain; "c;d;e" tail;`)

	replaced := NeutralizeLiterals(buf)

	assert.Equal(t, 3, replaced)
	assert.Equal(t, `"a~b" plain; "c~d~e" tail;`, string(buf))
}

func TestNeutralizeLiterals_NoLiterals(t *testing.T) {
	buf := []byte("x = 1; y = 2;")
	replaced := NeutralizeLiterals(buf)
	assert.Zero(t, replaced)
	assert.Equal(t, "x = 1; y = 2;", string(buf))
}

func TestRestoreSentinels(t *testing.T) {
	assert.Equal(t, "a;b;c", RestoreSentinels("a~b~c"))
	assert.Equal(t, "plain", RestoreSentinels("plain"))
}

func TestNormalize_SkipsPrefixAndJoins(t *testing.T) {
	raw := []byte("decl one\r\ndecl two\r\nsub_426650(a);\r\nsub_426590(b);")

	buf := Normalize(raw, 2)

	assert.Equal(t, "sub_426650(a); sub_426590(b);", string(buf))
}

func TestNormalize_SkipBeyondInput(t *testing.T) {
	buf := Normalize([]byte("only\nlines"), 100)
	assert.Empty(t, buf)
}

func TestNormalize_ReturnsMutableCopy(t *testing.T) {
	raw := []byte("a\nb")
	buf := Normalize(raw, 0)
	buf[0] = 'z'
	assert.False(t, bytes.Equal(raw[:1], buf[:1]))
}
