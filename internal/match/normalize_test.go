package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"international", "+216 22 333 444", "22333444"},
		{"bare local", "22333444", "22333444"},
		{"double zero prefix", "0022333444", "22333444"},
		{"full double zero country", "00216 22 333 444", "22333444"},
		{"punctuated", "(71) 123-456", "71123456"},
		{"short", "12345", "12345"},
		{"country code only", "216", ""},
		{"no digits", "call us", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizePhone(tt.in))
		})
	}
}

func TestNormalizePhone_Equivalence(t *testing.T) {
	t.Parallel()

	a := NormalizePhone("+216 22 333 444")
	assert.Equal(t, a, NormalizePhone("22333444"))
	assert.Equal(t, a, NormalizePhone("0022333444"))
}

func TestFoldText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cafe des delices", FoldText("Café des Délices"))
	assert.Equal(t, "la goulette", FoldText("LA GOULETTE"))
	assert.Equal(t, "line one\nline two", FoldText("Line One\nLine Two"), "ASCII newlines are kept")
	assert.Equal(t, "", FoldText(""))
}
