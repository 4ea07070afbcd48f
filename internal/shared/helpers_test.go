package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTag(t *testing.T) {
	assert.Equal(t, "P-PORT-PROTOTYPE", NormalizeTag("  p-port-prototype\n"))
	assert.Equal(t, "", NormalizeTag(" "))
}

func TestMegabytes(t *testing.T) {
	assert.InDelta(t, 1.5, Megabytes(1536*1024), 0.0001)
	assert.Equal(t, 0.0, Megabytes(0))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		max   int
		want  string
	}{
		{name: "short", value: "engine", max: 10, want: "engine"},
		{name: "collapses whitespace", value: "reads\n   wheel  speed", max: 40, want: "reads wheel speed"},
		{name: "cut with ellipsis", value: "computes engine speed", max: 10, want: "compute..."},
		{name: "tiny max", value: "computes", max: 2, want: "co"},
		{name: "no limit", value: "computes engine speed", max: 0, want: "computes engine speed"},
		{name: "multibyte", value: "Drehzahlmesser für Motor", max: 20, want: "Drehzahlmesser fü..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.value, tt.max))
		})
	}
}
