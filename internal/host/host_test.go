package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_Before(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want bool
	}{
		{"earlier line", Position{0, 9}, Position{1, 0}, true},
		{"same line earlier ch", Position{2, 1}, Position{2, 4}, true},
		{"equal", Position{2, 4}, Position{2, 4}, false},
		{"later line", Position{3, 0}, Position{2, 8}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Before(tt.b))
		})
	}
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "4:12", Position{Line: 4, Ch: 12}.String())
}
