package probe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"linkstat/internal/models"
)

func TestBoundedCopy(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		input   int
		wantLen int
	}{
		{name: "ip shorter than buffer", size: models.IPBufferSize, input: 15, wantLen: 15},
		{name: "ip one below buffer size", size: models.IPBufferSize, input: models.IPBufferSize - 1, wantLen: models.IPBufferSize - 1},
		{name: "ip exactly buffer size", size: models.IPBufferSize, input: models.IPBufferSize, wantLen: models.IPBufferSize - 1},
		{name: "ip buffer size plus one", size: models.IPBufferSize, input: models.IPBufferSize + 1, wantLen: models.IPBufferSize - 1},
		{name: "url exactly buffer size", size: models.EffectiveURLMaxLength, input: models.EffectiveURLMaxLength, wantLen: models.EffectiveURLMaxLength - 1},
		{name: "url buffer size plus one", size: models.EffectiveURLMaxLength, input: models.EffectiveURLMaxLength + 1, wantLen: models.EffectiveURLMaxLength - 1},
		{name: "empty input", size: models.IPBufferSize, input: 0, wantLen: 0},
		{name: "zero sized buffer", size: 0, input: 10, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := strings.Repeat("a", tt.input)
			got := boundedCopy(in, tt.size)
			assert.Len(t, got, tt.wantLen)
			assert.True(t, strings.HasPrefix(in, got))
		})
	}
}
