package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/temidayo/currency-exchange-service/internal/core/domain"
)

func TestResolvedRate_SnapshotRefs(t *testing.T) {
	tests := []struct {
		name     string
		resolved domain.ResolvedRate
		want     []string
	}{
		{
			name: "cross rate references both legs",
			resolved: domain.ResolvedRate{
				BaseSnapshotID:  "snap-usd",
				QuoteSnapshotID: "snap-ngn",
			},
			want: []string{"snap-usd", "snap-ngn"},
		},
		{
			name: "pivot base references only the quote leg",
			resolved: domain.ResolvedRate{
				QuoteSnapshotID: "snap-ngn",
			},
			want: []string{"snap-ngn"},
		},
		{
			name: "pivot target references only the base leg",
			resolved: domain.ResolvedRate{
				BaseSnapshotID: "snap-usd",
			},
			want: []string{"snap-usd"},
		},
		{
			name:     "identity resolution references nothing",
			resolved: domain.ResolvedRate{},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.resolved.SnapshotRefs())
		})
	}
}
