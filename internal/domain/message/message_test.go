package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityCanonical(t *testing.T) {
	cases := map[Severity]string{
		SeverityHigh: "HIGH",
		"high":       "HIGH",
		"Medium":     "MEDIUM",
		"low":        "LOW",
		"critical":   "unknown",
		"":           "unknown",
	}
	for in, want := range cases {
		assert.Equal(t, want, in.Canonical(), "severity %q", in)
	}
}

func TestSeverityRank(t *testing.T) {
	assert.Greater(t, SeverityHigh.Rank(), SeverityMedium.Rank())
	assert.Greater(t, SeverityMedium.Rank(), SeverityLow.Rank())
	assert.Equal(t, SeverityLow.Rank(), Severity("whatever").Rank())
}
