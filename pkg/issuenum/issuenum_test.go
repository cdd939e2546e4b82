package issuenum

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"001", "1"},
		{"1", "1"},
		{"12.1", "12.1"},
		{"012.50", "12.5"},
		{"12.1a", "12.1a"},
		{"-1", "-1"},
		{"0", "0"},
		{"0.5", "0.5"},
		{"Annual", "Annual"},
		{"  7 ", "7"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestParseSuffix(t *testing.T) {
	iss := Parse("100.1AU")
	num, ok := iss.AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 100.1, num)
	assert.Equal(t, "100.1AU", iss.String())

	_, ok = Parse("Annual").AsFloat()
	assert.False(t, ok)
}

func TestCompareNumericAware(t *testing.T) {
	assert.Negative(t, Compare("2", "10"))
	assert.Positive(t, Compare("10", "2"))
	assert.Zero(t, Compare("001", "1"))
	assert.Negative(t, Compare("12.1", "12.1a"))

	// Non-numeric issues sort after numbered ones.
	assert.Negative(t, Compare("500", "Annual"))
	assert.Positive(t, Compare("Annual", "0"))
}

func TestCompareSortsIssueRun(t *testing.T) {
	run := []string{"Annual", "10", "2", "1.5", "001", "12.1a", "12.1"}
	sort.Slice(run, func(i, j int) bool { return Compare(run[i], run[j]) < 0 })

	assert.Equal(t, []string{"001", "1.5", "2", "10", "12.1", "12.1a", "Annual"}, run)
}
