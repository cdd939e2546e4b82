package filename

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkdex/comicmeta/pkg/metadata"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		series string
		issue  string
		volume int
		year   int
		count  int
	}{
		{
			name:   "Saga v2 #012 (of 25) (2024).cbz",
			series: "Saga",
			issue:  "12",
			volume: 2,
			year:   2024,
			count:  25,
		},
		{
			name:   "Watchmen #1 (1986).cbz",
			series: "Watchmen",
			issue:  "1",
			year:   1986,
		},
		{
			name:   "Amazing_Spider-Man_300.cbr",
			series: "Amazing Spider-Man",
			issue:  "300",
		},
		{
			name:   "Hellboy Vol. 3 #004 (2003) [digital].cbz",
			series: "Hellboy",
			issue:  "4",
			volume: 3,
			year:   2003,
		},
		{
			name:   "Sandman 12.1 (1990).cbz",
			series: "Sandman",
			issue:  "12.1",
			year:   1990,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := Parse(tt.name)
			require.NotNil(t, md)
			assert.Equal(t, metadata.OriginFilename, md.TagOrigin)

			if tt.series != "" {
				require.NotNil(t, md.Series)
				assert.Equal(t, tt.series, *md.Series)
			}
			if tt.issue != "" {
				require.NotNil(t, md.Issue)
				assert.Equal(t, tt.issue, *md.Issue)
			}
			if tt.volume != 0 {
				require.NotNil(t, md.Volume)
				assert.Equal(t, tt.volume, *md.Volume)
			}
			if tt.year != 0 {
				require.NotNil(t, md.Year)
				assert.Equal(t, tt.year, *md.Year)
			}
			if tt.count != 0 {
				require.NotNil(t, md.IssueCount)
				assert.Equal(t, tt.count, *md.IssueCount)
			}
		})
	}
}

func TestParseMarksRecordNonEmpty(t *testing.T) {
	md := Parse("Watchmen #3 (1986).cbz")
	require.NotNil(t, md.Series)
	assert.False(t, md.IsEmpty, "a record with recognized fields is not empty")
	assert.NotEqual(t, "No metadata", md.String())
}

func TestParseStripsDirectory(t *testing.T) {
	md := Parse("/library/DC/Watchmen #3 (1986).cbz")
	require.NotNil(t, md.Series)
	assert.Equal(t, "Watchmen", *md.Series)
	require.NotNil(t, md.Issue)
	assert.Equal(t, "3", *md.Issue)
}

func TestParseUnrecognizedNeverErrors(t *testing.T) {
	md := Parse("...cbz")
	require.NotNil(t, md)
	assert.Nil(t, md.Issue)
	assert.Nil(t, md.Year)
	assert.Equal(t, metadata.OriginFilename, md.TagOrigin)
}

func TestParseNothingRecognizedStaysEmpty(t *testing.T) {
	md := Parse("-.cbz")
	assert.Nil(t, md.Series)
	assert.Nil(t, md.Issue)
	assert.True(t, md.IsEmpty)
}
