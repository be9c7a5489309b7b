package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(name string, source SourceNetwork) SearchRecord {
	return SearchRecord{Name: name, Source: source}
}

func TestPartition(t *testing.T) {
	records := []SearchRecord{
		rec("t1", SourceTwitter),
		rec("l1", SourceLinkedIn),
		rec("u1", SourceUnknown),
		rec("f1", SourceFacebook),
		rec("l2", SourceLinkedIn),
		rec("t2", SourceTwitter),
	}

	buckets := Partition(records)

	assert.Equal(t, []SearchRecord{rec("l1", SourceLinkedIn), rec("l2", SourceLinkedIn)}, buckets.LinkedIn)
	assert.Equal(t, []SearchRecord{rec("f1", SourceFacebook)}, buckets.Facebook)
	assert.Equal(t, []SearchRecord{rec("t1", SourceTwitter), rec("t2", SourceTwitter)}, buckets.Twitter)
	assert.Equal(t, []SearchRecord{rec("u1", SourceUnknown)}, buckets.Unknown)
	assert.Equal(t, len(records), buckets.Total(), "every record lands in exactly one bucket")
}

func TestPartition_Empty(t *testing.T) {
	buckets := Partition(nil)
	assert.NotNil(t, buckets.LinkedIn)
	assert.NotNil(t, buckets.Facebook)
	assert.NotNil(t, buckets.Twitter)
	assert.NotNil(t, buckets.Unknown)
	assert.Zero(t, buckets.Total())
}

func TestParseSourceNetwork(t *testing.T) {
	tests := []struct {
		raw  string
		want SourceNetwork
	}{
		{"LinkedIn", SourceLinkedIn},
		{"Facebook", SourceFacebook},
		{"Twitter", SourceTwitter},
		{"twitter", SourceUnknown},
		{"X", SourceUnknown},
		{"", SourceUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSourceNetwork(tt.raw))
		})
	}
}

func TestResultBuckets_Visible(t *testing.T) {
	buckets := Partition([]SearchRecord{
		rec("l1", SourceLinkedIn),
		rec("u1", SourceUnknown),
		rec("t1", SourceTwitter),
	})

	visible := buckets.Visible()
	assert.Equal(t, BucketCounts{LinkedIn: 1, Facebook: 0, Twitter: 1}, visible.Counts)
	require.NotNil(t, visible.Facebook)
	assert.Empty(t, visible.Facebook)
	assert.Equal(t, buckets.Bucket(SourceUnknown), buckets.Unknown)
}

func TestNewSearchQuery(t *testing.T) {
	q := NewSearchQuery("  John Doe ", " ", "Stanford", "")
	assert.Equal(t, "John Doe", q.Text)
	assert.Nil(t, q.Location)
	require.NotNil(t, q.University)
	assert.Equal(t, "Stanford", *q.University)
	assert.Nil(t, q.Company)
	assert.False(t, q.IsEmpty())

	assert.True(t, NewSearchQuery("   ", "Boston", "", "").IsEmpty())
	assert.True(t, SearchQuery{}.IsEmpty())
}
