package search

// SourceNetwork identifies the social network a record came from.
type SourceNetwork string

const (
	SourceLinkedIn SourceNetwork = "LinkedIn"
	SourceFacebook SourceNetwork = "Facebook"
	SourceTwitter  SourceNetwork = "Twitter"
	SourceUnknown  SourceNetwork = "Unknown"
)

// ParseSourceNetwork maps the upstream source field with an exact,
// case-sensitive match. Anything unrecognised is SourceUnknown.
func ParseSourceNetwork(raw string) SourceNetwork {
	switch SourceNetwork(raw) {
	case SourceLinkedIn, SourceFacebook, SourceTwitter:
		return SourceNetwork(raw)
	default:
		return SourceUnknown
	}
}

// SearchRecord is one public profile returned by the upstream aggregator.
type SearchRecord struct {
	Name        string        `json:"name"`
	Title       *string       `json:"title,omitempty"`
	Link        string        `json:"link"`
	Description *string       `json:"description,omitempty"`
	Location    *string       `json:"location,omitempty"`
	Source      SourceNetwork `json:"source"`
	// RawSource keeps the upstream value when Source is SourceUnknown.
	RawSource string `json:"-"`
}

// ResultBuckets holds records per network in upstream order.
// Unknown is kept for diagnostics and is never serialised.
type ResultBuckets struct {
	LinkedIn []SearchRecord
	Facebook []SearchRecord
	Twitter  []SearchRecord
	Unknown  []SearchRecord
}

// NewResultBuckets returns buckets with every network present and empty.
func NewResultBuckets() ResultBuckets {
	return ResultBuckets{
		LinkedIn: []SearchRecord{},
		Facebook: []SearchRecord{},
		Twitter:  []SearchRecord{},
		Unknown:  []SearchRecord{},
	}
}

// Bucket returns the records for a network.
func (b ResultBuckets) Bucket(network SourceNetwork) []SearchRecord {
	switch network {
	case SourceLinkedIn:
		return b.LinkedIn
	case SourceFacebook:
		return b.Facebook
	case SourceTwitter:
		return b.Twitter
	default:
		return b.Unknown
	}
}

// Total counts every record, including the unrendered Unknown bucket.
func (b ResultBuckets) Total() int {
	return len(b.LinkedIn) + len(b.Facebook) + len(b.Twitter) + len(b.Unknown)
}

// VisibleBuckets is the rendered projection of ResultBuckets.
type VisibleBuckets struct {
	LinkedIn []SearchRecord `json:"linkedin"`
	Facebook []SearchRecord `json:"facebook"`
	Twitter  []SearchRecord `json:"twitter"`
	Counts   BucketCounts   `json:"counts"`
}

type BucketCounts struct {
	LinkedIn int `json:"linkedin"`
	Facebook int `json:"facebook"`
	Twitter  int `json:"twitter"`
}

// Visible drops the Unknown bucket.
func (b ResultBuckets) Visible() VisibleBuckets {
	return VisibleBuckets{
		LinkedIn: nonNil(b.LinkedIn),
		Facebook: nonNil(b.Facebook),
		Twitter:  nonNil(b.Twitter),
		Counts: BucketCounts{
			LinkedIn: len(b.LinkedIn),
			Facebook: len(b.Facebook),
			Twitter:  len(b.Twitter),
		},
	}
}

func nonNil(records []SearchRecord) []SearchRecord {
	if records == nil {
		return []SearchRecord{}
	}
	return records
}
