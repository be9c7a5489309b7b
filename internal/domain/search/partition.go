package search

// Partition sorts records into per-network buckets in a single pass,
// keeping input order within each bucket.
func Partition(records []SearchRecord) ResultBuckets {
	buckets := NewResultBuckets()
	for _, record := range records {
		switch record.Source {
		case SourceLinkedIn:
			buckets.LinkedIn = append(buckets.LinkedIn, record)
		case SourceFacebook:
			buckets.Facebook = append(buckets.Facebook, record)
		case SourceTwitter:
			buckets.Twitter = append(buckets.Twitter, record)
		default:
			buckets.Unknown = append(buckets.Unknown, record)
		}
	}
	return buckets
}
