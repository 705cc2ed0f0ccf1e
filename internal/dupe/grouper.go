package dupe

import "github.com/Nomadcxx/vidsweep/internal/media"

// GroupBySignature partitions records into buckets sharing a content
// signature. Single pass, O(n). Buckets of size 1 cannot contain
// duplicates and are dropped. Fuzzy matching only ever runs inside a
// bucket: files with different signatures are never merged, even when
// their content is fuzzily similar.
func GroupBySignature(records []*media.Record) map[string][]*media.Record {
	buckets := make(map[string][]*media.Record)
	for _, r := range records {
		sig := Signature(r)
		buckets[sig] = append(buckets[sig], r)
	}

	for sig, bucket := range buckets {
		if len(bucket) < 2 {
			delete(buckets, sig)
		}
	}

	return buckets
}
