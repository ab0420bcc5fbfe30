// Package matcher aligns script dialogue with subtitle timing.
//
// SpanMatcher searches a subtitle index for the contiguous run of entries
// whose joined text best matches one target line. Runs grow one entry at a
// time while the timing gap to the next entry stays within MaxGap, up to
// MaxGroupSize entries. Scores are normalized Indel similarities; short
// targets break ties by closeness to the segment's own script position.
//
// DialogMatcher applies the search to every dialogue segment, once for the
// complete line and once per sentence, across a fixed worker pool. The
// subtitle index is shared read-only between workers.
package matcher
