package logging

// ProgressSampler suppresses repetitive progress logs for counted work,
// emitting only when the completed percentage crosses a bucket boundary.
type ProgressSampler struct {
	bucketSize float64
	lastBucket int
}

// NewProgressSampler constructs a sampler that emits when the percent crosses
// bucket boundaries (default 10%).
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	return &ProgressSampler{bucketSize: bucketSize, lastBucket: -1}
}

// Observe records that done of total units finished and reports the
// completion percentage plus whether it should be logged. The final unit is
// always reported.
func (s *ProgressSampler) Observe(done, total int) (float64, bool) {
	if total <= 0 {
		return 100, true
	}
	if done > total {
		done = total
	}
	percent := float64(done) * 100 / float64(total)
	if s == nil {
		return percent, true
	}
	bucket := int(percent / s.bucketSize)
	if done == total {
		bucket = int(100/s.bucketSize) + 1
	}
	if bucket > s.lastBucket {
		s.lastBucket = bucket
		return percent, true
	}
	return percent, false
}

// Reset clears the sampler state (e.g. when a new episode starts).
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.lastBucket = -1
}
