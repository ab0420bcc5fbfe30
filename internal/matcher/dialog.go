package matcher

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"scriptsync/internal/logging"
	"scriptsync/internal/script"
	"scriptsync/internal/services"
	"scriptsync/internal/subtitles"
	"scriptsync/internal/textutil"
)

// DialogMatcher matches every dialogue segment of an episode against one
// subtitle index.
type DialogMatcher struct {
	spans  *SpanMatcher
	opts   Options
	logger *slog.Logger
}

// NewDialogMatcher constructs a matcher. A nil logger discards output.
func NewDialogMatcher(idx *subtitles.Index, opts Options, logger *slog.Logger) *DialogMatcher {
	opts = opts.withDefaults()
	return &DialogMatcher{
		spans:  NewSpanMatcher(idx, opts),
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "matcher"),
	}
}

// MatchSegment matches the complete line of seg and, when the line has more
// than one sentence, each sentence on its own. A sentence match is kept only
// when the matched subtitle text is itself a single sentence.
func (d *DialogMatcher) MatchSegment(seg script.DialogSegment) SegmentMatch {
	result := SegmentMatch{
		Position:  seg.Position,
		Speaker:   seg.Speaker,
		SceneInfo: seg.SceneInfo,
		Text:      seg.Text,
	}
	if complete, ok := d.spans.FindBestSpanExhaustive(seg.Text, seg.Position); ok {
		result.Complete = &complete
	}

	sentences := textutil.SplitSentences(seg.Text)
	if len(sentences) > 1 {
		for _, sentence := range sentences {
			match, ok := d.spans.FindBestSpanExhaustive(sentence, seg.Position)
			if !ok {
				continue
			}
			if len(textutil.SplitSentences(match.MatchedText)) != 1 {
				d.logger.Debug("sentence match spans several subtitle sentences",
					logging.Args(append(logging.DecisionAttrs("sentence_match", "rejected", "multi_sentence_subtitle"),
						logging.Int(logging.FieldPosition, seg.Position),
						logging.Float64(logging.FieldRatio, match.Ratio),
					)...)...,
				)
				continue
			}
			result.Sentences = append(result.Sentences, match)
		}
	}

	if result.Matched() {
		attrs := []logging.Attr{
			logging.Int(logging.FieldPosition, seg.Position),
			logging.String(logging.FieldSpeaker, seg.Speaker),
			logging.Int("sentence_matches", len(result.Sentences)),
		}
		if result.Complete != nil {
			attrs = append(attrs, logging.Float64(logging.FieldRatio, result.Complete.Ratio))
		}
		d.logger.Debug("segment matched", logging.Args(attrs...)...)
	} else {
		d.logger.Debug("segment unmatched",
			logging.Int(logging.FieldPosition, seg.Position),
			logging.String(logging.FieldSpeaker, seg.Speaker),
		)
	}
	return result
}

// MatchAll matches segments across a fixed worker pool and returns the
// matched segments in script order. Unmatched segments are omitted. The only
// error is cancellation of ctx.
func (d *DialogMatcher) MatchAll(ctx context.Context, segments []script.DialogSegment) ([]SegmentMatch, error) {
	if len(segments) == 0 {
		return nil, nil
	}
	workers := d.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(segments))

	logger := logging.WithContext(ctx, d.logger)
	jobs := make(chan script.DialogSegment, workers*2)
	results := make(chan SegmentMatch, workers*2)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seg := range jobs {
				if ctx.Err() != nil {
					continue
				}
				results <- d.MatchSegment(seg)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, seg := range segments {
			select {
			case <-ctx.Done():
				return
			case jobs <- seg:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	sampler := logging.NewProgressSampler(10)
	matched := make([]SegmentMatch, 0, len(segments))
	done := 0
	for match := range results {
		done++
		if percent, ok := sampler.Observe(done, len(segments)); ok {
			logger.Info("matching progress",
				logging.Int("done", done),
				logging.Int("total", len(segments)),
				logging.Float64("percent", percent),
			)
		}
		if match.Matched() {
			matched = append(matched, match)
		}
	}

	if err := ctx.Err(); err != nil {
		marker := services.ErrCanceled
		if errors.Is(err, context.DeadlineExceeded) {
			marker = services.ErrTimeout
		}
		return nil, services.Wrap(marker, "matching", "match all", "matching interrupted", err)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].Position < matched[j].Position })
	return matched, nil
}

// UnmatchedPositions lists the positions of segments absent from matches.
func UnmatchedPositions(segments []script.DialogSegment, matches []SegmentMatch) []int {
	seen := make(map[int]struct{}, len(matches))
	for _, m := range matches {
		seen[m.Position] = struct{}{}
	}
	var missing []int
	for _, seg := range segments {
		if _, ok := seen[seg.Position]; !ok {
			missing = append(missing, seg.Position)
		}
	}
	return missing
}
