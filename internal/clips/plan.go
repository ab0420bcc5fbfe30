package clips

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"scriptsync/internal/episode"
	"scriptsync/internal/fileutil"
	"scriptsync/internal/matcher"
	"scriptsync/internal/subtitles"
)

// ManifestName is the plan file written into each episode directory.
const ManifestName = "manifest.json"

// Kind distinguishes complete-line clips from sentence clips.
type Kind string

const (
	KindComplete Kind = "complete"
	KindSentence Kind = "sentence"
)

// Clip is one planned cut.
type Clip struct {
	ID               string          `json:"clip_id"`
	Kind             Kind            `json:"kind"`
	SegmentIndex     int             `json:"segment_index"`
	SentenceIndex    int             `json:"sentence_index"`
	Position         int             `json:"position"`
	Speaker          string          `json:"speaker"`
	SceneInfo        string          `json:"scene_info,omitempty"`
	TargetText       string          `json:"target_text"`
	MatchedText      string          `json:"matched_text"`
	SubtitleStart    float64         `json:"subtitle_start"`
	SubtitleEnd      float64         `json:"subtitle_end"`
	Start            float64         `json:"start"`
	End              float64         `json:"end"`
	Ratio            float64         `json:"match_ratio"`
	HasMultiSpeaker  bool            `json:"has_multi_speaker"`
	SubtitlePosition int             `json:"subtitle_position"`
	VideoPath        string          `json:"video_path"`
	SubtitlePath     string          `json:"subtitle_path,omitempty"`
	Cues             []subtitles.Cue `json:"cues"`
}

// Options controls padding and output locations.
type Options struct {
	PaddingBefore float64
	PaddingAfter  float64
	// OutputDir is the clip root; each episode gets a subdirectory.
	OutputDir string
	// VideoExt is the container extension for planned clip files.
	VideoExt string
}

// Plan is the full set of clips for one episode.
type Plan struct {
	Episode episode.Code `json:"episode"`
	Source  string       `json:"source,omitempty"`
	Dir     string       `json:"dir"`
	Clips   []Clip       `json:"clips"`
}

// Build plans one clip per complete match and one per accepted sentence
// match. matches must be in script order; clip numbering follows the index
// of each match in that slice.
func Build(code episode.Code, source string, matches []matcher.SegmentMatch, idx *subtitles.Index, opts Options) Plan {
	if opts.VideoExt == "" {
		opts.VideoExt = ".mp4"
	}
	plan := Plan{
		Episode: code,
		Source:  source,
		Dir:     filepath.Join(opts.OutputDir, code.String()),
	}
	for i, seg := range matches {
		if seg.Complete != nil {
			id := fmt.Sprintf("%s_clip_%04d", code, i)
			plan.Clips = append(plan.Clips, newClip(id, KindComplete, i, 0, seg, *seg.Complete, idx, opts, plan.Dir))
		}
		for j, sentence := range seg.Sentences {
			id := fmt.Sprintf("%s_clip_%04d_s%02d", code, i, j)
			plan.Clips = append(plan.Clips, newClip(id, KindSentence, i, j, seg, sentence, idx, opts, plan.Dir))
		}
	}
	return plan
}

func newClip(id string, kind Kind, segIndex, sentIndex int, seg matcher.SegmentMatch, m matcher.MatchResult, idx *subtitles.Index, opts Options, dir string) Clip {
	start := max(0, m.StartTime-opts.PaddingBefore)
	end := m.EndTime + opts.PaddingAfter
	cues := idx.SourceCues(m.SubtitlePosition, m.SubtitlePosition+m.GroupSize)
	return Clip{
		ID:               id,
		Kind:             kind,
		SegmentIndex:     segIndex,
		SentenceIndex:    sentIndex,
		Position:         seg.Position,
		Speaker:          seg.Speaker,
		SceneInfo:        seg.SceneInfo,
		TargetText:       m.TargetText,
		MatchedText:      m.MatchedText,
		SubtitleStart:    m.StartTime,
		SubtitleEnd:      m.EndTime,
		Start:            start,
		End:              end,
		Ratio:            m.Ratio,
		HasMultiSpeaker:  m.HasMultiSpeaker,
		SubtitlePosition: m.SubtitlePosition,
		VideoPath:        filepath.Join(dir, id+opts.VideoExt),
		Cues:             subtitles.Retime(cues, start),
	}
}

// LowConfidence counts clips whose ratio is below threshold.
func (p Plan) LowConfidence(threshold float64) int {
	n := 0
	for _, c := range p.Clips {
		if c.Ratio < threshold {
			n++
		}
	}
	return n
}

// WriteManifest writes the plan as indented JSON to <Dir>/manifest.json and
// returns the path.
func (p Plan) WriteManifest() (string, error) {
	path := filepath.Join(p.Dir, ManifestName)
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	})
	if err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}

// AssignSidecars records the sidecar path of every clip that carries cues
// without writing anything. It returns the number of clips assigned.
func (p *Plan) AssignSidecars() int {
	n := 0
	for i := range p.Clips {
		clip := &p.Clips[i]
		if len(clip.Cues) == 0 {
			continue
		}
		clip.SubtitlePath = filepath.Join(p.Dir, clip.ID+".srt")
		n++
	}
	return n
}

// WriteSidecars writes one SRT per clip next to its planned video file and
// records the path on the clip. It returns the number of files written.
func (p *Plan) WriteSidecars() (int, error) {
	p.AssignSidecars()
	written := 0
	for i := range p.Clips {
		clip := &p.Clips[i]
		if clip.SubtitlePath == "" {
			continue
		}
		err := fileutil.WriteAtomic(clip.SubtitlePath, 0o644, func(w io.Writer) error {
			return subtitles.WriteSRT(w, clip.Cues)
		})
		if err != nil {
			return written, fmt.Errorf("write sidecar %s: %w", clip.ID, err)
		}
		written++
	}
	return written, nil
}
