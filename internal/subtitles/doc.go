// Package subtitles reads and writes SubRip (SRT) tracks and builds the
// normalized subtitle index the matcher searches.
//
// Parsing tolerates the usual real-world damage: byte order marks, CRLF line
// endings, '.' millisecond separators, and stray numbering. Advertisement cues
// are removed with CleanCues before indexing. BuildIndex splits dual-speaker
// cards into one entry per line and flags them so the matcher never seeds a
// span on them.
package subtitles
