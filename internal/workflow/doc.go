// Package workflow runs the alignment pipeline for one episode or a batch of
// episodes.
//
// A run reads the script and subtitle files, parses the script into dialogue
// segments, cleans and indexes the subtitle cues, matches every segment under
// an optional wall-clock budget, builds the clip plan, and persists the result.
// Each run gets a uuid that is attached to the context, the log lines, and the
// stored run row. Batches hold an exclusive lock on the data directory so two
// invocations never write the same database concurrently.
package workflow
