// Package textutil provides the text primitives the aligner is built on.
//
// The primary use cases are:
//   - Normalizing script and subtitle text into a comparable form
//   - Splitting dialogue into sentences
//   - Scoring similarity between normalized strings (Indel ratio)
//   - Formatting speaker names for display
//
// Normalize is pure and idempotent. Similarity scores are computed with a
// bit-parallel longest common subsequence so that one target can be scored
// against many candidate spans cheaply.
package textutil
