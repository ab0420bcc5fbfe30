// Package clips turns matched dialogue into a clip plan: padded cut points,
// stable clip identifiers, and per-clip subtitle sidecars re-timed to the
// clip start. The plan is written as a JSON manifest for the video cutter.
package clips
