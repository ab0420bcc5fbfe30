// Package script parses episode scripts into ordered dialogue segments.
//
// Scripts are plain text with "NAME:" speaker markers. Continuation lines are
// folded into the current speaker's segment, diary-log openings are credited
// to a configured speaker, and bracketed scene lines set the scene recorded
// on the segments that follow. Parsing is pure; ParseFile is the only entry
// point that touches disk.
package script
