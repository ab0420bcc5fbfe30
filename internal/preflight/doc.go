// Package preflight provides readiness checks for the directories and files
// scriptsync depends on.
//
// These checks run in two contexts:
//   - Pipeline.RunBatch calls Pipeline before touching any episode. If a
//     check fails, the batch stops before any database write.
//   - The CLI "scriptsync check" command calls RunAll to display every check,
//     including whether another run holds the batch lock.
package preflight
