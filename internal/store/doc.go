// Package store persists clip plans and run history in SQLite.
//
// The database lives at <data_dir>/scriptsync.db. Each successful episode run
// replaces that episode's clips in one transaction so readers never observe a
// half-written plan. Runs are kept as an append-only history.
package store
