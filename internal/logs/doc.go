// Package logs reads the scriptsync log file for the CLI.
//
// Lines can be narrowed to one episode or one run id; both the console and
// the JSON log formats are understood. Follow polls the file for appended
// lines and tolerates truncation.
package logs
