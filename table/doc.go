// Package table implements the pure view state of a data table: column
// resolution, global filtering, single-column sorting, row selection, and
// either classic pagination or incremental (infinite-scroll) reveal.
//
// A Controller owns its state exclusively and performs no I/O. Rendering is
// left to hosts such as the tableview package.
//
// Row identity is the record's index in the input slice passed to New or
// SetRows.
package table
