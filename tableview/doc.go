// Package tableview provides a Bubble Tea data table component backed by the
// table package.
//
// The package is responsible for key and mouse handling, column layout,
// viewport scrolling, the filter input, the pager, the infinite-scroll
// sentinel observer, the per-row action menu, the structured-cell detail
// surface, and clipboard export of the selection.
package tableview
