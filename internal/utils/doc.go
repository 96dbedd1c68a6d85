// Package utils holds the low-level helpers shared by the AGiXT client and
// its command-line front end: a single HTTP round-trip helper that reports to
// the active observability span ([Do]), rendering of error bodies for
// diagnostics ([RenderErrorBody]), and string/JSON formatting helpers.
package utils
