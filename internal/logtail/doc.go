// Package logtail reads the tail of RecipeMama's session log for the Logs
// view.
//
// Read scans the file once and keeps the last MaxLines matching lines in a
// ring buffer, so memory is bounded by MaxLines rather than file size. With
// ProblemsOnly set, only lines whose logrus level is warning or worse are
// kept; lines without a parseable level= field are dropped in that mode.
//
// A missing log file is not an error: the session may not have written
// anything yet.
package logtail
