// Package report runs the chart list.
//
// Each Chart pairs a query over the shared Dataset with the renderer call
// that draws it. The Runner walks the selected charts in order; a failing
// chart is logged and skipped, and the collected failures are returned
// together once every chart has had its turn.
package report
