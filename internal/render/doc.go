// Package render draws analysis results as PNG charts.
//
// Line and pie charts use go-chart's Chart and PieChart types. Bar charts
// (horizontal and vertical, with per-bar labels, dividers and callouts) are
// drawn directly on a go-chart PNG renderer. Every chart is written to a
// temporary file in the output directory and renamed into place, so a
// failed render never leaves a truncated image behind.
//
// Empty inputs never fail: a placeholder image naming the chart is written
// instead.
package render
