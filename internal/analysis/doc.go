// Package analysis implements the wash-trading queries.
//
// Every query is a pure function of its input trades and returns a
// fixed-schema row type. Repetitive trades are detected per ticker over a
// time-ordered window of three trades (previous, current, next).
package analysis
