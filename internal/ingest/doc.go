// Package ingest turns raw indicator tables into yearly series.
//
// Two sources are supported: the national organic-production workbook
// (one sheet per domain, one row per product and geographic level) and a
// long-format CSV with metric, year and value columns. Both aggregate by
// summing every kept row of a year; a year with no numeric entry at all is
// reported as missing rather than zero.
package ingest
