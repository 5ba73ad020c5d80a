// Package exporter serializes grouped breakdown tables for download and
// reporting. The Excel exporter produces an in-memory .xlsx buffer suitable
// for an HTTP file-download response; the CSV exporter writes report files
// to disk for the CLI tool. Both are pure encoding steps with no business
// logic of their own.
package exporter
