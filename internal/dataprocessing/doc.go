// Package dataprocessing implements the data pipeline behind the dashboard:
// loading and normalizing the sales workbook into the canonical transaction
// schema, filtering it with user-selected criteria, and aggregating filtered
// views into KPI summaries, grouped breakdowns, and chart-ready series.
//
// Every stage is a pure transformation over immutable inputs. The only state
// in the package is the DatasetCache, a read-through cache of parsed
// workbooks keyed by file identity.
package dataprocessing
