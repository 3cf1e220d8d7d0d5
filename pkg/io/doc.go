// Package io reads and writes weighted edge lists.
//
// # CSV Format
//
// The primary input is a comma-separated file whose first row is a header
// and whose remaining rows are edge records:
//
//	source,destination,weight
//	A,B,4
//	B,C,3
//	A,C,10
//
// Labels and weights are whitespace-trimmed and blank lines are ignored.
// A record with the wrong number of fields, an empty label, or a weight that
// is not a non-negative integer aborts the whole read; the error names the
// offending line and no partial graph is returned.
//
// # JSON Format
//
// The same records may be stored as JSON, which preserves record order and
// therefore node order:
//
//	{
//	  "edges": [
//	    {"from": "A", "to": "B", "weight": 4},
//	    {"from": "B", "to": "C", "weight": 3}
//	  ]
//	}
//
// # Import
//
// [Import] picks the reader from the file extension: ".json" is decoded with
// [ReadJSON], anything else with [ReadCSV].
//
//	g, err := io.Import("cities.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Use [WriteJSON] or [ExportJSON] to convert a graph loaded from CSV.
package io
