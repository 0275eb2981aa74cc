package frankfurter

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// RateSnapshot is the decoded body of the /latest and /{date} endpoints:
// rates for all (or filtered) target currencies as of one date.
//
// Rates preserves the key order of the upstream JSON document so that
// re-encoding reproduces the response byte-for-byte in structure.
type RateSnapshot struct {
	Amount float64                                 `json:"amount"`
	Base   string                                  `json:"base"`
	Date   string                                  `json:"date"`
	Rates  *orderedmap.OrderedMap[string, float64] `json:"rates"`
}

// TimeSeries is the decoded body of the /{start}..{end} endpoint: a
// date-indexed sequence of rate mappings. Inner mappings may be missing
// symbols for individual dates (market holidays, delisted currencies).
type TimeSeries struct {
	Amount    float64                                                                  `json:"amount"`
	Base      string                                                                   `json:"base"`
	StartDate string                                                                   `json:"start_date"`
	EndDate   string                                                                   `json:"end_date"`
	Rates     *orderedmap.OrderedMap[string, *orderedmap.OrderedMap[string, float64]] `json:"rates"`
}

// Catalog is the decoded body of the /currencies endpoint: one entry per
// supported currency, code → display name.
type Catalog = orderedmap.OrderedMap[string, string]
