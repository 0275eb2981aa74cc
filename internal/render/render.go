// Package render converts exchange-rate payloads into the textual forms
// returned by the tool surface: indented JSON or human-readable Markdown.
//
// Markdown rendering is dispatched over a closed set of shape-specific
// variants ([RatesTable], [TimeSeriesTable], [ConversionSummary],
// [CurrencyCatalog]) through a single [Render] function. Size-bounded
// truncation lives in this package too ([Truncate]) and is applied by the
// tool layer as the last step before a response leaves the server.
package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Format selects the output encoding of a tool response.
type Format string

const (
	// FormatMarkdown renders human-readable Markdown tables and summaries.
	// This is the default for every tool.
	FormatMarkdown Format = "markdown"

	// FormatJSON renders the payload as indented JSON.
	FormatJSON Format = "json"
)

// IsValid reports whether f is a recognised output format.
func (f Format) IsValid() bool {
	return f == FormatMarkdown || f == FormatJSON
}

// ParseFormat maps a response_format argument to a [Format]. An empty string
// selects the documented default, Markdown.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "":
		return FormatMarkdown, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("render: unknown response_format %q; valid values: markdown, json", s)
}

// Variant is one of the four response shapes the Markdown renderer knows how
// to draw. The set is closed: only the types in this package implement it.
type Variant interface {
	isVariant()
}

// RatesTable is a single-date rate snapshot drawn as a two-column table.
// Rows follow the iteration order of Rates; no sorting is applied.
type RatesTable struct {
	Base  string
	Date  string
	Rates *orderedmap.OrderedMap[string, float64]
}

func (RatesTable) isVariant() {}

// TimeSeriesTable is a date-indexed rate series drawn as a multi-column
// table: one column per symbol, one row per date sorted lexicographically
// ascending (chronological order for ISO dates). Missing rates render as
// "N/A".
type TimeSeriesTable struct {
	Base      string
	StartDate string
	EndDate   string

	// Symbols fixes the column set and order. When the caller supplied no
	// symbol filter, the tool layer derives this from the first date's rate
	// keys; dates whose entries carry extra symbols will show only these
	// columns.
	Symbols []string

	Rates *orderedmap.OrderedMap[string, *orderedmap.OrderedMap[string, float64]]
}

func (TimeSeriesTable) isVariant() {}

// ConversionSummary is the result of a single currency conversion.
type ConversionSummary struct {
	From   string
	To     string
	Amount float64
	Rate   float64
	Result float64
	Date   string
}

func (ConversionSummary) isVariant() {}

// CurrencyCatalog is the full list of supported currencies, drawn sorted by
// code with a count footer.
type CurrencyCatalog struct {
	Currencies *orderedmap.OrderedMap[string, string]
}

func (CurrencyCatalog) isVariant() {}

// Render draws the given variant as Markdown.
func Render(v Variant) string {
	switch v := v.(type) {
	case RatesTable:
		return renderRates(v)
	case TimeSeriesTable:
		return renderTimeSeries(v)
	case ConversionSummary:
		return renderConversion(v)
	case CurrencyCatalog:
		return renderCatalog(v)
	}
	// Unreachable: Variant is a closed set.
	return ""
}

// JSON renders payload as a 2-space-indented JSON document. Payloads built
// from structs and ordered maps reproduce their insertion order exactly.
func JSON(payload any) (string, error) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render: marshal payload: %w", err)
	}
	return string(b), nil
}

// rate4 formats a rate with exactly 4 fractional digits.
func rate4(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(4)
}

// amount2 formats a monetary amount with exactly 2 fractional digits.
func amount2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func renderRates(v RatesTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Exchange Rates for %s\n\n", v.Base)
	fmt.Fprintf(&b, "**Date:** %s\n\n", v.Date)
	b.WriteString("| Currency | Rate |\n")
	b.WriteString("|----------|------|\n")
	if v.Rates != nil {
		for pair := v.Rates.Oldest(); pair != nil; pair = pair.Next() {
			fmt.Fprintf(&b, "| %s | %s |\n", pair.Key, rate4(pair.Value))
		}
	}
	return b.String()
}

func renderTimeSeries(v TimeSeriesTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Time Series for %s (%s to %s)\n\n", v.Base, v.StartDate, v.EndDate)
	fmt.Fprintf(&b, "**Symbols:** %s\n\n", strings.Join(v.Symbols, ", "))

	b.WriteString("| Date |")
	for _, sym := range v.Symbols {
		fmt.Fprintf(&b, " %s |", sym)
	}
	b.WriteString("\n|------|")
	for range v.Symbols {
		b.WriteString("------|")
	}
	b.WriteString("\n")

	dates := make([]string, 0)
	if v.Rates != nil {
		for pair := v.Rates.Oldest(); pair != nil; pair = pair.Next() {
			dates = append(dates, pair.Key)
		}
	}
	// ISO dates sort chronologically under plain string ordering.
	sort.Strings(dates)

	for _, date := range dates {
		dayRates, _ := v.Rates.Get(date)
		fmt.Fprintf(&b, "| %s |", date)
		for _, sym := range v.Symbols {
			cell := "N/A"
			if dayRates != nil {
				if rate, ok := dayRates.Get(sym); ok {
					cell = rate4(rate)
				}
			}
			fmt.Fprintf(&b, " %s |", cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderConversion(v ConversionSummary) string {
	var b strings.Builder
	b.WriteString("## Currency Conversion\n\n")
	fmt.Fprintf(&b, "**%s %s = %s %s**\n\n", amount2(v.Amount), v.From, amount2(v.Result), v.To)
	fmt.Fprintf(&b, "- Exchange rate: %s\n", rate4(v.Rate))
	fmt.Fprintf(&b, "- Date: %s\n", v.Date)
	return b.String()
}

func renderCatalog(v CurrencyCatalog) string {
	var b strings.Builder
	b.WriteString("## Supported Currencies\n\n")
	b.WriteString("| Code | Name |\n")
	b.WriteString("|------|------|\n")

	codes := make([]string, 0)
	if v.Currencies != nil {
		for pair := v.Currencies.Oldest(); pair != nil; pair = pair.Next() {
			codes = append(codes, pair.Key)
		}
	}
	sort.Strings(codes)

	for _, code := range codes {
		name, _ := v.Currencies.Get(code)
		fmt.Fprintf(&b, "| %s | %s |\n", code, name)
	}
	fmt.Fprintf(&b, "\nTotal: %d currencies\n", len(codes))
	return b.String()
}
