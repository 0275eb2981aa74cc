package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/frankfurter"
	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/render"
)

type timeSeriesArgs struct {
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Base           string   `json:"base,omitempty"`
	Symbols        []string `json:"symbols,omitempty"`
	ResponseFormat string   `json:"response_format,omitempty"`
}

func (ts *Toolset) handleTimeSeries(ctx context.Context, req *mcp.CallToolRequest, args timeSeriesArgs) (*mcp.CallToolResult, any, error) {
	const name = "get_time_series"
	start := time.Now()

	var errs []error
	if _, err := checkDate("start_date", args.StartDate); err != nil {
		errs = append(errs, err)
	}
	if _, err := checkDate("end_date", args.EndDate); err != nil {
		errs = append(errs, err)
	}
	if err := checkOptionalCode("base", args.Base); err != nil {
		errs = append(errs, err)
	}
	if err := checkSymbols("symbols", args.Symbols); err != nil {
		errs = append(errs, err)
	}
	format, err := checkFormat(args.ResponseFormat)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return ts.finish(ctx, name, "validation_error", start, validationResult(errs)), nil, nil
	}

	// ISO dates compare correctly as plain strings.
	if args.StartDate >= args.EndDate {
		return ts.finish(ctx, name, "guidance_error", start, guidanceResult(fmt.Sprintf(
			"start_date %s must be strictly before end_date %s; use get_historical_rates for a single date",
			args.StartDate, args.EndDate))), nil, nil
	}
	if res := ts.checkPastDate("start_date", args.StartDate); res != nil {
		return ts.finish(ctx, name, "guidance_error", start, res), nil, nil
	}

	series, err := ts.client.Series(ctx, args.StartDate, args.EndDate, strings.ToUpper(args.Base), upperSymbols(args.Symbols))
	if err != nil {
		return ts.fail(ctx, name, start, err), nil, nil
	}

	var text string
	if format == render.FormatJSON {
		text, err = render.JSON(series)
		if err != nil {
			return ts.fail(ctx, name, start, err), nil, nil
		}
	} else {
		text = render.Render(render.TimeSeriesTable{
			Base:      series.Base,
			StartDate: series.StartDate,
			EndDate:   series.EndDate,
			Symbols:   seriesColumns(args.Symbols, series),
			Rates:     series.Rates,
		})
	}
	return ts.deliver(ctx, name, start, text, format), nil, nil
}

// seriesColumns decides the table's column set. An explicit symbols filter
// wins, in the order requested. Otherwise the columns are inferred from the
// first date entry of the returned series, in its key order. That inference
// is a known sharp edge: a first date with missing data hides symbols that
// appear later in the range.
func seriesColumns(requested []string, series *frankfurter.TimeSeries) []string {
	if len(requested) > 0 {
		return upperSymbols(requested)
	}
	if series.Rates == nil {
		return nil
	}
	first := series.Rates.Oldest()
	if first == nil || first.Value == nil {
		return nil
	}
	cols := make([]string, 0, first.Value.Len())
	for pair := first.Value.Oldest(); pair != nil; pair = pair.Next() {
		cols = append(cols, pair.Key)
	}
	return cols
}
