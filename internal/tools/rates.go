package tools

import (
	"context"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/frankfurter"
	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/render"
)

type latestRatesArgs struct {
	Base           string   `json:"base,omitempty"`
	Symbols        []string `json:"symbols,omitempty"`
	ResponseFormat string   `json:"response_format,omitempty"`
}

type historicalRatesArgs struct {
	Date           string   `json:"date"`
	Base           string   `json:"base,omitempty"`
	Symbols        []string `json:"symbols,omitempty"`
	ResponseFormat string   `json:"response_format,omitempty"`
}

func (ts *Toolset) handleLatestRates(ctx context.Context, req *mcp.CallToolRequest, args latestRatesArgs) (*mcp.CallToolResult, any, error) {
	const name = "get_latest_rates"
	start := time.Now()

	var errs []error
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

	snap, err := ts.client.Latest(ctx, strings.ToUpper(args.Base), upperSymbols(args.Symbols))
	if err != nil {
		return ts.fail(ctx, name, start, err), nil, nil
	}
	return ts.deliverSnapshot(ctx, name, start, snap, format), nil, nil
}

func (ts *Toolset) handleHistoricalRates(ctx context.Context, req *mcp.CallToolRequest, args historicalRatesArgs) (*mcp.CallToolResult, any, error) {
	const name = "get_historical_rates"
	start := time.Now()

	var errs []error
	if _, err := checkDate("date", args.Date); err != nil {
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

	if res := ts.checkPastDate("date", args.Date); res != nil {
		return ts.finish(ctx, name, "guidance_error", start, res), nil, nil
	}

	snap, err := ts.client.Historical(ctx, args.Date, strings.ToUpper(args.Base), upperSymbols(args.Symbols))
	if err != nil {
		return ts.fail(ctx, name, start, err), nil, nil
	}
	return ts.deliverSnapshot(ctx, name, start, snap, format), nil, nil
}

// deliverSnapshot renders a rate snapshot in the requested format. The JSON
// form is the upstream payload itself, key order preserved; the Markdown
// form is a two-column rates table.
func (ts *Toolset) deliverSnapshot(ctx context.Context, name string, start time.Time, snap *frankfurter.RateSnapshot, format render.Format) *mcp.CallToolResult {
	var text string
	if format == render.FormatJSON {
		var err error
		text, err = render.JSON(snap)
		if err != nil {
			return ts.fail(ctx, name, start, err)
		}
	} else {
		text = render.Render(render.RatesTable{
			Base:  snap.Base,
			Date:  snap.Date,
			Rates: snap.Rates,
		})
	}
	return ts.deliver(ctx, name, start, text, format)
}
