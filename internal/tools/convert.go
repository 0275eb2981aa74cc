package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"

	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/frankfurter"
	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/render"
)

type convertArgs struct {
	From           string  `json:"from"`
	To             string  `json:"to"`
	Amount         float64 `json:"amount"`
	Date           string  `json:"date,omitempty"`
	ResponseFormat string  `json:"response_format,omitempty"`
}

// conversionPayload is the JSON-format body of a convert_currency response.
// The rate comes from the upstream snapshot; the result is computed locally
// as amount × rate.
type conversionPayload struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Rate   float64 `json:"rate"`
	Result float64 `json:"result"`
	Date   string  `json:"date"`
}

func (ts *Toolset) handleConvert(ctx context.Context, req *mcp.CallToolRequest, args convertArgs) (*mcp.CallToolResult, any, error) {
	const name = "convert_currency"
	start := time.Now()

	var errs []error
	if err := checkCode("from", args.From); err != nil {
		errs = append(errs, err)
	}
	if err := checkCode("to", args.To); err != nil {
		errs = append(errs, err)
	}
	if err := checkAmount("amount", args.Amount); err != nil {
		errs = append(errs, err)
	}
	if args.Date != "" {
		if _, err := checkDate("date", args.Date); err != nil {
			errs = append(errs, err)
		}
	}
	format, err := checkFormat(args.ResponseFormat)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return ts.finish(ctx, name, "validation_error", start, validationResult(errs)), nil, nil
	}

	from := strings.ToUpper(args.From)
	to := strings.ToUpper(args.To)

	if args.Date != "" {
		if res := ts.checkPastDate("date", args.Date); res != nil {
			return ts.finish(ctx, name, "guidance_error", start, res), nil, nil
		}
	}

	var snap *frankfurter.RateSnapshot
	if args.Date != "" {
		snap, err = ts.client.Historical(ctx, args.Date, from, []string{to})
	} else {
		snap, err = ts.client.Latest(ctx, from, []string{to})
	}
	if err != nil {
		return ts.fail(ctx, name, start, err), nil, nil
	}

	// Rates stays nil when the body carries no rates key at all.
	var (
		rate float64
		ok   bool
	)
	if snap.Rates != nil {
		rate, ok = snap.Rates.Get(to)
	}
	if !ok {
		return ts.finish(ctx, name, "guidance_error", start,
			guidanceResult(fmt.Sprintf("no exchange rate available from %s to %s; use list_currencies to see supported codes", from, to))), nil, nil
	}

	result := decimal.NewFromFloat(args.Amount).Mul(decimal.NewFromFloat(rate))

	payload := conversionPayload{
		From:   from,
		To:     to,
		Amount: args.Amount,
		Rate:   rate,
		Result: result.InexactFloat64(),
		// The snapshot's echoed date, which may differ from the requested
		// date on non-trading days.
		Date: snap.Date,
	}

	var text string
	if format == render.FormatJSON {
		text, err = render.JSON(payload)
		if err != nil {
			return ts.fail(ctx, name, start, err), nil, nil
		}
	} else {
		text = render.Render(render.ConversionSummary{
			From:   payload.From,
			To:     payload.To,
			Amount: payload.Amount,
			Rate:   payload.Rate,
			Result: payload.Result,
			Date:   payload.Date,
		})
	}
	return ts.deliver(ctx, name, start, text, format), nil, nil
}

// checkPastDate applies the local guidance rules for a historical date:
// it must not be in the future and must not precede the dataset's first day.
// Returns nil when the date is acceptable.
func (ts *Toolset) checkPastDate(field, date string) *mcp.CallToolResult {
	today := ts.now().UTC().Format(isoDateLayout)
	if date > today {
		return guidanceResult(fmt.Sprintf(
			"%s %s is in the future; historical rates are only available up to %s. Use get_latest_rates for current rates.",
			field, date, today))
	}
	if date < earliestDataDate {
		return guidanceResult(fmt.Sprintf(
			"%s %s predates the available data; historical rates begin on %s.",
			field, date, earliestDataDate))
	}
	return nil
}
