package tools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/render"
)

type listCurrenciesArgs struct {
	ResponseFormat string `json:"response_format,omitempty"`
}

func (ts *Toolset) handleListCurrencies(ctx context.Context, req *mcp.CallToolRequest, args listCurrenciesArgs) (*mcp.CallToolResult, any, error) {
	const name = "list_currencies"
	start := time.Now()

	format, err := checkFormat(args.ResponseFormat)
	if err != nil {
		return ts.finish(ctx, name, "validation_error", start, validationResult([]error{err})), nil, nil
	}

	catalog, err := ts.client.Currencies(ctx)
	if err != nil {
		return ts.fail(ctx, name, start, err), nil, nil
	}

	var text string
	if format == render.FormatJSON {
		// The catalogue marshals in upstream key order.
		text, err = render.JSON(catalog)
		if err != nil {
			return ts.fail(ctx, name, start, err), nil, nil
		}
	} else {
		text = render.Render(render.CurrencyCatalog{Currencies: catalog})
	}
	return ts.deliver(ctx, name, start, text, format), nil, nil
}
