package tools

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Argument patterns. Codes are matched case-insensitively and normalized to
// uppercase by the handlers; dates must already be ISO YYYY-MM-DD.
const (
	currencyCodePattern = "^[A-Za-z]{3}$"
	isoDatePattern      = `^\d{4}-\d{2}-\d{2}$`
)

// falseSchema returns the JSON Schema "false" used to reject properties not
// declared by a tool.
func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}

func codeSchema(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Pattern:     currencyCodePattern,
		Description: desc,
	}
}

func dateSchema(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Pattern:     isoDatePattern,
		Description: desc,
	}
}

func symbolsSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "array",
		Items:       codeSchema("3-letter currency code"),
		Description: "Optional list of target currency codes to filter the result (e.g., [\"USD\", \"GBP\"]). Omit for all currencies.",
	}
}

func formatSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Enum:        []any{"markdown", "json"},
		Description: "Output format. Defaults to markdown.",
	}
}

// toolObject assembles a closed object schema: extra fields are rejected.
func toolObject(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: falseSchema(),
	}
}

func convertCurrencyTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "convert_currency",
		Description: "Convert an amount from one currency to another using current or " +
			"historical exchange rates. Rates come from the Frankfurter API; the " +
			"multiplication happens locally.",
		InputSchema: toolObject(map[string]*jsonschema.Schema{
			"from":            codeSchema("Source currency code (e.g., USD)"),
			"to":              codeSchema("Target currency code (e.g., EUR)"),
			"amount":          {Type: "number", ExclusiveMinimum: ptr(0.0), Description: "Amount to convert; must be positive"},
			"date":            dateSchema("Optional ISO date (YYYY-MM-DD) for a historical conversion. Omit for the latest rate."),
			"response_format": formatSchema(),
		}, "from", "to", "amount"),
	}
}

func latestRatesTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "get_latest_rates",
		Description: "Get the latest exchange rates for a base currency, optionally " +
			"filtered to specific target currencies.",
		InputSchema: toolObject(map[string]*jsonschema.Schema{
			"base":            codeSchema("Base currency code. Omit for the upstream default (EUR)."),
			"symbols":         symbolsSchema(),
			"response_format": formatSchema(),
		}),
	}
}

func historicalRatesTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "get_historical_rates",
		Description: "Get exchange rates for a specific past date. Non-trading days " +
			"resolve to the closest prior trading day.",
		InputSchema: toolObject(map[string]*jsonschema.Schema{
			"date":            dateSchema("ISO date (YYYY-MM-DD) to fetch rates for"),
			"base":            codeSchema("Base currency code. Omit for the upstream default (EUR)."),
			"symbols":         symbolsSchema(),
			"response_format": formatSchema(),
		}, "date"),
	}
}

func timeSeriesTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "get_time_series",
		Description: "Get exchange rates over a date range, one row per trading day. " +
			"start_date must be strictly before end_date.",
		InputSchema: toolObject(map[string]*jsonschema.Schema{
			"start_date":      dateSchema("ISO start date (YYYY-MM-DD), inclusive"),
			"end_date":        dateSchema("ISO end date (YYYY-MM-DD), inclusive"),
			"base":            codeSchema("Base currency code. Omit for the upstream default (EUR)."),
			"symbols":         symbolsSchema(),
			"response_format": formatSchema(),
		}, "start_date", "end_date"),
	}
}

func listCurrenciesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_currencies",
		Description: "List all currencies supported by the exchange-rate service.",
		InputSchema: toolObject(map[string]*jsonschema.Schema{
			"response_format": formatSchema(),
		}),
	}
}

func ptr[T any](v T) *T {
	return &v
}
