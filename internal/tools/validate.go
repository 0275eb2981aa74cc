package tools

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/render"
)

// isoDateLayout is the only accepted date layout, matching the upstream API.
const isoDateLayout = "2006-01-02"

// earliestDataDate is the first date the Frankfurter dataset covers.
const earliestDataDate = "1999-01-04"

var codeRe = regexp.MustCompile(currencyCodePattern)

// checkCode validates a 3-letter currency code argument. field names the
// argument in the failure message.
func checkCode(field, value string) error {
	if !codeRe.MatchString(value) {
		return fmt.Errorf("%s: %q is not a 3-letter currency code (e.g., USD)", field, value)
	}
	return nil
}

// checkOptionalCode validates a code argument that may be omitted.
func checkOptionalCode(field, value string) error {
	if value == "" {
		return nil
	}
	return checkCode(field, value)
}

// checkDate validates an ISO YYYY-MM-DD date argument and returns the parsed
// day.
func checkDate(field, value string) (time.Time, error) {
	t, err := time.Parse(isoDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %q is not a valid ISO date (YYYY-MM-DD)", field, value)
	}
	return t, nil
}

// checkAmount validates that a monetary amount is strictly positive.
func checkAmount(field string, value float64) error {
	if value <= 0 {
		return fmt.Errorf("%s: must be a positive number, got %v", field, value)
	}
	return nil
}

// checkSymbols validates every entry of an optional symbols filter.
func checkSymbols(field string, symbols []string) error {
	for i, s := range symbols {
		if !codeRe.MatchString(s) {
			return fmt.Errorf("%s[%d]: %q is not a 3-letter currency code", field, i, s)
		}
	}
	return nil
}

// checkFormat resolves the response_format argument, defaulting to Markdown.
func checkFormat(value string) (render.Format, error) {
	f, err := render.ParseFormat(value)
	if err != nil {
		return "", fmt.Errorf("response_format: %q is not one of markdown, json", value)
	}
	return f, nil
}

// validationResult builds the structured "invalid parameters" error
// response: one line per failing field, flagged as an error at the envelope
// level. No upstream request is made for calls that end up here.
func validationResult(errs []error) *mcp.CallToolResult {
	var b strings.Builder
	b.WriteString("Invalid parameters:\n")
	for _, err := range errs {
		fmt.Fprintf(&b, "- %s\n", err.Error())
	}
	return errorResult(b.String())
}

// guidanceResult builds an error response for a well-typed but semantically
// invalid request, with an actionable message.
func guidanceResult(msg string) *mcp.CallToolResult {
	return errorResult(msg)
}

// upperSymbols uppercases a symbols filter in place-order.
func upperSymbols(symbols []string) []string {
	if len(symbols) == 0 {
		return nil
	}
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = strings.ToUpper(s)
	}
	return out
}
