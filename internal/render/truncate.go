package render

// DefaultCharacterLimit is the ceiling applied to every tool's final textual
// output, counted in Unicode code points.
const DefaultCharacterLimit = 25000

// markdownTruncationNotice is appended to oversized Markdown output. The
// pagination suggestion is general guidance for the calling agent; the tool
// surface itself exposes no pagination parameters.
const markdownTruncationNotice = "\n\n---\n\n**Note:** This response was truncated because it exceeded the " +
	"character limit. To reduce the response size, narrow the date range, " +
	"filter with the symbols parameter, or paginate your queries.\n"

// jsonTruncationMarker is appended directly after cut JSON text. The result
// is deliberately not valid JSON; a structural re-balance of an arbitrary
// prefix cut is not attempted.
const jsonTruncationMarker = "[TRUNCATED: Response exceeded character limit]"

// truncationMessage is the fixed human-readable message recorded in the
// outcome of every truncation.
const truncationMessage = "response truncated: exceeded character limit"

// Outcome describes whether, and how, a formatted response was truncated.
type Outcome struct {
	Truncated      bool   `json:"truncated"`
	Message        string `json:"message,omitempty"`
	OriginalLength int    `json:"original_length,omitempty"`
}

// Truncate enforces the character-count ceiling on a formatted response.
// Content at or under the limit passes through unchanged. Oversized content
// is hard-prefix-cut at the limit (which may fall mid-row or mid-token) and
// a format-specific trailing notice is appended.
func Truncate(content string, format Format, limit int) (string, Outcome) {
	if limit <= 0 {
		limit = DefaultCharacterLimit
	}
	runes := []rune(content)
	if len(runes) <= limit {
		return content, Outcome{}
	}

	notice := markdownTruncationNotice
	if format == FormatJSON {
		notice = jsonTruncationMarker
	}
	return string(runes[:limit]) + notice, Outcome{
		Truncated:      true,
		Message:        truncationMessage,
		OriginalLength: len(runes),
	}
}
