package runes

import "strings"

// xmlEscaper backs the `{{ … }}` escaped-expression output contract:
// a fixed five-entity replacer, applied in one pass.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeXML renders s with the five XML/HTML entities substituted, used
// for `{{ expr }}` template output.
func (s String) EscapeXML() string {
	return xmlEscaper.Replace(s.Encode())
}

// jsEscaper covers the characters that would otherwise break out of a
// JS/JSON string literal.
var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"</", `<\/`,
)

// EscapeJS renders s safe for embedding inside a JS or JSON string
// literal (used by as_json()).
func (s String) EscapeJS() string {
	return jsEscaper.Replace(s.Encode())
}
