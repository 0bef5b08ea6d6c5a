// Package redact masks secret-looking values in patch text so split files
// are safe to hand around.
package redact

import "regexp"

type rule struct {
	re   *regexp.Regexp
	repl string
}

var rules = []rule{
	// AWS access key IDs.
	{regexp.MustCompile(`AKIA[0-9A-Z]{16}`), "[REDACTED]"},
	// Private key blocks, including ones spread across diff lines.
	{regexp.MustCompile(`-----BEGIN [A-Z ]+PRIVATE KEY-----[\s\S]*?-----END [A-Z ]+PRIVATE KEY-----`), "[REDACTED]"},
	// Bearer tokens.
	{regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9\-._~+/]+=*`), "Bearer [REDACTED]"},
	// Key/secret/token/password assignments: keep the key name, mask the value.
	{regexp.MustCompile(`(?i)(api[_-]?key|api[_-]?secret|secret[_-]?key|access[_-]?token|auth[_-]?token|password|passwd)(\s*[:=]\s*)\S+`), "${1}${2}[REDACTED]"},
}

// Scrub replaces every secret-looking value in text with [REDACTED].
func Scrub(text string) string {
	for _, r := range rules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	return text
}
