package utils

import (
	"bytes"
	"mime"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// RenderErrorBody turns an error response body into a short readable string.
// Reverse proxies in front of AGiXT commonly answer failures with HTML pages;
// those are converted to Markdown so the message carries their text instead
// of markup. Other bodies are used as-is. The result is whitespace-trimmed and
// truncated to maxLen (see [TruncateString]).
func RenderErrorBody(contentType string, body []byte, maxLen int) string {
	text := string(bytes.TrimSpace(body))
	if text == "" {
		return ""
	}

	if looksLikeHTML(contentType, text) {
		if markdown, err := htmltomarkdown.ConvertString(text); err == nil {
			text = strings.TrimSpace(markdown)
		}
	}

	return TruncateString(text, maxLen)
}

func looksLikeHTML(contentType, text string) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if mediaType == "text/html" || mediaType == "application/xhtml+xml" {
			return true
		}
	}
	lower := strings.ToLower(text[:min(len(text), 64)])
	return strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html")
}
