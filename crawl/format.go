package crawl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/TheOne1006/kbsite"
	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the xxhash64 of content as 16 hex digits.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// TruncateURL shortens url to at most maxLen bytes for terminal output.
// The tail of a docs URL names the page, so the head is dropped.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(url) <= maxLen {
		return url
	}
	if maxLen <= 3 {
		return url[:maxLen]
	}
	return "..." + url[len(url)-(maxLen-3):]
}

// FormatBytes renders n as B, KB or MB with binary units.
func FormatBytes(n int) string {
	units := []string{"B", "KB", "MB"}
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	if i == 0 {
		return strconv.Itoa(n) + " B"
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + " " + units[i]
}

// FormatTokens renders an approximate token count, in thousands from 1000.
func FormatTokens(n int) string {
	if n < 1000 {
		return "~" + strconv.Itoa(n) + " tokens"
	}
	return "~" + strconv.Itoa((n+500)/1000) + "k tokens"
}

// FormatEvent renders a sync event as one progress line.
func FormatEvent(ev kbsite.SyncEvent, width int) string {
	status := "ok"
	if !ev.OK() {
		status = "FAIL"
	}
	return fmt.Sprintf("[%d/%d] %-4s %s", ev.Finished, ev.Total, status, TruncateURL(ev.URL, width))
}

// FormatEndpoint renders an endpoint as one listing line: URL, size,
// tokens when counted, and title when known.
func FormatEndpoint(e *kbsite.Endpoint, width int) string {
	cols := []string{TruncateURL(e.URL, width), FormatBytes(e.Size)}
	if e.Tokens > 0 {
		cols = append(cols, FormatTokens(e.Tokens))
	}
	if e.Title != "" {
		cols = append(cols, strconv.Quote(e.Title))
	}
	return strings.Join(cols, "  ")
}
