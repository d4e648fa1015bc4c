package kbsite

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// SplitterName identifies the splitter recorded on endpoints.
const SplitterName = "markdown-sections"

// Section is one document produced by splitting a page's markdown at its
// headings. Text before the first heading forms a section with Level 0.
type Section struct {
	Level   int    `json:"level"`
	Title   string `json:"title"`
	Anchor  string `json:"anchor"`
	Content string `json:"content"`
}

var (
	headingRe   = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	codeFenceRe = regexp.MustCompile("^\\s*```")
)

// SplitSections splits markdown into sections at H1-H6 headings. Headings
// inside fenced code blocks are ignored. Blank sections are dropped, so an
// empty document yields no sections. Anchors are URL-safe and made unique
// with numeric suffixes.
func SplitSections(markdown string) []Section {
	if strings.TrimSpace(markdown) == "" {
		return nil
	}

	var sections []Section
	anchorCounts := make(map[string]int)
	cur := Section{}
	var body strings.Builder
	inFence := false

	flush := func() {
		cur.Content = strings.TrimSpace(body.String())
		if cur.Title != "" || cur.Content != "" {
			sections = append(sections, cur)
		}
		body.Reset()
	}

	for _, line := range strings.Split(markdown, "\n") {
		if codeFenceRe.MatchString(line) {
			inFence = !inFence
		}
		if !inFence {
			if m := headingRe.FindStringSubmatch(line); m != nil {
				flush()
				title := strings.TrimSpace(m[2])
				cur = Section{
					Level:  len(m[1]),
					Title:  title,
					Anchor: uniqueAnchor(generateAnchor(title), anchorCounts),
				}
				continue
			}
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	flush()

	return sections
}

func uniqueAnchor(base string, counts map[string]int) string {
	count, exists := counts[base]
	counts[base]++
	if !exists {
		return base
	}
	return base + "-" + strconv.Itoa(count)
}

// generateAnchor creates a URL-safe anchor from a title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func generateAnchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
