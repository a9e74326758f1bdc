package readme

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultHeading introduces the dfmt-specific option table.
const DefaultHeading = "### dfmt-specific properties"

// ExtractSection returns the body of the first table after heading: the
// lines following the header separator row ("---|---") up to the first
// blank line or the end of the document. CRLF line endings are accepted.
func ExtractSection(doc, heading string) (string, error) {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")

	re, err := sectionPattern(heading)
	if err != nil {
		return "", err
	}

	m := re.FindStringSubmatch(doc)
	if m == nil || m[1] == "" {
		return "", fmt.Errorf("%w: no table under %q", ErrSectionNotFound, heading)
	}
	return m[1], nil
}

func sectionPattern(heading string) (*regexp.Regexp, error) {
	if strings.TrimSpace(heading) == "" {
		return nil, fmt.Errorf("%w: empty heading", ErrSectionNotFound)
	}
	return regexp.Compile(`(?s)` + regexp.QuoteMeta(heading) + `.*?--\n(.*?)(?:\n\n|\n?\z)`)
}
