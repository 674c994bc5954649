package fetch

import (
	"strings"
)

// AboutURL returns the Facebook "about" page for a profile URL.
func AboutURL(profileURL string) string {
	u := canonicalURL(profileURL)
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = strings.TrimRight(u[:i], "/")
	}
	if strings.HasSuffix(u, "/about") {
		return u
	}
	return u + "/about"
}

// HeaderDisplayName returns the profile display name from an Instagram header
// text block: the second non-empty line, after the handle.
func HeaderDisplayName(header string) string {
	n := 0
	for _, line := range strings.Split(header, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n++
		if n == 2 {
			return line
		}
	}
	return ""
}

// TitleDisplayName extracts the profile name from a page title such as
// "Le Baroque (@lebaroque) • Instagram photos and videos" or
// "Le Baroque | Facebook".
func TitleDisplayName(title string) string {
	title = strings.TrimSpace(title)
	for _, sep := range []string{" (@", " • ", " | "} {
		if i := strings.Index(title, sep); i > 0 {
			title = title[:i]
		}
	}
	return strings.TrimSpace(title)
}
