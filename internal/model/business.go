// Package model defines the records flowing through the verification engine.
package model

import "strings"

// Platform identifies the social network a candidate link points at.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformOther     Platform = "other"
)

// ParsePlatform maps a free-form platform tag to a known Platform.
// Unknown or empty tags map to PlatformOther.
func ParsePlatform(s string) Platform {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "facebook", "fb":
		return PlatformFacebook
	case "instagram", "ig", "insta":
		return PlatformInstagram
	default:
		return PlatformOther
	}
}

// PlatformFromURL guesses the platform from the link host.
func PlatformFromURL(u string) Platform {
	lower := strings.ToLower(u)
	switch {
	case strings.Contains(lower, "facebook.com/"), strings.Contains(lower, "fb.com/"):
		return PlatformFacebook
	case strings.Contains(lower, "instagram.com/"):
		return PlatformInstagram
	default:
		return PlatformOther
	}
}

// CandidateLink is a social profile URL that may belong to a business.
// RawText and DisplayName are filled by the fetch stage; nil means the
// content could not be obtained.
type CandidateLink struct {
	URL         string   `json:"url"`
	Platform    Platform `json:"type"`
	RawText     *string  `json:"raw_text,omitempty"`
	DisplayName *string  `json:"display_name,omitempty"`
}

// Text returns the scraped text or "" when absent.
func (l CandidateLink) Text() string {
	if l.RawText == nil {
		return ""
	}
	return *l.RawText
}

// Name returns the profile display name or "" when absent.
func (l CandidateLink) Name() string {
	if l.DisplayName == nil {
		return ""
	}
	return *l.DisplayName
}

// HasText reports whether the link carries usable scraped text.
func (l CandidateLink) HasText() bool {
	return strings.TrimSpace(l.Text()) != ""
}

// BusinessRecord is one directory entry with its candidate social links.
type BusinessRecord struct {
	ID        string          `json:"id"`
	PlaceName string          `json:"place_name,omitempty"`
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	Phone     string          `json:"phone,omitempty"`
	Links     []CandidateLink `json:"links"`
}

// WithLinks returns a copy of the record carrying the given links.
func (r BusinessRecord) WithLinks(links []CandidateLink) BusinessRecord {
	out := r
	out.Links = links
	return out
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
