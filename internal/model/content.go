package model

import "time"

// PageContent is what the fetch stage obtained for one candidate link.
// Nil fields mean the value is not available.
type PageContent struct {
	URL         string    `json:"url" yaml:"url"`
	RawText     *string   `json:"raw_text,omitempty" yaml:"raw_text,omitempty"`
	DisplayName *string   `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	FetchedAt   time.Time `json:"fetched_at,omitzero" yaml:"fetched_at,omitempty"`
}

// Apply returns a copy of link carrying the fetched text and display name.
func (c PageContent) Apply(link CandidateLink) CandidateLink {
	link.RawText = c.RawText
	link.DisplayName = c.DisplayName
	return link
}
