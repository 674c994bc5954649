package model

// Status is the entity-level verification outcome.
type Status string

const (
	StatusVerified      Status = "VERIFIED"
	StatusLikelyCorrect Status = "LIKELY_CORRECT"
	StatusUnverified    Status = "UNVERIFIED"
)

// AddressSource tells which evidence produced the address score.
type AddressSource string

const (
	AddressSourceNone AddressSource = ""
	AddressSourceText AddressSource = "text"
	AddressSourceName AddressSource = "name"
)

// SignalScore holds the sub-scores for one business/link pair.
// NameScore and AddressScore are reported before the aggregation floor.
type SignalScore struct {
	NameScore     float64       `json:"name_score"`
	AddressScore  float64       `json:"address_score"`
	AddressSource AddressSource `json:"address_source,omitempty"`
	PhoneMatch    bool          `json:"phone_match"`
	OverallScore  float64       `json:"overall_score"`
	MatchedLabels []string      `json:"matched_labels,omitempty"`
}

// LinkVerification is the scored outcome for a single candidate link.
type LinkVerification struct {
	Link     CandidateLink `json:"link"`
	Score    SignalScore   `json:"score"`
	Verified bool          `json:"verified"`
	Analyzed bool          `json:"analyzed"`
	Details  string        `json:"details"`
}

// VerificationResult is the entity-level outcome across all candidate links.
type VerificationResult struct {
	Record           BusinessRecord     `json:"record"`
	Links            []LinkVerification `json:"links"`
	BestOverallScore float64            `json:"best_overall_score"`
	BestLinkIndex    int                `json:"best_link_index"`
	Status           Status             `json:"verification_status"`
	Reason           string             `json:"verification_details"`
}

// VerifiedCount returns the number of verified links.
func (r VerificationResult) VerifiedCount() int {
	n := 0
	for _, l := range r.Links {
		if l.Verified {
			n++
		}
	}
	return n
}

// LinkRecord is the serialized form of one link in an OutputRecord.
type LinkRecord struct {
	URL          string   `json:"url" yaml:"url"`
	Type         Platform `json:"type" yaml:"type"`
	NameScore    float64  `json:"name_score" yaml:"name_score"`
	AddressScore float64  `json:"address_score" yaml:"address_score"`
	PhoneMatch   bool     `json:"phone_match" yaml:"phone_match"`
	OverallScore float64  `json:"overall_score" yaml:"overall_score"`
	Verified     bool     `json:"verified" yaml:"verified"`
	Details      string   `json:"details" yaml:"details"`
}

// OutputRecord is the flat record handed to downstream indexing.
type OutputRecord struct {
	ID                  string       `json:"id" yaml:"id"`
	PlaceName           string       `json:"place_name,omitempty" yaml:"place_name,omitempty"`
	Name                string       `json:"name" yaml:"name"`
	Address             string       `json:"address" yaml:"address"`
	Phone               string       `json:"phone" yaml:"phone"`
	SocialLinks         []LinkRecord `json:"social_links" yaml:"social_links"`
	VerificationStatus  Status       `json:"verification_status" yaml:"verification_status"`
	VerificationDetails string       `json:"verification_details" yaml:"verification_details"`
	BestOverallScore    float64      `json:"best_overall_score" yaml:"best_overall_score"`
}

// Output flattens the result into its serialized record.
func (r VerificationResult) Output() OutputRecord {
	links := make([]LinkRecord, 0, len(r.Links))
	for _, lv := range r.Links {
		links = append(links, LinkRecord{
			URL:          lv.Link.URL,
			Type:         lv.Link.Platform,
			NameScore:    lv.Score.NameScore,
			AddressScore: lv.Score.AddressScore,
			PhoneMatch:   lv.Score.PhoneMatch,
			OverallScore: lv.Score.OverallScore,
			Verified:     lv.Verified,
			Details:      lv.Details,
		})
	}
	return OutputRecord{
		ID:                  r.Record.ID,
		PlaceName:           r.Record.PlaceName,
		Name:                r.Record.Name,
		Address:             r.Record.Address,
		Phone:               r.Record.Phone,
		SocialLinks:         links,
		VerificationStatus:  r.Status,
		VerificationDetails: r.Reason,
		BestOverallScore:    r.BestOverallScore,
	}
}
