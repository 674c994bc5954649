package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlatform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Platform
	}{
		{"facebook", PlatformFacebook},
		{" Facebook ", PlatformFacebook},
		{"fb", PlatformFacebook},
		{"instagram", PlatformInstagram},
		{"IG", PlatformInstagram},
		{"tiktok", PlatformOther},
		{"", PlatformOther},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParsePlatform(tt.in))
		})
	}
}

func TestPlatformFromURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PlatformFacebook, PlatformFromURL("https://www.facebook.com/lebaroque"))
	assert.Equal(t, PlatformInstagram, PlatformFromURL("https://instagram.com/lebaroque/"))
	assert.Equal(t, PlatformOther, PlatformFromURL("https://lebaroque.tn"))
}

func TestCandidateLinkAccessors(t *testing.T) {
	t.Parallel()

	var l CandidateLink
	assert.Equal(t, "", l.Text())
	assert.Equal(t, "", l.Name())
	assert.False(t, l.HasText())

	l.RawText = StringPtr("  \n ")
	assert.False(t, l.HasText(), "whitespace-only text is not usable")

	l.RawText = StringPtr("Le Baroque")
	l.DisplayName = StringPtr("Le Baroque Lac 2")
	assert.True(t, l.HasText())
	assert.Equal(t, "Le Baroque Lac 2", l.Name())
}

func TestStringPtr(t *testing.T) {
	t.Parallel()

	assert.Nil(t, StringPtr(""))
	p := StringPtr("x")
	if assert.NotNil(t, p) {
		assert.Equal(t, "x", *p)
	}
}

func TestWithLinksCopies(t *testing.T) {
	t.Parallel()

	orig := BusinessRecord{ID: "1", Links: []CandidateLink{{URL: "a"}}}
	cp := orig.WithLinks([]CandidateLink{{URL: "b"}})
	assert.Equal(t, "a", orig.Links[0].URL)
	assert.Equal(t, "b", cp.Links[0].URL)
	assert.Equal(t, "1", cp.ID)
}

func TestOutput(t *testing.T) {
	t.Parallel()

	res := VerificationResult{
		Record: BusinessRecord{ID: "7", PlaceName: "Baroque", Name: "Le Baroque", Address: "Rue du Lac", Phone: "22333444"},
		Links: []LinkVerification{{
			Link:     CandidateLink{URL: "https://facebook.com/baroque", Platform: PlatformFacebook},
			Score:    SignalScore{NameScore: 1, AddressScore: 0.8, PhoneMatch: true, OverallScore: 0.9},
			Verified: true,
			Analyzed: true,
			Details:  "name (1.00) | address (0.80 - text) | phone",
		}},
		BestOverallScore: 0.9,
		Status:           StatusVerified,
		Reason:           "confirmed by 1 verified link(s)",
	}

	out := res.Output()
	assert.Equal(t, "7", out.ID)
	assert.Equal(t, "Baroque", out.PlaceName)
	assert.Equal(t, StatusVerified, out.VerificationStatus)
	assert.Len(t, out.SocialLinks, 1)
	assert.Equal(t, PlatformFacebook, out.SocialLinks[0].Type)
	assert.True(t, out.SocialLinks[0].PhoneMatch)
	assert.Equal(t, 1, res.VerifiedCount())
}

func TestRunSummaryAdd(t *testing.T) {
	t.Parallel()

	var s RunSummary
	s.Add(StatusVerified)
	s.Add(StatusLikelyCorrect)
	s.Add(StatusUnverified)
	s.Add(StatusVerified)
	assert.Equal(t, RunSummary{Entities: 4, Verified: 2, LikelyCorrect: 1, Unverified: 1}, s)
}

func TestPageContentApply(t *testing.T) {
	t.Parallel()

	link := CandidateLink{URL: "https://instagram.com/baroque", Platform: PlatformInstagram}
	c := PageContent{RawText: StringPtr("lebaroque\nLe Baroque Lac 2"), DisplayName: StringPtr("Le Baroque Lac 2")}

	got := c.Apply(link)
	assert.Nil(t, link.RawText, "original link untouched")
	assert.Equal(t, "Le Baroque Lac 2", got.Name())
	assert.Equal(t, link.URL, got.URL)
	assert.Equal(t, PlatformInstagram, got.Platform)
}
