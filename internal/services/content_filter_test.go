package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentFilter(t *testing.T) {
	f := NewContentFilter()
	cases := map[string]string{
		"The sambar was lovely, thank you!":           "",
		"Call me on +971 50 123 4567":                 ReasonContactInfo,
		"mail me at anu@example.com":                  ReasonContactInfo,
		"see https://example.com":                     ReasonURL,
		"sooooo good":                                 ReasonSpam,
		"THIS FOOD WAS AMAZING, REALLY AMAZING TODAY": ReasonCaps,
		"what a scam":                                 ReasonLanguage,
	}
	for text, want := range cases {
		ok, reason := f.Check(text)
		assert.Equal(t, want == "", ok, text)
		assert.Equal(t, want, reason, text)
	}
	assert.NotEmpty(t, RejectionMessage(ReasonSpam))
	assert.NotEmpty(t, RejectionMessage("other"))
}
