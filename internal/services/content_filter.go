package services

import (
	"regexp"
	"strings"
)

// Rejection reasons returned by ContentFilter.Check.
const (
	ReasonLanguage    = "inappropriate_language"
	ReasonURL         = "url_not_allowed"
	ReasonContactInfo = "contact_info_not_allowed"
	ReasonSpam        = "spam_detected"
	ReasonCaps        = "excessive_caps"
)

var BannedWords = []string{
	"fuck", "fucking", "fucker", "shit", "shitty", "bullshit",
	"asshole", "bastard", "bitch", "cunt",
	"retard", "retarded",
	"porn", "porno", "nude", "nudes",
	"scam", "scammer", "phishing", "malware",
}

var rejectionMessages = map[string]string{
	ReasonLanguage:    "Your feedback contains inappropriate language.",
	ReasonURL:         "Links are not allowed in feedback.",
	ReasonContactInfo: "Please leave contact details out of public feedback.",
	ReasonSpam:        "Your feedback looks like spam.",
	ReasonCaps:        "Please avoid using excessive capital letters.",
}

// ContentFilter screens free text that other subscribers will read.
// It is safe for concurrent use once built.
type ContentFilter struct {
	bannedWords    []*regexp.Regexp
	urlPattern     *regexp.Regexp
	emailPattern   *regexp.Regexp
	phonePattern   *regexp.Regexp
	repeatedChars  *regexp.Regexp
	allCapsPattern *regexp.Regexp
}

func NewContentFilter() *ContentFilter {
	f := &ContentFilter{
		bannedWords:  make([]*regexp.Regexp, 0, len(BannedWords)),
		urlPattern:   regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`),
		emailPattern: regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		// UAE and international numbers, with or without separators.
		phonePattern:   regexp.MustCompile(`\+?\d[\d\s-]{8,}\d`),
		repeatedChars:  repeatedCharsPattern(),
		allCapsPattern: regexp.MustCompile(`\b[A-Z]{5,}\b`),
	}
	for _, word := range BannedWords {
		f.bannedWords = append(f.bannedWords, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
	}
	return f
}

// repeatedCharsPattern matches any letter or !?. repeated four times in a row.
// RE2 has no backreferences, so each character gets its own alternative.
func repeatedCharsPattern() *regexp.Regexp {
	parts := make([]string, 0, 29)
	for c := 'a'; c <= 'z'; c++ {
		parts = append(parts, string(c)+"{4,}")
	}
	parts = append(parts, `!{4,}`, `\?{4,}`, `\.{4,}`)
	return regexp.MustCompile(`(?i)(` + strings.Join(parts, "|") + `)`)
}

// Check returns ok=false and a reason code when text should not be published.
func (f *ContentFilter) Check(text string) (bool, string) {
	if text == "" {
		return true, ""
	}
	for _, re := range f.bannedWords {
		if re.MatchString(text) {
			return false, ReasonLanguage
		}
	}
	if f.urlPattern.MatchString(text) {
		return false, ReasonURL
	}
	if f.emailPattern.MatchString(text) || f.phonePattern.MatchString(text) {
		return false, ReasonContactInfo
	}
	if f.repeatedChars.MatchString(text) {
		return false, ReasonSpam
	}
	if len(f.allCapsPattern.FindAllString(text, -1)) > 2 {
		return false, ReasonCaps
	}
	return true, ""
}

func RejectionMessage(reason string) string {
	if msg, ok := rejectionMessages[reason]; ok {
		return msg
	}
	return "Your feedback does not meet our content guidelines."
}
