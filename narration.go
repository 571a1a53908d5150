package skeptic

import (
	"regexp"
	"strings"
)

// Narration builds the text read aloud for a report. Sections appear in
// report order and empty sections are left out. Narration is lossy: it is
// not meant to be parsed back into a Report.
func Narration(r Report, title string) string {
	parts := []string{"Analysis of: " + terminate(title)}
	if len(r.CoreClaims) > 0 {
		parts = append(parts, "Core Claims: "+sentences(r.CoreClaims))
	}
	if r.LanguageTone != "" {
		parts = append(parts, "Language and Tone Analysis: "+terminate(r.LanguageTone))
	}
	if len(r.RedFlags) > 0 {
		parts = append(parts, "Potential Red Flags: "+sentences(r.RedFlags))
	}
	if len(r.VerificationQuestions) > 0 {
		parts = append(parts, "Verification Questions: "+sentences(r.VerificationQuestions))
	}
	return strings.Join(parts, " ")
}

// sentences joins entries so that each one ends with terminal punctuation.
func sentences(entries []string) string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, terminate(e))
		}
	}
	return strings.Join(out, " ")
}

func terminate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasSuffix(s, ".") || strings.HasSuffix(s, "?") || strings.HasSuffix(s, "!") {
		return s
	}
	return s + "."
}

var (
	speechHeadingRe    = regexp.MustCompile(`#{1,6}\s`)
	speechWhitespaceRe = regexp.MustCompile(`\s+`)
)

// SpeechText strips markdown punctuation from s so a speech engine does
// not read it out.
func SpeechText(s string) string {
	s = speechHeadingRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "*", "")
	s = strings.ReplaceAll(s, "\n\n", ". ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = speechWhitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
