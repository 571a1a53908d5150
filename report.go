package skeptic

import (
	"regexp"
	"strings"
)

// Report is the structured form of a critical-analysis response.
// Slices are never nil; an empty field means the section was not found.
type Report struct {
	CoreClaims            []string `json:"coreClaims"`
	LanguageTone          string   `json:"languageTone"`
	RedFlags              []string `json:"redFlags"`
	VerificationQuestions []string `json:"verificationQuestions"`
}

// Section identifies the report section a parser is currently reading.
type Section int

// Report sections in the order the prompt requests them.
const (
	SectionNone Section = iota
	SectionCoreClaims
	SectionLanguageTone
	SectionRedFlags
	SectionVerificationQuestions
)

// String returns the section's header phrase.
func (s Section) String() string {
	switch s {
	case SectionCoreClaims:
		return "Core Claims"
	case SectionLanguageTone:
		return "Language & Tone"
	case SectionRedFlags:
		return "Red Flags"
	case SectionVerificationQuestions:
		return "Verification Questions"
	}
	return "none"
}

// headers is checked in order; the first phrase contained in a line wins.
var headers = []Section{
	SectionCoreClaims,
	SectionLanguageTone,
	SectionRedFlags,
	SectionVerificationQuestions,
}

var ordinalRe = regexp.MustCompile(`^\d+\.`)

// ParseReport parses a model response into a Report. It never fails:
// missing sections yield empty fields.
//
// Lines are read once, in order. A line containing a header phrase
// (case-insensitive, anywhere in the line) switches section and is
// discarded. Bullets (* or -) are entries in Core Claims and Red Flags,
// numbered lines are entries in Verification Questions, and remaining
// non-heading text in Language & Tone is joined into one narrative.
func ParseReport(raw string) Report {
	p := &reportParser{report: Report{
		CoreClaims:            []string{},
		RedFlags:              []string{},
		VerificationQuestions: []string{},
	}}
	for _, line := range strings.Split(raw, "\n") {
		p.step(strings.TrimSpace(line))
	}
	p.report.LanguageTone = strings.Join(p.tone, " ")
	return p.report
}

// reportParser holds the state of one ParseReport scan.
type reportParser struct {
	state  Section
	report Report
	tone   []string
}

// step consumes one trimmed line.
func (p *reportParser) step(line string) {
	if next, ok := headerSection(line); ok {
		p.state = next
		return
	}

	switch {
	case strings.HasPrefix(line, "*") || strings.HasPrefix(line, "-"):
		entry := strings.TrimSpace(line[1:])
		switch p.state {
		case SectionCoreClaims:
			p.report.CoreClaims = append(p.report.CoreClaims, entry)
		case SectionRedFlags:
			p.report.RedFlags = append(p.report.RedFlags, entry)
		}
	case ordinalRe.MatchString(line):
		if p.state == SectionVerificationQuestions {
			entry := strings.TrimSpace(ordinalRe.ReplaceAllString(line, ""))
			p.report.VerificationQuestions = append(p.report.VerificationQuestions, entry)
		}
	case line != "" && p.state == SectionLanguageTone && !strings.HasPrefix(line, "#"):
		p.tone = append(p.tone, line)
	}
}

// headerSection reports the section whose header phrase line contains.
func headerSection(line string) (Section, bool) {
	lower := strings.ToLower(line)
	for _, s := range headers {
		if strings.Contains(lower, strings.ToLower(s.String())) {
			return s, true
		}
	}
	return SectionNone, false
}

// IsEmpty reports whether no section was recognized.
func (r Report) IsEmpty() bool {
	return len(r.CoreClaims) == 0 && r.LanguageTone == "" &&
		len(r.RedFlags) == 0 && len(r.VerificationQuestions) == 0
}
