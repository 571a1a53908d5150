package skeptic

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FormatAnalysis formats an analysis for terminal display. Empty sections
// are shown with a placeholder rather than omitted. When raw is true the
// unparsed model response is appended.
func FormatAnalysis(a *Analysis, raw bool) string {
	var sb strings.Builder

	sb.WriteString("Article Analysis\n")
	sb.WriteString(a.Title + "\n")
	if a.URL != "" {
		sb.WriteString(a.URL + "\n")
	}
	fmt.Fprintf(&sb, "Content length: %d characters\n", utf8.RuneCountInString(a.Content))

	r := a.Report

	sb.WriteString("\nCore Claims\n")
	if len(r.CoreClaims) == 0 {
		sb.WriteString("  No specific claims identified.\n")
	}
	for i, c := range r.CoreClaims {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, c)
	}

	sb.WriteString("\nLanguage & Tone Analysis\n")
	if r.LanguageTone == "" {
		sb.WriteString("  No language analysis available.\n")
	} else {
		sb.WriteString("  " + r.LanguageTone + "\n")
	}

	sb.WriteString("\nPotential Red Flags\n")
	if len(r.RedFlags) == 0 {
		sb.WriteString("  No significant red flags identified.\n")
	}
	for _, f := range r.RedFlags {
		sb.WriteString("  ! " + f + "\n")
	}

	sb.WriteString("\nVerification Questions\n")
	if len(r.VerificationQuestions) == 0 {
		sb.WriteString("  No verification questions generated.\n")
	}
	for i, q := range r.VerificationQuestions {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, q)
	}

	if raw {
		sb.WriteString("\nRaw Analysis\n")
		sb.WriteString(a.Raw)
		if !strings.HasSuffix(a.Raw, "\n") {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
