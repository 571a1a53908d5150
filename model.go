package skeptic

import (
	"context"
	"strings"
)

// AnalysisRequest is the article content embedded into the analysis prompt.
type AnalysisRequest struct {
	Title string
	Body  string
}

// LanguageModel generates text from a prompt.
type LanguageModel interface {
	// Generate sends prompt to the model and returns the generated text.
	// Returns ECONFIG if the model is not configured and EMODEL if the call
	// fails or the response has no text.
	Generate(ctx context.Context, prompt string) (string, error)
}

const promptTemplate = `You are "The Digital Skeptic" AI, designed to help readers think critically about news articles. Analyze the following article and provide a structured critical analysis report.

Article Title: {{title}}

Article Content: {{body}}

Please provide a comprehensive analysis in the following format:

# Critical Analysis Report for: {{title}}

### Core Claims
* [List 3-5 main factual claims the article makes]

### Language & Tone Analysis
[Brief analysis of the article's language - is it neutral, emotionally charged, persuasive, etc.]

### Potential Red Flags
* [List any signs of bias, poor reporting, loaded terminology, over-reliance on anonymous sources, lack of cited data, missing opposing viewpoints, etc.]

### Verification Questions
1. [Specific question readers should ask to verify the content]
2. [Another verification question]
3. [Another verification question]
4. [Another verification question]

Focus on empowering critical thinking rather than making final judgments about truth or falsehood. Highlight what readers should investigate further.`

// BuildPrompt builds the critical-analysis prompt for req.
// The layout of the requested report matches the headers ParseReport
// recognizes.
func BuildPrompt(req AnalysisRequest) string {
	r := strings.NewReplacer("{{title}}", req.Title, "{{body}}", req.Body)
	return r.Replace(promptTemplate)
}

// PromptCounter sizes the analysis prompt for an article before it is sent.
type PromptCounter interface {
	// CountPrompt returns the number of input tokens the prompt built from
	// req occupies.
	CountPrompt(ctx context.Context, req AnalysisRequest) (int, error)
}
