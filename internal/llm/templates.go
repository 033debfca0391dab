package llm

import (
	"github.com/tmc/langchaingo/prompts"
)

// Template is an immutable prompt definition. Rendering never mutates it.
type Template struct {
	Name string
	// Structured templates ask for JSON and are decoded into a schema.
	Structured bool
	// Long templates are allowed the larger article token budget.
	Long   bool
	text   string
	inputs []string
}

// Render fills the template. Every declared input must be present.
func (t Template) Render(vars map[string]string) (string, error) {
	values := make(map[string]any, len(vars))
	for k, v := range vars {
		values[k] = v
	}
	return prompts.NewPromptTemplate(t.text, t.inputs).Format(values)
}

// AnalysisTemplate asks for sentiment, themes and strategies of one entry.
var AnalysisTemplate = Template{
	Name:       "analysis",
	Structured: true,
	inputs:     []string{"text"},
	text: `You are an empathetic AI journaling companion. Analyze the following journal entry.

Identify the overall sentiment (positive, negative, neutral) and provide a score from -1.0 (very negative) to 1.0 (very positive).
Extract the key themes or topics discussed (as a list of strings).
Suggest 1-3 brief, actionable, and empathetic coping strategies or reflection points relevant to the themes (as a list of strings).

Respond with a single JSON object and nothing else, using exactly these fields:
{"sentiment_score": number, "sentiment_label": string, "key_themes": [string], "suggested_strategies": [string]}

Journal Entry:
{{.text}}
`,
}

// PromptGenerationTemplate asks for one reflective journaling prompt.
var PromptGenerationTemplate = Template{
	Name:   "prompt_generation",
	inputs: []string{"context"},
	text: `You are a gentle journaling coach. Based on the user's recent journal entries below, write ONE short, open-ended reflective question to inspire today's entry.
Be warm and specific to what they shared, but never diagnose or give medical advice.
Reply with the question only, no preamble and no quotes.

Recent entries:
{{.context}}
`,
}

// ArticleVariationTemplate asks for one short supportive article about a
// mood, written from a single focus angle.
var ArticleVariationTemplate = Template{
	Name:       "article_variation",
	Structured: true,
	Long:       true,
	inputs:     []string{"mood", "focus"},
	text: `You are a compassionate wellbeing writer. Someone is currently feeling "{{.mood}}".
Write a short supportive article (150-250 words) for them with this focus: {{.focus}}.
Use plain, kind language and practical ideas. Do not diagnose or give medical advice.

Respond with a single JSON object and nothing else:
{"title": string, "body": string}
`,
}

// ChatTemplate is the supportive companion reply to a free-form message.
var ChatTemplate = Template{
	Name:   "chat",
	inputs: []string{"message"},
	text: `You are a supportive, empathetic journaling companion. Respond warmly and briefly (at most a few short paragraphs) to the user's message.
Respect professional boundaries: do not diagnose, do not give medical advice, and gently suggest professional help if the user seems to be in crisis.

User: {{.message}}
`,
}
