package summarize

import "fmt"

// The model is instructed to answer with a bare JSON object matching the
// summary shape. Fence stripping in sanitize.go cleans up models that wrap
// the object anyway.
const promptTemplate = `
Analyze the following document and provide the output in a valid JSON format.
The JSON object must have ONLY the following keys: "short", "medium", "long", "keyPoints", "mainIdeas", and "improvements".

- "short", "medium", "long": Provide summaries of these respective lengths.
- "keyPoints": An array of strings, with each string being a critical point.
- "mainIdeas": An array of strings, with each string being a core concept.
- "improvements": An array of strings, where each string is a specific, actionable suggestion to improve the clarity, grammar, or impact of the original text.

Document:
---
%s
---
`

func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}
