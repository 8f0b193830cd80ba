package services

// Prompt templates for the generation service. The response schemas are
// fixed; parsing tolerates prose and markdown fences around the JSON.

const (
	// CATEGORIZE_PROMPT asks for a structured analysis of a complaint.
	// Placeholders: title, description.
	CATEGORIZE_PROMPT = `Analyze the following complaint and categorize it:

Title: %s
Description: %s

Please provide:
1. Category (one of: Infrastructure, Sanitation, Water Supply, Electricity, Roads, Public Safety, Healthcare, Education, Transportation, Environment, Other)
2. Department (the government department that should handle this)
3. Priority Level (low, medium, high, or critical)
4. Key Keywords (5-7 relevant keywords)
5. Sentiment (positive, neutral, or negative)

Respond in JSON format:
{
  "category": "string",
  "department": "string",
  "priority": "string",
  "keywords": ["string"],
  "sentiment": "string",
  "confidence": 0.95,
  "reasoning": "Brief explanation"
}

Return ONLY the JSON object, nothing else.`

	// SUGGEST_PROMPT asks for short completion suggestions for partial
	// input. Placeholders: partial text, context noun.
	SUGGEST_PROMPT = `Based on this partial text: "%s"

Provide 3-5 helpful suggestions to complete this %s. The suggestions should be:
- Relevant and specific
- Clear and concise
- Actionable

Respond as a JSON array of strings:
["suggestion 1", "suggestion 2", "suggestion 3"]

Return ONLY the JSON array, nothing else.`
)
