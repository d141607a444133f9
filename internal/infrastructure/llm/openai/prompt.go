package openai

import "fmt"

const extractionSystemPrompt = "You are a project management assistant that extracts structured information from meeting transcriptions. Always return valid JSON only."

func buildExtractionPrompt(text, projectName, clientName string) string {
	return fmt.Sprintf(`You are analyzing a project status meeting transcription. Extract the following information and return it as a JSON object.

Project Context:
- Project Name: %s
- Client: %s

Transcription:
%s

Extract the following information:
1. **is_on_scope**: Boolean (true/false/null) - Is the project on scope? Look for mentions of scope, scope changes, out of scope, within scope, etc.
2. **is_on_time**: Boolean (true/false/null) - Is the project on time? Look for mentions of deadlines, delays, on schedule, behind schedule, etc.
3. **is_on_budget**: Boolean (true/false/null) - Is the project on budget? Look for mentions of budget, costs, over budget, within budget, financial concerns, etc.
4. **next_delivery**: String or null - What is the next delivery? Extract dates, milestones, deliverables, deadlines mentioned.
5. **risks**: String or null - What are the project risks? Extract any concerns, blockers, issues, challenges, or risks mentioned.

Important:
- Return ONLY valid JSON, no additional text
- Use null for unknown/not mentioned values
- Use true/false for boolean values (not "yes"/"no")
- Be specific and concise in your extractions
- If information is not mentioned, use null

Return format:
{
    "is_on_scope": true/false/null,
    "is_on_time": true/false/null,
    "is_on_budget": true/false/null,
    "next_delivery": "string or null",
    "risks": "string or null"
}`, projectName, clientName, text)
}
