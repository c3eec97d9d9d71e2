package extraction

const outputStructure = `Output JSON structure:
{
  %q: "exact %s",
  "summary": "brief summary of the request",
  "extracted_data": {
    "departure": "airport code or city" or ["city1", "city2"] for multi-city,
    "destination": "airport code or city" or ["city1", "city2"] for multi-city,
    "departure_date": "YYYY-MM-DD" or ["YYYY-MM-DD", "YYYY-MM-DD"] for multi-city,
    "return_date": "YYYY-MM-DD" or null,
    "ticket_type": "One Way" | "Round Trip" | "Multi-City",
    "flight_type": "Economy" | "Premium Economy" | "Business" | "First",
    "city_amount": number (only for multi-city),
    "passengers": {
      "Adult": number,
      "Children": number,
      "Infants In Seat": number,
      "Infants On Lap": number
    }
  },
  "confidence": "high" | "medium" | "low",
  "missing_fields": ["field1", "field2"] or []
}
`

const instructions = `You are an AI assistant that extracts structured flight search information from %s.

Your task is to:
1. Analyze the %s carefully
2. Extract relevant flight search parameters
3. Return a JSON object with the exact structure specified below

CRITICAL REQUIREMENTS:
- Always return valid JSON
- Use the exact field names and structure shown in the examples
- Infer reasonable defaults for unspecified fields
- Mark fields as null or omit them if not mentioned
- Set confidence based on information completeness:
  * "high" - All key information present and clear
  * "medium" - Some ambiguity or missing optional fields
  * "low" - Missing critical information or unclear intent
- List any required fields that couldn't be extracted in missing_fields

For ticket_type, determine based on context:
- "One Way" - Only departure mentioned, no return
- "Round Trip" - Both departure and return dates mentioned
- "Multi-City" - Multiple destinations/segments mentioned

For flight_type, use context clues:
- "Economy" - Default if not specified
- "Premium Economy", "Business", "First" - If explicitly mentioned

For passengers, default to {"Adult": 1} if not specified.

For city_amount in multi-city searches, count the legs beyond the first two.

For dates:
- Convert relative dates (e.g., "next month", "March 15th") to YYYY-MM-DD format
- Assume year 2026 if not specified
- Return null if date cannot be determined

`

const templateHeading = "\n\nREFERENCE EXAMPLES FROM TEMPLATE:\n"

const (
	textUserMessage  = "Extract flight search information from this text:\n\n%s"
	voiceUserMessage = "Extract flight search information from this transcription:\n\n%s"
)
