package llm

import (
	"strings"

	"github.com/finsight/ledgerparse/internal/domain"
)

// maxPromptTextLen bounds how much raw source text a prompt may carry, to
// respect the external service's input limits.
const maxPromptTextLen = 12000

// buildStatementPrompt builds the document-extraction prompt. The model is
// instructed to return a strict JSON array; cleanModelJSON still defends
// against fenced or chatty responses.
func buildStatementPrompt(rawText string) string {
	var b strings.Builder

	b.WriteString("You are a financial statement parser for raw bank statement text.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("- Extract ALL transactions from the text below.\n")
	b.WriteString("- Output STRICT JSON only (no comments, no trailing commas, no extra text).\n")
	b.WriteString("- Output a JSON array of objects.\n\n")
	b.WriteString("Each object must have these fields:\n")
	b.WriteString("- \"date\": string, ISO format \"YYYY-MM-DD\"\n")
	b.WriteString("- \"description\": string\n")
	b.WriteString("- \"amount\": number (always positive)\n")
	b.WriteString("- \"type\": \"income\" or \"expense\"\n")
	b.WriteString("- \"merchant\": string or null\n")
	b.WriteString("- \"category\": string (one of the categories below)\n\n")

	b.WriteString("Use ONLY the following categories:\n")
	for _, c := range domain.Categories {
		b.WriteString("- " + string(c) + "\n")
	}
	b.WriteString("\nRules:\n")
	b.WriteString("- If separate paid-out / paid-in columns appear, use \"type\" for direction.\n")
	b.WriteString("- If you are unsure of the category, use \"other\".\n")
	b.WriteString("Return ONLY valid raw JSON.\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	b.WriteString("Do NOT use ```json or any Markdown.\n")
	b.WriteString("Output must begin with \"[\" and end with \"]\".\n\n")
	b.WriteString("Statement text:\n")
	b.WriteString(truncate(rawText, maxPromptTextLen))

	return b.String()
}

// buildSMSPrompt builds the single-message extraction prompt. The model is
// asked for exactly one object plus a self-reported confidence.
func buildSMSPrompt(message string) string {
	var b strings.Builder

	b.WriteString("You are a parser for bank and payment alert messages.\n\n")
	b.WriteString("Extract the transaction from the message below.\n")
	b.WriteString("Output STRICT JSON only: a single object with these fields:\n")
	b.WriteString("- \"amount\": number (always positive; 0 if no amount is present)\n")
	b.WriteString("- \"merchant\": string (\"Unknown\" if it cannot be determined)\n")
	b.WriteString("- \"payment_method\": string (e.g. \"UPI\", \"Card\", \"Bank Transfer\", \"Unknown\")\n")
	b.WriteString("- \"transaction_type\": \"income\" or \"expense\"\n")
	b.WriteString("- \"category\": string (one of: ")
	names := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		names = append(names, string(c))
	}
	b.WriteString(strings.Join(names, ", "))
	b.WriteString(")\n")
	b.WriteString("- \"description\": string (short summary)\n")
	b.WriteString("- \"confidence\": number 0-100 (how certain you are)\n")
	b.WriteString("- \"date\": string \"YYYY-MM-DD\" or null if the message has no date\n\n")
	b.WriteString("Return ONLY valid raw JSON, no code fences, no Markdown.\n\n")
	b.WriteString("Message:\n")
	b.WriteString(truncate(message, maxPromptTextLen))

	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
