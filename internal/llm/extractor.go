package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finsight/ledgerparse/internal/amount"
	"github.com/finsight/ledgerparse/internal/classify"
	"github.com/finsight/ledgerparse/internal/domain"
	"github.com/finsight/ledgerparse/internal/tabular"
)

// UnknownMerchant is the sentinel the model is told to use when it cannot
// determine a merchant. The SMS acceptance rule rejects it.
const UnknownMerchant = "Unknown"

// Extractor runs the generative fallback path. The completion service is
// untrusted: every response passes through explicit validation and
// coercion, and any failure surfaces as a soft result, never a panic or an
// unhandled error.
type Extractor struct {
	completer Completer
	now       func() time.Time
	log       zerolog.Logger
}

// NewExtractor creates an extractor over the given completer.
func NewExtractor(completer Completer, log zerolog.Logger) *Extractor {
	return &Extractor{
		completer: completer,
		now:       time.Now,
		log:       log,
	}
}

// ExtractTransactions prompts the external service with the raw source text
// and validates the response into an ExtractionResult tagged
// method="generative". Network failures and malformed responses both yield
// success=false with a message; they are never propagated as errors.
func (e *Extractor) ExtractTransactions(ctx context.Context, rawText string) domain.ExtractionResult {
	failed := func(err error) domain.ExtractionResult {
		e.log.Warn().Err(err).Msg("generative extraction failed")
		return domain.ExtractionResult{
			Success: false,
			Error:   err.Error(),
			Method:  domain.MethodGenerative,
		}
	}

	raw, err := e.completer.Complete(ctx, buildStatementPrompt(rawText))
	if err != nil {
		return failed(wrap(domain.ErrGenerativeNetwork, err))
	}

	var records []any
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &records); err != nil {
		return failed(wrap(domain.ErrGenerativeSchema, err))
	}

	txs := make([]domain.ParsedTransaction, 0, len(records))
	for _, rec := range records {
		obj, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		txs = append(txs, e.coerceTransaction(obj))
	}

	return domain.ExtractionResult{
		Transactions: txs,
		Success:      true,
		TotalCount:   len(txs),
		Method:       domain.MethodGenerative,
	}
}

// ExtractSMSRecord prompts the service for a single alert message and
// validates the one-record response. The caller (the SMS extractor) applies
// the acceptance rule; this function only guarantees a well-formed record
// or an error.
func (e *Extractor) ExtractSMSRecord(ctx context.Context, message string) (domain.ParsedSMSData, error) {
	raw, err := e.completer.Complete(ctx, buildSMSPrompt(message))
	if err != nil {
		return domain.ParsedSMSData{}, wrap(domain.ErrGenerativeNetwork, err)
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &obj); err != nil {
		return domain.ParsedSMSData{}, wrap(domain.ErrGenerativeSchema, err)
	}

	rec := domain.ParsedSMSData{
		Amount:        coerceAmount(obj["amount"]),
		Merchant:      coerceString(obj["merchant"], UnknownMerchant),
		PaymentMethod: coerceString(obj["payment_method"], "Unknown"),
		Description:   coerceString(obj["description"], message),
		Confidence:    coerceConfidence(obj["confidence"]),
	}

	switch coerceString(obj["transaction_type"], "") {
	case string(domain.TypeIncome):
		rec.TransactionType = domain.TypeIncome
	default:
		rec.TransactionType = domain.TypeExpense
	}

	rec.Category = coerceCategory(obj["category"], rec.Merchant+" "+rec.Description)

	if dateStr := coerceString(obj["date"], ""); dateStr != "" {
		if d, ok := tabular.ParseDate(dateStr); ok {
			rec.Date = &d
		}
	}

	return rec, nil
}

// coerceTransaction converts one untrusted record into a ParsedTransaction,
// defaulting missing or invalid fields instead of failing: unparseable
// dates become today, non-numeric amounts become 0, amounts are clamped
// non-negative, and out-of-taxonomy categories are re-derived by the
// deterministic classifier.
func (e *Extractor) coerceTransaction(obj map[string]any) domain.ParsedTransaction {
	desc := coerceString(obj["description"], "")
	merchant := coerceString(obj["merchant"], "")

	date, ok := tabular.ParseDate(coerceString(obj["date"], ""))
	if !ok {
		date = civil.DateOf(e.now())
	}

	amt := coerceAmount(obj["amount"])

	var typ domain.TransactionType
	switch coerceString(obj["type"], "") {
	case string(domain.TypeIncome):
		typ = domain.TypeIncome
	case string(domain.TypeExpense):
		typ = domain.TypeExpense
	default:
		if amount.HasIncomeKeyword(desc) {
			typ = domain.TypeIncome
		} else {
			typ = domain.TypeExpense
		}
	}

	return domain.ParsedTransaction{
		Date:        date,
		Description: desc,
		Amount:      amt,
		Type:        typ,
		Merchant:    merchant,
		Category:    coerceCategory(obj["category"], desc+" "+merchant),
	}
}

// cleanModelJSON strips Markdown fences and surrounding chatter the model
// may emit despite instructions, keeping only the outermost JSON value.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	// Keep only the outermost JSON value if chatter still surrounds it. The
	// bracket type of the first opener decides the shape; an object response
	// is never salvaged into an embedded array.
	start := strings.IndexAny(s, "[{")
	if start != -1 {
		closer := "]"
		if s[start] == '{' {
			closer = "}"
		}
		if end := strings.LastIndex(s, closer); end > start {
			return strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}

func coerceString(v any, fallback string) string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}

// coerceAmount accepts a JSON number or a currency-formatted string and
// clamps the result to non-negative.
func coerceAmount(v any) decimal.Decimal {
	switch val := v.(type) {
	case float64:
		return decimal.NewFromFloat(val).Abs()
	case string:
		return amount.Parse(val).Abs()
	default:
		return decimal.Zero
	}
}

func coerceCategory(v any, classifyInput string) domain.Category {
	if s, ok := v.(string); ok {
		c := domain.Category(strings.ToLower(strings.TrimSpace(s)))
		if domain.ValidCategory(c) {
			return c
		}
	}
	return classify.Classify(classifyInput)
}

func coerceConfidence(v any) int {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	c := int(f)
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

func wrap(sentinel error, cause error) error {
	return fmt.Errorf("%w: %v", sentinel, cause)
}
