// Package sms extracts a single transaction from one free-text bank or
// payment alert message.
//
// The extractor is two-tiered: the generative path runs first, and its
// answer is accepted only when it looks substantive (positive amount, real
// merchant). Anything less falls through to a deterministic regex tier, so
// the caller is never handed a confidently-wrong result synthesized from a
// malformed generative answer.
package sms

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/finsight/ledgerparse/internal/amount"
	"github.com/finsight/ledgerparse/internal/classify"
	"github.com/finsight/ledgerparse/internal/domain"
	"github.com/finsight/ledgerparse/internal/llm"
)

// fallbackConfidence is the fixed low confidence assigned when the
// deterministic tier found an amount; messages without any amount score 0.
const fallbackConfidence = 40

var (
	// first amount-like token next to a currency marker
	amountPattern = regexp.MustCompile(`(?i)(?:rs\.?|inr|₹|\$|£|€)\s*([0-9]+(?:,[0-9]{2,3})*(?:\.[0-9]+)?)`)

	// merchant after a preposition, optionally behind a VPA marker
	merchantPattern = regexp.MustCompile(`(?i)\b(?:at|to|from|via)\s+(?:vpa\s+)?([A-Za-z0-9][A-Za-z0-9@._&-]*)`)

	incomeWords = []string{"credited", "received", "deposited", "refund", "salary"}
)

// RecordExtractor is the generative tier. *llm.Extractor satisfies it.
type RecordExtractor interface {
	ExtractSMSRecord(ctx context.Context, message string) (domain.ParsedSMSData, error)
}

// Extractor composes the generative and deterministic tiers.
type Extractor struct {
	generative RecordExtractor
	log        zerolog.Logger
}

// NewExtractor creates an SMS extractor. generative may be nil, in which
// case only the deterministic tier runs.
func NewExtractor(generative RecordExtractor, log zerolog.Logger) *Extractor {
	return &Extractor{generative: generative, log: log}
}

// Extract parses one alert message. The generative answer is accepted only
// if it reports a positive amount and a merchant other than the "Unknown"
// sentinel; otherwise the deterministic tier decides.
func (e *Extractor) Extract(ctx context.Context, message string) domain.ParsedSMSData {
	if e.generative != nil {
		rec, err := e.generative.ExtractSMSRecord(ctx, message)
		if err == nil && accept(rec) {
			return rec
		}
		if err != nil {
			e.log.Debug().Err(err).Msg("generative SMS extraction rejected, using deterministic tier")
		}
	}
	return ExtractDeterministic(message)
}

func accept(rec domain.ParsedSMSData) bool {
	return rec.Amount.IsPositive() && !strings.EqualFold(rec.Merchant, llm.UnknownMerchant)
}

// ExtractDeterministic is the regex tier: first amount near a currency
// marker, direction from a fixed income vocabulary, merchant from
// prepositional patterns. It never fails; a message with no recognizable
// amount yields a zero-amount record with confidence 0.
func ExtractDeterministic(message string) domain.ParsedSMSData {
	rec := domain.ParsedSMSData{
		Merchant:        llm.UnknownMerchant,
		PaymentMethod:   detectPaymentMethod(message),
		TransactionType: domain.TypeExpense,
		Description:     strings.TrimSpace(message),
	}

	if m := amountPattern.FindStringSubmatch(message); m != nil {
		rec.Amount = amount.Parse(m[1])
		rec.Confidence = fallbackConfidence
	}

	lower := strings.ToLower(message)
	for _, w := range incomeWords {
		if strings.Contains(lower, w) {
			rec.TransactionType = domain.TypeIncome
			break
		}
	}

	for _, m := range merchantPattern.FindAllStringSubmatch(message, -1) {
		if isAccountToken(m[1]) {
			// "from A/c XX1234" names the account, not the counterparty
			continue
		}
		rec.Merchant = m[1]
		break
	}

	if rec.Merchant != llm.UnknownMerchant {
		rec.Category = classify.Classify(rec.Merchant + " " + message)
	} else {
		rec.Category = classify.Classify(message)
	}

	return rec
}

func isAccountToken(s string) bool {
	lower := strings.ToLower(strings.Trim(s, "."))
	if len(lower) < 2 {
		return true
	}
	switch lower {
	case "ac", "acct", "account", "bank", "your":
		return true
	}
	return strings.HasPrefix(lower, "xx")
}

func detectPaymentMethod(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "upi") || strings.Contains(lower, "vpa"):
		return "UPI"
	case strings.Contains(lower, "card"):
		return "Card"
	case strings.Contains(lower, "neft") || strings.Contains(lower, "imps") || strings.Contains(lower, "rtgs"):
		return "Bank Transfer"
	case strings.Contains(lower, "wallet"):
		return "Wallet"
	default:
		return "Unknown"
	}
}
