package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of money movement. Direction is carried
// exclusively here; ParsedTransaction.Amount is always non-negative.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// ExtractionMethod records which path produced a result.
type ExtractionMethod string

const (
	MethodStructural ExtractionMethod = "structural"
	MethodGenerative ExtractionMethod = "generative"
)

// CanonicalField is one of the fixed logical columns that tabular headers
// are mapped onto.
type CanonicalField string

const (
	FieldDate        CanonicalField = "date"
	FieldDescription CanonicalField = "description"
	FieldDebit       CanonicalField = "debit"
	FieldCredit      CanonicalField = "credit"
	FieldAmount      CanonicalField = "amount"
	FieldMerchant    CanonicalField = "merchant"
)

// ParsedTransaction is one normalized transaction produced by the pipeline.
// Created once per source row or per generative record; never mutated
// afterwards by this pipeline.
type ParsedTransaction struct {
	Date        civil.Date      `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // always >= 0
	Type        TransactionType `json:"type"`
	Merchant    string          `json:"merchant,omitempty"`
	Category    Category        `json:"category,omitempty"`
}

// ExtractionResult is returned to the caller for every ingestion call,
// whether it succeeded or not. Callers inspect Success/Error/Method instead
// of catching errors thrown out of the pipeline internals.
type ExtractionResult struct {
	Transactions []ParsedTransaction `json:"transactions"`
	Success      bool                `json:"success"`
	Error        string              `json:"error,omitempty"`
	TotalCount   int                 `json:"total_count"`
	Method       ExtractionMethod    `json:"method"`
}

// ParsedSMSData is the single-message extraction output.
type ParsedSMSData struct {
	Amount          decimal.Decimal `json:"amount"`
	Merchant        string          `json:"merchant"`
	PaymentMethod   string          `json:"payment_method"`
	TransactionType TransactionType `json:"transaction_type"`
	Category        Category        `json:"category"`
	Description     string          `json:"description"`
	Confidence      int             `json:"confidence"` // 0-100
	Date            *civil.Date     `json:"date,omitempty"`
}
