package llm

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finsight/ledgerparse/internal/domain"
	"github.com/finsight/ledgerparse/internal/logger"
)

// mockCompleter is a scripted stand-in for the external completion service.
type mockCompleter struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)
	calls        int
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.calls++
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "[]", nil
}

func newTestExtractor(c Completer) *Extractor {
	return NewExtractor(c, logger.NewWithWriter(io.Discard))
}

func TestExtractTransactions_ValidArray(t *testing.T) {
	completer := &mockCompleter{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			return `[
				{"date":"2024-01-08","description":"Rent","amount":30917,"type":"expense","merchant":null,"category":"rent"},
				{"date":"2024-01-10","description":"Salary","amount":85000,"type":"income","merchant":"Acme","category":"salary"}
			]`, nil
		},
	}

	res := newTestExtractor(completer).ExtractTransactions(context.Background(), "raw statement text")

	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if res.Method != domain.MethodGenerative {
		t.Errorf("method = %q, want generative", res.Method)
	}
	if res.TotalCount != 2 || len(res.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(res.Transactions))
	}
	if res.Transactions[0].Date.String() != "2024-01-08" {
		t.Errorf("date = %s, want 2024-01-08", res.Transactions[0].Date)
	}
	if res.Transactions[1].Merchant != "Acme" {
		t.Errorf("merchant = %q, want Acme", res.Transactions[1].Merchant)
	}
}

func TestExtractTransactions_FencedResponse(t *testing.T) {
	completer := &mockCompleter{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			return "```json\n[{\"date\":\"2024-02-01\",\"description\":\"Coffee\",\"amount\":120,\"type\":\"expense\",\"category\":\"food\"}]\n```", nil
		},
	}

	res := newTestExtractor(completer).ExtractTransactions(context.Background(), "text")

	if !res.Success || res.TotalCount != 1 {
		t.Fatalf("expected one transaction from fenced response, got %+v", res)
	}
}

func TestExtractTransactions_NotJSON(t *testing.T) {
	completer := &mockCompleter{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			return "not json", nil
		},
	}

	res := newTestExtractor(completer).ExtractTransactions(context.Background(), "text")

	if res.Success {
		t.Fatal("expected success=false for unparseable response")
	}
	if res.Error == "" {
		t.Error("expected an error message")
	}
	if len(res.Transactions) != 0 {
		t.Errorf("expected no transactions, got %d", len(res.Transactions))
	}
}

func TestExtractTransactions_NonArray(t *testing.T) {
	completer := &mockCompleter{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			return `{"transactions": []}`, nil
		},
	}

	res := newTestExtractor(completer).ExtractTransactions(context.Background(), "text")

	if res.Success {
		t.Fatal("expected success=false for a non-array response")
	}
}

func TestExtractTransactions_NetworkFailure(t *testing.T) {
	completer := &mockCompleter{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("connection timed out")
		},
	}

	res := newTestExtractor(completer).ExtractTransactions(context.Background(), "text")

	if res.Success {
		t.Fatal("expected success=false on network failure")
	}
}

// Invalid fields are defaulted, never fatal: bad dates become today, bad
// amounts become zero, negative amounts are clamped, unknown categories are
// re-derived from the description.
func TestExtractTransactions_CoercesInvalidFields(t *testing.T) {
	completer := &mockCompleter{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			return `[{"date":"soon","description":"Swiggy order","amount":-450,"type":"spend","category":"made-up"}]`, nil
		},
	}

	res := newTestExtractor(completer).ExtractTransactions(context.Background(), "text")

	if !res.Success || len(res.Transactions) != 1 {
		t.Fatalf("expected one coerced transaction, got %+v", res)
	}
	tx := res.Transactions[0]
	if tx.Date.IsZero() {
		t.Error("expected bad date to default to today, got zero date")
	}
	if !tx.Amount.Equal(decimal.NewFromInt(450)) {
		t.Errorf("amount = %s, want 450 (clamped non-negative)", tx.Amount)
	}
	if tx.Type != domain.TypeExpense {
		t.Errorf("type = %q, want expense", tx.Type)
	}
	if tx.Category != domain.CategoryFood {
		t.Errorf("category = %q, want food (re-derived)", tx.Category)
	}
}

func TestExtractSMSRecord(t *testing.T) {
	completer := &mockCompleter{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			return `{"amount":450,"merchant":"Swiggy","payment_method":"UPI","transaction_type":"expense","category":"food","description":"Food order","confidence":85,"date":"2024-03-05"}`, nil
		},
	}

	rec, err := newTestExtractor(completer).ExtractSMSRecord(context.Background(), "Rs.450 debited")
	if err != nil {
		t.Fatalf("ExtractSMSRecord returned error: %v", err)
	}
	if !rec.Amount.Equal(decimal.NewFromInt(450)) {
		t.Errorf("amount = %s, want 450", rec.Amount)
	}
	if rec.Merchant != "Swiggy" || rec.PaymentMethod != "UPI" {
		t.Errorf("merchant/method = %q/%q", rec.Merchant, rec.PaymentMethod)
	}
	if rec.Confidence != 85 {
		t.Errorf("confidence = %d, want 85", rec.Confidence)
	}
	if rec.Date == nil || rec.Date.String() != "2024-03-05" {
		t.Errorf("date = %v, want 2024-03-05", rec.Date)
	}
}

func TestExtractSMSRecord_SchemaInvalid(t *testing.T) {
	completer := &mockCompleter{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			return "not json", nil
		},
	}

	_, err := newTestExtractor(completer).ExtractSMSRecord(context.Background(), "msg")
	if !errors.Is(err, domain.ErrGenerativeSchema) {
		t.Errorf("err = %v, want ErrGenerativeSchema", err)
	}
}

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare array", `[1,2]`, `[1,2]`},
		{"fenced json", "```json\n[1,2]\n```", "[1,2]"},
		{"fenced plain", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"chatter around array", "Here you go:\n[1,2]\nHope that helps!", "[1,2]"},
		{"chatter around object", "Sure: {\"a\":1} done", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanModelJSON(tt.in); got != tt.want {
				t.Errorf("cleanModelJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
