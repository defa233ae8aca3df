package ingest

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight/ledgerparse/internal/domain"
	"github.com/finsight/ledgerparse/internal/logger"
)

type mockGenerative struct {
	result domain.ExtractionResult
	gotRaw string
	calls  int
}

func (m *mockGenerative) ExtractTransactions(ctx context.Context, rawText string) domain.ExtractionResult {
	m.calls++
	m.gotRaw = rawText
	return m.result
}

type mockPDF struct {
	text string
	err  error
}

func (m *mockPDF) ExtractText(path string) (string, error) { return m.text, m.err }

type mockSheets struct {
	text string
	err  error
}

func (m *mockSheets) ConvertToDelimited(path string) (string, error) { return m.text, m.err }

func newTestRouter(gen *mockGenerative, pdf *mockPDF, sheets *mockSheets) *Router {
	if sheets == nil {
		return NewRouter(gen, pdf, nil, logger.NewWithWriter(io.Discard))
	}
	return NewRouter(gen, pdf, sheets, logger.NewWithWriter(io.Discard))
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const csvStatement = `Date,Description,Debit,Credit
01/02/2024,Grocery Store,1240.50,
02/02/2024,Salary Credit ACME,,85000.00
`

func TestExtractFile_CSVStructural(t *testing.T) {
	gen := &mockGenerative{}
	path := writeTemp(t, "statement.csv", csvStatement)

	res := newTestRouter(gen, &mockPDF{}, nil).ExtractFile(context.Background(), path)

	require.True(t, res.Success)
	assert.Equal(t, domain.MethodStructural, res.Method)
	require.Equal(t, 2, res.TotalCount)
	assert.Equal(t, domain.TypeExpense, res.Transactions[0].Type)
	assert.True(t, res.Transactions[0].Amount.Equal(decimal.NewFromFloat(1240.50)))
	assert.Equal(t, domain.TypeIncome, res.Transactions[1].Type)
	assert.Equal(t, 0, gen.calls, "generative tier must not run on a structural success")
}

func TestExtractFile_PDFGoesGenerative(t *testing.T) {
	gen := &mockGenerative{result: domain.ExtractionResult{
		Success: true,
		Method:  domain.MethodGenerative,
	}}
	path := writeTemp(t, "statement.pdf", "%PDF-1.4 fake")

	res := newTestRouter(gen, &mockPDF{text: "01/02/2024 Grocery 1240.50"}, nil).
		ExtractFile(context.Background(), path)

	assert.True(t, res.Success)
	assert.Equal(t, domain.MethodGenerative, res.Method)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "01/02/2024 Grocery 1240.50", gen.gotRaw)
}

func TestExtractFile_UnreadablePDF(t *testing.T) {
	gen := &mockGenerative{}
	path := writeTemp(t, "scan.pdf", "binary")

	res := newTestRouter(gen, &mockPDF{err: domain.ErrUnreadableSource}, nil).
		ExtractFile(context.Background(), path)

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "cannot be read")
	assert.Equal(t, 0, gen.calls)
}

func TestExtractFile_SpreadsheetConverted(t *testing.T) {
	gen := &mockGenerative{}
	path := writeTemp(t, "statement.xlsx", "not really a workbook")

	res := newTestRouter(gen, &mockPDF{}, &mockSheets{text: csvStatement}).
		ExtractFile(context.Background(), path)

	require.True(t, res.Success)
	assert.Equal(t, domain.MethodStructural, res.Method)
	assert.Equal(t, 2, res.TotalCount)
}

func TestExtractFile_SpreadsheetWithoutConverter(t *testing.T) {
	path := writeTemp(t, "statement.xlsx", "workbook")

	res := newTestRouter(&mockGenerative{}, &mockPDF{}, nil).
		ExtractFile(context.Background(), path)

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestExtractFile_MissingFile(t *testing.T) {
	res := newTestRouter(&mockGenerative{}, &mockPDF{}, nil).
		ExtractFile(context.Background(), "/no/such/file.csv")

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "cannot be read")
}

func TestExtractRawText_HeaderUnresolvedFallsBack(t *testing.T) {
	gen := &mockGenerative{result: domain.ExtractionResult{
		Success:    true,
		TotalCount: 1,
		Method:     domain.MethodGenerative,
	}}

	res := newTestRouter(gen, &mockPDF{}, nil).
		ExtractRawText(context.Background(), "Your statement for January\nsome prose, no table here")

	assert.True(t, res.Success)
	assert.Equal(t, domain.MethodGenerative, res.Method)
	assert.Equal(t, 1, gen.calls)
}

func TestExtractRawText_ZeroTransactionsFallsBack(t *testing.T) {
	gen := &mockGenerative{result: domain.ExtractionResult{Method: domain.MethodGenerative}}

	// header resolves but every row is malformed
	res := newTestRouter(gen, &mockPDF{}, nil).
		ExtractRawText(context.Background(), "Date,Description,Amount\nnot-a-date,junk,xyz\n")

	assert.Equal(t, domain.MethodGenerative, res.Method)
	assert.Equal(t, 1, gen.calls)
}

func TestExtractRawText_PartialSuccessAcceptedAsIs(t *testing.T) {
	gen := &mockGenerative{}

	res := newTestRouter(gen, &mockPDF{}, nil).ExtractRawText(context.Background(),
		"Date,Description,Amount\n2024-01-08,Rent,-30917\nnot-a-date,junk,xyz\n")

	require.True(t, res.Success)
	assert.Equal(t, 1, res.TotalCount)
	assert.Equal(t, domain.CategoryRent, res.Transactions[0].Category)
	assert.Equal(t, 0, gen.calls, "partial structural success must not fall back")
}
