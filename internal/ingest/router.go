// Package ingest routes statement sources to an extraction strategy and
// owns the structural-to-generative fallback cascade.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/finsight/ledgerparse/internal/domain"
	"github.com/finsight/ledgerparse/internal/extract"
	"github.com/finsight/ledgerparse/internal/tabular"
)

// TransactionExtractor is the generative fallback tier. *llm.Extractor
// satisfies it.
type TransactionExtractor interface {
	ExtractTransactions(ctx context.Context, rawText string) domain.ExtractionResult
}

// Router selects one extraction strategy per source and falls back from the
// structural path to the generative one when the structural path comes up
// empty. Every failure below this boundary is absorbed into an
// ExtractionResult with success=false; the router never panics upward.
type Router struct {
	generative TransactionExtractor
	pdf        extract.TextExtractor
	sheets     extract.SheetConverter
	log        zerolog.Logger
}

// NewRouter creates a router. sheets may be nil when no spreadsheet
// converter is available; spreadsheet sources then fail as unreadable.
func NewRouter(generative TransactionExtractor, pdf extract.TextExtractor, sheets extract.SheetConverter, log zerolog.Logger) *Router {
	return &Router{
		generative: generative,
		pdf:        pdf,
		sheets:     sheets,
		log:        log.With().Str("component", "ingest").Logger(),
	}
}

// ExtractFile picks a strategy from the file extension:
//
//	.csv .tsv .txt  delimited text, structural first
//	.xlsx .xls      converted to delimited text, structural first
//	.pdf            extracted text, generative only
//
// Anything else is read as plain text and routed like a .txt file.
func (r *Router) ExtractFile(ctx context.Context, path string) domain.ExtractionResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt", "":
		data, err := os.ReadFile(path)
		if err != nil {
			return unreadable(err)
		}
		return r.ExtractRawText(ctx, string(data))

	case ".xlsx", ".xls":
		if r.sheets == nil {
			return unreadable(errors.New("no spreadsheet converter configured"))
		}
		text, err := r.sheets.ConvertToDelimited(path)
		if err != nil {
			return unreadable(err)
		}
		return r.ExtractRawText(ctx, text)

	case ".pdf":
		text, err := r.pdf.ExtractText(path)
		if err != nil {
			return unreadable(err)
		}
		r.log.Info().Str("path", path).Msg("pdf text extracted, routing to generative extraction")
		return r.generative.ExtractTransactions(ctx, text)

	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return unreadable(err)
		}
		return r.ExtractRawText(ctx, string(data))
	}
}

// ExtractRawText runs the structural parser and falls back to generative
// extraction when the text has no resolvable header or yields zero
// transactions. A partial structural parse is accepted as-is; only an empty
// one triggers the fallback.
func (r *Router) ExtractRawText(ctx context.Context, text string) domain.ExtractionResult {
	txs, err := tabular.ParseStatement(text)
	if err == nil {
		return domain.ExtractionResult{
			Transactions: txs,
			Success:      true,
			TotalCount:   len(txs),
			Method:       domain.MethodStructural,
		}
	}

	switch {
	case errors.Is(err, domain.ErrHeaderUnresolved):
		r.log.Info().Msg("no tabular header resolved, falling back to generative extraction")
	case errors.Is(err, domain.ErrZeroTransactions):
		r.log.Info().Msg("structural parse yielded zero transactions, falling back to generative extraction")
	default:
		return unreadable(err)
	}

	return r.generative.ExtractTransactions(ctx, text)
}

func unreadable(err error) domain.ExtractionResult {
	if !errors.Is(err, domain.ErrUnreadableSource) {
		err = fmt.Errorf("%w: %v", domain.ErrUnreadableSource, err)
	}
	return domain.ExtractionResult{
		Success: false,
		Error:   err.Error(),
		Method:  domain.MethodStructural,
	}
}
