package repository

import (
	"fmt"

	"rminsights/internal/domain"

	"github.com/piquette/finance-go/quote"
)

type MarketDataRepository interface {
	// GetBenchmarks quotes the given benchmark symbols. Symbols that fail
	// to quote are skipped; an error is returned only when none resolve.
	GetBenchmarks(symbols []string) ([]domain.BenchmarkQuote, error)
}

type marketDataRepositoryHandler struct{}

func NewMarketDataRepository() MarketDataRepository {
	return marketDataRepositoryHandler{}
}

func (h marketDataRepositoryHandler) GetBenchmarks(symbols []string) ([]domain.BenchmarkQuote, error) {
	quotes := []domain.BenchmarkQuote{}
	var lastErr error
	for _, symbol := range symbols {
		q, err := quote.Get(symbol)
		if err != nil || q == nil {
			lastErr = err
			continue
		}
		quotes = append(quotes, domain.BenchmarkQuote{
			Symbol:        symbol,
			Name:          q.ShortName,
			Price:         q.RegularMarketPrice,
			ChangePercent: q.RegularMarketChangePercent,
		})
	}
	if len(quotes) == 0 && lastErr != nil {
		return nil, fmt.Errorf("failed to quote benchmarks: %w", lastErr)
	}
	return quotes, nil
}
