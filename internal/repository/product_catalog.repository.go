package repository

import (
	"os"

	"rminsights/internal/domain"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

type ProductCatalogRepository interface {
	// Load returns the loan product catalog. Catalog loading is fallible
	// I/O: any failure is logged and yields an empty catalog, never an
	// error to scoring callers.
	Load() []domain.LoanProduct
}

type csvCatalogHandler struct {
	Path string
	Log  *zap.SugaredLogger
}

func NewProductCatalogRepository(path string, log *zap.SugaredLogger) ProductCatalogRepository {
	return csvCatalogHandler{Path: path, Log: log}
}

func (h csvCatalogHandler) Load() []domain.LoanProduct {
	f, err := os.Open(h.Path)
	if err != nil {
		h.Log.Warnw("could not load credit products", "path", h.Path, "error", err)
		return []domain.LoanProduct{}
	}
	defer f.Close()

	products := []domain.LoanProduct{}
	if err := gocsv.UnmarshalFile(f, &products); err != nil {
		h.Log.Warnw("could not parse credit products", "path", h.Path, "error", err)
		return []domain.LoanProduct{}
	}
	return products
}
