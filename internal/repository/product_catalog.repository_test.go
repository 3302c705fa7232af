package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const catalogCsv = `product_id,product_name,category,target_segment,min_amount,max_amount,interest_rate,risk_level,collateral_required,is_active
PL-01,Personal Loan,lending,affluent,50000,300000,5.5,3,false,true
ML-01,Mortgage,lending,high_net_worth,500000,5000000,3.9,2,true,true
XX-01,Retired Product,lending,mass_market,1000,10000,9.9,4,false,false
`

func Test_CsvCatalog_Load(t *testing.T) {
	log := zap.NewNop().Sugar()

	t.Run("parses catalog rows", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.csv")
		require.NoError(t, os.WriteFile(path, []byte(catalogCsv), 0o644))

		products := NewProductCatalogRepository(path, log).Load()

		require.Len(t, products, 3)
		require.Equal(t, "PL-01", products[0].ProductID)
		require.Equal(t, "affluent", products[0].TargetSegment)
		require.True(t, products[0].MinAmount.Equal(products[0].MinAmount.Round(0)))
		require.Equal(t, "50000", products[0].MinAmount.String())
		require.True(t, products[1].CollateralRequired)
		require.False(t, products[2].IsActive)
	})

	t.Run("missing file yields empty catalog", func(t *testing.T) {
		products := NewProductCatalogRepository("/nonexistent/products.csv", log).Load()
		require.Empty(t, products)
	})

	t.Run("malformed file yields empty catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.csv")
		require.NoError(t, os.WriteFile(path, []byte("not,a\ncatalog"), 0o644))

		products := NewProductCatalogRepository(path, log).Load()
		require.Empty(t, products)
	})
}
