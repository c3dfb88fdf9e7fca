// Package recommendations matches users to investment and insurance
// products: catalog scoring and ranking, goal overlays, portfolio
// suggestions, priority planning, and population-level user segmentation.
package recommendations

import (
	"database/sql"
	"fmt"

	"github.com/aristath/advisor/internal/domain"
)

// CatalogRepository stores the investment product catalog. Products are
// reference data seeded at startup and grouped into risk tolerance buckets;
// the position column preserves presentation order within each bucket.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// InitSchema creates the products table if it does not exist.
func (r *CatalogRepository) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		bucket          TEXT NOT NULL,
		position        INTEGER NOT NULL,
		name            TEXT NOT NULL,
		type            TEXT NOT NULL,
		risk_level      TEXT NOT NULL,
		expense_ratio   REAL NOT NULL,
		description     TEXT NOT NULL,
		min_investment  REAL NOT NULL,
		liquidity       TEXT NOT NULL,
		PRIMARY KEY (bucket, position)
	);
	`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create products schema: %w", err)
	}
	return nil
}

// seedProduct pairs a product with its risk tolerance bucket.
type seedProduct struct {
	bucket  domain.RiskTolerance
	product domain.Product
}

// defaultCatalog is the built-in product universe, three products per risk
// tolerance bucket.
var defaultCatalog = []seedProduct{
	{domain.RiskConservative, domain.Product{
		Name:          "Vanguard Total Bond Market ETF (BND)",
		Type:          "Bond ETF",
		RiskLevel:     domain.ProductRiskLow,
		ExpenseRatio:  0.03,
		Description:   "Broad exposure to U.S. investment-grade bonds",
		MinInvestment: 1,
		Liquidity:     "High",
	}},
	{domain.RiskConservative, domain.Product{
		Name:          "High-Yield Savings Account",
		Type:          "Cash Equivalent",
		RiskLevel:     domain.ProductRiskVeryLow,
		ExpenseRatio:  0.0,
		Description:   "FDIC insured savings with competitive interest rates",
		MinInvestment: 1,
		Liquidity:     "Very High",
	}},
	{domain.RiskConservative, domain.Product{
		Name:          "Treasury Inflation-Protected Securities (TIPS)",
		Type:          "Government Bond",
		RiskLevel:     domain.ProductRiskLow,
		ExpenseRatio:  0.0,
		Description:   "Government bonds that adjust for inflation",
		MinInvestment: 100,
		Liquidity:     "High",
	}},
	{domain.RiskModerate, domain.Product{
		Name:          "Vanguard Target Retirement Fund",
		Type:          "Target Date Fund",
		RiskLevel:     domain.ProductRiskModerate,
		ExpenseRatio:  0.15,
		Description:   "Age-appropriate asset allocation that adjusts over time",
		MinInvestment: 1000,
		Liquidity:     "High",
	}},
	{domain.RiskModerate, domain.Product{
		Name:          "Vanguard Total Stock Market ETF (VTI)",
		Type:          "Stock ETF",
		RiskLevel:     domain.ProductRiskModerateHigh,
		ExpenseRatio:  0.03,
		Description:   "Complete exposure to U.S. stock market",
		MinInvestment: 1,
		Liquidity:     "High",
	}},
	{domain.RiskModerate, domain.Product{
		Name:          "iShares Core S&P 500 ETF (IVV)",
		Type:          "Stock ETF",
		RiskLevel:     domain.ProductRiskModerateHigh,
		ExpenseRatio:  0.03,
		Description:   "Tracks the S&P 500 index",
		MinInvestment: 1,
		Liquidity:     "High",
	}},
	{domain.RiskAggressive, domain.Product{
		Name:          "Vanguard Growth ETF (VUG)",
		Type:          "Growth Stock ETF",
		RiskLevel:     domain.ProductRiskHigh,
		ExpenseRatio:  0.04,
		Description:   "Large-cap growth stocks with high growth potential",
		MinInvestment: 1,
		Liquidity:     "High",
	}},
	{domain.RiskAggressive, domain.Product{
		Name:          "Vanguard Small-Cap ETF (VB)",
		Type:          "Small-Cap ETF",
		RiskLevel:     domain.ProductRiskHigh,
		ExpenseRatio:  0.05,
		Description:   "Small-capitalization U.S. stocks",
		MinInvestment: 1,
		Liquidity:     "High",
	}},
	{domain.RiskAggressive, domain.Product{
		Name:          "Vanguard Emerging Markets ETF (VWO)",
		Type:          "International ETF",
		RiskLevel:     domain.ProductRiskHigh,
		ExpenseRatio:  0.10,
		Description:   "Exposure to emerging market economies",
		MinInvestment: 1,
		Liquidity:     "High",
	}},
}

// Seed loads the default catalog. Existing rows are replaced so schema or
// catalog updates take effect on restart.
func (r *CatalogRepository) Seed() error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin catalog seed transaction: %w", err)
	}
	defer tx.Rollback()

	positions := make(map[domain.RiskTolerance]int)
	for _, entry := range defaultCatalog {
		position := positions[entry.bucket]
		positions[entry.bucket]++

		_, err := tx.Exec(
			`INSERT OR REPLACE INTO products
			 (bucket, position, name, type, risk_level, expense_ratio, description, min_investment, liquidity)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(entry.bucket), position,
			entry.product.Name, entry.product.Type, string(entry.product.RiskLevel),
			entry.product.ExpenseRatio, entry.product.Description,
			entry.product.MinInvestment, entry.product.Liquidity,
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", entry.product.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog seed: %w", err)
	}
	return nil
}

// ProductsForTolerance returns the bucket for the given risk tolerance in
// catalog order. Unknown tolerances fall back to the Moderate bucket.
func (r *CatalogRepository) ProductsForTolerance(tolerance domain.RiskTolerance) ([]domain.Product, error) {
	if !tolerance.Valid() {
		tolerance = domain.RiskModerate
	}

	rows, err := r.db.Query(
		`SELECT name, type, risk_level, expense_ratio, description, min_investment, liquidity
		 FROM products WHERE bucket = ? ORDER BY position`,
		string(tolerance),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query products for %s: %w", tolerance, err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var riskLevel string
		if err := rows.Scan(&p.Name, &p.Type, &riskLevel, &p.ExpenseRatio, &p.Description, &p.MinInvestment, &p.Liquidity); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		p.RiskLevel = domain.ProductRiskLevel(riskLevel)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}

	return products, nil
}
