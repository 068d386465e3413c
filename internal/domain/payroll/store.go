package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Config(ctx context.Context, name string) (Config, error) {
	var id string
	var basePay, gstRate, bonus string
	err := s.DB.QueryRow(ctx, `
    SELECT id, base_pay::text, gst_rate_percent::text, bonus::text
    FROM payroll_configs
    WHERE name = $1
  `, name).Scan(&id, &basePay, &gstRate, &bonus)
	if errors.Is(err, pgx.ErrNoRows) {
		return Config{}, ErrConfigNotFound
	}
	if err != nil {
		return Config{}, err
	}

	cfg := Config{Formulas: map[string]string{}}
	if cfg.BasePay, err = parseNumeric("base_pay", basePay); err != nil {
		return Config{}, err
	}
	if cfg.GSTRatePercent, err = parseNumeric("gst_rate_percent", gstRate); err != nil {
		return Config{}, err
	}
	if cfg.Bonus, err = parseNumeric("bonus", bonus); err != nil {
		return Config{}, err
	}

	if cfg.Slabs, err = s.slabs(ctx, id); err != nil {
		return Config{}, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT component, expression
    FROM payroll_config_formulas
    WHERE config_id = $1
  `, id)
	if err != nil {
		return Config{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var component, expression string
		if err := rows.Scan(&component, &expression); err != nil {
			return Config{}, err
		}
		cfg.Formulas[component] = expression
	}
	return cfg, rows.Err()
}

// slabs keeps the configured position; the calculator depends on it.
func (s *Store) slabs(ctx context.Context, configID string) ([]IncentiveSlab, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT min_threshold::text, max_threshold::text, rate_percent::text
    FROM incentive_slabs
    WHERE config_id = $1
    ORDER BY position
  `, configID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slabs []IncentiveSlab
	for rows.Next() {
		var minRaw, maxRaw, rateRaw string
		if err := rows.Scan(&minRaw, &maxRaw, &rateRaw); err != nil {
			return nil, err
		}
		var slab IncentiveSlab
		if slab.MinThreshold, err = parseNumeric("min_threshold", minRaw); err != nil {
			return nil, err
		}
		if slab.MaxThreshold, err = parseNumeric("max_threshold", maxRaw); err != nil {
			return nil, err
		}
		if slab.RatePercent, err = parseNumeric("rate_percent", rateRaw); err != nil {
			return nil, err
		}
		slabs = append(slabs, slab)
	}
	return slabs, rows.Err()
}

func (s *Store) SalesRecords(ctx context.Context, window SalesWindow) ([]SalesRecord, error) {
	return s.querySales(ctx, `
    SELECT s.amount::text
    FROM sales s
    JOIN employees e ON s.employee_id = e.id
    WHERE e.code = $1 AND s.sold_on >= $2 AND s.sold_on <= $3
    ORDER BY s.sold_on, s.id
  `, window)
}

// SubordinateSales returns one record list per direct report of the
// employee named in window.
func (s *Store) SubordinateSales(ctx context.Context, window SalesWindow) ([][]SalesRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.code
    FROM employees e
    JOIN employees m ON e.manager_id = m.id
    WHERE m.code = $1
    ORDER BY e.code
  `, window.EmployeeCode)
	if err != nil {
		return nil, err
	}
	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			rows.Close()
			return nil, err
		}
		codes = append(codes, code)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([][]SalesRecord, 0, len(codes))
	for _, code := range codes {
		records, err := s.SalesRecords(ctx, SalesWindow{EmployeeCode: code, From: window.From, To: window.To})
		if err != nil {
			return nil, err
		}
		out = append(out, records)
	}
	return out, nil
}

func (s *Store) querySales(ctx context.Context, query string, window SalesWindow) ([]SalesRecord, error) {
	rows, err := s.DB.Query(ctx, query, window.EmployeeCode, window.From, window.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []SalesRecord
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		amount, err := parseNumeric("amount", raw)
		if err != nil {
			return nil, err
		}
		records = append(records, SalesRecord{Amount: amount})
	}
	return records, rows.Err()
}

func parseNumeric(column, raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %s: %w", column, err)
	}
	return value, nil
}
