package payroll

import "context"

type StoreAPI interface {
	Config(ctx context.Context, name string) (Config, error)
	SalesRecords(ctx context.Context, window SalesWindow) ([]SalesRecord, error)
	SubordinateSales(ctx context.Context, window SalesWindow) ([][]SalesRecord, error)
}

var _ StoreAPI = (*Store)(nil)
