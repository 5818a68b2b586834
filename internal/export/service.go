package export

import (
	"context"
	"fmt"
	"time"

	"github.com/Gokul-1737/mk-glass-dashboard/internal/analytics"
	"github.com/Gokul-1737/mk-glass-dashboard/internal/sales"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/enums"
	pkgerrors "github.com/Gokul-1737/mk-glass-dashboard/pkg/errors"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/logger"
)

// Service produces downloadable CSV exports of the dashboard datasets.
type Service interface {
	Export(ctx context.Context, dataset enums.ExportDataset) (*Result, error)
}

type analyticsReader interface {
	GetRows(ctx context.Context) (*analytics.RowListResult, error)
}

type salesExporter interface {
	ExportSalesOn(ctx context.Context, day time.Time) ([]sales.SaleDTO, error)
	ExportSalesSince(ctx context.Context, start time.Time) ([]sales.SaleDTO, error)
}

type exportCounter interface {
	IncExport(dataset string)
}

type service struct {
	analytics analyticsReader
	sales     salesExporter
	counter   exportCounter
	logg      *logger.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewService constructs the export service. counter and logg are optional.
func NewService(analyticsSvc analyticsReader, salesRepo salesExporter, counter exportCounter, logg *logger.Logger, loc *time.Location) (Service, error) {
	if analyticsSvc == nil {
		return nil, fmt.Errorf("analytics service required")
	}
	if salesRepo == nil {
		return nil, fmt.Errorf("sale repository required")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		analytics: analyticsSvc,
		sales:     salesRepo,
		counter:   counter,
		logg:      logg,
		loc:       loc,
		now:       time.Now,
	}, nil
}

// Export builds and formats the requested dataset. An empty dataset still
// yields a header-only file, flagged via Result.Empty.
func (s *service) Export(ctx context.Context, dataset enums.ExportDataset) (*Result, error) {
	if !dataset.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown export dataset")
	}

	local := s.now().In(s.loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	var (
		doc Document
		err error
	)
	switch dataset {
	case enums.ExportDatasetProductsAnalytics:
		var rows *analytics.RowListResult
		rows, err = s.analytics.GetRows(ctx)
		if err == nil {
			doc = buildAnalyticsDocument(rows.Rows)
		}
	case enums.ExportDatasetTodaySales:
		var records []sales.SaleDTO
		records, err = s.sales.ExportSalesOn(ctx, today)
		if err == nil {
			doc = buildSalesDocument(dataset, records)
		}
	case enums.ExportDatasetMonthlySales:
		var records []sales.SaleDTO
		records, err = s.sales.ExportSalesSince(ctx, time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.UTC))
		if err == nil {
			doc = buildSalesDocument(dataset, records)
		}
	case enums.ExportDatasetYearlySales:
		var records []sales.SaleDTO
		records, err = s.sales.ExportSalesSince(ctx, time.Date(local.Year(), time.January, 1, 0, 0, 0, 0, time.UTC))
		if err == nil {
			doc = buildSalesDocument(dataset, records)
		}
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("load dataset %s", dataset))
	}

	result, err := FormatCSV(doc, today)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "format csv")
	}
	if result.Empty && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("export %s has no records", dataset))
	}
	if s.counter != nil {
		s.counter.IncExport(string(dataset))
	}
	return result, nil
}
