package sales

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Gokul-1737/mk-glass-dashboard/pkg/db/models"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/pagination"
)

// SaleRepository defines persistence operations for sale records.
type SaleRepository interface {
	CreateSale(context.Context, *models.Sale) (*models.Sale, error)
	FindByID(context.Context, uuid.UUID) (*models.Sale, error)
	UpdateSale(context.Context, *models.Sale) (*models.Sale, error)
	DeleteSale(context.Context, uuid.UUID) error
}

// Repository wires together sale persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateSale inserts a new sale row.
func (r *Repository) CreateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

// FindByID loads a sale without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// UpdateSale persists the full sale row.
func (r *Repository) UpdateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	if err := r.db.WithContext(ctx).Save(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

// DeleteSale removes a sale row by ID.
func (r *Repository) DeleteSale(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Sale{}).Error
}

// saleRecord joins a sale with its product for listings and exports.
type saleRecord struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Category    string
	Quantity    int
	SaleDate    time.Time
	SalePrice   decimal.Decimal
	CreatedAt   time.Time
}

func saleSelectColumns() string {
	return strings.Join([]string{
		"s.id",
		"s.product_id",
		"p.name AS product_name",
		"p.category",
		"s.quantity",
		"s.sale_date",
		"s.sale_price",
		"s.created_at",
	}, ", ")
}

// ListSalesOn returns the sales recorded for exactly the provided calendar day,
// newest first.
func (r *Repository) ListSalesOn(ctx context.Context, day time.Time, params pagination.Params) (*SaleListResult, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Table("sales s").
		Select(saleSelectColumns()).
		Joins("JOIN products p ON p.id = s.product_id").
		Where("s.sale_date = ?", day)

	if cursor != nil {
		qb = qb.Where("(s.created_at < ?) OR (s.created_at = ? AND s.id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	qb = qb.Order("s.created_at DESC").Order("s.id DESC").Limit(limitWithBuffer)

	var records []saleRecord
	if err := qb.Scan(&records).Error; err != nil {
		return nil, err
	}

	return buildListResult(records, pageSize, false), nil
}

// ListSalesSince returns the sales whose sale_date falls on or after start,
// ordered by sale date descending.
func (r *Repository) ListSalesSince(ctx context.Context, start time.Time, params pagination.Params) (*SaleListResult, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Table("sales s").
		Select(saleSelectColumns()).
		Joins("JOIN products p ON p.id = s.product_id").
		Where("s.sale_date >= ?", start)

	if cursor != nil {
		cursorDate, err := time.Parse(time.RFC3339, cursor.Key)
		if err != nil {
			return nil, err
		}
		qb = qb.Where(
			"(s.sale_date < ?) OR (s.sale_date = ? AND (s.created_at < ? OR (s.created_at = ? AND s.id < ?)))",
			cursorDate, cursorDate, cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	qb = qb.Order("s.sale_date DESC").Order("s.created_at DESC").Order("s.id DESC").Limit(limitWithBuffer)

	var records []saleRecord
	if err := qb.Scan(&records).Error; err != nil {
		return nil, err
	}

	return buildListResult(records, pageSize, true), nil
}

// ExportSalesOn returns every joined sale for the day, unpaginated, for CSV
// export.
func (r *Repository) ExportSalesOn(ctx context.Context, day time.Time) ([]SaleDTO, error) {
	var records []saleRecord
	err := r.db.WithContext(ctx).
		Table("sales s").
		Select(saleSelectColumns()).
		Joins("JOIN products p ON p.id = s.product_id").
		Where("s.sale_date = ?", day).
		Order("s.created_at DESC").Order("s.id DESC").
		Scan(&records).
		Error
	if err != nil {
		return nil, err
	}
	return toDTOs(records), nil
}

// ExportSalesSince returns every joined sale on or after start, unpaginated.
func (r *Repository) ExportSalesSince(ctx context.Context, start time.Time) ([]SaleDTO, error) {
	var records []saleRecord
	err := r.db.WithContext(ctx).
		Table("sales s").
		Select(saleSelectColumns()).
		Joins("JOIN products p ON p.id = s.product_id").
		Where("s.sale_date >= ?", start).
		Order("s.sale_date DESC").Order("s.created_at DESC").Order("s.id DESC").
		Scan(&records).
		Error
	if err != nil {
		return nil, err
	}
	return toDTOs(records), nil
}

func toDTOs(records []saleRecord) []SaleDTO {
	out := make([]SaleDTO, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDTO())
	}
	return out
}

// LoadSalesSince returns the raw sale rows on or after start, for analytics.
func (r *Repository) LoadSalesSince(ctx context.Context, start time.Time) ([]models.Sale, error) {
	var rows []models.Sale
	err := r.db.WithContext(ctx).
		Where("sale_date >= ?", start).
		Order("sale_date ASC").
		Find(&rows).
		Error
	return rows, err
}

func buildListResult(records []saleRecord, pageSize int, keyed bool) *SaleListResult {
	resultRows := records
	nextCursor := ""
	if len(records) > pageSize {
		resultRows = records[:pageSize]
		last := resultRows[len(resultRows)-1]
		cur := pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
		if keyed {
			cur.Key = last.SaleDate.UTC().Format(time.RFC3339)
		}
		nextCursor = pagination.EncodeCursor(cur)
	}

	return &SaleListResult{
		Sales:      toDTOs(resultRows),
		NextCursor: nextCursor,
	}
}
