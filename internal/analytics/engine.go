package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gokul-1737/mk-glass-dashboard/pkg/db/models"
)

// Report is the full derived dataset computed from a product/sale snapshot.
type Report struct {
	Rows        []Row             `json:"rows"`
	Rollups     []CategoryRollup  `json:"rollups"`
	Summary     *DashboardSummary `json:"summary"`
	OrphanSales int               `json:"-"`
}

// PeriodTotals accumulates units and revenue for one reporting window.
type PeriodTotals struct {
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SeriesPoint is one bucket of a time series, labelled by its start date.
type SeriesPoint struct {
	Label   string          `json:"label"`
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardSummary feeds the dashboard, monthly and yearly overview pages.
type DashboardSummary struct {
	TotalProducts int              `json:"total_products"`
	Today         PeriodTotals     `json:"today"`
	Month         PeriodTotals     `json:"month"`
	Year          PeriodTotals     `json:"year"`
	Last7Days     []SeriesPoint    `json:"last_7_days"`
	MonthByWeek   []SeriesPoint    `json:"month_by_week"`
	YearByMonth   []SeriesPoint    `json:"year_by_month"`
	Categories    []CategoryRollup `json:"categories"`
}

// CategoryRollup aggregates the current month's sales for one category.
type CategoryRollup struct {
	Category       string          `json:"category"`
	MonthlyUnits   int             `json:"monthly_units"`
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"`
}

// Compute derives the full report from a snapshot. Pure: no I/O, no clock
// reads. Period windows follow the calendar day of now in loc; sale dates
// carry no time component, so only their Y/M/D is compared.
//
// Sales whose product_id is missing from the product snapshot are excluded
// from per-product rows and rollups but still counted in the raw period
// totals and series; their count is reported for the caller to log.
func Compute(products []models.Product, sales []models.Sale, now time.Time, loc *time.Location) *Report {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(local.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	byProduct := make(map[string]*Row, len(products))
	rows := make([]Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, newRow(p))
	}
	for i := range rows {
		byProduct[rows[i].ID.String()] = &rows[i]
	}

	summary := &DashboardSummary{
		TotalProducts: len(products),
		Today:         zeroTotals(),
		Month:         zeroTotals(),
		Year:          zeroTotals(),
	}
	last7 := newDailySeries(today, 7)
	weeks := newWeekSeries(monthStart, today)
	months := newMonthSeries(yearStart)

	orphans := 0
	for _, sale := range sales {
		day := truncateDate(sale.SaleDate)
		row, known := byProduct[sale.ProductID.String()]
		if !known {
			orphans++
		}

		inToday := day.Equal(today)
		inMonth := !day.Before(monthStart) && !day.After(today)
		inYear := !day.Before(yearStart) && !day.After(today)

		if inToday {
			summary.Today.add(sale)
			if known {
				row.TodaySales += sale.Quantity
				row.TodayRevenue = row.TodayRevenue.Add(sale.SalePrice)
			}
		}
		if inMonth {
			summary.Month.add(sale)
			weeks.add(weekIndex(day), sale)
			if known {
				row.MonthlySales += sale.Quantity
				row.MonthlyRevenue = row.MonthlyRevenue.Add(sale.SalePrice)
			}
		}
		if inYear {
			summary.Year.add(sale)
			months.add(int(day.Month())-1, sale)
			if known {
				row.YearlySales += sale.Quantity
				row.YearlyRevenue = row.YearlyRevenue.Add(sale.SalePrice)
			}
		}
		if offset := int(today.Sub(day).Hours() / 24); offset >= 0 && offset < 7 {
			last7.add(6-offset, sale)
		}
	}

	for i := range rows {
		rows[i].RemainingStock = rows[i].TotalStock - rows[i].MonthlySales
	}
	// bytewise ascending, matching the products listing order
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].ID.String() < rows[j].ID.String()
	})

	rollups := rollupCategories(rows)
	summary.Last7Days = last7.points
	summary.MonthByWeek = weeks.points
	summary.YearByMonth = months.points
	summary.Categories = rollups

	return &Report{
		Rows:        rows,
		Rollups:     rollups,
		Summary:     summary,
		OrphanSales: orphans,
	}
}

// rollupCategories sums monthly units and revenue per category, dropping
// categories with zero monthly units. The retained buckets conserve the
// grand total of the rows' monthly sales.
func rollupCategories(rows []Row) []CategoryRollup {
	buckets := make(map[string]*CategoryRollup)
	order := make([]string, 0, 8)
	for _, row := range rows {
		bucket, ok := buckets[row.Category]
		if !ok {
			bucket = &CategoryRollup{Category: row.Category, MonthlyRevenue: decimal.Zero}
			buckets[row.Category] = bucket
			order = append(order, row.Category)
		}
		bucket.MonthlyUnits += row.MonthlySales
		bucket.MonthlyRevenue = bucket.MonthlyRevenue.Add(row.MonthlyRevenue)
	}
	sort.Strings(order)
	out := make([]CategoryRollup, 0, len(order))
	for _, category := range order {
		if buckets[category].MonthlyUnits == 0 {
			continue
		}
		out = append(out, *buckets[category])
	}
	return out
}

func zeroTotals() PeriodTotals {
	return PeriodTotals{Revenue: decimal.Zero}
}

func (p *PeriodTotals) add(sale models.Sale) {
	p.Units += sale.Quantity
	p.Revenue = p.Revenue.Add(sale.SalePrice)
}

type series struct {
	points []SeriesPoint
}

func (s *series) add(index int, sale models.Sale) {
	if index < 0 || index >= len(s.points) {
		return
	}
	s.points[index].Units += sale.Quantity
	s.points[index].Revenue = s.points[index].Revenue.Add(sale.SalePrice)
}

func newDailySeries(today time.Time, days int) *series {
	points := make([]SeriesPoint, days)
	for i := range points {
		day := today.AddDate(0, 0, i-(days-1))
		points[i] = SeriesPoint{Label: day.Format("2006-01-02"), Revenue: decimal.Zero}
	}
	return &series{points: points}
}

// weekIndex buckets a day of month into fixed 7-day weeks (1-7, 8-14, ...).
func weekIndex(day time.Time) int {
	return (day.Day() - 1) / 7
}

func newWeekSeries(monthStart, today time.Time) *series {
	count := weekIndex(today) + 1
	points := make([]SeriesPoint, count)
	for i := range points {
		start := monthStart.AddDate(0, 0, i*7)
		points[i] = SeriesPoint{Label: start.Format("2006-01-02"), Revenue: decimal.Zero}
	}
	return &series{points: points}
}

func newMonthSeries(yearStart time.Time) *series {
	points := make([]SeriesPoint, 12)
	for i := range points {
		points[i] = SeriesPoint{Label: yearStart.AddDate(0, i, 0).Format("2006-01"), Revenue: decimal.Zero}
	}
	return &series{points: points}
}

func truncateDate(value time.Time) time.Time {
	v := value.UTC()
	return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
}
