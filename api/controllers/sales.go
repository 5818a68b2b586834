package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gokul-1737/mk-glass-dashboard/api/responses"
	"github.com/Gokul-1737/mk-glass-dashboard/api/validators"
	salesvc "github.com/Gokul-1737/mk-glass-dashboard/internal/sales"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/enums"
	pkgerrors "github.com/Gokul-1737/mk-glass-dashboard/pkg/errors"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/logger"
)

type recordSaleRequest struct {
	ProductID string  `json:"product_id" validate:"required,uuid"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	SaleDate  string  `json:"sale_date" validate:"required"`
	SalePrice *string `json:"sale_price,omitempty"`
}

type updateSaleRequest struct {
	Quantity *int    `json:"quantity,omitempty" validate:"omitempty,min=1"`
	SaleDate *string `json:"sale_date,omitempty"`
}

// ListSales serves the period listings. Either period=today|month|year or an
// explicit date=YYYY-MM-DD selects the window; period defaults to today.
func ListSales(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		day, err := validators.ParseQueryDate(r, "date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !day.IsZero() {
			result, err := svc.ListSalesForDate(r.Context(), day, params)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, result)
			return
		}

		rawPeriod := strings.TrimSpace(r.URL.Query().Get("period"))
		period := enums.SalesPeriodToday
		if rawPeriod != "" {
			period, err = enums.ParseSalesPeriod(rawPeriod)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid period"))
				return
			}
		}

		result, err := svc.ListSales(r.Context(), period, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// RecordSale records a sale against a product.
func RecordSale(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		var payload recordSaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sale, err := svc.RecordSale(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}

// UpdateSale adjusts a recorded sale.
func UpdateSale(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		saleID, err := pathUUID(r, "saleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateSaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := salesvc.UpdateSaleInput{Quantity: payload.Quantity}
		if payload.SaleDate != nil {
			day, err := parseSaleDate(*payload.SaleDate)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.SaleDate = &day
		}

		sale, err := svc.UpdateSale(r.Context(), saleID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sale)
	}
}

// DeleteSale removes a recorded sale.
func DeleteSale(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		saleID, err := pathUUID(r, "saleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteSale(r.Context(), saleID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func (r recordSaleRequest) toInput() (salesvc.RecordSaleInput, error) {
	productID, err := uuid.Parse(r.ProductID)
	if err != nil {
		return salesvc.RecordSaleInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product_id")
	}
	day, err := parseSaleDate(r.SaleDate)
	if err != nil {
		return salesvc.RecordSaleInput{}, err
	}
	input := salesvc.RecordSaleInput{
		ProductID: productID,
		Quantity:  r.Quantity,
		SaleDate:  day,
	}
	if r.SalePrice != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*r.SalePrice))
		if err != nil {
			return salesvc.RecordSaleInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "sale_price must be a decimal number")
		}
		input.SalePrice = &price
	}
	return input, nil
}

func parseSaleDate(raw string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "sale_date must be a YYYY-MM-DD date")
	}
	return day, nil
}
