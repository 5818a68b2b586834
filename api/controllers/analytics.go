package controllers

import (
	"net/http"

	"github.com/Gokul-1737/mk-glass-dashboard/api/responses"
	analyticsvc "github.com/Gokul-1737/mk-glass-dashboard/internal/analytics"
	pkgerrors "github.com/Gokul-1737/mk-glass-dashboard/pkg/errors"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/logger"
)

// Analytics serves the per-product analytics rows.
func Analytics(svc analyticsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		result, err := svc.GetRows(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AnalyticsCategories serves the monthly category rollup.
func AnalyticsCategories(svc analyticsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		result, err := svc.GetCategoryRollup(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AnalyticsSummary serves the dashboard summary.
func AnalyticsSummary(svc analyticsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		result, err := svc.GetSummary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
