package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Gokul-1737/mk-glass-dashboard/api/responses"
	exportsvc "github.com/Gokul-1737/mk-glass-dashboard/internal/export"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/enums"
	pkgerrors "github.com/Gokul-1737/mk-glass-dashboard/pkg/errors"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/logger"
)

// ExportDataset streams the requested dataset as a CSV download. An empty
// dataset still downloads, carrying only the header row.
func ExportDataset(svc exportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "export service unavailable"))
			return
		}

		dataset, err := enums.ParseExportDataset(chi.URLParam(r, "dataset"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid dataset"))
			return
		}

		result, err := svc.Export(r.Context(), dataset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if result.Empty {
			w.Header().Set("X-Export-Empty", "true")
		}
		responses.WriteCSV(w, result.Filename, result.ContentType, result.Payload)
	}
}
