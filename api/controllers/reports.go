package controllers

import (
	"net/http"
	"strings"

	"github.com/kartiksheoranexe/InventoryManagement/api/responses"
	"github.com/kartiksheoranexe/InventoryManagement/api/validators"
	"github.com/kartiksheoranexe/InventoryManagement/internal/reports"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/enums"
	pkgerrors "github.com/kartiksheoranexe/InventoryManagement/pkg/errors"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/logger"
)

// ReportSalesPerformance aggregates settled sales over a named window.
// The window defaults to today.
func ReportSalesPerformance(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bizID, err := businessID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		window := enums.TimeWindowToday
		if raw := strings.TrimSpace(r.URL.Query().Get("window")); raw != "" {
			window = enums.TimeWindow(raw)
		}

		report, err := svc.SalesPerformance(r.Context(), userID, bizID, window)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}

// ReportTopItems ranks items by units sold in a calendar year. Year 0
// (absent) means the current year.
func ReportTopItems(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bizID, err := businessID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		year, err := validators.ParseQueryInt(r, "year", 0, 0, 9999)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.TopItems(r.Context(), userID, bizID, year)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}
