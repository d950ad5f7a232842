package controllers

import (
	"net/http"

	"github.com/kartiksheoranexe/InventoryManagement/api/responses"
	"github.com/kartiksheoranexe/InventoryManagement/api/validators"
	"github.com/kartiksheoranexe/InventoryManagement/internal/importer"
	pkgerrors "github.com/kartiksheoranexe/InventoryManagement/pkg/errors"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/logger"
)

// ImportItems ingests a batch of catalog rows. The batch lands
// atomically; one bad row rejects the lot.
func ImportItems(svc importer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "import service unavailable"))
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

		var body importer.ImportRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Import(r.Context(), userID, bizID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
