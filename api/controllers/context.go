package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kartiksheoranexe/InventoryManagement/api/middleware"
	"github.com/kartiksheoranexe/InventoryManagement/api/validators"
	pkgerrors "github.com/kartiksheoranexe/InventoryManagement/pkg/errors"
)

// actorID extracts the authenticated user's id seeded by the auth
// middleware.
func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

// pathUUID reads a uuid path parameter from the chi route context.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return validators.ParseURLUUID(chi.URLParam(r, name), name)
}

// businessID reads the business scope every scoped route carries.
func businessID(r *http.Request) (uuid.UUID, error) {
	return pathUUID(r, "businessId")
}
