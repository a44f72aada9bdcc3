package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/adpulse/opensea-api/internal/dto"
	"github.com/adpulse/opensea-api/internal/entity"
	"github.com/adpulse/opensea-api/internal/repository"
	"github.com/adpulse/opensea-api/internal/service"
	"github.com/adpulse/opensea-api/internal/service/scoring"
)

// ServicesHandler exposes the listings catalogue endpoints.
type ServicesHandler struct {
	catalog      *service.CatalogService
	entitlements *service.EntitlementService
}

// NewServicesHandler constructs a ServicesHandler.
func NewServicesHandler(catalog *service.CatalogService, entitlements *service.EntitlementService) *ServicesHandler {
	return &ServicesHandler{catalog: catalog, entitlements: entitlements}
}

// List handles GET /services requests.
func (h *ServicesHandler) List(c echo.Context) error {
	filter := dto.ServiceFilter{
		Q: strings.TrimSpace(c.QueryParam("q")),
	}

	if raw := strings.TrimSpace(c.QueryParam("category")); raw != "" {
		category := entity.Category(raw)
		if !category.Valid() {
			return Error(c, http.StatusBadRequest, "invalid category")
		}
		filter.Category = category
	}
	if raw := c.QueryParam("min_rating"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 || value > 5 {
			return Error(c, http.StatusBadRequest, "min_rating must be between 0 and 5")
		}
		filter.MinRating = &value
	}
	if raw := c.QueryParam("page"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			filter.Page = value
		}
	}
	if raw := c.QueryParam("per_page"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			filter.PerPage = value
		}
	}

	services, err := h.catalog.ListServices(c.Request().Context(), filter, h.contactsAllowed(c))
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list services")
	}
	return Success(c, http.StatusOK, "services retrieved", services)
}

// Get handles GET /services/:id requests.
func (h *ServicesHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid service id")
	}

	record, err := h.catalog.GetService(c.Request().Context(), id, h.contactsAllowed(c))
	if err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return Error(c, http.StatusNotFound, "service not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to load service")
	}
	return Success(c, http.StatusOK, "service retrieved", record)
}

// AdminUpsert handles POST /admin/services requests: the provider entry form.
func (h *ServicesHandler) AdminUpsert(c echo.Context) error {
	var req dto.UpsertServiceRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	record, err := h.catalog.UpsertService(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			return Error(c, http.StatusBadRequest, "invalid category")
		}
		return Error(c, http.StatusBadRequest, err.Error())
	}
	return Success(c, http.StatusCreated, "service saved", record)
}

// AdminImportCSV handles POST /admin/services/upload requests for bulk
// provider onboarding.
func (h *ServicesHandler) AdminImportCSV(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, http.StatusBadRequest, "csv file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to read uploaded file")
	}
	defer file.Close()

	summary, err := h.catalog.ImportServicesCSV(c.Request().Context(), file)
	if err != nil {
		var valErr service.CSVValidationError
		if errors.As(err, &valErr) {
			return Error(c, http.StatusBadRequest, valErr.Message)
		}
		return Error(c, http.StatusInternalServerError, "failed to import services")
	}
	return Success(c, http.StatusOK, "services imported", summary)
}

// AdminScore handles GET /admin/services/:id/score requests. Shows how
// complete a listing's profile is.
func (h *ServicesHandler) AdminScore(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid service id")
	}

	record, err := h.catalog.GetService(c.Request().Context(), id, true)
	if err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return Error(c, http.StatusNotFound, "service not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to load service")
	}
	return Success(c, http.StatusOK, "listing score computed", scoring.ComputeScore(record))
}

// contactsAllowed resolves whether the caller's plan includes contact fields.
// Anonymous callers and entitlement failures default to stripped contacts.
func (h *ServicesHandler) contactsAllowed(c echo.Context) bool {
	userID := currentUserID(c)
	if userID == nil || h.entitlements == nil {
		return false
	}
	ent, err := h.entitlements.Check(c.Request().Context(), *userID)
	if err != nil {
		return false
	}
	return ent.CanViewContacts
}
