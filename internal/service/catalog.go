package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/adpulse/opensea-api/internal/dto"
	"github.com/adpulse/opensea-api/internal/entity"
	"github.com/adpulse/opensea-api/internal/repository"
)

// ErrInvalidCategory indicates the payload used an unknown vertical.
var ErrInvalidCategory = errors.New("invalid category")

// CatalogService exposes read/write operations for the listings catalogue.
type CatalogService struct {
	repo       repository.ServicesRepository
	normalizer *ContactNormalizer
}

// CSVValidationError indicates that the provided CSV payload is invalid.
type CSVValidationError struct {
	Message string
}

// Error implements the error interface.
func (e CSVValidationError) Error() string {
	return e.Message
}

// UploadSummary reports how many rows were inserted or updated during import.
type UploadSummary struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(repo repository.ServicesRepository, normalizer *ContactNormalizer) *CatalogService {
	if normalizer == nil {
		normalizer = NewContactNormalizer("")
	}
	return &CatalogService{repo: repo, normalizer: normalizer}
}

// ListServices returns listings respecting pagination defaults. When the
// caller may not view contacts, those fields are stripped from the result.
func (s *CatalogService) ListServices(ctx context.Context, filter dto.ServiceFilter, includeContacts bool) ([]entity.Service, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}

	services, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	if !includeContacts {
		for i := range services {
			services[i].StripContacts()
		}
	}
	return services, nil
}

// GetService returns a single listing, contact fields gated the same way.
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID, includeContacts bool) (*entity.Service, error) {
	service, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !includeContacts {
		service.StripContacts()
	}
	return service, nil
}

// UpsertService validates a provider entry form payload, normalizes the
// contact fields and persists the listing.
func (s *CatalogService) UpsertService(ctx context.Context, req dto.UpsertServiceRequest) (*entity.Service, error) {
	category := entity.Category(strings.TrimSpace(req.Category))
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, req.Category)
	}

	providerName := strings.TrimSpace(req.ProviderName)
	name := strings.TrimSpace(req.Name)
	if providerName == "" || name == "" {
		return nil, errors.New("provider_name and name are required")
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
		return nil, errors.New("rating must be between 0 and 5")
	}

	service := &entity.Service{
		Category:     category,
		ProviderName: providerName,
		Name:         name,
		Description:  normalizeOptional(req.Description),
		Price:        req.Price,
		Rating:       req.Rating,
		ImageURL:     normalizeOptional(req.ImageURL),
		Location:     normalizeOptional(req.Location),
	}

	if req.Phone != nil {
		if phone := s.normalizer.NormalizePhone(*req.Phone); phone != "" {
			service.Phone = &phone
		}
	}
	if req.WhatsApp != nil {
		if number := s.normalizer.NormalizePhone(*req.WhatsApp); number != "" {
			service.WhatsApp = &number
		}
	}
	if req.Website != nil {
		if site, err := s.normalizer.NormalizeWebsite(*req.Website); err == nil {
			service.Website = &site
		}
	}
	if req.Instagram != nil {
		if handle := s.normalizer.NormalizeInstagram(*req.Instagram); handle != "" {
			service.Instagram = &handle
		}
	}

	if err := s.repo.Upsert(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

var requiredCSVHeaders = []string{"category", "provider_name", "name", "description", "price", "rating", "phone", "whatsapp", "website", "instagram", "location"}

// ImportServicesCSV ingests listings from a CSV reader, used for bulk
// provider onboarding.
func (s *CatalogService) ImportServicesCSV(ctx context.Context, r io.Reader) (UploadSummary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return UploadSummary{}, CSVValidationError{Message: "csv file is empty"}
		}
		return UploadSummary{}, fmt.Errorf("read csv header: %w", err)
	}

	indexMap, valErr := buildHeaderIndex(header)
	if valErr != nil {
		return UploadSummary{}, valErr
	}

	var (
		records []repository.BulkUpsertServiceInput
		rowNum  = 1
	)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return UploadSummary{}, fmt.Errorf("read csv row: %w", err)
		}

		rowNum++

		category := entity.Category(strings.TrimSpace(row[indexMap["category"]]))
		providerName := strings.TrimSpace(row[indexMap["provider_name"]])
		name := strings.TrimSpace(row[indexMap["name"]])
		if providerName == "" || name == "" {
			continue
		}
		if !category.Valid() {
			return UploadSummary{}, CSVValidationError{Message: fmt.Sprintf("invalid category on row %d", rowNum)}
		}

		price, parseErr := parseOptionalFloat(row[indexMap["price"]])
		if parseErr != nil {
			return UploadSummary{}, CSVValidationError{Message: fmt.Sprintf("invalid price value on row %d", rowNum)}
		}

		rating, parseErr := parseOptionalFloat(row[indexMap["rating"]])
		if parseErr != nil {
			return UploadSummary{}, CSVValidationError{Message: fmt.Sprintf("invalid rating value on row %d", rowNum)}
		}
		if rating != nil && (*rating < 0 || *rating > 5) {
			return UploadSummary{}, CSVValidationError{Message: fmt.Sprintf("rating out of range on row %d", rowNum)}
		}

		record := repository.BulkUpsertServiceInput{
			Category:     category,
			ProviderName: providerName,
			Name:         name,
			Description:  normalizeString(row[indexMap["description"]]),
			Price:        price,
			Rating:       rating,
			Location:     normalizeString(row[indexMap["location"]]),
		}

		if phone := s.normalizer.NormalizePhone(row[indexMap["phone"]]); phone != "" {
			record.Phone = &phone
		}
		if number := s.normalizer.NormalizePhone(row[indexMap["whatsapp"]]); number != "" {
			record.WhatsApp = &number
		}
		if site, err := s.normalizer.NormalizeWebsite(row[indexMap["website"]]); err == nil {
			record.Website = &site
		}
		if handle := s.normalizer.NormalizeInstagram(row[indexMap["instagram"]]); handle != "" {
			record.Instagram = &handle
		}

		records = append(records, record)
	}

	result, err := s.repo.BulkUpsert(ctx, records)
	if err != nil {
		return UploadSummary{}, err
	}

	return UploadSummary{
		Inserted: result.Inserted,
		Updated:  result.Updated,
		Total:    result.Total,
	}, nil
}

func buildHeaderIndex(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	missing := make([]string, 0)
	for _, required := range requiredCSVHeaders {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, CSVValidationError{Message: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}
	return index, nil
}

func parseOptionalFloat(value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func normalizeString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	return normalizeString(*value)
}
