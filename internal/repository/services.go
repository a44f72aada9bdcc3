package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adpulse/opensea-api/internal/dto"
	"github.com/adpulse/opensea-api/internal/entity"
)

// ServicesRepository describes persistence operations for provider listings.
type ServicesRepository interface {
	Search(ctx context.Context, filter dto.ServiceFilter) ([]entity.Service, error)
	Upsert(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	BulkUpsert(ctx context.Context, records []BulkUpsertServiceInput) (BulkUpsertResult, error)
}

// ErrServiceNotFound indicates there is no listing with the given id.
var ErrServiceNotFound = errors.New("service not found")

// BulkUpsertServiceInput represents the minimal fields required for CSV ingestion.
type BulkUpsertServiceInput struct {
	Category     entity.Category
	ProviderName string
	Name         string
	Description  *string
	Price        *float64
	Rating       *float64
	Phone        *string
	WhatsApp     *string
	Website      *string
	Instagram    *string
	Location     *string
}

// BulkUpsertResult summarises the number of rows inserted or updated.
type BulkUpsertResult struct {
	Inserted int
	Updated  int
	Total    int
}

// PGXServicesRepository implements ServicesRepository using pgx.
type PGXServicesRepository struct {
	pool pgxPool
}

// NewPGXServicesRepository wires a pgx backed repository.
func NewPGXServicesRepository(pool *pgxpool.Pool) *PGXServicesRepository {
	return &PGXServicesRepository{pool: pool}
}

var _ pgxPool = (*pgxpool.Pool)(nil)

const serviceColumns = `
        id,
        category,
        provider_name,
        name,
        description,
        price,
        rating,
        phone,
        whatsapp,
        website,
        instagram,
        image_url,
        location,
        created_at,
        updated_at
`

// Search retrieves listings matching the filter, ordered by rating descending.
// With a category set, the category is matched exactly; otherwise the free
// text is matched case-insensitively across provider name, display name and
// description.
func (r *PGXServicesRepository) Search(ctx context.Context, filter dto.ServiceFilter) ([]entity.Service, error) {
	baseQuery := strings.Builder{}
	baseQuery.WriteString("SELECT " + serviceColumns + " FROM services")

	var (
		clauses []string
		args    []any
		idx     = 1
	)

	if filter.Category != "" && filter.Category != entity.CategoryNone {
		clauses = append(clauses, fmt.Sprintf("category = $%d", idx))
		args = append(args, string(filter.Category))
		idx++
	}
	if filter.Q != "" {
		pattern := fmt.Sprintf("%%%s%%", filter.Q)
		clauses = append(clauses, fmt.Sprintf("(provider_name ILIKE $%d OR name ILIKE $%d OR description ILIKE $%d)", idx, idx+1, idx+2))
		args = append(args, pattern, pattern, pattern)
		idx += 3
	}
	if filter.MinRating != nil {
		clauses = append(clauses, fmt.Sprintf("rating >= $%d", idx))
		args = append(args, *filter.MinRating)
		idx++
	}

	if len(clauses) > 0 {
		baseQuery.WriteString(" WHERE ")
		baseQuery.WriteString(strings.Join(clauses, " AND "))
	}

	baseQuery.WriteString(" ORDER BY rating DESC NULLS LAST, created_at DESC")

	if filter.Limit > 0 {
		baseQuery.WriteString(fmt.Sprintf(" LIMIT %d", filter.Limit))
	} else {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		perPage := filter.PerPage
		if perPage <= 0 {
			perPage = 20
		}
		if perPage > 100 {
			perPage = 100
		}
		offset := (page - 1) * perPage
		baseQuery.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1))
		args = append(args, perPage, offset)
	}

	rows, err := r.pool.Query(ctx, baseQuery.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search services: %w", err)
	}
	defer rows.Close()

	return scanServices(rows)
}

// Upsert inserts or updates a listing keyed by (provider_name, name).
func (r *PGXServicesRepository) Upsert(ctx context.Context, service *entity.Service) error {
	if service == nil {
		return fmt.Errorf("service payload is nil")
	}

	query := `
        INSERT INTO services (
            category,
            provider_name,
            name,
            description,
            price,
            rating,
            phone,
            whatsapp,
            website,
            instagram,
            image_url,
            location,
            updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
        ON CONFLICT (provider_name, name) DO UPDATE SET
            category = EXCLUDED.category,
            description = EXCLUDED.description,
            price = EXCLUDED.price,
            rating = EXCLUDED.rating,
            phone = EXCLUDED.phone,
            whatsapp = EXCLUDED.whatsapp,
            website = EXCLUDED.website,
            instagram = EXCLUDED.instagram,
            image_url = EXCLUDED.image_url,
            location = EXCLUDED.location,
            updated_at = NOW();
    `

	_, err := r.pool.Exec(ctx, query,
		string(service.Category),
		service.ProviderName,
		service.Name,
		service.Description,
		service.Price,
		service.Rating,
		service.Phone,
		service.WhatsApp,
		service.Website,
		service.Instagram,
		service.ImageURL,
		service.Location,
	)
	if err != nil {
		return fmt.Errorf("upsert service: %w", err)
	}

	return nil
}

// GetByID returns a single listing.
func (r *PGXServicesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+serviceColumns+" FROM services WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	defer rows.Close()

	services, err := scanServices(rows)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, ErrServiceNotFound
	}
	return &services[0], nil
}

const bulkUpsertSQL = `
        INSERT INTO services (category, provider_name, name, description, price, rating, phone, whatsapp, website, instagram, location, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW())
        ON CONFLICT (provider_name, name) DO UPDATE SET
            category = EXCLUDED.category,
            description = EXCLUDED.description,
            price = EXCLUDED.price,
            rating = EXCLUDED.rating,
            phone = EXCLUDED.phone,
            whatsapp = EXCLUDED.whatsapp,
            website = EXCLUDED.website,
            instagram = EXCLUDED.instagram,
            location = EXCLUDED.location,
            updated_at = NOW()
        RETURNING xmax = 0;
    `

// BulkUpsert persists a batch of listings with idempotent semantics.
func (r *PGXServicesRepository) BulkUpsert(ctx context.Context, records []BulkUpsertServiceInput) (BulkUpsertResult, error) {
	var result BulkUpsertResult
	if len(records) == 0 {
		return result, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return result, fmt.Errorf("start bulk upsert tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, record := range records {
		rows, err := tx.Query(ctx, bulkUpsertSQL,
			string(record.Category),
			record.ProviderName,
			record.Name,
			stringOrNil(record.Description),
			floatOrNil(record.Price),
			floatOrNil(record.Rating),
			stringOrNil(record.Phone),
			stringOrNil(record.WhatsApp),
			stringOrNil(record.Website),
			stringOrNil(record.Instagram),
			stringOrNil(record.Location),
		)
		if err != nil {
			return result, fmt.Errorf("bulk upsert service %q: %w", record.Name, err)
		}

		var inserted bool
		if rows.Next() {
			if scanErr := rows.Scan(&inserted); scanErr != nil {
				rows.Close()
				return result, fmt.Errorf("scan bulk upsert result: %w", scanErr)
			}
		} else {
			err := rows.Err()
			rows.Close()
			if err != nil {
				return result, fmt.Errorf("bulk upsert service %q: %w", record.Name, err)
			}
			return result, fmt.Errorf("bulk upsert service %q: no result returned", record.Name)
		}
		rows.Close()

		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
		result.Total++
	}

	if err := tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("commit bulk upsert tx: %w", err)
	}

	return result, nil
}

func scanServices(rows pgx.Rows) ([]entity.Service, error) {
	var services []entity.Service
	for rows.Next() {
		var (
			s           entity.Service
			category    string
			description sql.NullString
			price       sql.NullFloat64
			rating      sql.NullFloat64
			phone       sql.NullString
			whatsapp    sql.NullString
			website     sql.NullString
			instagram   sql.NullString
			imageURL    sql.NullString
			location    sql.NullString
		)

		err := rows.Scan(
			&s.ID,
			&category,
			&s.ProviderName,
			&s.Name,
			&description,
			&price,
			&rating,
			&phone,
			&whatsapp,
			&website,
			&instagram,
			&imageURL,
			&location,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}

		s.Category = entity.Category(category)
		s.Description = nullStringToPtr(description)
		s.Phone = nullStringToPtr(phone)
		s.WhatsApp = nullStringToPtr(whatsapp)
		s.Website = nullStringToPtr(website)
		s.Instagram = nullStringToPtr(instagram)
		s.ImageURL = nullStringToPtr(imageURL)
		s.Location = nullStringToPtr(location)
		if price.Valid {
			val := price.Float64
			s.Price = &val
		}
		if rating.Valid {
			val := rating.Float64
			s.Rating = &val
		}

		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}
	return services, nil
}

func nullStringToPtr(value sql.NullString) *string {
	if value.Valid {
		val := value.String
		return &val
	}
	return nil
}

func stringOrNil(value *string) any {
	if value == nil {
		return nil
	}
	if *value == "" {
		return nil
	}
	return *value
}

func floatOrNil(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}
