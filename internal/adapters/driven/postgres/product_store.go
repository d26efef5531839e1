package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ProductStore = (*ProductStore)(nil)

// ProductStore implements driven.ProductStore using PostgreSQL
type ProductStore struct {
	db *DB
}

// NewProductStore creates a new ProductStore
func NewProductStore(db *DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `
	id, tenant_id, code,
	description, category_id, grouping_1, grouping_2, grouping_3,
	source_created_at, source_updated_at, imputable, available, location,
	visible, featured, category_order, images, short_description,
	long_description, tags, barcode, brand, unit,
	created_at, updated_at
`

// FetchByCodes retrieves a tenant's existing products by code, in one query
func (s *ProductStore) FetchByCodes(ctx context.Context, tenantID int64, codes []string) ([]*domain.Product, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1 AND code = ANY($2)`
	rows, err := s.db.QueryContext(ctx, query, tenantID, pq.Array(codes))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// BulkUpsert persists the create and update sets together. Each row is
// written independently so one bad record cannot sink the batch; the
// update statement touches ERP-sourced columns only.
func (s *ProductStore) BulkUpsert(ctx context.Context, creates, updates []*domain.Product) (*driven.UpsertReport, error) {
	report := &driven.UpsertReport{}

	insertQuery := `
		INSERT INTO products (
			tenant_id, code, description, category_id,
			grouping_1, grouping_2, grouping_3,
			source_created_at, source_updated_at,
			imputable, available, location,
			visible, featured, category_order, images,
			short_description, long_description, tags,
			barcode, brand, unit
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
				$13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id
	`
	for _, p := range creates {
		images, tags, err := marshalCurated(p)
		if err != nil {
			recordFailure(report, p.Code, err)
			continue
		}
		err = s.db.QueryRowContext(ctx, insertQuery,
			p.TenantID, p.Code, p.Description, NullInt64(p.CategoryID),
			NullInt32(p.Grouping1), NullInt32(p.Grouping2), NullInt32(p.Grouping3),
			NullTime(p.SourceCreatedAt), NullTime(p.SourceUpdatedAt),
			p.Imputable, p.Available, p.Location,
			p.Visible, p.Featured, p.CategoryOrder, images,
			p.ShortDescription, p.LongDescription, tags,
			p.Barcode, p.Brand, p.Unit,
		).Scan(&p.ID)
		if err != nil {
			recordFailure(report, p.Code, err)
			continue
		}
		report.Created++
	}

	updateQuery := `
		UPDATE products SET
			description = $3,
			category_id = $4,
			grouping_1 = $5,
			grouping_2 = $6,
			grouping_3 = $7,
			source_created_at = $8,
			source_updated_at = $9,
			imputable = $10,
			available = $11,
			location = $12,
			updated_at = NOW()
		WHERE tenant_id = $1 AND code = $2
	`
	for _, p := range updates {
		_, err := s.db.ExecContext(ctx, updateQuery,
			p.TenantID, p.Code, p.Description, NullInt64(p.CategoryID),
			NullInt32(p.Grouping1), NullInt32(p.Grouping2), NullInt32(p.Grouping3),
			NullTime(p.SourceCreatedAt), NullTime(p.SourceUpdatedAt),
			p.Imputable, p.Available, p.Location,
		)
		if err != nil {
			recordFailure(report, p.Code, err)
			continue
		}
		report.Updated++
	}

	return report, nil
}

func recordFailure(report *driven.UpsertReport, code string, err error) {
	report.Failed++
	report.Errors = append(report.Errors, driven.UpsertError{Code: code, Message: err.Error()})
}

func marshalCurated(p *domain.Product) ([]byte, []byte, error) {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return nil, nil, err
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, nil, err
	}
	return imagesJSON, tagsJSON, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var categoryID sql.NullInt64
	var g1, g2, g3 sql.NullInt32
	var sourceCreatedAt, sourceUpdatedAt sql.NullTime
	var imagesJSON, tagsJSON []byte

	err := row.Scan(
		&p.ID, &p.TenantID, &p.Code,
		&p.Description, &categoryID, &g1, &g2, &g3,
		&sourceCreatedAt, &sourceUpdatedAt, &p.Imputable, &p.Available, &p.Location,
		&p.Visible, &p.Featured, &p.CategoryOrder, &imagesJSON, &p.ShortDescription,
		&p.LongDescription, &tagsJSON, &p.Barcode, &p.Brand, &p.Unit,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CategoryID = Int64Ptr(categoryID)
	p.Grouping1 = IntPtr(g1)
	p.Grouping2 = IntPtr(g2)
	p.Grouping3 = IntPtr(g3)
	p.SourceCreatedAt = TimePtr(sourceCreatedAt)
	p.SourceUpdatedAt = TimePtr(sourceUpdatedAt)

	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			return nil, err
		}
	}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &p.Tags); err != nil {
			return nil, err
		}
	}
	return &p, nil
}
