package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/marketway/storefront/internal/domain"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	product.ID = uuid.New().String()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, price, image_url, stock_quantity, category, seller_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`, product.ID, product.Name, nullString(product.Description), product.Price,
		nullString(product.ImageURL), nullInt(product.StockQuantity),
		nullString(product.Category), nullString(product.SellerID), now)
	return err
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, image_url, stock_quantity, category, seller_id, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id)

	product, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `
		SELECT id, name, description, price, image_url, stock_quantity, category, seller_id, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
	`)
}

func (r *ProductRepository) ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error) {
	return r.list(ctx, `
		SELECT id, name, description, price, image_url, stock_quantity, category, seller_id, created_at, updated_at
		FROM products
		WHERE seller_id = $1
		ORDER BY created_at DESC
	`, sellerID)
}

func (r *ProductRepository) list(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// Update rewrites the mutable fields of an existing product. The seller_id
// column is deliberately left alone; ownership is fixed at creation.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, image_url = $5, stock_quantity = $6, category = $7, updated_at = NOW()
		WHERE id = $1
	`, product.ID, product.Name, nullString(product.Description), product.Price,
		nullString(product.ImageURL), nullInt(product.StockQuantity), nullString(product.Category))
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		product     domain.Product
		description sql.NullString
		imageURL    sql.NullString
		stock       sql.NullInt64
		category    sql.NullString
		sellerID    sql.NullString
	)
	err := row.Scan(&product.ID, &product.Name, &description, &product.Price,
		&imageURL, &stock, &category, &sellerID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	product.Description = description.String
	product.ImageURL = imageURL.String
	product.Category = category.String
	product.SellerID = sellerID.String
	if stock.Valid {
		quantity := int(stock.Int64)
		product.StockQuantity = &quantity
	}
	return &product, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
