package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/commerce-admin/internal/domain/errors"
	"github.com/polkiloo/commerce-admin/internal/domain/filter"
	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
)

// --- CustomerDirectory implementation ---

func (d *customerDirectory) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	const query = `SELECT id, first_name, last_name, email, address FROM users WHERE id=$1 AND deleted_at IS NULL`
	var c model.Customer
	err := d.storage.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domainErrors.CustomerNotFoundError{CustomerID: id}
		}
		return nil, err
	}
	return &c, nil
}

// --- ProductRepository implementation ---

const productSelect = `SELECT p.id, p.reference, COALESCE(p.category_id, 0), COALESCE(c.name, ''), p.price,
       p.width, p.height, p.depth, p.stock, p.sales, p.description, p.created_at, p.deleted_at
FROM products p LEFT JOIN categories c ON c.id = p.category_id`

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Reference, &p.CategoryID, &p.CategoryName, &p.Price,
		&p.Width, &p.Height, &p.Depth, &p.Stock, &p.Sales, &p.Description, &p.CreatedAt, &p.DeletedAt)
	return p, err
}

func (r *productRepository) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	query := productSelect + ` WHERE p.id=$1 AND p.deleted_at IS NULL`
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domainErrors.ProductNotFoundError{ProductID: id}
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Count(ctx context.Context, spec filter.Spec) (int64, error) {
	return r.storage.count(ctx, "products", "p", spec)
}

func (r *productRepository) Fetch(ctx context.Context, spec filter.Spec, w paging.Window) ([]model.Product, error) {
	return fetchAll(ctx, r.storage, productSelect, "p", spec, w, scanProduct)
}

// --- UserRepository implementation ---

const userSelect = `SELECT u.id, u.first_name, u.last_name, u.email, u.address, u.has_newsletter,
       ARRAY(SELECT us.segment_id FROM user_segments us WHERE us.user_id = u.id ORDER BY us.segment_id),
       u.created_at, u.deleted_at
FROM users u`

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Address, &u.HasNewsletter,
		&u.SegmentIDs, &u.CreatedAt, &u.DeletedAt)
	return u, err
}

func (r *userRepository) Count(ctx context.Context, spec filter.Spec) (int64, error) {
	return r.storage.count(ctx, "users", "u", spec)
}

func (r *userRepository) Fetch(ctx context.Context, spec filter.Spec, w paging.Window) ([]model.User, error) {
	return fetchAll(ctx, r.storage, userSelect, "u", spec, w, scanUser)
}

// --- ReviewRepository implementation ---

const reviewSelect = `SELECT r.id, r.product_id, r.customer_id, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''),
       r.rating, r.comment, r.status, r.date, r.created_at, r.deleted_at
FROM reviews r LEFT JOIN users u ON u.id = r.customer_id`

func scanReview(row pgx.Row) (model.Review, error) {
	var rv model.Review
	err := row.Scan(&rv.ID, &rv.ProductID, &rv.CustomerID, &rv.CustomerFirstName, &rv.CustomerLastName,
		&rv.Rating, &rv.Comment, &rv.Status, &rv.Date, &rv.CreatedAt, &rv.DeletedAt)
	return rv, err
}

func (r *reviewRepository) Count(ctx context.Context, spec filter.Spec) (int64, error) {
	return r.storage.count(ctx, "reviews", "r", spec)
}

func (r *reviewRepository) Fetch(ctx context.Context, spec filter.Spec, w paging.Window) ([]model.Review, error) {
	return fetchAll(ctx, r.storage, reviewSelect, "r", spec, w, scanReview)
}

func fetchAll[T any](ctx context.Context, s *Storage, selectSQL, alias string, spec filter.Spec, w paging.Window, scan func(pgx.Row) (T, error)) ([]T, error) {
	b := newQueryBuilder(alias)
	where, err := b.where(spec)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, selectSQL+where+b.window(w), b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
