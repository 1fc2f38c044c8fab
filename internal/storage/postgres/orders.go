package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/commerce-admin/internal/domain/errors"
	"github.com/polkiloo/commerce-admin/internal/domain/filter"
	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
)

const orderColumns = `o.id, o.order_reference, o.customer_id, o.status, o.shipping_address, o.returned,
       o.subtotal, o.delivery_fee, o.tax_amount, o.grand_total, o.version,
       o.created_at, o.updated_at, o.deleted_at`

const itemColumns = `id, order_id, product_id, product_name, unit_price, quantity, recorded_on, width, height, depth`

func scanOrder(row pgx.Row) (model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.Reference, &o.CustomerID, &o.Status, &o.ShippingAddress, &o.Returned,
		&o.Subtotal, &o.DeliveryFee, &o.TaxAmount, &o.GrandTotal, &o.Version,
		&o.CreatedAt, &o.UpdatedAt, &o.DeletedAt)
	return o, err
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const insertOrder = `INSERT INTO orders (order_reference, customer_id, status, shipping_address, returned,
                            subtotal, delivery_fee, tax_amount, grand_total, version, created_at, updated_at)
                         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
                         RETURNING id`
	const insertItem = `INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity, recorded_on, width, height, depth)
                        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                        RETURNING id`

	stored := order.Clone()
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, insertOrder,
			stored.Reference, stored.CustomerID, string(stored.Status), stored.ShippingAddress, stored.Returned,
			stored.Subtotal, stored.DeliveryFee, stored.TaxAmount, stored.GrandTotal, stored.Version,
			stored.CreatedAt, stored.UpdatedAt,
		).Scan(&stored.ID)
		if err != nil {
			return err
		}

		for i := range stored.Items {
			item := &stored.Items[i]
			item.OrderID = stored.ID
			err := tx.QueryRow(ctx, insertItem,
				item.OrderID, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity, item.RecordedOn,
				item.Width, item.Height, item.Depth,
			).Scan(&item.ID)
			if err != nil {
				return errors.Wrapf(err, "insert item for product %d", item.ProductID)
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrDuplicateReference
		}
		return nil, err
	}
	return stored, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}

	orders := []model.Order{order}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *orderRepository) Update(ctx context.Context, order *model.Order) (*model.Order, error) {
	const update = `UPDATE orders
                    SET shipping_address=$1, returned=$2, status=$3,
                        subtotal=$4, delivery_fee=$5, tax_amount=$6, grand_total=$7,
                        updated_at=$8, deleted_at=COALESCE(deleted_at, $9), version=version+1
                    WHERE id=$10 AND version=$11
                    RETURNING version`

	updated := order.Clone()
	err := r.storage.pool.QueryRow(ctx, update,
		order.ShippingAddress, order.Returned, string(order.Status),
		order.Subtotal, order.DeliveryFee, order.TaxAmount, order.GrandTotal,
		order.UpdatedAt, order.DeletedAt, order.ID, order.Version,
	).Scan(&updated.Version)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var current int64
	err = r.storage.pool.QueryRow(ctx, `SELECT version FROM orders WHERE id=$1`, order.ID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}
	return nil, domainErrors.ErrVersionConflict
}

func (r *orderRepository) Find(ctx context.Context, spec filter.Spec) ([]model.Order, error) {
	return r.Fetch(ctx, spec, paging.Window{OrderBy: []paging.OrderBy{
		{Column: paging.CreatedAtColumn, Desc: true},
		{Column: paging.IDColumn, Desc: true},
	}})
}

func (r *orderRepository) Count(ctx context.Context, spec filter.Spec) (int64, error) {
	return r.storage.count(ctx, "orders", "o", spec)
}

func (r *orderRepository) Fetch(ctx context.Context, spec filter.Spec, w paging.Window) ([]model.Order, error) {
	b := newQueryBuilder("o")
	where, err := b.where(spec)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + orderColumns + ` FROM orders o` + where + b.window(w)

	rows, err := r.storage.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) attachItems(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.ID)
		index[o.ID] = i
	}

	query := `SELECT ` + itemColumns + ` FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, id`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.UnitPrice,
			&item.Quantity, &item.RecordedOn, &item.Width, &item.Height, &item.Depth); err != nil {
			return err
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return rows.Err()
}

func (s *Storage) count(ctx context.Context, table, alias string, spec filter.Spec) (int64, error) {
	b := newQueryBuilder(alias)
	where, err := b.where(spec)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s%s`, table, alias, where)

	var n int64
	if err := s.pool.QueryRow(ctx, query, b.args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
