package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/trustedwear/storefront/internal/core/domain"
	"github.com/trustedwear/storefront/internal/core/port"
)

var _ port.OrdersStorage = (*OrdersRepository)(nil)

// An OrdersRepository keeps the order history in Postgres. Item and address
// snapshots are stored as JSON columns, they are immutable after creation.
type OrdersRepository struct {
	sqldb sqldb
}

func NewOrdersRepository(sqldb sqldb) OrdersRepository {
	return OrdersRepository{sqldb}
}

func (r OrdersRepository) SaveOrder(ctx context.Context, o domain.Order) error {
	const op = "OrdersRepository.SaveOrder"

	if err := ctx.Err(); err != nil {
		return opErr(op, err)
	}

	items, err := json.Marshal(ordersItemsToRecords(o.Items))
	if err != nil {
		return opErr(op, err)
	}
	address, err := json.Marshal(toAddressRecord(o.ShippingAddress))
	if err != nil {
		return opErr(op, err)
	}

	query := `
		INSERT INTO orders (
			order_id, user_id, items, total, status, created_at, shipping_address
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = r.sqldb.ExecContext(ctx, query,
		o.ID, o.UserID, string(items), o.Total,
		string(o.Status), o.CreatedAt, string(address),
	)
	if err != nil {
		return opErr(op, err)
	}
	return nil
}

func (r OrdersRepository) ListOrders(
	ctx context.Context, userID string,
) ([]domain.Order, error) {
	const op = "OrdersRepository.ListOrders"

	if err := ctx.Err(); err != nil {
		return nil, opErr(op, err)
	}

	query := `
		SELECT order_id, user_id, items, total, status, created_at, shipping_address
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.sqldb.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, opErr(op, err)
	}
	defer rows.Close()

	var os []domain.Order
	for rows.Next() {
		var (
			o         domain.Order
			status    string
			createdAt time.Time
			itemsS    string
			addressS  string
		)
		err := rows.Scan(
			&o.ID, &o.UserID, &itemsS, &o.Total, &status, &createdAt, &addressS,
		)
		if err != nil {
			return nil, opErr(op, err)
		}

		o.Status, err = domain.ParseOrderStatus(status)
		if err != nil {
			return nil, opErr(op, err)
		}
		o.CreatedAt = createdAt

		var items []cartItemRecord
		if err := json.Unmarshal([]byte(itemsS), &items); err != nil {
			return nil, opErr(op, err)
		}
		for _, it := range items {
			o.Items = append(o.Items, it.toDomain())
		}

		var address *addressRecord
		if err := json.Unmarshal([]byte(addressS), &address); err != nil {
			return nil, opErr(op, err)
		}
		o.ShippingAddress = address.toDomain()

		os = append(os, o)
	}
	if err := rows.Err(); err != nil {
		return nil, opErr(op, err)
	}
	return os, nil
}

func ordersItemsToRecords(items []domain.CartItem) []cartItemRecord {
	rs := make([]cartItemRecord, 0, len(items))
	for _, it := range items {
		rs = append(rs, toCartItemRecord(it))
	}
	return rs
}
