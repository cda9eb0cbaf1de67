package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/trustedwear/storefront/internal/core/domain"
	"github.com/trustedwear/storefront/internal/core/port"
)

// Persisted record keys, fixed by the storefront's storage layout.
const (
	cartKey = "trusted-cart"
	userKey = "trusted-user"
)

var _ port.SessionStorage = (*SessionRepository)(nil)

type kvStorage interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// A SessionRepository persists the cart and the user as JSON values in the
// key-value storage. Loads fail soft: a missing or unparseable record is
// treated as absent, never surfaced as an error.
type SessionRepository struct {
	kv kvStorage
}

func NewSessionRepository(kv kvStorage) SessionRepository {
	return SessionRepository{kv}
}

func (r SessionRepository) LoadCart(ctx context.Context) domain.Cart {
	const op = "SessionRepository.LoadCart"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.Cart{}
	}

	b, ok, err := r.kv.Get(cartKey)
	if err != nil {
		log.Error("failed to read cart record", "err", err)
		return domain.Cart{}
	}
	if !ok {
		return domain.Cart{}
	}

	var rs []cartItemRecord
	if err := json.Unmarshal(b, &rs); err != nil {
		log.Warn("malformed cart record, starting empty", "err", err)
		return domain.Cart{}
	}

	cart := make(domain.Cart, 0, len(rs))
	for _, v := range rs {
		cart = append(cart, v.toDomain())
	}
	return cart
}

func (r SessionRepository) SaveCart(ctx context.Context, c domain.Cart) error {
	const op = "SessionRepository.SaveCart"

	if err := ctx.Err(); err != nil {
		return opErr(op, err)
	}

	rs := make([]cartItemRecord, 0, len(c))
	for _, it := range c {
		rs = append(rs, toCartItemRecord(it))
	}

	b, err := json.Marshal(rs)
	if err != nil {
		return opErr(op, err)
	}
	if err := r.kv.Put(cartKey, b); err != nil {
		return opErr(op, err)
	}
	return nil
}

func (r SessionRepository) LoadUser(ctx context.Context) (domain.User, bool) {
	const op = "SessionRepository.LoadUser"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.User{}, false
	}

	b, ok, err := r.kv.Get(userKey)
	if err != nil {
		log.Error("failed to read user record", "err", err)
		return domain.User{}, false
	}
	if !ok {
		return domain.User{}, false
	}

	var rec userRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		log.Warn("malformed user record, treating as absent", "err", err)
		return domain.User{}, false
	}
	return rec.toDomain(), true
}

func (r SessionRepository) SaveUser(ctx context.Context, u domain.User) error {
	const op = "SessionRepository.SaveUser"

	if err := ctx.Err(); err != nil {
		return opErr(op, err)
	}

	b, err := json.Marshal(toUserRecord(u))
	if err != nil {
		return opErr(op, err)
	}
	if err := r.kv.Put(userKey, b); err != nil {
		return opErr(op, err)
	}
	return nil
}

func (r SessionRepository) DeleteUser(ctx context.Context) error {
	const op = "SessionRepository.DeleteUser"

	if err := ctx.Err(); err != nil {
		return opErr(op, err)
	}
	if err := r.kv.Delete(userKey); err != nil {
		return opErr(op, err)
	}
	return nil
}

// Persisted record shapes. Field names follow the original storefront's
// storage layout so a previously written session remains readable.
type (
	productRecord struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Price       float64  `json:"price"`
		SalePrice   *float64 `json:"salePrice,omitempty"`
		Category    string   `json:"category"`
		Type        string   `json:"type"`
		Images      []string `json:"images"`
		Sizes       []string `json:"sizes"`
		InStock     bool     `json:"inStock"`
		Description string   `json:"description"`
		Featured    bool     `json:"featured,omitempty"`
		New         bool     `json:"new,omitempty"`
	}

	cartItemRecord struct {
		Product  productRecord `json:"product"`
		Quantity int           `json:"quantity"`
		Size     string        `json:"size"`
	}

	addressRecord struct {
		Street  string `json:"street"`
		City    string `json:"city"`
		State   string `json:"state"`
		Zip     string `json:"zip"`
		Country string `json:"country"`
	}

	orderRecord struct {
		ID              string           `json:"id"`
		UserID          string           `json:"userId"`
		Items           []cartItemRecord `json:"items"`
		Total           float64          `json:"total"`
		Status          string           `json:"status"`
		CreatedAt       time.Time        `json:"createdAt"`
		ShippingAddress *addressRecord   `json:"shippingAddress,omitempty"`
	}

	userRecord struct {
		ID      string         `json:"id"`
		Email   string         `json:"email"`
		Name    string         `json:"name"`
		Address *addressRecord `json:"address,omitempty"`
		Orders  []orderRecord  `json:"orders,omitempty"`
	}
)

func toProductRecord(p domain.Product) productRecord {
	return productRecord{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		SalePrice:   p.SalePrice,
		Category:    string(p.Category),
		Type:        p.Type,
		Images:      p.Images,
		Sizes:       p.Sizes,
		InStock:     p.InStock,
		Description: p.Description,
		Featured:    p.Featured,
		New:         p.New,
	}
}

func (r productRecord) toDomain() domain.Product {
	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		SalePrice:   r.SalePrice,
		Category:    domain.Category(r.Category),
		Type:        r.Type,
		Images:      r.Images,
		Sizes:       r.Sizes,
		InStock:     r.InStock,
		Description: r.Description,
		Featured:    r.Featured,
		New:         r.New,
	}
}

func toCartItemRecord(it domain.CartItem) cartItemRecord {
	return cartItemRecord{
		Product:  toProductRecord(it.Product),
		Quantity: it.Quantity,
		Size:     it.Size,
	}
}

func (r cartItemRecord) toDomain() domain.CartItem {
	return domain.CartItem{
		Product:  r.Product.toDomain(),
		Quantity: r.Quantity,
		Size:     r.Size,
	}
}

func toAddressRecord(a *domain.Address) *addressRecord {
	if a == nil {
		return nil
	}
	return &addressRecord{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		Zip:     a.Zip,
		Country: a.Country,
	}
}

func (r *addressRecord) toDomain() *domain.Address {
	if r == nil {
		return nil
	}
	return &domain.Address{
		Street:  r.Street,
		City:    r.City,
		State:   r.State,
		Zip:     r.Zip,
		Country: r.Country,
	}
}

func toUserRecord(u domain.User) userRecord {
	rec := userRecord{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Address: toAddressRecord(u.Address),
	}
	for _, o := range u.Orders {
		rec.Orders = append(rec.Orders, toOrderRecord(o))
	}
	return rec
}

func (r userRecord) toDomain() domain.User {
	u := domain.User{
		ID:      r.ID,
		Email:   r.Email,
		Name:    r.Name,
		Address: r.Address.toDomain(),
	}
	for _, o := range r.Orders {
		u.Orders = append(u.Orders, o.toDomain())
	}
	return u
}

func toOrderRecord(o domain.Order) orderRecord {
	rec := orderRecord{
		ID:              o.ID,
		UserID:          o.UserID,
		Total:           o.Total,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
		ShippingAddress: toAddressRecord(o.ShippingAddress),
	}
	for _, it := range o.Items {
		rec.Items = append(rec.Items, toCartItemRecord(it))
	}
	return rec
}

func (r orderRecord) toDomain() domain.Order {
	o := domain.Order{
		ID:              r.ID,
		UserID:          r.UserID,
		Total:           r.Total,
		Status:          domain.OrderStatus(r.Status),
		CreatedAt:       r.CreatedAt,
		ShippingAddress: r.ShippingAddress.toDomain(),
	}
	for _, it := range r.Items {
		o.Items = append(o.Items, it.toDomain())
	}
	return o
}
