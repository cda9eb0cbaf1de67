package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/trustedwear/storefront/internal/core/domain"
	"github.com/trustedwear/storefront/internal/core/port"
)

// A Store owns the storefront session: the cart, the optional user and a
// read-only view of the catalog. Every cart mutation and session change is
// written through to the session storage; a failed write is logged and the
// in-memory state stays authoritative until the next successful one.
//
// The store is safe for use from concurrent handler goroutines. Cart and
// user are independent pieces of state, a single mutex covers both.
type Store struct {
	mu      sync.Mutex
	cart    domain.Cart
	user    *domain.User
	session port.SessionStorage
	catalog port.CatalogProvider
	events  port.ClientEventsProducer
	orders  port.OrdersStorage
	lastID  int64
}

// New constructs a Store. Session storage and catalog are required, events
// producer and orders storage may be nil.
func New(
	session port.SessionStorage,
	catalog port.CatalogProvider,
	events port.ClientEventsProducer,
	orders port.OrdersStorage,
) *Store {
	const op = "service.New"
	if session == nil || catalog == nil {
		panic(fmt.Errorf("%s: nil required port", op)) // develop mistake
	}
	return &Store{
		session: session,
		catalog: catalog,
		events:  events,
		orders:  orders,
	}
}

// Restore rehydrates the previously persisted cart and user. Absent or
// malformed records fall back to empty defaults inside the storage adapter,
// so Restore never fails.
func (s *Store) Restore(ctx context.Context) {
	const op = "Store.Restore"
	s.ready(op)
	log := slog.With("op", op)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = s.session.LoadCart(ctx)
	if u, ok := s.session.LoadUser(ctx); ok {
		s.user = &u
	}
	log.Info("session restored",
		"cartLines", len(s.cart), "authenticated", s.user != nil)
}

// AddToCart merges quantity into the existing (product id, size) line or
// appends a new line. The store does not validate the size against the
// catalog, that is the presentation layer's concern.
func (s *Store) AddToCart(
	ctx context.Context, p domain.Product, size string, quantity int,
) {
	const op = "Store.AddToCart"
	s.ready(op)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = s.cart.Add(p, size, quantity)
	s.persistCart(ctx, op)
	s.emit(ctx, domain.ClientEvent{
		Type:      domain.EventCartAdd,
		ProductID: p.ID,
		Size:      size,
		Quantity:  quantity,
	})
}

// RemoveFromCart drops the matching line. Removing an absent line is a
// no-op, the (possibly unchanged) cart is persisted either way.
func (s *Store) RemoveFromCart(ctx context.Context, productID, size string) {
	const op = "Store.RemoveFromCart"
	s.ready(op)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = s.cart.Remove(productID, size)
	s.persistCart(ctx, op)
	s.emit(ctx, domain.ClientEvent{
		Type:      domain.EventCartRemove,
		ProductID: productID,
		Size:      size,
	})
}

// UpdateQuantity replaces the quantity of the matching line. Zero or below
// behaves exactly as RemoveFromCart for that key pair.
func (s *Store) UpdateQuantity(
	ctx context.Context, productID, size string, quantity int,
) {
	const op = "Store.UpdateQuantity"
	s.ready(op)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = s.cart.SetQuantity(productID, size, quantity)
	s.persistCart(ctx, op)
	s.emit(ctx, domain.ClientEvent{
		Type:      domain.EventCartUpdate,
		ProductID: productID,
		Size:      size,
		Quantity:  quantity,
	})
}

// ClearCart empties the cart and persists the empty cart.
func (s *Store) ClearCart(ctx context.Context) {
	const op = "Store.ClearCart"
	s.ready(op)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = domain.Cart{}
	s.persistCart(ctx, op)
	s.emit(ctx, domain.ClientEvent{Type: domain.EventCartClear})
}

// CartItems returns a copy of the cart lines in insertion order.
func (s *Store) CartItems() []domain.CartItem {
	const op = "Store.CartItems"
	s.ready(op)

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartItem, len(s.cart))
	copy(items, s.cart)
	return items
}

func (s *Store) CartTotal() float64 {
	const op = "Store.CartTotal"
	s.ready(op)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

func (s *Store) CartCount() int {
	const op = "Store.CartCount"
	s.ready(op)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Count()
}

// Login is a mock authentication stand-in: any non-empty email and password
// pair succeeds. The display name is the local part of the email. A real
// credential backend replaces this wholesale.
func (s *Store) Login(
	ctx context.Context, email, password string,
) (domain.User, bool) {
	const op = "Store.Login"
	s.ready(op)

	if email == "" || password == "" {
		return domain.User{}, false
	}

	name, _, _ := strings.Cut(email, "@")
	u := domain.User{ID: "1", Email: email, Name: name}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &u
	s.persistUser(ctx, op, u)
	s.emit(ctx, domain.ClientEvent{Type: domain.EventLogin, UserID: u.ID})
	return u, true
}

// Logout clears the user and removes the persisted record. The cart is left
// untouched and survives the logout.
func (s *Store) Logout(ctx context.Context) {
	const op = "Store.Logout"
	s.ready(op)
	log := slog.With("op", op)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	if err := s.session.DeleteUser(ctx); err != nil {
		log.Error("failed to delete persisted user", "err", err)
	}
}

// Signup is a mock registration stand-in: all three fields non-empty
// succeeds with a freshly generated unique id.
func (s *Store) Signup(
	ctx context.Context, email, password, name string,
) (domain.User, bool) {
	const op = "Store.Signup"
	s.ready(op)

	if email == "" || password == "" || name == "" {
		return domain.User{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := domain.User{ID: s.nextID(), Email: email, Name: name}
	s.user = &u
	s.persistUser(ctx, op, u)
	s.emit(ctx, domain.ClientEvent{Type: domain.EventSignup, UserID: u.ID})
	return u, true
}

// User reports the active user, if any.
func (s *Store) User() (domain.User, bool) {
	const op = "Store.User"
	s.ready(op)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Products exposes the static catalog unmodified.
func (s *Store) Products() []domain.Product {
	const op = "Store.Products"
	s.ready(op)
	return s.catalog.All()
}

// OrderHistory lists past orders of the authenticated user. Anonymous
// sessions and sessions without an orders storage get an empty history.
func (s *Store) OrderHistory(ctx context.Context) ([]domain.Order, error) {
	const op = "Store.OrderHistory"
	s.ready(op)

	s.mu.Lock()
	u := s.user
	s.mu.Unlock()

	if u == nil || s.orders == nil {
		return nil, nil
	}

	os, err := s.orders.ListOrders(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return os, nil
}

// persistCart writes the cart through to storage. Callers hold the mutex.
func (s *Store) persistCart(ctx context.Context, op string) {
	if err := s.session.SaveCart(ctx, s.cart); err != nil {
		slog.Error("failed to persist cart", "op", op, "err", err)
	}
}

func (s *Store) persistUser(ctx context.Context, op string, u domain.User) {
	if err := s.session.SaveUser(ctx, u); err != nil {
		slog.Error("failed to persist user", "op", op, "err", err)
	}
}

// emit sends a client event to the analytics stream, fire-and-forget.
// Callers hold the mutex.
func (s *Store) emit(ctx context.Context, evt domain.ClientEvent) {
	if s.events == nil {
		return
	}
	if s.user != nil && evt.UserID == "" {
		evt.UserID = s.user.ID
	}
	evt.OccurredAt = time.Now()

	if err := s.events.ProduceEvent(ctx, evt); err != nil {
		slog.Warn("failed to produce client event",
			"type", string(evt.Type), "err", err)
	}
}

// nextID issues a time-based id, strictly increasing so that two signups
// within one clock tick still get distinct ids. Callers hold the mutex.
func (s *Store) nextID() string {
	id := time.Now().UnixNano()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// ready guards against use of an uninitialized store, a programming error
// rather than a runtime condition.
func (s *Store) ready(op string) {
	if s == nil || s.session == nil || s.catalog == nil {
		panic(fmt.Errorf("%s: store is not initialized", op)) // develop mistake
	}
}
