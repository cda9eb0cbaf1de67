package port

import (
	"context"
	"sync"

	"github.com/trustedwear/storefront/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// SessionStorage is the durable key-value persistence for the session state.
// Load methods fail soft: absent or malformed records come back as empty
// defaults, never as an error.
type SessionStorage interface {
	LoadCart(context.Context) domain.Cart
	SaveCart(context.Context, domain.Cart) error
	LoadUser(context.Context) (domain.User, bool)
	SaveUser(context.Context, domain.User) error
	DeleteUser(context.Context) error
}

// CatalogProvider serves the static, read-only product catalog.
type CatalogProvider interface {
	All() []domain.Product
	ByID(id string) (domain.Product, error)
}

type ClientEventsProducer interface {
	ProduceEvent(context.Context, domain.ClientEvent) error
}

type OrdersStorage interface {
	SaveOrder(context.Context, domain.Order) error
	ListOrders(ctx context.Context, userID string) ([]domain.Order, error)
}

type TrendingProcessor interface {
	runnerContextWg
	closer
}
