package httphandler

import "github.com/trustedwear/storefront/internal/core/domain"

func toProductView(p domain.Product) Product {
	return Product{
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

func toProductViews(ps []domain.Product) []Product {
	views := make([]Product, 0, len(ps))
	for _, p := range ps {
		views = append(views, toProductView(p))
	}
	return views
}

func toCartItemView(it domain.CartItem) CartItem {
	return CartItem{
		Product:  toProductView(it.Product),
		Size:     it.Size,
		Quantity: it.Quantity,
		Subtotal: it.Subtotal(),
	}
}

func toCartView(items []domain.CartItem, total float64, count int) CartView {
	v := CartView{
		Items: make([]CartItem, 0, len(items)),
		Total: total,
		Count: count,
	}
	for _, it := range items {
		v.Items = append(v.Items, toCartItemView(it))
	}
	return v
}

func toAddressView(a *domain.Address) *Address {
	if a == nil {
		return nil
	}
	return &Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		Zip:     a.Zip,
		Country: a.Country,
	}
}

func toUserView(u domain.User) User {
	return User{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Address: toAddressView(u.Address),
	}
}

func toOrderView(o domain.Order) Order {
	v := Order{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           make([]CartItem, 0, len(o.Items)),
		Total:           o.Total,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
		ShippingAddress: toAddressView(o.ShippingAddress),
	}
	for _, it := range o.Items {
		v.Items = append(v.Items, toCartItemView(it))
	}
	return v
}
