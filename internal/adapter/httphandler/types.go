package httphandler

import "time"

type (
	Product struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Price       float64  `json:"price"`
		SalePrice   *float64 `json:"sale_price,omitempty"`
		Category    string   `json:"category"`
		Type        string   `json:"type"`
		Images      []string `json:"images"`
		Sizes       []string `json:"sizes"`
		InStock     bool     `json:"in_stock"`
		Description string   `json:"description"`
		Featured    bool     `json:"featured"`
		New         bool     `json:"new"`
	}

	CartItem struct {
		Product  Product `json:"product"`
		Size     string  `json:"size"`
		Quantity int     `json:"quantity"`
		Subtotal float64 `json:"subtotal"`
	}

	CartView struct {
		Items []CartItem `json:"items"`
		Total float64    `json:"total"`
		Count int        `json:"count"`
	}

	CartItemRequest struct {
		ProductID string `json:"product_id"`
		Size      string `json:"size"`
		Quantity  int    `json:"quantity"`
	}

	Credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name,omitempty"`
	}

	Address struct {
		Street  string `json:"street"`
		City    string `json:"city"`
		State   string `json:"state"`
		Zip     string `json:"zip"`
		Country string `json:"country"`
	}

	User struct {
		ID      string   `json:"id"`
		Email   string   `json:"email"`
		Name    string   `json:"name"`
		Address *Address `json:"address,omitempty"`
	}

	Order struct {
		ID              string     `json:"id"`
		UserID          string     `json:"user_id"`
		Items           []CartItem `json:"items"`
		Total           float64    `json:"total"`
		Status          string     `json:"status"`
		CreatedAt       time.Time  `json:"created_at"`
		ShippingAddress *Address   `json:"shipping_address,omitempty"`
	}

	TrendingEntry struct {
		Product Product `json:"product"`
		Adds    int64   `json:"adds"`
	}
)
