package domain

type (
	// A User is the session identity. At most one user is active at a time.
	User struct {
		ID      string
		Email   string
		Name    string
		Address *Address
		Orders  []Order
	}

	Address struct {
		Street  string
		City    string
		State   string
		Zip     string
		Country string
	}
)
