package models

// Product is the in-memory catalog entity. The remote row shape
// (snake_case columns) is translated by the mapper package.
type Product struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Slug           string         `json:"slug"`
	Description    string         `json:"description"`
	Price          float64        `json:"price"`
	SalePrice      *float64       `json:"salePrice,omitempty"`
	Image          string         `json:"image"`
	Images         []string       `json:"images"`
	Category       string         `json:"category"`
	CategoryID     *string        `json:"categoryId,omitempty"`
	Rating         float64        `json:"rating"`
	ReviewCount    int            `json:"reviewCount"`
	Stock          int            `json:"stock"`
	Featured       bool           `json:"featured"`
	DarazLink      string         `json:"darazLink,omitempty"`
	Specifications map[string]any `json:"specifications"`
	Tags           []string       `json:"tags"`
}

// CartLine references a product by identity; the cart manager resolves
// it against the live catalog at read time.
type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderItem is a denormalized copy of the product at checkout time, so
// the record survives later catalog edits and deletions.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

type ShippingAddress struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type Order struct {
	ID              string          `json:"id"`
	Date            string          `json:"date"`
	Items           []OrderItem     `json:"items"`
	Total           float64         `json:"total"`
	Status          string          `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// User is the snapshot written to the local store under the "user" key
// after an admin login.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
