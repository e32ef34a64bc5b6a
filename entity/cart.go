package entity

// LineItem is one product in a cart being built. ProductID is the lookup key;
// ProductName is kept for display and for the gateway payload.
type LineItem struct {
	ProductID   string `json:"productId,omitempty"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes"`
}

// Cart is the unsubmitted order on the sales screen.
type Cart struct {
	TableNumber       string     `json:"tableNumber"`
	PaymentMethodType string     `json:"paymentMethodType"`
	Items             []LineItem `json:"items"`
}
