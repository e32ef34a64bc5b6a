package entity

type PaymentMethod struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}
