package entity

// Product is the gateway's catalog entry. Price is in whole VND.
type Product struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Price        int64    `json:"price"`
	StockAmount  int      `json:"stockAmount"`
	CategoryName string   `json:"categoryName,omitempty"`
	Images       []string `json:"images"`
}
