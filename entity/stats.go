package entity

type DailyStats struct {
	Date        string `json:"date"`
	TotalAmount int64  `json:"totalAmount"`
	OrderCount  int64  `json:"orderCount"`
}

type TopProduct struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	TotalSold   int64  `json:"totalSold"`
}
