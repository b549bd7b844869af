package domain

// LowStockThreshold marks products the dashboard flags for restocking.
const LowStockThreshold = 10

// AdminStats is derived from the full user/product/order collections on
// demand; it is never persisted.
type AdminStats struct {
	TotalUsers        int            `json:"totalUsers"`
	TotalProducts     int            `json:"totalProducts"`
	TotalOrders       int            `json:"totalOrders"`
	TotalRevenueCents int64          `json:"totalRevenueCents"`
	RecentOrders      []Order        `json:"recentOrders"`
	LowStockProducts  []Product      `json:"lowStockProducts"`
	TopProducts       []ProductSales `json:"topProducts"`
}

// ProductSales ranks a product by units sold across all orders.
type ProductSales struct {
	ProductID    string `json:"productId"`
	Name         string `json:"name"`
	UnitsSold    int    `json:"unitsSold"`
	RevenueCents int64  `json:"revenueCents"`
}

// MonthRevenue is one bucket of the January..December revenue series.
type MonthRevenue struct {
	Month        string `json:"month"`
	RevenueCents int64  `json:"revenueCents"`
}

// Analytics mirrors the optional remote analytics document. Either slice
// may be empty when the endpoint does not supply it.
type Analytics struct {
	MonthlyRevenue []MonthRevenue `json:"monthlyRevenue"`
	TopProducts    []ProductSales `json:"topProducts"`
}
