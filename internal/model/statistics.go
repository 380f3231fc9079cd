package model

// DashboardSummary aggregates invoice counts and revenue per status
type DashboardSummary struct {
	TotalInvoices   int     `json:"totalInvoices"`
	TotalRevenue    float64 `json:"totalRevenue"`
	PaidInvoices    int     `json:"paidInvoices"`
	PaidRevenue     float64 `json:"paidRevenue"`
	PendingInvoices int     `json:"pendingInvoices"`
	PendingRevenue  float64 `json:"pendingRevenue"`
	OverdueInvoices int     `json:"overdueInvoices"`
	OverdueRevenue  float64 `json:"overdueRevenue"`
}

// MonthlyRevenue is one YYYY-MM bucket keyed by invoice issue date
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Total   float64 `json:"total"`
	Paid    float64 `json:"paid"`
	Pending float64 `json:"pending"`
}

// Dashboard is the analytics overview of one user's invoices
type Dashboard struct {
	Summary          DashboardSummary `json:"summary"`
	MonthlyRevenue   []MonthlyRevenue `json:"monthlyRevenue"`
	RecentActivity   []AnalyticsEvent `json:"recentActivity"`
	InvoicesByStatus map[string]int   `json:"invoicesByStatus"`
}
