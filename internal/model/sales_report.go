package model

// SalesReport aggregates ticket revenue for a single calendar date.
// Exactly one report exists per date; it is created lazily on the
// first sale of the day and its totals only ever grow.
//
// Fields:
//  Date            – calendar date in YYYY-MM-DD form (UTC), primary key.
//  TicketsSold     – number of revenue events recorded on that date
//                    (purchases and upgrades both count as one).
//  TotalSalesCents – accumulated revenue in cents.
type SalesReport struct {
	Date            string // sales_reports.report_date
	TicketsSold     uint32 // sales_reports.tickets_sold
	TotalSalesCents uint64 // sales_reports.total_sales_cents
}
