package repository

import (
	"context"
	"database/sql"

	"github.com/greenwave/conference-ticketing/internal/model"
)

// SalesReportRepo maintains the per-date revenue aggregates.
type SalesReportRepo struct{ DB *sql.DB }

func NewSalesReportRepo(db *sql.DB) *SalesReportRepo { return &SalesReportRepo{DB: db} }

// AddSale folds one revenue event into the report for the given date
// (YYYY-MM-DD). The upsert creates the report lazily on the first sale
// of a day and increments both counters afterwards, so totals are
// monotonically non-decreasing and exactly one row exists per date.
func (r *SalesReportRepo) AddSale(ctx context.Context, date string, amountCents uint32) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO sales_reports (report_date, tickets_sold, total_sales_cents) VALUES (?,1,?)
		 ON DUPLICATE KEY UPDATE
		   tickets_sold = tickets_sold + 1,
		   total_sales_cents = total_sales_cents + VALUES(total_sales_cents)`,
		date, amountCents)
	return err
}

// List returns all reports in chronological order.
func (r *SalesReportRepo) List(ctx context.Context) ([]model.SalesReport, error) {
	// DATE_FORMAT keeps the date a plain YYYY-MM-DD string; with
	// parseTime=true the driver would otherwise hand back a time.Time.
	rows, err := r.DB.QueryContext(ctx,
		"SELECT DATE_FORMAT(report_date, '%Y-%m-%d'), tickets_sold, total_sales_cents FROM sales_reports ORDER BY report_date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reports := make([]model.SalesReport, 0)
	for rows.Next() {
		var sr model.SalesReport
		if err := rows.Scan(&sr.Date, &sr.TicketsSold, &sr.TotalSalesCents); err != nil {
			return nil, err
		}
		reports = append(reports, sr)
	}
	return reports, rows.Err()
}
