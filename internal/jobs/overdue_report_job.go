package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/kernel"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

type handler[Q, R any] interface {
	Handle(ctx context.Context, q Q) (R, error)
}

// ReportHandlers are the queries the overdue report runs.
type ReportHandlers struct {
	ListParcels  handler[queries.ListParcelsQuery, []queries.ParcelView]
	ListInvoices handler[queries.ListInvoicesQuery, []queries.InvoiceView]
	GetRevenue   handler[queries.GetRevenueQuery, queries.RevenueView]
}

// OverdueReport is the outcome of one run.
type OverdueReport struct {
	OverdueParcels  []string
	OverdueInvoices []string
	MonthStart      time.Time
	MonthToDate     string
}

// OverdueReportJob periodically logs parcels past their estimated delivery,
// PENDING invoices past their due date and the revenue of the current month.
type OverdueReportJob struct {
	handlers ReportHandlers
	actor    kernel.Actor
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	clock    func() time.Time
}

// NewOverdueReportJob creates the job. Queries run as a dedicated ADMIN actor.
func NewOverdueReportJob(schedule string, handlers ReportHandlers, logger *slog.Logger) (*OverdueReportJob, error) {
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &OverdueReportJob{
		handlers: handlers,
		actor:    actor,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "overdue_report_job"),
		clock:    time.Now,
	}, nil
}

// Start schedules the report.
func (j *OverdueReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Overdue report job failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue report job started", "schedule", j.schedule)
	return nil
}

// Stop stops the schedule and waits for a running report to finish.
func (j *OverdueReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Overdue report job stopped")
}

// Run builds and logs one report.
func (j *OverdueReportJob) Run(ctx context.Context) (OverdueReport, error) {
	current := j.clock()
	report := OverdueReport{MonthStart: now.With(current).BeginningOfMonth()}

	parcelsQuery, err := queries.NewListParcelsQuery(j.actor, queries.ScopeOverdue)
	if err != nil {
		return OverdueReport{}, err
	}
	parcels, err := j.handlers.ListParcels.Handle(ctx, parcelsQuery)
	if err != nil {
		return OverdueReport{}, fmt.Errorf("overdue parcels: %w", err)
	}
	for _, p := range parcels {
		report.OverdueParcels = append(report.OverdueParcels, p.TrackingNumber)
	}

	invoicesQuery, err := queries.NewListInvoicesQuery(j.actor, queries.InvoiceScopeOverdue)
	if err != nil {
		return OverdueReport{}, err
	}
	invoices, err := j.handlers.ListInvoices.Handle(ctx, invoicesQuery)
	if err != nil {
		return OverdueReport{}, fmt.Errorf("overdue invoices: %w", err)
	}
	for _, inv := range invoices {
		report.OverdueInvoices = append(report.OverdueInvoices, inv.InvoiceNumber)
	}

	revenueQuery, err := queries.NewGetRevenueQuery(j.actor, report.MonthStart, current)
	if err != nil {
		return OverdueReport{}, err
	}
	revenue, err := j.handlers.GetRevenue.Handle(ctx, revenueQuery)
	if err != nil {
		return OverdueReport{}, fmt.Errorf("month-to-date revenue: %w", err)
	}
	report.MonthToDate = revenue.Total

	j.logger.InfoContext(ctx, "Overdue report",
		"overdue_parcels", len(report.OverdueParcels),
		"overdue_invoices", len(report.OverdueInvoices),
		"month_start", report.MonthStart,
		"month_to_date_revenue", report.MonthToDate)
	for _, tn := range report.OverdueParcels {
		j.logger.WarnContext(ctx, "Parcel is overdue", "tracking_number", tn)
	}
	return report, nil
}
