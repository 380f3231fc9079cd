package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"invoicedesk/internal/auth"
	"invoicedesk/internal/model"
	"invoicedesk/internal/repository"
)

const (
	dashboardMonths = 12
	recentActivity  = 10
)

type AnalyticsService interface {
	Dashboard(ctx context.Context, s *auth.Session) (*model.Dashboard, error)
	ListEvents(ctx context.Context, s *auth.Session, page, limit int) ([]model.AnalyticsEvent, int64, error)
}

type analyticsService struct {
	invoices repository.DocumentRepository[model.Invoice]
	events   repository.AnalyticsRepository
}

func NewAnalyticsService(invoices repository.DocumentRepository[model.Invoice], events repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{invoices: invoices, events: events}
}

// Dashboard recomputes the overview from scratch on every call.
func (s *analyticsService) Dashboard(ctx context.Context, sess *auth.Session) (*model.Dashboard, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}

	invoices, err := s.invoices.ListByUser(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	events, err := s.events.ListByUser(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics events: %w", err)
	}

	return BuildDashboard(invoices, events), nil
}

func (s *analyticsService) ListEvents(ctx context.Context, sess *auth.Session, page, limit int) ([]model.AnalyticsEvent, int64, error) {
	if sess == nil {
		return nil, 0, ErrUnauthenticated
	}
	events, total, err := s.events.List(ctx, sess.UserID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list analytics events: %w", err)
	}
	return events, total, nil
}

// BuildDashboard aggregates invoices and events. Invoices whose issueDate
// cannot be parsed count toward the summary but not toward any month.
func BuildDashboard(invoices []model.Invoice, events []model.AnalyticsEvent) *model.Dashboard {
	d := &model.Dashboard{
		MonthlyRevenue:   []model.MonthlyRevenue{},
		RecentActivity:   []model.AnalyticsEvent{},
		InvoicesByStatus: make(map[string]int, len(model.Statuses)),
	}
	for _, status := range model.Statuses {
		d.InvoicesByStatus[status] = 0
	}

	months := map[string]*model.MonthlyRevenue{}
	for _, inv := range invoices {
		d.Summary.TotalInvoices++
		d.Summary.TotalRevenue += inv.Total
		if _, known := d.InvoicesByStatus[inv.Status]; known {
			d.InvoicesByStatus[inv.Status]++
		}

		switch inv.Status {
		case model.StatusPaid:
			d.Summary.PaidInvoices++
			d.Summary.PaidRevenue += inv.Total
		case model.StatusSent:
			d.Summary.PendingInvoices++
			d.Summary.PendingRevenue += inv.Total
		case model.StatusOverdue:
			d.Summary.OverdueInvoices++
			d.Summary.OverdueRevenue += inv.Total
		}

		key, ok := monthKey(inv.IssueDate)
		if !ok {
			continue
		}
		m, exists := months[key]
		if !exists {
			m = &model.MonthlyRevenue{Month: key}
			months[key] = m
		}
		m.Total += inv.Total
		switch inv.Status {
		case model.StatusPaid:
			m.Paid += inv.Total
		case model.StatusSent:
			m.Pending += inv.Total
		}
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > dashboardMonths {
		keys = keys[len(keys)-dashboardMonths:]
	}
	for _, k := range keys {
		d.MonthlyRevenue = append(d.MonthlyRevenue, *months[k])
	}

	recent := append([]model.AnalyticsEvent(nil), events...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentActivity {
		recent = recent[:recentActivity]
	}
	d.RecentActivity = append(d.RecentActivity, recent...)

	return d
}

var issueDateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04", "2006-01-02T15:04:05"}

func monthKey(issueDate string) (string, bool) {
	for _, layout := range issueDateLayouts {
		if t, err := time.Parse(layout, issueDate); err == nil {
			return t.Format("2006-01"), true
		}
	}
	return "", false
}
