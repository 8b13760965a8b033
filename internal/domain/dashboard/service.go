package dashboard

import "context"

type DashboardService interface {
	AdminSummary(ctx context.Context) (AdminSummary, error)
	EmployeeOverview(ctx context.Context) (EmployeeOverview, error)
}
