package attendance

import "context"

type AttendanceService interface {
	CheckIn(ctx context.Context) (RecordResponse, error)
	BreakStart(ctx context.Context) (RecordResponse, error)
	BreakEnd(ctx context.Context) (RecordResponse, error)
	CheckOut(ctx context.Context) (RecordResponse, error)

	// Today returns nil when the caller has no record for today.
	Today(ctx context.Context) (*RecordResponse, error)

	History(ctx context.Context, filter HistoryFilter) (ListResponse, error)
	List(ctx context.Context, filter ListFilter) (ListResponse, error)
}
