package leave

import "context"

type LeaveService interface {
	Submit(ctx context.Context, req CreateRequestRequest) (RequestResponse, error)
	Cancel(ctx context.Context, id string) error
	Approve(ctx context.Context, req ReviewRequest) (RequestResponse, error)
	Reject(ctx context.Context, req ReviewRequest) (RequestResponse, error)

	Get(ctx context.Context, id string) (RequestResponse, error)
	ListMine(ctx context.Context) ([]RequestResponse, error)
	List(ctx context.Context, filter ListFilter) (ListResponse, error)
}
