package employee

import (
	"context"
)

// Repository is the record store contract. Fetch* methods return
// (nil, nil) when nothing matches a by-id lookup; mapping that to
// ErrNotFound is the service's job.
type Repository interface {
	FetchByID(ctx context.Context, id ID) (*Employee, error)
	FetchAll(ctx context.Context) (Employees, error)
	FetchPage(ctx context.Context, page, size int) (Employees, error)
	Create(ctx context.Context, e Employee) (*Employee, error)
	Save(ctx context.Context, e Employee) (*Employee, error)
	SaveAll(ctx context.Context, es Employees) error
	DeleteAll(ctx context.Context) error

	FetchByCountryContaining(ctx context.Context, country string, page, size int, sortBy []string, direction string) (Employees, error)
	FetchByGenderAndCountry(ctx context.Context, gender Gender, country string) (Employees, error)
	FetchWithActiveAddressByCountry(ctx context.Context, country string, page, size int) (Employees, error)
	FetchDeletedNull(ctx context.Context) (Employees, error)
	FetchPrivateNull(ctx context.Context) (Employees, error)
	FetchActive(ctx context.Context, page, size int) (Employees, error)
	FetchDeleted(ctx context.Context, page, size int) (Employees, error)
}
