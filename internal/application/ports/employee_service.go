package ports

import (
	"context"

	"employee-directory-api/internal/domain/employee"
)

type EmployeeService interface {
	Create(ctx context.Context, e employee.Employee) (*employee.Employee, error)
	FindAll(ctx context.Context) (employee.Employees, error)
	FindPage(ctx context.Context, page, size int) (employee.Employees, error)
	FindByID(ctx context.Context, id employee.ID) (*employee.Employee, error)
	UpdateByID(ctx context.Context, id employee.ID, e employee.Employee) (*employee.Employee, error)
	RemoveByID(ctx context.Context, id employee.ID) error
	RemoveAll(ctx context.Context) error

	FindByCountryContaining(ctx context.Context, country string, page, size int, sortBy []string, direction string) (employee.Employees, error)
	ListCountries(ctx context.Context) ([]string, error)
	SortedUCountries(ctx context.Context) ([]string, error)
	FirstComEmail(ctx context.Context) (string, error)
	FindByGenderAndCountry(ctx context.Context, gender employee.Gender, country string) (employee.Employees, error)
	FindActiveAddressByCountry(ctx context.Context, country string, page, size int) (employee.Employees, error)
	FixDeletedNull(ctx context.Context) (employee.Employees, error)
	FixPrivateNull(ctx context.Context) (employee.Employees, error)
	FindAllActive(ctx context.Context, page, size int) (employee.Employees, error)
	FindAllDeleted(ctx context.Context, page, size int) (employee.Employees, error)

	RequestConfirmation(ctx context.Context, id employee.ID) error
	Confirm(ctx context.Context, id employee.ID) error

	Generate(ctx context.Context, quantity int, clear bool) error
	MassUpdate(ctx context.Context) error
}
