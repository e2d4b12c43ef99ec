package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domain "employee-directory-api/internal/domain/employee"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type Repository struct {
	db DB
}

func NewRepository(db DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchByID(ctx context.Context, id domain.ID) (*domain.Employee, error) {
	e := new(Employee)
	err := r.db.QueryRow(ctx, SelectEmployeeByID, uint64(id)).Scan(
		&e.ID,
		&e.Name,
		&e.Country,
		&e.Email,
		&e.Gender,
		&e.IsDeleted,
		&e.IsPrivate,
		&e.IsConfirmed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err = r.attachAddresses(ctx, Employees{e}); err != nil {
		return nil, err
	}

	return fromDBModel(e), nil
}

func (r *Repository) FetchAll(ctx context.Context) (domain.Employees, error) {
	es, err := r.queryEmployees(ctx, SelectEmployees)
	if err != nil {
		return nil, err
	}
	if err = r.attachAddresses(ctx, es); err != nil {
		return nil, err
	}

	return fromDBModels(es), nil
}

func (r *Repository) FetchPage(ctx context.Context, page, size int) (domain.Employees, error) {
	es, err := r.queryEmployees(ctx, SelectEmployeesPage, size, page*size)
	if err != nil {
		return nil, err
	}
	if err = r.attachAddresses(ctx, es); err != nil {
		return nil, err
	}

	return fromDBModels(es), nil
}

func (r *Repository) Create(ctx context.Context, req domain.Employee) (*domain.Employee, error) {
	e := new(Employee)

	// todo: wrap employee and address inserts in a transaction
	err := r.db.QueryRow(
		ctx,
		InsertEmployee,
		asNullable(req.Name), asNullable(req.Country), asNullable(req.Email),
		(*string)(req.Gender), req.IsDeleted, req.IsPrivate, req.IsConfirmed,
	).Scan(
		&e.ID,
		&e.Name,
		&e.Country,
		&e.Email,
		&e.Gender,
		&e.IsDeleted,
		&e.IsPrivate,
		&e.IsConfirmed,
	)
	if err != nil {
		return nil, err
	}

	for _, a := range req.Addresses {
		m := &Address{
			EmployeeID: e.ID,
			Active:     a.Active,
			Country:    asNullable(a.Country),
			City:       asNullable(a.City),
			Street:     asNullable(a.Street),
		}
		if err = r.db.QueryRow(
			ctx,
			InsertAddress,
			m.EmployeeID, m.Active, m.Country, m.City, m.Street,
		).Scan(&m.ID); err != nil {
			return nil, err
		}
		e.Addresses = append(e.Addresses, m)
	}

	return fromDBModel(e), nil
}

func (r *Repository) Save(ctx context.Context, req domain.Employee) (*domain.Employee, error) {
	e := new(Employee)

	err := r.db.QueryRow(
		ctx,
		UpdateEmployeeByID,
		asNullable(req.Name), asNullable(req.Country), asNullable(req.Email),
		(*string)(req.Gender), req.IsDeleted, req.IsPrivate, req.IsConfirmed,
		uint64(req.ID),
	).Scan(
		&e.ID,
		&e.Name,
		&e.Country,
		&e.Email,
		&e.Gender,
		&e.IsDeleted,
		&e.IsPrivate,
		&e.IsConfirmed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(e), nil
}

// SaveAll writes the whole batch in one round trip. Records without an
// id are inserted, the rest updated in place.
func (r *Repository) SaveAll(ctx context.Context, es domain.Employees) error {
	if len(es) == 0 {
		return nil
	}

	b := &pgx.Batch{}
	for _, e := range es {
		if e.ID == 0 {
			b.Queue(
				BatchInsertEmployee,
				asNullable(e.Name), asNullable(e.Country), asNullable(e.Email),
				(*string)(e.Gender), e.IsDeleted, e.IsPrivate, e.IsConfirmed,
			)
			continue
		}
		b.Queue(
			BatchUpdateEmployee,
			asNullable(e.Name), asNullable(e.Country), asNullable(e.Email),
			(*string)(e.Gender), e.IsDeleted, e.IsPrivate, e.IsConfirmed,
			uint64(e.ID),
		)
	}

	br := r.db.SendBatch(ctx, b)
	defer br.Close()

	for range es {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch save: %w", err)
		}
	}

	return br.Close()
}

func (r *Repository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, DeleteAllAddresses); err != nil {
		return fmt.Errorf("delete addresses: %w", err)
	}
	if _, err := r.db.Exec(ctx, DeleteAllEmployees); err != nil {
		return fmt.Errorf("delete employees: %w", err)
	}

	return nil
}

func (r *Repository) FetchByCountryContaining(ctx context.Context, country string, page, size int, sortBy []string, direction string) (domain.Employees, error) {
	q := fmt.Sprintf(SelectByCountryContaining, orderByClause(sortBy, direction))
	es, err := r.queryEmployees(ctx, q, country, size, page*size)
	if err != nil {
		return nil, err
	}

	return fromDBModels(es), nil
}

func (r *Repository) FetchByGenderAndCountry(ctx context.Context, gender domain.Gender, country string) (domain.Employees, error) {
	es, err := r.queryEmployees(ctx, SelectByGenderAndCountry, string(gender), country)
	if err != nil {
		return nil, err
	}

	return fromDBModels(es), nil
}

func (r *Repository) FetchWithActiveAddressByCountry(ctx context.Context, country string, page, size int) (domain.Employees, error) {
	es, err := r.queryEmployees(ctx, SelectWithActiveAddressByCountry, country, size, page*size)
	if err != nil {
		return nil, err
	}
	if err = r.attachAddresses(ctx, es); err != nil {
		return nil, err
	}

	return fromDBModels(es), nil
}

func (r *Repository) FetchDeletedNull(ctx context.Context) (domain.Employees, error) {
	es, err := r.queryEmployees(ctx, SelectDeletedNull)
	if err != nil {
		return nil, err
	}

	return fromDBModels(es), nil
}

func (r *Repository) FetchPrivateNull(ctx context.Context) (domain.Employees, error) {
	es, err := r.queryEmployees(ctx, SelectPrivateNull)
	if err != nil {
		return nil, err
	}

	return fromDBModels(es), nil
}

func (r *Repository) FetchActive(ctx context.Context, page, size int) (domain.Employees, error) {
	es, err := r.queryEmployees(ctx, SelectActive, size, page*size)
	if err != nil {
		return nil, err
	}

	return fromDBModels(es), nil
}

func (r *Repository) FetchDeleted(ctx context.Context, page, size int) (domain.Employees, error) {
	es, err := r.queryEmployees(ctx, SelectDeleted, size, page*size)
	if err != nil {
		return nil, err
	}

	return fromDBModels(es), nil
}

func (r *Repository) queryEmployees(ctx context.Context, sql string, args ...any) (Employees, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var es Employees
	for rows.Next() {
		e := new(Employee)

		if err = rows.Scan(
			&e.ID,
			&e.Name,
			&e.Country,
			&e.Email,
			&e.Gender,
			&e.IsDeleted,
			&e.IsPrivate,
			&e.IsConfirmed,
		); err != nil {
			return nil, err
		}

		es = append(es, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return es, nil
}

func (r *Repository) attachAddresses(ctx context.Context, es Employees) error {
	if len(es) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(es))
	byID := make(map[uint64]*Employee, len(es))
	for _, e := range es {
		ids = append(ids, e.ID)
		byID[e.ID] = e
	}

	rows, err := r.db.Query(ctx, SelectAddressesByEmployeeIDs, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		a := new(Address)
		if err = rows.Scan(
			&a.ID,
			&a.EmployeeID,
			&a.Active,
			&a.Country,
			&a.City,
			&a.Street,
		); err != nil {
			return err
		}
		if e, ok := byID[a.EmployeeID]; ok {
			e.Addresses = append(e.Addresses, a)
		}
	}

	return rows.Err()
}

var sortColumns = map[string]string{
	"id":      "id",
	"name":    "name",
	"country": "country",
	"email":   "email",
}

// orderByClause builds the ORDER BY for the country filter. Unknown
// fields are dropped, the direction defaults to DESC per field.
func orderByClause(sortBy []string, direction string) string {
	dir := strings.ToUpper(strings.TrimSpace(direction))
	if dir != "ASC" && dir != "DESC" {
		dir = "DESC"
	}

	var parts []string
	for _, f := range sortBy {
		col, ok := sortColumns[strings.ToLower(strings.TrimSpace(f))]
		if !ok {
			continue
		}
		parts = append(parts, col+" "+dir)
	}
	if len(parts) == 0 {
		return "id " + dir
	}

	return strings.Join(parts, ", ")
}
