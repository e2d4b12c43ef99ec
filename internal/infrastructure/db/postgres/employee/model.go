package employee

type (
	// Employee mirrors the employees table. Name, country, email and
	// gender are nullable columns; is_deleted and is_private keep NULL
	// as a distinct persisted state until first materialization.
	Employee struct {
		ID          uint64
		Name        *string
		Country     *string
		Email       *string
		Gender      *string
		IsDeleted   *bool
		IsPrivate   *bool
		IsConfirmed bool

		Addresses []*Address
	}
	Employees []*Employee

	Address struct {
		ID         uint64
		EmployeeID uint64
		Active     bool
		Country    *string
		City       *string
		Street     *string
	}
)
