package employee

type (
	ID     uint64
	Gender string

	// Employee is the directory record. IsDeleted and IsPrivate are
	// tri-state: nil means the flag was never resolved and must be
	// materialized on first read.
	Employee struct {
		ID        ID
		Name      string
		Country   string
		Email     string
		Gender    *Gender
		Addresses []Address

		IsDeleted   *bool
		IsPrivate   *bool
		IsConfirmed bool
	}
	Employees []*Employee

	// Address has no lifecycle of its own, it belongs to exactly one employee.
	Address struct {
		ID      ID
		Active  bool
		Country string
		City    string
		Street  string
	}
)

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// HiddenValue replaces name, email and country of private records in
// collection listings.
const HiddenValue = "is hidden"

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Deleted reports the materialized value of IsDeleted; an unset flag
// counts as not deleted.
func (e *Employee) Deleted() bool {
	return e.IsDeleted != nil && *e.IsDeleted
}

// Private reports whether the record must be hidden in listings: both
// the explicit true and the never-materialized nil count as private.
func (e *Employee) Private() bool {
	return e.IsPrivate == nil || *e.IsPrivate
}
