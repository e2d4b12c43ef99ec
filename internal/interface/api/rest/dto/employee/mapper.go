package employee

import (
	"errors"

	domain "employee-directory-api/internal/domain/employee"
)

// Plain conversion functions, no shared mapper instance: the projection
// carries no state of its own.

func ToResponseEmployee(eDomain domain.Employee) Employee {
	var e = Employee{
		ID:          uint64(eDomain.ID),
		Name:        eDomain.Name,
		Country:     eDomain.Country,
		Email:       eDomain.Email,
		Gender:      (*string)(eDomain.Gender),
		IsDeleted:   eDomain.IsDeleted,
		IsPrivate:   eDomain.IsPrivate,
		IsConfirmed: eDomain.IsConfirmed,
	}

	for _, a := range eDomain.Addresses {
		e.Addresses = append(e.Addresses, Address{
			ID:      uint64(a.ID),
			Active:  a.Active,
			Country: a.Country,
			City:    a.City,
			Street:  a.Street,
		})
	}

	return e
}

func ToResponseEmployees(esDomain domain.Employees) Employees {
	es := make(Employees, len(esDomain))
	for idx, e := range esDomain {
		es[idx] = ToResponseEmployee(*e)
	}

	return es
}

func ToDomainEmployee(eRequest Request) (domain.Employee, error) {
	var e = domain.Employee{
		Name:    eRequest.Name,
		Country: eRequest.Country,
		Email:   eRequest.Email,
	}

	if eRequest.Gender != "" {
		g := domain.Gender(eRequest.Gender)
		if !g.Valid() {
			return domain.Employee{}, errors.New("invalid gender, want M or F")
		}
		e.Gender = &g
	}

	for _, a := range eRequest.Addresses {
		active := true
		if a.Active != nil {
			active = *a.Active
		}
		e.Addresses = append(e.Addresses, domain.Address{
			Active:  active,
			Country: a.Country,
			City:    a.City,
			Street:  a.Street,
		})
	}

	return e, nil
}
