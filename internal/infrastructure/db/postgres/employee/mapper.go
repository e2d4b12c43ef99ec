package employee

import (
	domain "employee-directory-api/internal/domain/employee"
)

func fromDBModel(model *Employee) *domain.Employee {
	var e = &domain.Employee{
		ID:          domain.ID(model.ID),
		Name:        deref(model.Name),
		Country:     deref(model.Country),
		Email:       deref(model.Email),
		Gender:      (*domain.Gender)(model.Gender),
		IsDeleted:   model.IsDeleted,
		IsPrivate:   model.IsPrivate,
		IsConfirmed: model.IsConfirmed,
	}

	for _, a := range model.Addresses {
		e.Addresses = append(e.Addresses, domain.Address{
			ID:      domain.ID(a.ID),
			Active:  a.Active,
			Country: deref(a.Country),
			City:    deref(a.City),
			Street:  deref(a.Street),
		})
	}

	return e
}

func fromDBModels(models Employees) domain.Employees {
	es := make(domain.Employees, len(models))
	for idx, e := range models {
		es[idx] = fromDBModel(e)
	}

	return es
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// asNullable maps the domain's empty string back to a NULL column.
func asNullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
