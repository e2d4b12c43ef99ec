package validator

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"employee-directory-api/internal/domain/employee"
	dto "employee-directory-api/internal/interface/api/rest/dto/employee"
)

const (
	minNameLen = 2
	maxNameLen = 32

	defaultPageSize = 5
	maxPageSize     = 100
)

func ValidatePage(page string) (int, error) {
	if page == "" {
		return 0, nil
	}
	p, err := strconv.Atoi(page)
	if err != nil || p < 0 {
		return 0, errors.New("invalid page")
	}

	return p, nil
}

func ValidateSize(size string) (int, error) {
	if size == "" {
		return defaultPageSize, nil
	}
	s, err := strconv.Atoi(size)
	if err != nil || s < 1 || s > maxPageSize {
		return 0, errors.New("invalid size, want 1..100")
	}

	return s, nil
}

func ValidateID(id string) (employee.ID, error) {
	v, err := strconv.ParseUint(id, 10, 64)
	if err != nil || v == 0 {
		return 0, errors.New("invalid employee id")
	}

	return employee.ID(v), nil
}

func ValidateGender(gender string) (employee.Gender, error) {
	g := employee.Gender(strings.ToUpper(strings.TrimSpace(gender)))
	if !g.Valid() {
		return "", errors.New("invalid gender, want M or F")
	}

	return g, nil
}

func ValidateDirection(direction string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(direction)) {
	case "":
		return "DESC", nil
	case "ASC":
		return "ASC", nil
	case "DESC":
		return "DESC", nil
	}

	return "", errors.New("invalid sort direction, want ASC or DESC")
}

func ValidateQuantity(quantity string) (int, error) {
	q, err := strconv.Atoi(quantity)
	if err != nil || q < 1 {
		return 0, errors.New("invalid quantity")
	}

	return q, nil
}

func ValidateEmployee(r dto.Request) map[string]string {
	errs := make(map[string]string)

	// Normalize
	name, _, _ := transform.String(norm.NFC, strings.TrimSpace(r.Name))
	email := strings.ToLower(strings.TrimSpace(r.Email))

	// name (required + length)
	if name == "" {
		errs["name"] = "name is required"
	} else if l := utf8.RuneCountInString(name); l < minNameLen || l > maxNameLen {
		errs["name"] = "name must be between 2 and 32 characters long"
	}

	// email (required + format)
	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	}

	if r.Gender != "" {
		if _, err := ValidateGender(r.Gender); err != nil {
			errs["gender"] = err.Error()
		}
	}

	for _, a := range r.Addresses {
		if strings.TrimSpace(a.Country) == "" && strings.TrimSpace(a.City) == "" && strings.TrimSpace(a.Street) == "" {
			errs["addresses"] = "address must have at least one of country, city, street"
			break
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
