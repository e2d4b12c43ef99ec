package employee

const (
	SelectEmployeeByID = `
		SELECT id, name, country, email, gender, is_deleted, is_private, is_confirmed
		FROM employees
		WHERE id = $1
	`
	SelectEmployees = `
		SELECT id, name, country, email, gender, is_deleted, is_private, is_confirmed
		FROM employees
		ORDER BY id
	`
	SelectEmployeesPage = `
		SELECT id, name, country, email, gender, is_deleted, is_private, is_confirmed
		FROM employees
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	InsertEmployee = `
		INSERT INTO employees (name, country, email, gender, is_deleted, is_private, is_confirmed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING
		  id, name, country, email, gender, is_deleted, is_private, is_confirmed
	`
	UpdateEmployeeByID = `
		UPDATE employees
		SET name = $1,
		    country = $2,
		    email = $3,
		    gender = $4,
		    is_deleted = $5,
		    is_private = $6,
		    is_confirmed = $7
		WHERE id = $8
		RETURNING
		  id, name, country, email, gender, is_deleted, is_private, is_confirmed
	`
	// Batch* variants carry no RETURNING so results read back via Exec.
	BatchInsertEmployee = `
		INSERT INTO employees (name, country, email, gender, is_deleted, is_private, is_confirmed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	BatchUpdateEmployee = `
		UPDATE employees
		SET name = $1,
		    country = $2,
		    email = $3,
		    gender = $4,
		    is_deleted = $5,
		    is_private = $6,
		    is_confirmed = $7
		WHERE id = $8
	`
	DeleteAllAddresses = `DELETE FROM addresses`
	DeleteAllEmployees = `DELETE FROM employees`

	// SelectByCountryContaining is completed with a built ORDER BY
	// clause, columns whitelisted in orderByClause.
	SelectByCountryContaining = `
		SELECT id, name, country, email, gender, is_deleted, is_private, is_confirmed
		FROM employees
		WHERE country LIKE '%%' || $1 || '%%'
		ORDER BY %s
		LIMIT $2 OFFSET $3
	`
	SelectByGenderAndCountry = `
		SELECT id, name, country, email, gender, is_deleted, is_private, is_confirmed
		FROM employees
		WHERE gender = $1 AND country = $2
		ORDER BY id
	`
	SelectWithActiveAddressByCountry = `
		SELECT e.id, e.name, e.country, e.email, e.gender, e.is_deleted, e.is_private, e.is_confirmed
		FROM employees e
		WHERE e.country = $1
		  AND EXISTS (
		    SELECT 1 FROM addresses a
		    WHERE a.employee_id = e.id AND a.active
		  )
		ORDER BY e.name ASC
		LIMIT $2 OFFSET $3
	`
	SelectDeletedNull = `
		SELECT id, name, country, email, gender, is_deleted, is_private, is_confirmed
		FROM employees
		WHERE is_deleted IS NULL
		ORDER BY id
	`
	SelectPrivateNull = `
		SELECT id, name, country, email, gender, is_deleted, is_private, is_confirmed
		FROM employees
		WHERE is_private IS NULL
		ORDER BY id
	`
	SelectActive = `
		SELECT id, name, country, email, gender, is_deleted, is_private, is_confirmed
		FROM employees
		WHERE is_deleted = FALSE
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`
	SelectDeleted = `
		SELECT id, name, country, email, gender, is_deleted, is_private, is_confirmed
		FROM employees
		WHERE is_deleted = TRUE
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`

	InsertAddress = `
		INSERT INTO addresses (employee_id, active, country, city, street)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	SelectAddressesByEmployeeIDs = `
		SELECT id, employee_id, active, country, city, street
		FROM addresses
		WHERE employee_id = ANY($1)
		ORDER BY id
	`
)
