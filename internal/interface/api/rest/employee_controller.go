package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"employee-directory-api/internal/application/ports"
	domain "employee-directory-api/internal/domain/employee"
	"employee-directory-api/internal/interface/api/rest/dto/employee"
	"employee-directory-api/internal/interface/api/rest/validator"
)

type EmployeeController struct {
	employeeService ports.EmployeeService
	logger          *zap.Logger
}

func NewEmployeeController(
	r *gin.Engine,
	employeeService ports.EmployeeService,
	logger *zap.Logger,
) *EmployeeController {
	ec := &EmployeeController{
		employeeService: employeeService,
		logger:          logger,
	}

	r.POST(RouteEmployees, ec.CreateEmployeeHandler)
	r.GET(RouteEmployees, ec.GetEmployeesHandler)
	r.GET(RouteEmployeesPage, ec.GetEmployeesPageHandler)
	r.GET(RouteEmployee, ec.GetEmployeeHandler)
	r.PUT(RouteEmployee, ec.UpdateEmployeeHandler)
	r.PATCH(RouteEmployee, ec.RemoveEmployeeHandler)
	r.DELETE(RouteEmployees, ec.RemoveAllHandler)

	r.GET(RouteByCountry, ec.GetByCountryHandler)
	r.GET(RouteCountries, ec.GetCountriesHandler)
	r.GET(RouteSortedCountries, ec.GetSortedCountriesHandler)
	r.GET(RouteFirstComEmail, ec.GetFirstComEmailHandler)
	r.GET(RouteByGender, ec.GetByGenderHandler)
	r.GET(RouteActiveAddress, ec.GetActiveAddressHandler)
	r.GET(RouteProcIsDeleted, ec.FixDeletedNullHandler)
	r.GET(RouteProcIsPrivate, ec.FixPrivateNullHandler)
	r.GET(RouteActive, ec.GetActiveHandler)
	r.GET(RouteDeleted, ec.GetDeletedHandler)

	r.POST(RouteConfirmRequest, ec.RequestConfirmationHandler)
	r.POST(RouteConfirm, ec.ConfirmHandler)

	r.POST(RouteGenerate, ec.GenerateHandler)
	r.PATCH(RouteMassUpdate, ec.MassUpdateHandler)

	return ec
}

func (ec *EmployeeController) CreateEmployeeHandler(c *gin.Context) {
	var req employee.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateEmployee(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	eDomain, err := employee.ToDomainEmployee(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	e, err := ec.employeeService.Create(c.Request.Context(), eDomain)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to create an employee"},
		)
		ec.logger.Error("Create() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, employee.ToResponseEmployee(*e))
}

func (ec *EmployeeController) GetEmployeesHandler(c *gin.Context) {
	employees, err := ec.employeeService.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get employees"},
		)
		ec.logger.Error("FindAll() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, employee.ResponseData{
		Data: employee.ToResponseEmployees(employees),
	})
}

func (ec *EmployeeController) GetEmployeesPageHandler(c *gin.Context) {
	page, size, ok := ec.pageParams(c)
	if !ok {
		return
	}

	employees, err := ec.employeeService.FindPage(c.Request.Context(), page, size)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get employees"},
		)
		ec.logger.Error("FindPage() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, employee.ResponseData{
		Data: employee.ToResponseEmployees(employees),
	})
}

func (ec *EmployeeController) GetEmployeeHandler(c *gin.Context) {
	id, err := validator.ValidateID(c.Param("employee_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := ec.employeeService.FindByID(c.Request.Context(), id)
	if err != nil {
		ec.visibilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee.ToResponseEmployee(*e))
}

// visibilityError maps the visibility gate outcomes. Soft-deleted is
// 410, not 404: the record did exist.
func (ec *EmployeeController) visibilityError(c *gin.Context, err error) {
	var unconfirmed *domain.UnconfirmedDataError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
	case errors.Is(err, domain.ErrNotVisible):
		c.JSON(http.StatusGone, gin.H{"error": "employee was removed"})
	case errors.Is(err, domain.ErrPrivate):
		c.JSON(http.StatusForbidden, gin.H{"error": "employee is private"})
	case errors.As(err, &unconfirmed):
		c.JSON(http.StatusConflict, gin.H{
			"error": "employee has not confirmed data",
			"name":  unconfirmed.Name,
			"email": unconfirmed.Email,
		})
	default:
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get an employee"},
		)
		ec.logger.Error("FindByID() error", zap.Error(err))
	}
}

func (ec *EmployeeController) UpdateEmployeeHandler(c *gin.Context) {
	id, err := validator.ValidateID(c.Param("employee_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req employee.Request
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateEmployee(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	eDomain, err := employee.ToDomainEmployee(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	e, err := ec.employeeService.UpdateByID(c.Request.Context(), id, eDomain)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update an employee"},
		)
		ec.logger.Error("UpdateByID() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, employee.ToResponseEmployee(*e))
}

func (ec *EmployeeController) RemoveEmployeeHandler(c *gin.Context) {
	id, err := validator.ValidateID(c.Param("employee_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err = ec.employeeService.RemoveByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to remove an employee"},
		)
		ec.logger.Error("RemoveByID() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (ec *EmployeeController) RemoveAllHandler(c *gin.Context) {
	if err := ec.employeeService.RemoveAll(c.Request.Context()); err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to remove employees"},
		)
		ec.logger.Error("RemoveAll() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (ec *EmployeeController) GetByCountryHandler(c *gin.Context) {
	page, size, ok := ec.pageParams(c)
	if !ok {
		return
	}
	direction, err := validator.ValidateDirection(c.Query("order"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employees, err := ec.employeeService.FindByCountryContaining(
		c.Request.Context(),
		c.Query("country"),
		page, size,
		c.QueryArray("sort"),
		direction,
	)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get employees by country"},
		)
		ec.logger.Error("FindByCountryContaining() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, employee.ResponseData{
		Data: employee.ToResponseEmployees(employees),
	})
}

func (ec *EmployeeController) GetCountriesHandler(c *gin.Context) {
	countries, err := ec.employeeService.ListCountries(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get countries"},
		)
		ec.logger.Error("ListCountries() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": countries})
}

func (ec *EmployeeController) GetSortedCountriesHandler(c *gin.Context) {
	countries, err := ec.employeeService.SortedUCountries(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get sorted countries"},
		)
		ec.logger.Error("SortedUCountries() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": countries})
}

func (ec *EmployeeController) GetFirstComEmailHandler(c *gin.Context) {
	email, err := ec.employeeService.FirstComEmail(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get emails"},
		)
		ec.logger.Error("FirstComEmail() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": email})
}

func (ec *EmployeeController) GetByGenderHandler(c *gin.Context) {
	gender, err := validator.ValidateGender(c.Query("gender"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employees, err := ec.employeeService.FindByGenderAndCountry(
		c.Request.Context(), gender, c.Query("country"),
	)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get employees by gender"},
		)
		ec.logger.Error("FindByGenderAndCountry() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, employee.ResponseData{
		Data: employee.ToResponseEmployees(employees),
	})
}

func (ec *EmployeeController) GetActiveAddressHandler(c *gin.Context) {
	page, size, ok := ec.pageParams(c)
	if !ok {
		return
	}

	employees, err := ec.employeeService.FindActiveAddressByCountry(
		c.Request.Context(), c.Query("country"), page, size,
	)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get employees with active address"},
		)
		ec.logger.Error("FindActiveAddressByCountry() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, employee.ResponseData{
		Data: employee.ToResponseEmployees(employees),
	})
}

func (ec *EmployeeController) FixDeletedNullHandler(c *gin.Context) {
	employees, err := ec.employeeService.FixDeletedNull(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to fix is_deleted flags"},
		)
		ec.logger.Error("FixDeletedNull() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, employee.ResponseData{
		Data: employee.ToResponseEmployees(employees),
	})
}

func (ec *EmployeeController) FixPrivateNullHandler(c *gin.Context) {
	employees, err := ec.employeeService.FixPrivateNull(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to fix is_private flags"},
		)
		ec.logger.Error("FixPrivateNull() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, employee.ResponseData{
		Data: employee.ToResponseEmployees(employees),
	})
}

func (ec *EmployeeController) GetActiveHandler(c *gin.Context) {
	page, size, ok := ec.pageParams(c)
	if !ok {
		return
	}

	employees, err := ec.employeeService.FindAllActive(c.Request.Context(), page, size)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get active employees"},
		)
		ec.logger.Error("FindAllActive() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, employee.ResponseData{
		Data: employee.ToResponseEmployees(employees),
	})
}

func (ec *EmployeeController) GetDeletedHandler(c *gin.Context) {
	page, size, ok := ec.pageParams(c)
	if !ok {
		return
	}

	employees, err := ec.employeeService.FindAllDeleted(c.Request.Context(), page, size)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get deleted employees"},
		)
		ec.logger.Error("FindAllDeleted() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, employee.ResponseData{
		Data: employee.ToResponseEmployees(employees),
	})
}

func (ec *EmployeeController) RequestConfirmationHandler(c *gin.Context) {
	id, err := validator.ValidateID(c.Param("employee_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err = ec.employeeService.RequestConfirmation(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to request confirmation"},
		)
		ec.logger.Error("RequestConfirmation() error", zap.Error(err))
		return
	}

	c.Status(http.StatusAccepted)
}

func (ec *EmployeeController) ConfirmHandler(c *gin.Context) {
	id, err := validator.ValidateID(c.Param("employee_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err = ec.employeeService.Confirm(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to confirm"},
		)
		ec.logger.Error("Confirm() error", zap.Error(err))
		return
	}

	c.Status(http.StatusOK)
}

func (ec *EmployeeController) GenerateHandler(c *gin.Context) {
	quantity, err := validator.ValidateQuantity(c.Param("quantity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	clear := c.DefaultQuery("clear", "false") == "true"

	start := time.Now()
	if err = ec.employeeService.Generate(c.Request.Context(), quantity, clear); err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to generate employees"},
		)
		ec.logger.Error("Generate() error", zap.Error(err))
		return
	}
	elapsed := time.Since(start)

	ec.logger.Info("generate finished",
		zap.Int("quantity", quantity),
		zap.Bool("clear", clear),
		zap.Duration("duration", elapsed),
	)

	c.JSON(http.StatusCreated, employee.ElapsedResponse{ElapsedMs: elapsed.Milliseconds()})
}

func (ec *EmployeeController) MassUpdateHandler(c *gin.Context) {
	start := time.Now()
	if err := ec.employeeService.MassUpdate(c.Request.Context()); err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to mass update employees"},
		)
		ec.logger.Error("MassUpdate() error", zap.Error(err))
		return
	}
	elapsed := time.Since(start)

	ec.logger.Info("mass update finished", zap.Duration("duration", elapsed))

	c.JSON(http.StatusOK, employee.ElapsedResponse{ElapsedMs: elapsed.Milliseconds()})
}

func (ec *EmployeeController) pageParams(c *gin.Context) (int, int, bool) {
	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, 0, false
	}
	size, err := validator.ValidateSize(c.Query("size"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, 0, false
	}

	return page, size, true
}
