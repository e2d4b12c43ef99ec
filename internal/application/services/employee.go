package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"employee-directory-api/config"
	"employee-directory-api/internal/application/ports"
	domain "employee-directory-api/internal/domain/employee"
	"employee-directory-api/internal/infrastructure/mq"
)

// GeneratedEmail is the placeholder address of bulk-generated records.
const GeneratedEmail = "generated@example.com"

// NoComEmail is returned by FirstComEmail when no address ends with ".com".
const NoComEmail = "error?"

type EmployeeService struct {
	employeeRepository domain.Repository
	mail               ports.MailGateway
	mailCfg            config.Mail
	mCounter           *prometheus.CounterVec
	logger             *zap.Logger
}

func NewEmployeeService(
	employeeRepository domain.Repository,
	mail ports.MailGateway,
	mailCfg config.Mail,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.EmployeeService {
	return &EmployeeService{
		employeeRepository: employeeRepository,
		mail:               mail,
		mailCfg:            mailCfg,
		mCounter:           mCounter,
		logger:             logger,
	}
}

func (es *EmployeeService) Create(ctx context.Context, e domain.Employee) (*domain.Employee, error) {
	eRet, err := es.employeeRepository.Create(ctx, e)
	if err != nil {
		return nil, err
	}

	es.mCounter.WithLabelValues("employee_created_total").Inc()

	return eRet, nil
}

func (es *EmployeeService) FindAll(ctx context.Context) (domain.Employees, error) {
	employees, err := es.employeeRepository.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	return hideAll(employees), nil
}

func (es *EmployeeService) FindPage(ctx context.Context, page, size int) (domain.Employees, error) {
	employees, err := es.employeeRepository.FetchPage(ctx, page, size)
	if err != nil {
		return nil, err
	}

	return hideAll(employees), nil
}

// FindByID is a side-effecting read: unset tri-state flags are resolved
// to their defaults and persisted before the visibility gate runs.
// Persist-then-check: a failed flag save is logged, the in-memory value
// still drives the gate for the current call.
func (es *EmployeeService) FindByID(ctx context.Context, id domain.ID) (*domain.Employee, error) {
	e, err := es.employeeRepository.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}

	es.materializeDeleted(ctx, e)
	es.materializePrivate(ctx, e)

	// Gate order matters: a soft-deleted private record reports deletion,
	// not privacy.
	if *e.IsDeleted {
		return nil, domain.ErrNotVisible
	}
	if *e.IsPrivate {
		return nil, domain.ErrPrivate
	}
	if !e.IsConfirmed {
		return nil, &domain.UnconfirmedDataError{Name: e.Name, Email: e.Email}
	}

	return e, nil
}

func (es *EmployeeService) materializeDeleted(ctx context.Context, e *domain.Employee) {
	if e.IsDeleted != nil {
		return
	}
	v := false
	e.IsDeleted = &v
	if _, err := es.employeeRepository.Save(ctx, *e); err != nil {
		es.logger.Error("materialize is_deleted save failed",
			zap.Uint64("id", uint64(e.ID)), zap.Error(err))
	}
}

func (es *EmployeeService) materializePrivate(ctx context.Context, e *domain.Employee) {
	if e.IsPrivate != nil {
		return
	}
	v := true
	e.IsPrivate = &v
	if _, err := es.employeeRepository.Save(ctx, *e); err != nil {
		es.logger.Error("materialize is_private save failed",
			zap.Uint64("id", uint64(e.ID)), zap.Error(err))
	}
}

// hideDetails redacts a private record for collection exposure. Pure:
// it returns a shallow copy and never writes anything back.
func hideDetails(e *domain.Employee) *domain.Employee {
	if !e.Private() {
		return e
	}

	hidden := *e
	hidden.Name = domain.HiddenValue
	hidden.Email = domain.HiddenValue
	hidden.Country = domain.HiddenValue
	hidden.Addresses = nil
	hidden.Gender = nil

	return &hidden
}

func hideAll(employees domain.Employees) domain.Employees {
	out := make(domain.Employees, len(employees))
	for idx, e := range employees {
		out[idx] = hideDetails(e)
	}

	return out
}

func (es *EmployeeService) UpdateByID(ctx context.Context, id domain.ID, e domain.Employee) (*domain.Employee, error) {
	cur, err := es.employeeRepository.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, domain.ErrNotFound
	}

	cur.Name = e.Name
	cur.Email = e.Email
	cur.Country = e.Country

	eRet, err := es.employeeRepository.Save(ctx, *cur)
	if err != nil {
		return nil, err
	}

	es.mCounter.WithLabelValues("employee_updated_total").Inc()

	return eRet, nil
}

// RemoveByID is a soft delete: the record stays in storage with
// is_deleted set.
func (es *EmployeeService) RemoveByID(ctx context.Context, id domain.ID) error {
	e, err := es.employeeRepository.FetchByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}

	v := true
	e.IsDeleted = &v
	if _, err = es.employeeRepository.Save(ctx, *e); err != nil {
		return err
	}

	es.mCounter.WithLabelValues("employee_deleted_total").Inc()

	return nil
}

func (es *EmployeeService) RemoveAll(ctx context.Context) error {
	return es.employeeRepository.DeleteAll(ctx)
}

func (es *EmployeeService) FindByCountryContaining(ctx context.Context, country string, page, size int, sortBy []string, direction string) (domain.Employees, error) {
	return es.employeeRepository.FetchByCountryContaining(ctx, country, page, size, sortBy, direction)
}

// ListCountries returns every record's country in iteration order,
// duplicates included.
func (es *EmployeeService) ListCountries(ctx context.Context) ([]string, error) {
	employees, err := es.employeeRepository.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	countries := make([]string, 0, len(employees))
	for _, e := range employees {
		countries = append(countries, e.Country)
	}

	return countries, nil
}

// SortedUCountries returns countries starting with "U" in ascending
// order. Records without a country are skipped.
func (es *EmployeeService) SortedUCountries(ctx context.Context) ([]string, error) {
	employees, err := es.employeeRepository.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	var countries []string
	for _, e := range employees {
		if e.Country == "" {
			continue
		}
		if strings.HasPrefix(e.Country, "U") {
			countries = append(countries, e.Country)
		}
	}
	sort.Strings(countries)

	return countries, nil
}

func (es *EmployeeService) FirstComEmail(ctx context.Context) (string, error) {
	employees, err := es.employeeRepository.FetchAll(ctx)
	if err != nil {
		return "", err
	}

	for _, e := range employees {
		if strings.HasSuffix(e.Email, ".com") {
			return e.Email, nil
		}
	}

	return NoComEmail, nil
}

func (es *EmployeeService) FindByGenderAndCountry(ctx context.Context, gender domain.Gender, country string) (domain.Employees, error) {
	return es.employeeRepository.FetchByGenderAndCountry(ctx, gender, country)
}

func (es *EmployeeService) FindActiveAddressByCountry(ctx context.Context, country string, page, size int) (domain.Employees, error) {
	return es.employeeRepository.FetchWithActiveAddressByCountry(ctx, country, page, size)
}

// FixDeletedNull resolves every unset is_deleted flag to false and
// returns whatever is still unset afterwards.
func (es *EmployeeService) FixDeletedNull(ctx context.Context) (domain.Employees, error) {
	employees, err := es.employeeRepository.FetchDeletedNull(ctx)
	if err != nil {
		return nil, err
	}

	for _, e := range employees {
		v := false
		e.IsDeleted = &v
	}
	if err = es.employeeRepository.SaveAll(ctx, employees); err != nil {
		return nil, err
	}

	return es.employeeRepository.FetchDeletedNull(ctx)
}

// FixPrivateNull resolves every unset is_private flag to false. Note the
// divergence from the single-fetch path, which defaults is_private to
// true; both defaults are pinned by tests.
func (es *EmployeeService) FixPrivateNull(ctx context.Context) (domain.Employees, error) {
	employees, err := es.employeeRepository.FetchPrivateNull(ctx)
	if err != nil {
		return nil, err
	}

	for _, e := range employees {
		v := false
		e.IsPrivate = &v
	}
	if err = es.employeeRepository.SaveAll(ctx, employees); err != nil {
		return nil, err
	}

	return es.employeeRepository.FetchPrivateNull(ctx)
}

func (es *EmployeeService) FindAllActive(ctx context.Context, page, size int) (domain.Employees, error) {
	return es.employeeRepository.FetchActive(ctx, page, size)
}

func (es *EmployeeService) FindAllDeleted(ctx context.Context, page, size int) (domain.Employees, error) {
	return es.employeeRepository.FetchDeleted(ctx, page, size)
}

// RequestConfirmation pushes a confirmation mail event for the record.
// Stored state does not change; the caller may request again any number
// of times until the first successful Confirm.
func (es *EmployeeService) RequestConfirmation(ctx context.Context, id domain.ID) error {
	e, err := es.employeeRepository.FetchByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}

	es.mail.GetInputChan() <- mq.Event{
		Id:         uuid.New(),
		TS:         time.Now(),
		EmployeeID: uint64(e.ID),
		Name:       e.Name,
		Email:      e.Email,
		ConfirmURL: fmt.Sprintf("%s/%d/confirm", es.mailCfg.ConfirmBaseURL, e.ID),
	}

	es.mCounter.WithLabelValues("confirmation_requested_total").Inc()

	return nil
}

// Confirm flips is_confirmed to true. Idempotent: confirming an already
// confirmed record is a no-op success, the flag never reverts.
func (es *EmployeeService) Confirm(ctx context.Context, id domain.ID) error {
	e, err := es.employeeRepository.FetchByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}

	e.IsConfirmed = true
	if _, err = es.employeeRepository.Save(ctx, *e); err != nil {
		return err
	}

	es.mCounter.WithLabelValues("employee_confirmed_total").Inc()

	return nil
}

// Generate bulk-creates quantity records with sequential names and the
// placeholder email, flags left unset. With clear the whole collection
// is wiped first.
func (es *EmployeeService) Generate(ctx context.Context, quantity int, clear bool) error {
	if clear {
		if err := es.employeeRepository.DeleteAll(ctx); err != nil {
			return err
		}
	}

	employees := make(domain.Employees, 0, quantity)
	for i := 0; i < quantity; i++ {
		employees = append(employees, &domain.Employee{
			Name:  fmt.Sprintf("Name%d", i),
			Email: GeneratedEmail,
		})
	}

	return es.employeeRepository.SaveAll(ctx, employees)
}

// MassUpdate rewrites every record's name to the current timestamp.
// Pure write-throughput exercise, no business meaning.
func (es *EmployeeService) MassUpdate(ctx context.Context) error {
	employees, err := es.employeeRepository.FetchAll(ctx)
	if err != nil {
		return err
	}

	now := time.Now().Format(time.RFC3339Nano)
	for _, e := range employees {
		e.Name = now
	}

	return es.employeeRepository.SaveAll(ctx, employees)
}
