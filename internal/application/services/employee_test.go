package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"employee-directory-api/config"
	domain "employee-directory-api/internal/domain/employee"
	"employee-directory-api/internal/infrastructure/mq"
)

type FakeRepository struct {
	employees map[domain.ID]*domain.Employee
	nextID    domain.ID

	saveCalls      int
	saveErr        error
	deleteAllCalls int
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		employees: make(map[domain.ID]*domain.Employee),
		nextID:    1,
	}
}

func (f *FakeRepository) add(e domain.Employee) domain.ID {
	id := f.nextID
	f.nextID++
	e.ID = id
	f.employees[id] = &e
	return id
}

func (f *FakeRepository) stored(id domain.ID) *domain.Employee { return f.employees[id] }

func (f *FakeRepository) all() domain.Employees {
	ids := make([]int, 0, len(f.employees))
	for id := range f.employees {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	es := make(domain.Employees, 0, len(ids))
	for _, id := range ids {
		es = append(es, f.employees[domain.ID(id)])
	}
	return es
}

// FetchByID hands out a copy so a mutation only reaches the store
// through Save, like a real row fetch.
func (f *FakeRepository) FetchByID(_ context.Context, id domain.ID) (*domain.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *FakeRepository) FetchAll(_ context.Context) (domain.Employees, error) {
	var es domain.Employees
	for _, e := range f.all() {
		cp := *e
		es = append(es, &cp)
	}
	return es, nil
}

func (f *FakeRepository) FetchPage(ctx context.Context, page, size int) (domain.Employees, error) {
	es, _ := f.FetchAll(ctx)
	start := page * size
	if start >= len(es) {
		return nil, nil
	}
	end := start + size
	if end > len(es) {
		end = len(es)
	}
	return es[start:end], nil
}

func (f *FakeRepository) Create(_ context.Context, e domain.Employee) (*domain.Employee, error) {
	id := f.add(e)
	cp := *f.employees[id]
	return &cp, nil
}

func (f *FakeRepository) Save(_ context.Context, e domain.Employee) (*domain.Employee, error) {
	f.saveCalls++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if _, ok := f.employees[e.ID]; !ok {
		return nil, nil
	}
	cp := e
	f.employees[e.ID] = &cp
	ret := cp
	return &ret, nil
}

func (f *FakeRepository) SaveAll(_ context.Context, es domain.Employees) error {
	for _, e := range es {
		if e.ID == 0 {
			f.add(*e)
			continue
		}
		cp := *e
		f.employees[e.ID] = &cp
	}
	return nil
}

func (f *FakeRepository) DeleteAll(_ context.Context) error {
	f.deleteAllCalls++
	f.employees = make(map[domain.ID]*domain.Employee)
	return nil
}

func (f *FakeRepository) FetchByCountryContaining(_ context.Context, _ string, _, _ int, _ []string, _ string) (domain.Employees, error) {
	return nil, nil
}

func (f *FakeRepository) FetchByGenderAndCountry(_ context.Context, gender domain.Gender, country string) (domain.Employees, error) {
	var es domain.Employees
	for _, e := range f.all() {
		if e.Gender != nil && *e.Gender == gender && e.Country == country {
			cp := *e
			es = append(es, &cp)
		}
	}
	return es, nil
}

func (f *FakeRepository) FetchWithActiveAddressByCountry(_ context.Context, country string, _, _ int) (domain.Employees, error) {
	var es domain.Employees
	for _, e := range f.all() {
		if e.Country != country {
			continue
		}
		for _, a := range e.Addresses {
			if a.Active {
				cp := *e
				es = append(es, &cp)
				break
			}
		}
	}
	return es, nil
}

func (f *FakeRepository) FetchDeletedNull(_ context.Context) (domain.Employees, error) {
	var es domain.Employees
	for _, e := range f.all() {
		if e.IsDeleted == nil {
			cp := *e
			es = append(es, &cp)
		}
	}
	return es, nil
}

func (f *FakeRepository) FetchPrivateNull(_ context.Context) (domain.Employees, error) {
	var es domain.Employees
	for _, e := range f.all() {
		if e.IsPrivate == nil {
			cp := *e
			es = append(es, &cp)
		}
	}
	return es, nil
}

func (f *FakeRepository) FetchActive(_ context.Context, _, _ int) (domain.Employees, error) {
	var es domain.Employees
	for _, e := range f.all() {
		if e.IsDeleted != nil && !*e.IsDeleted {
			cp := *e
			es = append(es, &cp)
		}
	}
	return es, nil
}

func (f *FakeRepository) FetchDeleted(_ context.Context, _, _ int) (domain.Employees, error) {
	var es domain.Employees
	for _, e := range f.all() {
		if e.IsDeleted != nil && *e.IsDeleted {
			cp := *e
			es = append(es, &cp)
		}
	}
	return es, nil
}

type FakeMailGateway struct {
	ch chan mq.Event
}

func NewFakeMailGateway() *FakeMailGateway {
	return &FakeMailGateway{ch: make(chan mq.Event, 8)}
}

func (f *FakeMailGateway) Connect(context.Context, string) error { return nil }
func (f *FakeMailGateway) Init() error                           { return nil }
func (f *FakeMailGateway) PublisherWorker(context.Context)       {}
func (f *FakeMailGateway) GetInputChan() chan mq.Event           { return f.ch }
func (f *FakeMailGateway) GetConn() *amqp091.Connection          { return nil }

func boolPtr(b bool) *bool { return &b }

func setupService(t *testing.T) (*EmployeeService, *FakeRepository, *FakeMailGateway) {
	t.Helper()

	repo := NewFakeRepository()
	mail := NewFakeMailGateway()
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_counters"},
		[]string{"result"},
	)
	svc := NewEmployeeService(
		repo,
		mail,
		config.Mail{ConfirmBaseURL: "http://localhost/api/v1/employees"},
		counter,
		zap.NewNop(),
	).(*EmployeeService)

	return svc, repo, mail
}

func visible(name, country, email string) domain.Employee {
	return domain.Employee{
		Name:        name,
		Country:     country,
		Email:       email,
		IsDeleted:   boolPtr(false),
		IsPrivate:   boolPtr(false),
		IsConfirmed: true,
	}
}

func TestFindByID_MaterializesDeletedToFalse(t *testing.T) {
	svc, repo, _ := setupService(t)
	e := visible("Billy", "USA", "billy@mail.com")
	e.IsDeleted = nil
	id := repo.add(e)

	got, err := svc.FindByID(context.Background(), id)
	require.NoError(t, err)

	stored := repo.stored(id)
	require.NotNil(t, stored.IsDeleted)
	assert.False(t, *stored.IsDeleted)
	assert.Equal(t, 1, repo.saveCalls)
	require.NotNil(t, got.IsDeleted)
	assert.False(t, *got.IsDeleted)

	// later observations never see unset again
	repo.saveCalls = 0
	_, err = svc.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.saveCalls)
}

func TestFindByID_MaterializesPrivateToTrue(t *testing.T) {
	svc, repo, _ := setupService(t)
	e := visible("Billy", "USA", "billy@mail.com")
	e.IsPrivate = nil
	id := repo.add(e)

	_, err := svc.FindByID(context.Background(), id)
	require.ErrorIs(t, err, domain.ErrPrivate)

	stored := repo.stored(id)
	require.NotNil(t, stored.IsPrivate)
	assert.True(t, *stored.IsPrivate)
	assert.Equal(t, 1, repo.saveCalls)
}

func TestFindByID_BothFlagsUnset_OneSaveEach(t *testing.T) {
	svc, repo, _ := setupService(t)
	e := visible("Billy", "USA", "billy@mail.com")
	e.IsDeleted = nil
	e.IsPrivate = nil
	id := repo.add(e)

	_, err := svc.FindByID(context.Background(), id)
	require.ErrorIs(t, err, domain.ErrPrivate)
	assert.Equal(t, 2, repo.saveCalls)

	stored := repo.stored(id)
	require.NotNil(t, stored.IsDeleted)
	assert.False(t, *stored.IsDeleted)
	require.NotNil(t, stored.IsPrivate)
	assert.True(t, *stored.IsPrivate)
}

func TestFindByID_GateOrder_DeletedBeforePrivate(t *testing.T) {
	svc, repo, _ := setupService(t)
	e := visible("Billy", "USA", "billy@mail.com")
	e.IsDeleted = boolPtr(true)
	e.IsPrivate = boolPtr(true)
	id := repo.add(e)

	_, err := svc.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotVisible)
	assert.NotErrorIs(t, err, domain.ErrPrivate)
}

func TestFindByID_UnconfirmedCarriesNameAndEmail(t *testing.T) {
	svc, repo, _ := setupService(t)
	e := visible("Billy", "USA", "billy@mail.com")
	e.IsConfirmed = false
	id := repo.add(e)

	_, err := svc.FindByID(context.Background(), id)
	var unconfirmed *domain.UnconfirmedDataError
	require.ErrorAs(t, err, &unconfirmed)
	assert.Equal(t, "Billy", unconfirmed.Name)
	assert.Equal(t, "billy@mail.com", unconfirmed.Email)
}

func TestFindByID_NotFound(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindByID_PersistFailureStillEnforcesGate(t *testing.T) {
	svc, repo, _ := setupService(t)
	e := visible("Billy", "USA", "billy@mail.com")
	e.IsPrivate = nil
	id := repo.add(e)
	repo.saveErr = errors.New("db down")

	_, err := svc.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrPrivate)
	// store untouched, gate still ran on the in-memory default
	assert.Nil(t, repo.stored(id).IsPrivate)
}

func TestFindAll_RedactsPrivateRecords(t *testing.T) {
	svc, repo, _ := setupService(t)

	private := visible("Billy", "USA", "billy@mail.com")
	private.IsPrivate = boolPtr(true)
	g := domain.GenderMale
	private.Gender = &g
	private.Addresses = []domain.Address{{Active: true, Country: "USA", City: "NYC", Street: "5th"}}
	privateID := repo.add(private)

	public := visible("Jane", "Germany", "jane@mail.org")
	repo.add(public)

	unset := visible("Bob", "Ukraine", "bob@mail.com")
	unset.IsPrivate = nil
	repo.add(unset)

	es, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, es, 3)

	assert.Equal(t, domain.HiddenValue, es[0].Name)
	assert.Equal(t, domain.HiddenValue, es[0].Email)
	assert.Equal(t, domain.HiddenValue, es[0].Country)
	assert.Nil(t, es[0].Addresses)
	assert.Nil(t, es[0].Gender)

	assert.Equal(t, "Jane", es[1].Name)
	assert.Equal(t, "jane@mail.org", es[1].Email)
	assert.Equal(t, "Germany", es[1].Country)

	// unset counts as private in listings
	assert.Equal(t, domain.HiddenValue, es[2].Name)

	// redaction never persists
	assert.Equal(t, "Billy", repo.stored(privateID).Name)
	assert.Equal(t, 0, repo.saveCalls)
}

func TestConfirm_Idempotent(t *testing.T) {
	svc, repo, _ := setupService(t)
	e := visible("Billy", "USA", "billy@mail.com")
	e.IsConfirmed = false
	id := repo.add(e)

	require.NoError(t, svc.Confirm(context.Background(), id))
	assert.True(t, repo.stored(id).IsConfirmed)

	require.NoError(t, svc.Confirm(context.Background(), id))
	assert.True(t, repo.stored(id).IsConfirmed)
}

func TestConfirm_NotFound(t *testing.T) {
	svc, _, _ := setupService(t)
	assert.ErrorIs(t, svc.Confirm(context.Background(), 7), domain.ErrNotFound)
}

func TestRequestConfirmation_SendsEventWithoutStateChange(t *testing.T) {
	svc, repo, mail := setupService(t)
	e := visible("Billy", "USA", "billy@mail.com")
	e.IsConfirmed = false
	id := repo.add(e)

	require.NoError(t, svc.RequestConfirmation(context.Background(), id))
	require.NoError(t, svc.RequestConfirmation(context.Background(), id))

	assert.False(t, repo.stored(id).IsConfirmed)
	assert.Equal(t, 0, repo.saveCalls)
	require.Len(t, mail.ch, 2)

	ev := <-mail.ch
	assert.Equal(t, uint64(id), ev.EmployeeID)
	assert.Equal(t, "billy@mail.com", ev.Email)
	assert.Equal(t, fmt.Sprintf("http://localhost/api/v1/employees/%d/confirm", id), ev.ConfirmURL)
}

func TestRequestConfirmation_NotFound(t *testing.T) {
	svc, _, mail := setupService(t)

	err := svc.RequestConfirmation(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, mail.ch)
}

func TestRemoveByID_SoftDelete(t *testing.T) {
	svc, repo, _ := setupService(t)
	id := repo.add(visible("Billy", "USA", "billy@mail.com"))

	require.NoError(t, svc.RemoveByID(context.Background(), id))

	stored := repo.stored(id)
	require.NotNil(t, stored, "soft delete must keep the record")
	require.NotNil(t, stored.IsDeleted)
	assert.True(t, *stored.IsDeleted)

	_, err := svc.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotVisible)
}

func TestFixDeletedNull_DefaultsFalse(t *testing.T) {
	svc, repo, _ := setupService(t)
	a := visible("A", "USA", "a@x.com")
	a.IsDeleted = nil
	aID := repo.add(a)
	b := visible("B", "USA", "b@x.com")
	bID := repo.add(b)

	rest, err := svc.FixDeletedNull(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rest)

	require.NotNil(t, repo.stored(aID).IsDeleted)
	assert.False(t, *repo.stored(aID).IsDeleted)
	assert.False(t, *repo.stored(bID).IsDeleted)
}

// Pins the divergence: bulk remediation writes false while the
// single-fetch path materializes true. Unifying the two is a visible,
// deliberate change.
func TestPrivateDefaults_DivergeBetweenPaths(t *testing.T) {
	svc, repo, _ := setupService(t)

	bulk := visible("Bulk", "USA", "bulk@x.com")
	bulk.IsPrivate = nil
	bulkID := repo.add(bulk)

	rest, err := svc.FixPrivateNull(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rest)
	require.NotNil(t, repo.stored(bulkID).IsPrivate)
	assert.False(t, *repo.stored(bulkID).IsPrivate, "bulk remediation defaults is_private to false")

	single := visible("Single", "USA", "single@x.com")
	single.IsPrivate = nil
	singleID := repo.add(single)

	_, err = svc.FindByID(context.Background(), singleID)
	require.ErrorIs(t, err, domain.ErrPrivate)
	require.NotNil(t, repo.stored(singleID).IsPrivate)
	assert.True(t, *repo.stored(singleID).IsPrivate, "single fetch materializes is_private to true")
}

func TestListCountries_KeepsDuplicatesAndOrder(t *testing.T) {
	svc, repo, _ := setupService(t)
	repo.add(visible("A", "USA", "a@x.com"))
	repo.add(visible("B", "Germany", "b@x.com"))
	repo.add(visible("C", "USA", "c@x.com"))

	countries, err := svc.ListCountries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"USA", "Germany", "USA"}, countries)
}

func TestSortedUCountries_FiltersSortsAndSkipsMissing(t *testing.T) {
	svc, repo, _ := setupService(t)
	repo.add(visible("A", "Ukraine", "a@x.com"))
	repo.add(visible("B", "Germany", "b@x.com"))
	repo.add(visible("C", "USA", "c@x.com"))
	repo.add(visible("D", "", "d@x.com")) // no country, skipped

	countries, err := svc.SortedUCountries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"USA", "Ukraine"}, countries)
}

func TestFirstComEmail(t *testing.T) {
	svc, repo, _ := setupService(t)
	repo.add(visible("A", "USA", "a@x.org"))
	repo.add(visible("B", "USA", "b@y.com"))

	email, err := svc.FirstComEmail(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b@y.com", email)
}

func TestFirstComEmail_Sentinel(t *testing.T) {
	svc, repo, _ := setupService(t)
	repo.add(visible("A", "USA", "a@x.org"))

	email, err := svc.FirstComEmail(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NoComEmail, email)
}

func TestGenerate_ClearsAndCreatesSequentialRecords(t *testing.T) {
	svc, repo, _ := setupService(t)
	repo.add(visible("Old", "USA", "old@x.com"))

	require.NoError(t, svc.Generate(context.Background(), 5, true))

	assert.Equal(t, 1, repo.deleteAllCalls)
	es := repo.all()
	require.Len(t, es, 5)
	for i, e := range es {
		assert.Equal(t, fmt.Sprintf("Name%d", i), e.Name)
		assert.Equal(t, GeneratedEmail, e.Email)
		assert.False(t, e.IsConfirmed)
		assert.Nil(t, e.IsDeleted)
		assert.Nil(t, e.IsPrivate)
	}
}

func TestGenerate_NoClearKeepsExisting(t *testing.T) {
	svc, repo, _ := setupService(t)
	repo.add(visible("Old", "USA", "old@x.com"))

	require.NoError(t, svc.Generate(context.Background(), 2, false))

	assert.Equal(t, 0, repo.deleteAllCalls)
	assert.Len(t, repo.all(), 3)
}

func TestMassUpdate_RewritesNamesToTimestamp(t *testing.T) {
	svc, repo, _ := setupService(t)
	aID := repo.add(visible("A", "USA", "a@x.com"))
	bID := repo.add(visible("B", "USA", "b@x.com"))

	require.NoError(t, svc.MassUpdate(context.Background()))

	for _, id := range []domain.ID{aID, bID} {
		name := repo.stored(id).Name
		assert.NotEqual(t, "A", name)
		assert.NotEqual(t, "B", name)
		_, err := time.Parse(time.RFC3339Nano, name)
		assert.NoError(t, err, "name should parse as a timestamp")
	}
}

func TestUpdateByID(t *testing.T) {
	svc, repo, _ := setupService(t)
	id := repo.add(visible("Billy", "USA", "billy@mail.com"))

	got, err := svc.UpdateByID(context.Background(), id, domain.Employee{
		Name: "Bill", Email: "bill@mail.com", Country: "Ukraine",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bill", got.Name)
	assert.Equal(t, "Ukraine", repo.stored(id).Country)

	_, err = svc.UpdateByID(context.Background(), 404, domain.Employee{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
