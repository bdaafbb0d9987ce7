package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paygo.db")
	st, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st, path
}

func testEmployee(id, name string) domain.Employee {
	return domain.Employee{
		ID:         id,
		Name:       name,
		HourlyWage: decimal.RequireFromString("20.50"),
		CreatedAt:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestStore_Employees(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	require.NoError(t, st.AddEmployee(ctx, testEmployee("e1", "Ada")))
	second := testEmployee("e2", "Grace")
	second.CreatedAt = second.CreatedAt.Add(time.Hour)
	require.NoError(t, st.AddEmployee(ctx, second))

	emp, err := st.GetEmployee(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", emp.Name)
	assert.Equal(t, "20.50", emp.HourlyWage.StringFixed(2))
	assert.True(t, emp.CreatedAt.Equal(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)))

	list, err := st.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "e1", list[0].ID)
	assert.Equal(t, "e2", list[1].ID)

	_, err = st.GetEmployee(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	assert.Error(t, st.AddEmployee(ctx, testEmployee("e1", "Duplicate")))
	assert.ErrorIs(t, st.AddEmployee(ctx, testEmployee("e3", "")), domain.ErrInvalidInput)
}

func TestStore_YtdRoundTripSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	st, path := newTestStore(t)
	require.NoError(t, st.AddEmployee(ctx, testEmployee("e1", "Ada")))

	empty, err := st.GetYtd(ctx, "e1", 2025)
	require.NoError(t, err)
	assert.Equal(t, domain.NewEmployeeYtd("e1", 2025), empty)

	ytd := domain.NewEmployeeYtd("e1", 2025)
	ytd.PeriodsPaid = 2
	ytd.GrossPaidYtd = decimal.RequireFromString("3200")
	ytd.PensionContributedYtd = decimal.RequireFromString("174.38")
	ytd.InsurancePaidYtd = decimal.RequireFromString("53.12")
	ytd.TaxableIncomeYtd = decimal.RequireFromString("2972.50")
	ytd.FederalTaxYtd = decimal.RequireFromString("259.77")
	require.NoError(t, st.PutYtd(ctx, ytd))

	ytd.PeriodsPaid = 3
	ytd.GrossPaidYtd = decimal.RequireFromString("4800")
	require.NoError(t, st.PutYtd(ctx, ytd))
	require.NoError(t, st.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetYtd(ctx, "e1", 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, got.PeriodsPaid)
	assert.Equal(t, "4800", got.GrossPaidYtd.String())
	assert.Equal(t, "174.38", got.PensionContributedYtd.String())
	assert.Equal(t, "259.77", got.FederalTaxYtd.String())

	// a new year starts from zero
	next, err := reopened.GetYtd(ctx, "e1", 2026)
	require.NoError(t, err)
	assert.True(t, next.GrossPaidYtd.IsZero())
}

func TestStore_PutYtdRequiresKnownEmployee(t *testing.T) {
	st, _ := newTestStore(t)
	err := st.PutYtd(context.Background(), domain.NewEmployeeYtd("ghost", 2025))
	assert.Error(t, err)

	assert.ErrorIs(t, st.PutYtd(context.Background(), domain.EmployeeYtd{}), domain.ErrInvalidInput)
}

func TestStore_InMemory(t *testing.T) {
	st, err := New(":memory:")
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	require.NoError(t, st.AddEmployee(ctx, testEmployee("e1", "Ada")))
	list, err := st.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
