package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rgehrsitz/paygo/internal/domain"
)

// Memory is an in-memory Store for tests and throwaway sessions
type Memory struct {
	mu        sync.RWMutex
	employees map[string]domain.Employee
	ytd       map[ytdKey]domain.EmployeeYtd
}

type ytdKey struct {
	EmployeeID string
	Year       int
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		employees: make(map[string]domain.Employee),
		ytd:       make(map[ytdKey]domain.EmployeeYtd),
	}
}

// AddEmployee stores a new employee. Ids must be unique.
func (m *Memory) AddEmployee(_ context.Context, emp domain.Employee) error {
	if err := emp.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.employees[emp.ID]; exists {
		return fmt.Errorf("employee %s already exists", emp.ID)
	}
	m.employees[emp.ID] = emp
	return nil
}

// GetEmployee returns the employee or domain.ErrEmployeeNotFound
func (m *Memory) GetEmployee(_ context.Context, id string) (domain.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	emp, ok := m.employees[id]
	if !ok {
		return domain.Employee{}, fmt.Errorf("%w: %s", domain.ErrEmployeeNotFound, id)
	}
	return emp, nil
}

// ListEmployees returns employees in creation order
func (m *Memory) ListEmployees(_ context.Context) ([]domain.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Name < out[j].Name
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// GetYtd returns the stored snapshot or a zero one
func (m *Memory) GetYtd(_ context.Context, employeeID string, year int) (domain.EmployeeYtd, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if ytd, ok := m.ytd[ytdKey{employeeID, year}]; ok {
		return ytd, nil
	}
	return domain.NewEmployeeYtd(employeeID, year), nil
}

// PutYtd replaces the snapshot for its employee-year
func (m *Memory) PutYtd(_ context.Context, ytd domain.EmployeeYtd) error {
	if ytd.EmployeeID == "" || ytd.Year == 0 {
		return fmt.Errorf("%w: snapshot needs an employee id and year", domain.ErrInvalidInput)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ytd[ytdKey{ytd.EmployeeID, ytd.Year}] = ytd
	return nil
}

// Close is a no-op
func (m *Memory) Close() error { return nil }
