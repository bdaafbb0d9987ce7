// Package yamlstore keeps employees and YTD snapshots in a single YAML file,
// rewritten atomically after every change. It suits a single workstation,
// the way the original browser-local store was used.
package yamlstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rgehrsitz/paygo/internal/domain"
	"gopkg.in/yaml.v3"
)

type document struct {
	Employees []domain.Employee    `yaml:"employees"`
	Ytd       []domain.EmployeeYtd `yaml:"ytd"`
}

// Store is a file-backed store
type Store struct {
	mu   sync.RWMutex
	path string
	doc  document
}

// New opens or creates the YAML store at path
func New(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML store %s: %w", path, err)
	}
	return s, nil
}

// AddEmployee appends an employee and saves the file
func (s *Store) AddEmployee(_ context.Context, emp domain.Employee) error {
	if err := emp.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.doc.Employees {
		if e.ID == emp.ID {
			return fmt.Errorf("employee %s already exists", emp.ID)
		}
	}
	next := s.doc.clone()
	next.Employees = append(next.Employees, emp)
	return s.commitLocked(next)
}

// GetEmployee returns the employee or domain.ErrEmployeeNotFound
func (s *Store) GetEmployee(_ context.Context, id string) (domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.doc.Employees {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Employee{}, fmt.Errorf("%w: %s", domain.ErrEmployeeNotFound, id)
}

// ListEmployees returns employees in the order they were added
func (s *Store) ListEmployees(_ context.Context) ([]domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Employee(nil), s.doc.Employees...), nil
}

// GetYtd returns the stored snapshot or a zero one
func (s *Store) GetYtd(_ context.Context, employeeID string, year int) (domain.EmployeeYtd, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, y := range s.doc.Ytd {
		if y.EmployeeID == employeeID && y.Year == year {
			return y, nil
		}
	}
	return domain.NewEmployeeYtd(employeeID, year), nil
}

// PutYtd replaces the snapshot for its employee-year and saves the file
func (s *Store) PutYtd(_ context.Context, ytd domain.EmployeeYtd) error {
	if ytd.EmployeeID == "" || ytd.Year == 0 {
		return fmt.Errorf("%w: snapshot needs an employee id and year", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.doc.clone()
	replaced := false
	for i, y := range next.Ytd {
		if y.EmployeeID == ytd.EmployeeID && y.Year == ytd.Year {
			next.Ytd[i] = ytd
			replaced = true
			break
		}
	}
	if !replaced {
		next.Ytd = append(next.Ytd, ytd)
		sort.Slice(next.Ytd, func(i, j int) bool {
			if next.Ytd[i].EmployeeID == next.Ytd[j].EmployeeID {
				return next.Ytd[i].Year < next.Ytd[j].Year
			}
			return next.Ytd[i].EmployeeID < next.Ytd[j].EmployeeID
		})
	}
	return s.commitLocked(next)
}

// Close is a no-op; every write is already flushed
func (s *Store) Close() error { return nil }

func (d document) clone() document {
	return document{
		Employees: append([]domain.Employee(nil), d.Employees...),
		Ytd:       append([]domain.EmployeeYtd(nil), d.Ytd...),
	}
}

// commitLocked writes next to disk and adopts it only once the file is replaced
func (s *Store) commitLocked(next document) error {
	data, err := yaml.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to encode YAML store: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".paygo-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	s.doc = next
	return nil
}
