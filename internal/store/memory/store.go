package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/goto/salt/audit"

	"github.com/goto/signoff/domain"
)

type txContextKey struct{}

type state struct {
	Policies  map[string]*domain.Policy          `json:"policies"`
	Requests  map[string]*domain.ApprovalRequest `json:"requests"`
	Documents map[string]*domain.Record          `json:"documents"`
	Comments  map[string]*domain.Comment         `json:"comments"`
	Groups    map[string]*domain.Group           `json:"groups"`
	Roles     map[string]*domain.RoleAssignment  `json:"roles"`
	Rates     map[string]*domain.CurrencyRate    `json:"rates"`
	AuditLogs []*audit.Log                       `json:"audit_logs"`
}

func newState() *state {
	return &state{
		Policies:  map[string]*domain.Policy{},
		Requests:  map[string]*domain.ApprovalRequest{},
		Documents: map[string]*domain.Record{},
		Comments:  map[string]*domain.Comment{},
		Groups:    map[string]*domain.Group{},
		Roles:     map[string]*domain.RoleAssignment{},
		Rates:     map[string]*domain.CurrencyRate{},
	}
}

// Store keeps every table in process memory. Rows are copied in and out so callers never share
// instances with the store.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *state

	converter domain.CurrencyConverter
}

func NewStore() *Store {
	return &Store{data: newState()}
}

// SetCurrencyConverter is attached to every document read from the store
func (s *Store) SetCurrencyConverter(c domain.CurrencyConverter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.converter = c
}

// WithTransaction runs fn with exclusive write access. The tables are restored to their previous
// content when fn fails. Nested calls join the outer transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txContextKey{}).(bool); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapshot, err := s.snapshot()
	if err != nil {
		return err
	}
	if err := fn(context.WithValue(ctx, txContextKey{}, true)); err != nil {
		if restoreErr := s.restore(snapshot); restoreErr != nil {
			return restoreErr
		}
		return err
	}
	return nil
}

func (s *Store) snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.Marshal(s.data)
}

func (s *Store) restore(snapshot []byte) error {
	data := newState()
	if err := json.Unmarshal(snapshot, data); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

func (s *Store) read(fn func(*state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

func (s *Store) write(fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func clone[T any](v *T) (*T, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := new(T)
	if err := json.Unmarshal(b, out); err != nil {
		return nil, err
	}
	return out, nil
}

func cloneAll[T any](rows []*T) ([]*T, error) {
	out := make([]*T, 0, len(rows))
	for _, r := range rows {
		c, err := clone(r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func paginate[T any](rows []T, size, offset int) []T {
	if offset > 0 {
		if offset >= len(rows) {
			return rows[:0]
		}
		rows = rows[offset:]
	}
	if size > 0 && size < len(rows) {
		rows = rows[:size]
	}
	return rows
}
