package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/goto/signoff/core/workflow"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/slices"
)

// DocumentRepository stores generic records and serves them to the workflow engine
type DocumentRepository struct {
	store *Store
}

func NewDocumentRepository(s *Store) *DocumentRepository {
	return &DocumentRepository{s}
}

func (r *DocumentRepository) Upsert(_ context.Context, d *domain.Record) error {
	row, err := clone(d)
	if err != nil {
		return err
	}
	return r.store.write(func(s *state) error {
		s.Documents[d.Ref().String()] = row
		return nil
	})
}

func (r *DocumentRepository) GetByRef(_ context.Context, ref domain.DocumentRef) (*domain.Record, error) {
	var found *domain.Record
	var converter domain.CurrencyConverter
	if err := r.store.read(func(s *state) error {
		found = s.Documents[ref.String()]
		return nil
	}); err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %q", workflow.ErrDocumentNotFound, ref)
	}

	record, err := clone(found)
	if err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	converter = r.store.converter
	r.store.mu.RUnlock()
	record.Converter = converter
	return record, nil
}

func (r *DocumentRepository) List(_ context.Context, filter domain.ListDocumentsFilter) ([]*domain.Record, error) {
	var records []*domain.Record
	err := r.store.read(func(s *state) error {
		for _, key := range sortedKeys(s.Documents) {
			d := s.Documents[key]
			if filter.Model != "" && d.Model != filter.Model {
				continue
			}
			if len(filter.States) > 0 && !slices.ContainsFold(filter.States, string(d.State)) {
				continue
			}
			records = append(records, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return cloneAll(paginate(records, filter.Size, filter.Offset))
}

func (r *DocumentRepository) GetDocument(ctx context.Context, ref domain.DocumentRef) (domain.Document, error) {
	return r.GetByRef(ctx, ref)
}

func (r *DocumentRepository) SaveDocument(ctx context.Context, d domain.Document) error {
	record, ok := d.(*domain.Record)
	if !ok {
		return fmt.Errorf("unsupported document type %T", d)
	}
	if _, err := r.GetByRef(ctx, record.Ref()); err != nil {
		return err
	}
	return r.Upsert(ctx, record)
}
