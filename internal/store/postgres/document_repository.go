package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goto/signoff/core/workflow"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/internal/store/postgres/model"
	"github.com/goto/signoff/utils"
)

// DocumentRepository stores generic records and serves them to the workflow engine
type DocumentRepository struct {
	db        *gorm.DB
	converter domain.CurrencyConverter
}

func NewDocumentRepository(db *gorm.DB, converter domain.CurrencyConverter) *DocumentRepository {
	return &DocumentRepository{db: db, converter: converter}
}

func (r *DocumentRepository) Upsert(ctx context.Context, d *domain.Record) error {
	m := new(model.Document)
	if err := m.FromDomain(d); err != nil {
		return fmt.Errorf("serializing document: %w", err)
	}

	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "model"}, {Name: "id"}},
		UpdateAll: true,
	}).Create(m).Error
}

// GetByRef locks the row when called inside a transaction
func (r *DocumentRepository) GetByRef(ctx context.Context, ref domain.DocumentRef) (*domain.Record, error) {
	db := conn(ctx, r.db)
	if inTransaction(ctx) {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	m := new(model.Document)
	if err := db.First(m, "model = ? AND id = ?", ref.Model, ref.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", workflow.ErrDocumentNotFound, ref)
		}
		return nil, err
	}

	record, err := m.ToDomain()
	if err != nil {
		return nil, err
	}
	record.Converter = r.converter
	return record, nil
}

func (r *DocumentRepository) List(ctx context.Context, filter domain.ListDocumentsFilter) ([]*domain.Record, error) {
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, err
	}

	db := conn(ctx, r.db)
	if filter.Model != "" {
		db = db.Where(`"model" = ?`, filter.Model)
	}
	if len(filter.States) > 0 {
		db = db.Where(`"state" IN ?`, filter.States)
	}
	if len(filter.OrderBy) > 0 {
		var err error
		db, err = addOrderByClause(db, filter.OrderBy, addOrderByClauseOptions{
			stateColumnName: `"state"`,
			statesOrder: []string{
				string(domain.DocumentStateDraft),
				string(domain.DocumentStateUnderApproval),
				string(domain.DocumentStateApproved),
				string(domain.DocumentStateRejected),
			},
		}, []string{"created_at", "updated_at", "model", "id", "name", "amount"})
		if err != nil {
			return nil, err
		}
	} else {
		db = db.Order("created_at").Order("model").Order("id")
	}
	if filter.Size > 0 {
		db = db.Limit(filter.Size)
	}
	if filter.Offset > 0 {
		db = db.Offset(filter.Offset)
	}

	var models []*model.Document
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}

	records := []*domain.Record{}
	for _, m := range models {
		record, err := m.ToDomain()
		if err != nil {
			return nil, err
		}
		record.Converter = r.converter
		records = append(records, record)
	}
	return records, nil
}

func (r *DocumentRepository) GetDocument(ctx context.Context, ref domain.DocumentRef) (domain.Document, error) {
	return r.GetByRef(ctx, ref)
}

func (r *DocumentRepository) SaveDocument(ctx context.Context, d domain.Document) error {
	record, ok := d.(*domain.Record)
	if !ok {
		return fmt.Errorf("unsupported document type %T", d)
	}

	m := new(model.Document)
	if err := m.FromDomain(record); err != nil {
		return fmt.Errorf("serializing document: %w", err)
	}
	result := conn(ctx, r.db).Model(m).Select("*").Omit("CreatedAt").Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %q", workflow.ErrDocumentNotFound, record.Ref())
	}
	record.UpdatedAt = m.UpdatedAt
	return nil
}
