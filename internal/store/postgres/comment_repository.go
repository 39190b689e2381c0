package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/internal/store/postgres/model"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	m := &model.Comment{}
	if err := m.FromDomain(c); err != nil {
		return err
	}

	if err := conn(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	*c = *m.ToDomain()
	return nil
}

func (r *CommentRepository) List(ctx context.Context, filter domain.ListCommentsFilter) ([]*domain.Comment, error) {
	db := conn(ctx, r.db)
	if filter.DocumentModel != "" {
		db = db.Where("document_model = ?", filter.DocumentModel)
	}
	if filter.DocumentID != "" {
		db = db.Where("document_id = ?", filter.DocumentID)
	}
	if len(filter.OrderBy) == 0 {
		db = db.Order("created_at")
	}
	for _, o := range filter.OrderBy {
		db = addOrderBy(db, o)
	}

	var models []*model.Comment
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}

	comments := []*domain.Comment{}
	for _, m := range models {
		comments = append(comments, m.ToDomain())
	}
	return comments, nil
}
