package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/goto/signoff/domain"
)

type CommentRepository struct {
	store *Store
}

func NewCommentRepository(s *Store) *CommentRepository {
	return &CommentRepository{s}
}

func (r *CommentRepository) Create(_ context.Context, c *domain.Comment) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	row, err := clone(c)
	if err != nil {
		return err
	}
	return r.store.write(func(s *state) error {
		s.Comments[row.ID] = row
		return nil
	})
}

func (r *CommentRepository) List(_ context.Context, filter domain.ListCommentsFilter) ([]*domain.Comment, error) {
	var records []*domain.Comment
	err := r.store.read(func(s *state) error {
		for _, c := range s.Comments {
			if c.DocumentModel == filter.DocumentModel && c.DocumentID == filter.DocumentID {
				records = append(records, c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	desc := len(filter.OrderBy) > 0 && filter.OrderBy[0] == "created_at:desc"
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt) != desc
		}
		return records[i].ID < records[j].ID
	})
	return cloneAll(records)
}
