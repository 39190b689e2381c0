package audit_test

import (
	"context"
	"errors"
	"testing"

	saltaudit "github.com/goto/salt/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goto/signoff/pkg/audit"
)

type fakeRepository struct {
	initErr error
	logs    []*saltaudit.Log
}

func (r *fakeRepository) Init(context.Context) error { return r.initErr }

func (r *fakeRepository) Insert(_ context.Context, l *saltaudit.Log) error {
	r.logs = append(r.logs, l)
	return nil
}

func TestNew(t *testing.T) {
	t.Run("should record the actor of the context", func(t *testing.T) {
		repo := &fakeRepository{}
		logger, err := audit.New(context.Background(), repo, "signoff")
		require.NoError(t, err)

		ctx := saltaudit.WithActor(context.Background(), "user@example.com")
		require.NoError(t, logger.Log(ctx, "document.approve", map[string]interface{}{"document_id": "PO-1"}))

		require.Len(t, repo.logs, 1)
		assert.Equal(t, "document.approve", repo.logs[0].Action)
		assert.Equal(t, "user@example.com", repo.logs[0].Actor)
	})

	t.Run("should fail when the repository cannot be initialised", func(t *testing.T) {
		_, err := audit.New(context.Background(), &fakeRepository{initErr: errors.New("no table")}, "signoff")
		assert.ErrorContains(t, err, "no table")
	})
}
