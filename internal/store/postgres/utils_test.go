package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/goto/signoff/internal/store/postgres/model"
)

func TestAddOrderByClause(t *testing.T) {
	s, _ := newMockStore(t)
	dryRun := func() *gorm.DB { return s.DB().Session(&gorm.Session{DryRun: true}) }
	options := addOrderByClauseOptions{
		stateColumnName: `"state"`,
		statesOrder:     []string{"draft", "under_approval"},
	}
	allowed := []string{"created_at", "name"}

	t.Run("should build the order by expression", func(t *testing.T) {
		db, err := addOrderByClause(dryRun(), []string{"state", "created_at:desc", "name"}, options, allowed)
		require.NoError(t, err)

		stmt := db.Find(&[]*model.Document{}).Statement

		assert.Contains(t, stmt.SQL.String(), `ORDER BY ARRAY_POSITION($1::text[], "state"), "created_at" desc, "name"`)
	})

	t.Run("should reject unknown columns and directions", func(t *testing.T) {
		_, err := addOrderByClause(dryRun(), []string{"password"}, options, allowed)
		assert.ErrorContains(t, err, "cannot order by column")

		_, err = addOrderByClause(dryRun(), []string{"name:sideways"}, options, allowed)
		assert.ErrorContains(t, err, "invalid order by direction")
	})
}
