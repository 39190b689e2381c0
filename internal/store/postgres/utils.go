package postgres

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goto/signoff/pkg/slices"
)

type addOrderByClauseOptions struct {
	// stateColumnName is ordered by the position of its value in statesOrder
	stateColumnName string
	statesOrder     []string
}

// addOrderByClause applies "column" or "column:asc|desc" conditions. The "state" condition sorts by
// workflow position instead of alphabetically.
func addOrderByClause(db *gorm.DB, conditions []string, options addOrderByClauseOptions, allowedColumns []string) (*gorm.DB, error) {
	var orderByClauses []string
	var vars []interface{}

	for _, orderBy := range conditions {
		columnOrder := strings.Split(orderBy, ":")
		columnName := columnOrder[0]
		direction := ""
		if len(columnOrder) == 2 {
			direction = strings.ToLower(columnOrder[1])
			if !slices.ContainsFold([]string{"asc", "desc"}, direction) {
				return nil, fmt.Errorf("invalid order by direction: %s", columnOrder[1])
			}
		} else if len(columnOrder) > 2 {
			return nil, fmt.Errorf("invalid order by condition: %q", orderBy)
		}

		var expr string
		if columnName == "state" && options.stateColumnName != "" {
			expr = fmt.Sprintf(`ARRAY_POSITION(?::text[], %s)`, options.stateColumnName)
			vars = append(vars, pq.Array(options.statesOrder))
		} else {
			if !slices.ContainsFold(allowedColumns, columnName) {
				return nil, fmt.Errorf("cannot order by column %q", columnName)
			}
			expr = fmt.Sprintf(`"%s"`, strings.ToLower(columnName))
		}
		if direction != "" {
			expr += " " + direction
		}
		orderByClauses = append(orderByClauses, expr)
	}

	return db.Clauses(clause.OrderBy{
		Expression: clause.Expr{
			SQL:                strings.Join(orderByClauses, ", "),
			Vars:               vars,
			WithoutParentheses: true,
		},
	}), nil
}

// addOrderBy orders by a timestamp column, other columns are ignored
func addOrderBy(db *gorm.DB, orderBy string) *gorm.DB {
	if orderBy == "" {
		return db
	}
	expression := strings.Split(orderBy, ":")
	column := strings.ToLower(expression[0])
	if !slices.ContainsFold([]string{"updated_at", "created_at"}, column) {
		return db
	}
	if len(expression) == 2 && slices.ContainsFold([]string{"asc", "desc"}, expression[1]) {
		return db.Order(fmt.Sprintf(`"%s" %s`, column, strings.ToLower(expression[1])))
	}
	return db.Order(column)
}
