package pgsql

import (
	"fmt"
	"strings"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/SscSPs/property_ledger_app/internal/utils/pagination"
)

// whereBuilder accumulates AND-ed conditions with positional arguments.
type whereBuilder struct {
	conds []string
	args  []any
}

// add appends a condition whose single placeholder is written as %d.
func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ") + " "
}

// ledgerWhere builds the filter of a ledger listing for a table aliased as alias.
func ledgerWhere(alias string, filter domain.LedgerFilter) *whereBuilder {
	w := &whereBuilder{}
	w.add(alias+".organization_id = $%d", filter.OrganizationID)
	if filter.PropertyID != nil {
		w.add(alias+".property_id = $%d", *filter.PropertyID)
	}
	if filter.Window.From != nil {
		w.add(alias+".transaction_date >= $%d", domain.DateOf(*filter.Window.From))
	}
	if filter.Window.To != nil {
		w.add(alias+".transaction_date <= $%d", domain.DateOf(*filter.Window.To))
	}
	return w
}

// pageWhere builds the filter of one keyset page, newest first.
func pageWhere(alias, idColumn, organizationID string, propertyID *string, nextToken *string) (*whereBuilder, error) {
	w := ledgerWhere(alias, domain.LedgerFilter{OrganizationID: organizationID, PropertyID: propertyID})
	if nextToken == nil || *nextToken == "" {
		return w, nil
	}
	cursor, err := pagination.DecodeToken(*nextToken)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("invalid nextToken: " + err.Error())
	}
	w.args = append(w.args, cursor.TransactionDate, cursor.CreatedAt, cursor.ID)
	n := len(w.args)
	w.conds = append(w.conds, fmt.Sprintf("(%s.transaction_date, %s.created_at, %s.%s) < ($%d, $%d, $%d)",
		alias, alias, alias, idColumn, n-2, n-1, n))
	return w, nil
}

// nextPageToken returns the token of the page after rows, or nil when rows is the last page.
// rows holds up to limit+1 entries; the extra one only signals that more exist.
func nextPageToken[T any](rows []T, limit int, cursorOf func(T) pagination.Cursor) ([]T, *string) {
	if len(rows) <= limit {
		return rows, nil
	}
	rows = rows[:limit]
	token := pagination.EncodeToken(cursorOf(rows[len(rows)-1]))
	return rows, &token
}
