package sheets

import (
	"context"

	"hisaab/internal/core"
)

// RowAppender mirrors expense records to an external sheet.
type RowAppender interface {
	AppendExpense(ctx context.Context, e core.Expense) error
}
