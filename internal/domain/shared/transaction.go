package shared

import "context"

// TransactionManager runs a unit of work atomically. Repositories called
// inside fn observe the transaction through the context; an error returned
// by fn rolls back every write made within it.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
