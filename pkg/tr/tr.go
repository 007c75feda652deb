package tr

import (
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Manager выполняет fn в одной транзакции PostgreSQL. Репозитории подхватывают её из контекста.
type Manager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// NewManager создаёт менеджер транзакций поверх пула соединений.
func NewManager(pool *pgxpool.Pool) Manager {
	return manager.Must(trmpgx.NewDefaultFactory(pool))
}

// Conn возвращает транзакцию из контекста, если она открыта, иначе сам пул.
func Conn(ctx context.Context, pool *pgxpool.Pool) trmpgx.Tr {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, pool)
}
