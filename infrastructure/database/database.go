package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/vfg2006/sales-kpi-api/internal/config"
)

// pragmas do sqlite, como o cache local de sessões
const sqlitePragmas = "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)"

type Conn interface {
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(*sql.Tx) error) error
	StatementBuilder() squirrel.StatementBuilderType
}

// Connection encapsula o *sql.DB e o dialeto do driver configurado
type Connection struct {
	*sql.DB
	driver string
}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.Driver {
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.DSN); dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("erro ao criar diretório do banco: %w", err)
			}
		}
		db, err = sql.Open("sqlite", cfg.DSN+sqlitePragmas)
		if err == nil {
			// o sqlite aceita um único escritor por vez
			db.SetMaxOpenConns(1)
		}
	case config.DriverPostgres:
		db, err = sql.Open("postgres", cfg.DSN)
	default:
		return nil, fmt.Errorf("driver de banco não suportado: %s", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Connection{DB: db, driver: cfg.Driver}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Driver devolve o nome do driver em uso
func (c *Connection) Driver() string {
	return c.driver
}

// StatementBuilder devolve o builder do squirrel com o placeholder do driver
func (c *Connection) StatementBuilder() squirrel.StatementBuilderType {
	if c.driver == config.DriverPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// RunInTransaction executa fn dentro de uma transação
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}
