package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"francoggm/paygate-go-redis/internal/models"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type statusRecord struct {
	bun.BaseModel `bun:"table:payment_statuses,alias:ps"`

	CorrelationID string    `bun:"correlation_id,pk"`
	Status        string    `bun:"status,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}

type SQLLedger struct {
	db *bun.DB
}

func OpenSQL(ctx context.Context, driver, dsn string) (*SQLLedger, error) {
	var dialect schema.Dialect
	switch driver {
	case DriverSQLite:
		dialect = sqlitedialect.New()
	case DriverPostgres:
		dialect = pgdialect.New()
	default:
		return nil, fmt.Errorf("ledger: unsupported sql driver %q", driver)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, unavailable("sql open", err)
	}
	if driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	}

	l := &SQLLedger{db: bun.NewDB(sqlDB, dialect)}
	if err := l.migrate(ctx); err != nil {
		l.db.Close()
		return nil, err
	}

	return l, nil
}

func (l *SQLLedger) migrate(ctx context.Context) error {
	_, err := l.db.NewCreateTable().
		Model((*statusRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return unavailable("sql create table", err)
	}

	return nil
}

func (l *SQLLedger) Set(ctx context.Context, id models.CorrelationID, status models.Status) error {
	record := &statusRecord{
		CorrelationID: id.String(),
		Status:        status.String(),
		UpdatedAt:     time.Now().UTC(),
	}

	_, err := l.db.NewInsert().
		Model(record).
		On("CONFLICT (correlation_id) DO UPDATE").
		Set("status = EXCLUDED.status").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return unavailable("sql upsert", err)
	}

	return nil
}

func (l *SQLLedger) Get(ctx context.Context, id models.CorrelationID) (models.Status, error) {
	record := &statusRecord{}
	err := l.db.NewSelect().
		Model(record).
		Where("?TableAlias.correlation_id = ?", id.String()).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StatusUnknown, nil
	}
	if err != nil {
		return models.StatusUnknown, unavailable("sql select", err)
	}

	return models.ParseStatus(record.Status), nil
}

func (l *SQLLedger) Ping(ctx context.Context) error {
	if err := l.db.PingContext(ctx); err != nil {
		return unavailable("sql ping", err)
	}

	return nil
}

func (l *SQLLedger) Close() error {
	return l.db.Close()
}
