package sql

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	sqlite "github.com/go-llsqlite/crawshaw"
	"github.com/go-llsqlite/crawshaw/sqlitex"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	// ErrNoConnection is returned when the pool is closed or the context expired
	// before a connection became free.
	ErrNoConnection = errors.New("state db: no free connection")
	// ErrNotFound is returned if requested record is not found.
	ErrNotFound = errors.New("state db: not found")
	// ErrObjectExists is returned when a primary key or unique constraint rejects a write.
	ErrObjectExists = errors.New("state db: object exists")
	// ErrTooNew is returned if the schema on disk is ahead of the binary.
	ErrTooNew = errors.New("state db: schema version is too new")
)

// Executor runs a single statement. Both *Database and *Tx implement it, so
// the query packages work the same inside and outside of a transaction.
type Executor interface {
	Exec(string, Encoder, Decoder) (int, error)
}

// Statement is an sqlite statement.
type Statement = sqlite.Stmt

// Encoder binds parameters. Positional (?1) and named (@radio) parameters
// are both accepted, see https://www.sqlite.org/c3ref/bind_blob.html.
type Encoder func(*Statement)

// Decoder is called for every row. Returning false stops the iteration.
type Decoder func(*Statement) bool

type options struct {
	migrate     bool
	memory      bool
	connections int
	latency     bool
	logger      *zap.Logger
	migrations  Migrations
}

// Opt for configuring database.
type Opt func(*options)

// WithConnections sets the size of the connection pool.
func WithConnections(n int) Opt {
	return func(o *options) {
		o.connections = n
	}
}

// WithLogger specifies logger for the database.
func WithLogger(logger *zap.Logger) Opt {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMigrations replaces the embedded schema.
func WithMigrations(migrations Migrations) Opt {
	return func(o *options) {
		o.migrations = migrations
	}
}

// WithMigrationsDisabled opens the database as is.
func WithMigrationsDisabled() Opt {
	return func(o *options) {
		o.migrate = false
	}
}

// WithLatencyMetering observes the duration of every query.
func WithLatencyMetering(enable bool) Opt {
	return func(o *options) {
		o.latency = enable
	}
}

// InMemory opens a private in-memory database with a single connection.
// It panics on error and is meant for tests.
func InMemory(opts ...Opt) *Database {
	opts = append(opts, WithConnections(1), func(o *options) { o.memory = true })
	db, err := Open("file::memory:?mode=memory", opts...)
	if err != nil {
		panic(err)
	}
	return db
}

// Open opens (or creates) the verifier state database and brings its schema
// up to date. File databases use WAL journaling.
func Open(uri string, opts ...Opt) (*Database, error) {
	o := options{
		migrate:     true,
		connections: 4,
		logger:      zap.NewNop(),
		migrations:  embeddedMigrations,
	}
	for _, opt := range opts {
		opt(&o)
	}
	pool, err := openPool(uri, o)
	if err != nil {
		return nil, err
	}
	db := &Database{pool: pool}
	if o.latency {
		db.latency = queryDuration
	}
	if !o.migrate {
		return db, nil
	}
	if err := db.migrate(uri, o); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return db, nil
}

func openPool(uri string, o options) (*sqlitex.Pool, error) {
	if o.memory {
		pool, err := sqlitex.Open(uri, 0, o.connections)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", uri, err)
		}
		return pool, nil
	}
	flags := sqlite.SQLITE_OPEN_READWRITE | sqlite.SQLITE_OPEN_WAL |
		sqlite.SQLITE_OPEN_URI | sqlite.SQLITE_OPEN_NOMUTEX
	pool, err := sqlitex.Open(uri, flags, o.connections)
	if err == nil {
		return pool, nil
	}
	if sqlite.ErrCode(err) != sqlite.SQLITE_CANTOPEN {
		return nil, fmt.Errorf("open %s: %w", uri, err)
	}
	pool, err = sqlitex.Open(uri, flags|sqlite.SQLITE_OPEN_CREATE, o.connections)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", uri, err)
	}
	return pool, nil
}

func (db *Database) migrate(uri string, o options) error {
	var before, after int
	err := db.WithTx(context.Background(), func(tx *Tx) error {
		var err error
		if before, err = version(tx); err != nil {
			return err
		}
		if err := o.migrations(tx); err != nil {
			return err
		}
		after, err = version(tx)
		return err
	})
	if err != nil {
		return fmt.Errorf("migrate %s: %w", uri, err)
	}
	if after != before {
		o.logger.Info("state schema migrated",
			zap.String("uri", uri),
			zap.Int("from", before),
			zap.Int("to", after),
		)
	}
	return nil
}

// Database is a pool of sqlite connections.
type Database struct {
	pool    *sqlitex.Pool
	latency *prometheus.HistogramVec

	mu     sync.Mutex
	closed bool
}

// WithTx runs exec inside an immediate transaction and commits it if exec
// returns nil. Any other outcome rolls the transaction back.
func (db *Database) WithTx(ctx context.Context, exec func(*Tx) error) error {
	conn := db.pool.Get(ctx)
	if conn == nil {
		return ErrNoConnection
	}
	defer db.pool.Put(conn)
	tx := &Tx{conn: conn, observe: db.observe}
	if err := tx.step("BEGIN IMMEDIATE;"); err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := exec(tx); err != nil {
		return errors.Join(err, tx.rollback())
	}
	if err := tx.step("COMMIT;"); err != nil {
		// sqlite leaves the transaction open only for some commit failures
		_ = tx.rollback()
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Exec runs a statement on a pooled connection outside of any transaction.
// It blocks until a connection is free.
func (db *Database) Exec(query string, encoder Encoder, decoder Decoder) (int, error) {
	conn := db.pool.Get(context.Background())
	if conn == nil {
		return 0, ErrNoConnection
	}
	defer db.pool.Put(conn)
	defer db.observe(query)()
	return exec(conn, query, encoder, decoder)
}

func (db *Database) observe(query string) func() {
	if db.latency == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		db.latency.WithLabelValues(query).Observe(float64(time.Since(start)))
	}
}

// Close closes all pooled connections. Calling it twice is a no-op.
func (db *Database) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return nil
	}
	if err := db.pool.Close(); err != nil {
		return fmt.Errorf("close pool: %w", err)
	}
	db.closed = true
	return nil
}

// Tx is an open transaction, valid only inside the WithTx callback.
type Tx struct {
	conn    *sqlite.Conn
	observe func(string) func()
}

// Exec runs a statement within the transaction.
func (tx *Tx) Exec(query string, encoder Encoder, decoder Decoder) (int, error) {
	defer tx.observe(query)()
	return exec(tx.conn, query, encoder, decoder)
}

func (tx *Tx) step(query string) error {
	_, err := tx.conn.Prep(query).Step()
	return err
}

func (tx *Tx) rollback() error {
	if err := tx.step("ROLLBACK;"); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

func exec(conn *sqlite.Conn, query string, encoder Encoder, decoder Decoder) (int, error) {
	stmt, err := conn.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("prepare %s: %w", query, err)
	}
	defer stmt.ClearBindings()
	if encoder != nil {
		encoder(stmt)
	}
	for rows := 0; ; rows++ {
		more, err := stmt.Step()
		switch code := sqlite.ErrCode(err); {
		case err == nil:
		case code == sqlite.SQLITE_CONSTRAINT_PRIMARYKEY, code == sqlite.SQLITE_CONSTRAINT_UNIQUE:
			return 0, ErrObjectExists
		default:
			return 0, fmt.Errorf("step %d: %w", rows, err)
		}
		if !more {
			return rows, nil
		}
		if decoder != nil && !decoder(stmt) {
			if err := stmt.Reset(); err != nil {
				return rows + 1, fmt.Errorf("reset: %w", err)
			}
			return rows + 1, nil
		}
	}
}

// IsNull reports whether the result column col holds NULL.
func IsNull(stmt *Statement, col int) bool {
	return stmt.ColumnType(col) == sqlite.SQLITE_NULL
}
