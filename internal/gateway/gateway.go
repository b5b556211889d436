package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Row is the wire shape the hosted database speaks: one snake_case
// column map per record.
type Row = map[string]any

// Tables the gateway is allowed to touch. Table names reach SQL, so
// anything outside this set is rejected up front.
var knownTables = map[string]bool{
	"products":   true,
	"categories": true,
	"orders":     true,
	"users":      true,
	"settings":   true,
}

var ErrNotConfigured = errors.New("remote gateway is not configured")

type FailureKind string

const (
	FailureConnectivity FailureKind = "connectivity"
	FailureAuth         FailureKind = "authorization"
	FailureSchema       FailureKind = "schema"
	FailureConflict     FailureKind = "conflict"
)

// Failure tags a remote error so callers can route on it: availability
// failures trigger the local fallback, conflicts surface to the caller.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string { return fmt.Sprintf("gateway %s failure: %v", f.Kind, f.Err) }
func (f *Failure) Unwrap() error { return f.Err }

// IsConflict reports whether err is a uniqueness violation rather than
// an availability problem.
func IsConflict(err error) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == FailureConflict
}

// Client wraps the hosted relational database behind row-level CRUD
// over named tables. It is constructed once at startup and shared.
type Client struct {
	db *gorm.DB
}

// New dials the hosted database. Both the endpoint URL and the access
// key must be present; otherwise the gateway is not configured and the
// session runs without a remote tier. The availability decision is made
// exactly once here, there is no retry loop.
func New(ctx context.Context, endpoint, accessKey string) (*Client, error) {
	if endpoint == "" || accessKey == "" {
		return nil, ErrNotConfigured
	}

	dsn, err := buildDSN(endpoint, accessKey)
	if err != nil {
		return nil, &Failure{Kind: FailureConnectivity, Err: err}
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: true,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, classify(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, classify(err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, classify(err)
	}

	return &Client{db: db}, nil
}

// buildDSN injects the access key as the connection credential when the
// endpoint URL does not already carry one.
func buildDSN(endpoint, accessKey string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint URL: %w", err)
	}
	if u.User == nil {
		u.User = url.UserPassword("postgres", accessKey)
	} else if _, set := u.User.Password(); !set {
		u.User = url.UserPassword(u.User.Username(), accessKey)
	}
	return u.String(), nil
}

func (c *Client) Select(ctx context.Context, table string, filter Row, orderBy string) ([]Row, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	q := c.db.WithContext(ctx).Table(table)
	if len(filter) > 0 {
		q = q.Where(filter)
	}
	if orderBy != "" {
		q = q.Order(orderBy)
	}
	var rows []Row
	if err := q.Find(&rows).Error; err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

// Insert writes a row and returns it as the backend stored it,
// defaults included. Identity is assigned here when the caller did not
// provide one.
func (c *Client) Insert(ctx context.Context, table string, row Row) (Row, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	if _, ok := row["id"]; !ok {
		row["id"] = uuid.NewString()
	}
	if err := c.db.WithContext(ctx).Table(table).Create(row).Error; err != nil {
		return nil, classify(err)
	}
	var stored Row
	if err := c.db.WithContext(ctx).Table(table).Take(&stored, "id = ?", row["id"]).Error; err != nil {
		return nil, classify(err)
	}
	return stored, nil
}

func (c *Client) Update(ctx context.Context, table string, id string, patch Row) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if err := c.db.WithContext(ctx).Table(table).Where("id = ?", id).Updates(patch).Error; err != nil {
		return classify(err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, table string, id string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if err := c.db.WithContext(ctx).Exec("DELETE FROM "+table+" WHERE id = ?", id).Error; err != nil {
		return classify(err)
	}
	return nil
}

// Probe attempts a trivial read against the products table and reports
// the outcome. Diagnostics only; routing decisions never consult it.
func (c *Client) Probe(ctx context.Context) (bool, string) {
	var rows []Row
	err := c.db.WithContext(ctx).Table("products").Limit(1).Find(&rows).Error
	if err != nil {
		return false, classify(err).Error()
	}
	return true, "ok"
}

func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func checkTable(table string) error {
	if !knownTables[table] {
		return &Failure{Kind: FailureSchema, Err: fmt.Errorf("unknown table %q", table)}
	}
	return nil
}

// classify maps driver errors onto the failure taxonomy. The hosted
// service reports schema and auth problems through SQLSTATE codes and
// message text; everything else counts as connectivity.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "sqlstate 23505") || strings.Contains(msg, "duplicate key"):
		return &Failure{Kind: FailureConflict, Err: err}
	case strings.Contains(msg, "sqlstate 42p01") || strings.Contains(msg, "does not exist"):
		return &Failure{Kind: FailureSchema, Err: err}
	case strings.Contains(msg, "sqlstate 28") || strings.Contains(msg, "password authentication") || strings.Contains(msg, "permission denied"):
		return &Failure{Kind: FailureAuth, Err: err}
	default:
		return &Failure{Kind: FailureConnectivity, Err: err}
	}
}
