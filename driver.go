package odb

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Row 一行数据, 顺序与查询的列一致
type Row []any

// Driver 打开一个作用域连接, 用完必须 Close
// autocommit=false 时语句在事务中执行, 需要 Commit 才生效
type Driver interface {
	Connect(ctx context.Context, dsn string, autocommit bool) (Conn, error)
}

// Conn 一次操作使用的连接
type Conn interface {
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
	ExecMany(ctx context.Context, query string, rows [][]any) error
	FetchAll(ctx context.Context, query string, args ...any) ([]Row, error)
	// Select 扫描到结构体切片, 列名对应 db tag
	Select(ctx context.Context, dest any, query string, args ...any) error
	Commit() error
	Close() error
}

// SQLDriver 基于 database/sql + sqlx 的实现, name 为注册的驱动名 例如 odbc
type SQLDriver struct {
	name string
}

func NewSQLDriver(name string) *SQLDriver {
	return &SQLDriver{name: name}
}

func (d *SQLDriver) Name() string {
	return d.name
}

// Connect 每次都新建连接, 不使用连接池
func (d *SQLDriver) Connect(ctx context.Context, dsn string, autocommit bool) (Conn, error) {
	db, err := sqlx.ConnectContext(ctx, d.name, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	c := &sqlConn{db: db}
	if !autocommit {
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		c.tx = tx
	}
	return c, nil
}

type execer interface {
	sqlx.ExecerContext
	sqlx.QueryerContext
}

type sqlConn struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func (c *sqlConn) target() execer {
	if c.tx != nil {
		return c.tx
	}
	return c.db
}

func (c *sqlConn) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.target().ExecContext(ctx, c.db.Rebind(query), args...)
}

func (c *sqlConn) ExecMany(ctx context.Context, query string, rows [][]any) error {
	q := c.db.Rebind(query)
	var stmt *sqlx.Stmt
	var err error
	if c.tx != nil {
		stmt, err = c.tx.PreparexContext(ctx, q)
	} else {
		stmt, err = c.db.PreparexContext(ctx, q)
	}
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, args := range rows {
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}

func (c *sqlConn) FetchAll(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := c.target().QueryxContext(ctx, c.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]Row, 0)
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		result = append(result, Row(values))
	}
	return result, rows.Err()
}

func (c *sqlConn) Select(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, c.target(), dest, c.db.Rebind(query), args...)
}

func (c *sqlConn) Commit() error {
	if c.tx == nil {
		return nil
	}
	err := c.tx.Commit()
	c.tx = nil
	return err
}

// Close 未提交的事务会回滚
func (c *sqlConn) Close() error {
	if c.tx != nil {
		_ = c.tx.Rollback()
		c.tx = nil
	}
	return c.db.Close()
}
