package odb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/preceeder/go.db.odb/builder"
)

// ConnectionError ModeExist 下目标数据库不存在
type ConnectionError struct {
	Database string
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database %q does not exist, use mode %q to create it", e.Database, ModeCreate)
}

type Client struct {
	Config  Config
	builder builder.Builder
	driver  Driver
	// 当前使用的连接配置, 删除数据库后不再带 DATABASE
	active ConnectionConfig
}

type Option func(*Client)

// WithDriver 替换默认的 database/sql 驱动
func WithDriver(d Driver) Option {
	return func(c *Client) {
		c.driver = d
	}
}

// NewClient 按 Mode 处理目标数据库, 之后的操作都连接到目标数据库
func NewClient(ctx context.Context, config Config, opts ...Option) (*Client, error) {
	config = config.withDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}
	c := &Client{
		Config:  config,
		builder: builder.Builder{BindSelect: config.BindSelect},
		active:  config.Connection.WithoutDatabase(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.driver == nil {
		c.driver = NewSQLDriver(config.SqlDriver)
	}

	database := config.Connection.Database
	switch config.Mode {
	case ModeCreate:
		if err := c.EnsureDatabase(ctx); err != nil {
			return nil, err
		}
	case ModeExist:
		ok, err := c.DatabaseExists(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.WithStack(&ConnectionError{Database: database})
		}
	}
	c.active = config.Connection
	slog.InfoContext(ctx, "odb client ready", "conn", c.active.Redacted(), "mode", config.Mode)
	return c, nil
}

// ConnectionString 当前使用的连接串
func (c *Client) ConnectionString() string {
	return c.active.String()
}

func (c *Client) Database() string {
	return c.Config.Connection.Database
}

type execOptions struct {
	autocommit bool
	fetch      bool
	// 不带 DATABASE 连接, 数据库级别的操作使用
	server bool
}

func (c *Client) target(opt execOptions) ConnectionConfig {
	if opt.server {
		return c.active.WithoutDatabase()
	}
	return c.active
}

// execute 每条语句一个连接, 任何情况下都会关闭连接
func (c *Client) execute(ctx context.Context, stmt builder.BoundStatement, opt execOptions) (rows []Row, affected int64, err error) {
	cc := c.target(opt)
	conn, err := c.driver.Connect(ctx, cc.String(), opt.autocommit)
	if err != nil {
		slog.ErrorContext(ctx, "odb connect failed", "error", err, "conn", cc.Redacted())
		return nil, 0, err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			slog.ErrorContext(ctx, "odb close failed", "error", cerr)
		}
	}()

	slog.DebugContext(ctx, "odb execute", "sql", stmt.SQL, "data", stmt.Args, "autocommit", opt.autocommit)
	if opt.fetch {
		rows, err = conn.FetchAll(ctx, stmt.SQL, stmt.Args...)
		if err != nil {
			slog.ErrorContext(ctx, "odb query failed", "error", err, "sql", stmt.SQL, "data", stmt.Args)
			return nil, 0, err
		}
		return rows, 0, nil
	}

	rs, err := conn.Exec(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		slog.ErrorContext(ctx, "odb execute failed", "error", err, "sql", stmt.SQL, "data", stmt.Args)
		return nil, 0, err
	}
	if !opt.autocommit {
		if err = conn.Commit(); err != nil {
			slog.ErrorContext(ctx, "odb commit failed", "error", err, "sql", stmt.SQL)
			return nil, 0, err
		}
	}
	// 部分驱动 DDL 不支持 RowsAffected
	if n, rerr := rs.RowsAffected(); rerr == nil {
		affected = n
	}
	return nil, affected, nil
}

// Select
// columns: "name" | []string{"name", "age"}
// conds 为 nil 查询全部, 条件值直接拼接到 SQL 中(除非配置了 BindSelect)
func (c *Client) Select(ctx context.Context, table string, columns any, conds builder.Conditions) ([]Row, error) {
	stmt, err := c.builder.Select(table, columns, conds)
	if err != nil {
		return nil, err
	}
	rows, _, err := c.execute(ctx, stmt, execOptions{fetch: true})
	return rows, err
}

// SelectInto 同 Select, 结果扫描到 dest (结构体切片的指针, 使用 db tag)
func (c *Client) SelectInto(ctx context.Context, dest any, table string, columns any, conds builder.Conditions) error {
	stmt, err := c.builder.Select(table, columns, conds)
	if err != nil {
		return err
	}
	conn, err := c.driver.Connect(ctx, c.active.String(), false)
	if err != nil {
		return err
	}
	defer conn.Close()

	slog.DebugContext(ctx, "odb select", "sql", stmt.SQL, "data", stmt.Args)
	if err := conn.Select(ctx, dest, stmt.SQL, stmt.Args...); err != nil {
		slog.ErrorContext(ctx, "odb select failed", "error", err, "sql", stmt.SQL, "data", stmt.Args)
		return err
	}
	return nil
}

// Insert 返回影响的行数
func (c *Client) Insert(ctx context.Context, table string, columns any, values []any) (int64, error) {
	stmt, err := c.builder.Insert(table, columns, values)
	if err != nil {
		return 0, err
	}
	_, n, err := c.execute(ctx, stmt, execOptions{})
	return n, err
}

// InsertMany 多行数据, 同一连接中逐行执行后一起提交
func (c *Client) InsertMany(ctx context.Context, table string, columns any, rows [][]any) error {
	batch, err := c.builder.InsertMany(table, columns, rows)
	if err != nil {
		return err
	}
	conn, err := c.driver.Connect(ctx, c.active.String(), false)
	if err != nil {
		return err
	}
	defer conn.Close()

	slog.DebugContext(ctx, "odb execute many", "sql", batch.SQL, "rows", len(batch.Rows))
	if err := conn.ExecMany(ctx, batch.SQL, batch.Rows); err != nil {
		slog.ErrorContext(ctx, "odb execute many failed", "error", err, "sql", batch.SQL, "data", batch.Rows)
		return err
	}
	return conn.Commit()
}

// Update 更新一个字段
// 没有条件时不执行, 直接返回 0
func (c *Client) Update(ctx context.Context, table, column string, value any, conds builder.Conditions) (int64, error) {
	stmt, err := c.builder.Update(table, column, value, conds)
	if err != nil {
		return 0, err
	}
	if len(conds) == 0 {
		slog.DebugContext(ctx, "odb update skipped, no conditions", "sql", stmt.SQL)
		return 0, nil
	}
	_, n, err := c.execute(ctx, stmt, execOptions{})
	return n, err
}

// Delete 必须有条件
func (c *Client) Delete(ctx context.Context, table string, conds builder.Conditions) (int64, error) {
	stmt, err := c.builder.Delete(table, conds)
	if err != nil {
		return 0, err
	}
	_, n, err := c.execute(ctx, stmt, execOptions{})
	return n, err
}

// CreateTable 在当前数据库中建表
func (c *Client) CreateTable(ctx context.Context, name string, defs []builder.ColumnDef) error {
	stmt, err := c.builder.CreateTable(name, defs)
	if err != nil {
		return err
	}
	_, _, err = c.execute(ctx, stmt, execOptions{})
	return err
}

func (c *Client) DropTable(ctx context.Context, name string) error {
	stmt, err := c.builder.DropTable(name)
	if err != nil {
		return err
	}
	_, _, err = c.execute(ctx, stmt, execOptions{})
	return err
}
