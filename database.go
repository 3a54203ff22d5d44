package odb

import (
	"context"
	"fmt"
	"log/slog"
)

// DatabaseExists 在 master.dbo.sysdatabases 中按名字查找目标数据库
func (c *Client) DatabaseExists(ctx context.Context) (bool, error) {
	stmt, err := c.builder.DatabaseExists(c.Database())
	if err != nil {
		return false, err
	}
	rows, _, err := c.execute(ctx, stmt, execOptions{fetch: true, server: true})
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// ListDatabases 服务器上所有数据库的名字
func (c *Client) ListDatabases(ctx context.Context) ([]string, error) {
	stmt, err := c.builder.ListDatabases()
	if err != nil {
		return nil, err
	}
	rows, _, err := c.execute(ctx, stmt, execOptions{fetch: true, server: true})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		if len(r) == 0 {
			continue
		}
		switch v := r[0].(type) {
		case []byte:
			names = append(names, string(v))
		default:
			names = append(names, fmt.Sprint(v))
		}
	}
	return names, nil
}

// CreateDatabase CREATE DATABASE 不能在事务中执行, 使用 autocommit
func (c *Client) CreateDatabase(ctx context.Context) error {
	stmt, err := c.builder.CreateDatabase(c.Database())
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "odb create database", "database", c.Database())
	_, _, err = c.execute(ctx, stmt, execOptions{autocommit: true, server: true})
	return err
}

// EnsureDatabase 不存在就创建
func (c *Client) EnsureDatabase(ctx context.Context) error {
	ok, err := c.DatabaseExists(ctx)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return c.CreateDatabase(ctx)
}

// DropDatabase 删除目标数据库
// 之后 Client 的连接不再带 DATABASE; 数据库不存在时只记录日志, 不返回错误
func (c *Client) DropDatabase(ctx context.Context) error {
	c.active = c.active.WithoutDatabase()

	ok, err := c.DatabaseExists(ctx)
	if err != nil {
		return err
	}
	if !ok {
		slog.InfoContext(ctx, "odb database not exists, nothing to drop", "database", c.Database())
		return nil
	}
	stmt, err := c.builder.DropDatabase(c.Database())
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "odb drop database", "database", c.Database())
	_, _, err = c.execute(ctx, stmt, execOptions{autocommit: true, server: true})
	return err
}
