package builder

import (
	"strings"
)

// 系统库中记录所有数据库名的表
const SysDatabases = "master.dbo.sysdatabases"

// ColumnDef 建表时的列定义, Type 原样输出 例如 "INT NOT NULL"
type ColumnDef struct {
	Name string
	Type string
}

// Builder 根据操作生成 BoundStatement
// BindSelect 为 true 时 SELECT 的条件也使用占位符, 默认直接拼接字面量
type Builder struct {
	BindSelect bool
}

// Select
// SELECT <columns> FROM <table> [WHERE col='v' AND ...]
// conds 为 nil 时不生成 WHERE, 非 nil 但为空时报错
func (b Builder) Select(table string, columns any, conds Conditions) (BoundStatement, error) {
	cols, err := Columns(columns)
	if err != nil {
		return BoundStatement{}, err
	}
	if err := checkName(table, msgTable); err != nil {
		return BoundStatement{}, err
	}
	tokens := Tokens{Kw(SELECT), Raw(cols), Kw(FROM), Raw(table)}
	var args []any
	if conds != nil {
		if len(conds) == 0 {
			return BoundStatement{}, invalid(msgConditions)
		}
		if err := conds.validate(); err != nil {
			return BoundStatement{}, err
		}
		where, whereArgs := conds.whereTokens(b.BindSelect)
		tokens = append(tokens, where...)
		args = whereArgs
	}
	return newStatement(tokens, args), nil
}

// Insert
// INSERT INTO <table> (<columns>) VALUES (?,?,...)
// 每个值一个占位符, 值全部作为参数
func (b Builder) Insert(table string, columns any, values []any) (BoundStatement, error) {
	cols, err := Columns(columns)
	if err != nil {
		return BoundStatement{}, err
	}
	if err := checkName(table, msgTable); err != nil {
		return BoundStatement{}, err
	}
	tokens := Tokens{Kw(INSERT), Kw(INTO), Raw(table), Raw("(" + cols + ")"), Kw(VALUES), Raw(placeholders(len(values)))}
	args := make([]any, len(values))
	copy(args, values)
	return newStatement(tokens, args), nil
}

// InsertMany 多行插入共用一条语句, 每行一组参数, 行宽必须一致
func (b Builder) InsertMany(table string, columns any, rows [][]any) (BatchStatement, error) {
	if len(rows) == 0 {
		return BatchStatement{}, invalid("rows must be a non-empty list")
	}
	width := len(rows[0])
	for _, r := range rows[1:] {
		if len(r) != width {
			return BatchStatement{}, invalid("rows must have the same number of values")
		}
	}
	stmt, err := b.Insert(table, columns, rows[0])
	if err != nil {
		return BatchStatement{}, err
	}
	return BatchStatement{SQL: stmt.SQL, Rows: rows}, nil
}

// Update
// UPDATE <table> SET <column> = ? [WHERE col = ? AND ...]
// 参数顺序: SET 的值, 然后是条件的值
// 没有条件时也会生成语句, 是否执行由调用方决定
func (b Builder) Update(table, column string, value any, conds Conditions) (BoundStatement, error) {
	if err := checkName(table, msgTable); err != nil {
		return BoundStatement{}, err
	}
	if err := checkName(column, msgColumn); err != nil {
		return BoundStatement{}, err
	}
	tokens := Tokens{Kw(UPDATE), Raw(table), Kw(SET), Raw(column), Raw("="), Param()}
	args := []any{value}
	if len(conds) > 0 {
		if err := conds.validate(); err != nil {
			return BoundStatement{}, err
		}
		where, whereArgs := conds.whereTokens(true)
		tokens = append(tokens, where...)
		args = append(args, whereArgs...)
	}
	return newStatement(tokens, args), nil
}

// Delete
// DELETE FROM <table> WHERE col = ? AND ...
// 必须有条件
func (b Builder) Delete(table string, conds Conditions) (BoundStatement, error) {
	if len(conds) == 0 {
		return BoundStatement{}, invalid(msgConditionsMust)
	}
	if err := checkName(table, msgTable); err != nil {
		return BoundStatement{}, err
	}
	if err := conds.validate(); err != nil {
		return BoundStatement{}, err
	}
	tokens := Tokens{Kw(DELETE), Kw(FROM), Raw(table)}
	where, args := conds.whereTokens(true)
	tokens = append(tokens, where...)
	return newStatement(tokens, args), nil
}

// CreateDatabase CREATE DATABASE [name]
// 需要在 autocommit 模式下执行, 不能放在事务中
func (b Builder) CreateDatabase(name string) (BoundStatement, error) {
	return b.object(CREATE, DATABASE, name)
}

// DropDatabase DROP DATABASE [name]
func (b Builder) DropDatabase(name string) (BoundStatement, error) {
	return b.object(DROP, DATABASE, name)
}

// CreateTable CREATE TABLE [name] (col TYPE, ...)
func (b Builder) CreateTable(name string, defs []ColumnDef) (BoundStatement, error) {
	if len(defs) == 0 {
		return BoundStatement{}, invalid("table needs at least one column")
	}
	parts := make([]string, 0, len(defs))
	for _, d := range defs {
		if err := checkName(d.Name, msgColumn); err != nil {
			return BoundStatement{}, err
		}
		parts = append(parts, strings.TrimSpace(QuoteName(d.Name)+" "+d.Type))
	}
	stmt, err := b.object(CREATE, TABLE, name)
	if err != nil {
		return BoundStatement{}, err
	}
	stmt.SQL += " (" + strings.Join(parts, ", ") + ")"
	return stmt, nil
}

// DropTable DROP TABLE [name]
func (b Builder) DropTable(name string) (BoundStatement, error) {
	return b.object(DROP, TABLE, name)
}

// ListDatabases 查询服务器上所有的数据库名
func (b Builder) ListDatabases() (BoundStatement, error) {
	return b.Select(SysDatabases, "name", nil)
}

// DatabaseExists 按名字在系统库中查找数据库
func (b Builder) DatabaseExists(name string) (BoundStatement, error) {
	if err := checkName(name, msgName); err != nil {
		return BoundStatement{}, err
	}
	return b.Select(SysDatabases, "name", Where(Eq("name", name)))
}

func (b Builder) object(action, object Keyword, name string) (BoundStatement, error) {
	if err := checkName(name, msgName); err != nil {
		return BoundStatement{}, err
	}
	return newStatement(Tokens{Kw(action), Kw(object), Raw(QuoteName(name))}, nil), nil
}
