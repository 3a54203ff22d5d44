package builder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyword(t *testing.T) {
	assert.Equal(t, "SELECT", SELECT.String())
	assert.Equal(t, "VALUES", VALUES.String())
	assert.Equal(t, "DATABASE", DATABASE.String())
	assert.Equal(t, "", Keyword(0).String())
	assert.Equal(t, "", Keyword(200).String())
	assert.False(t, Keyword(200).Valid())
}

func TestTokens(t *testing.T) {
	ts := Tokens{Kw(UPDATE), Raw("t_user"), Kw(SET), Raw("name"), Raw("="), Param()}
	assert.Equal(t, "UPDATE t_user SET name = ?", ts.String())
	assert.Equal(t, "", Tokens{}.String())
}

func TestColumns(t *testing.T) {
	cases := []struct {
		name  string
		items any
		want  string
	}{
		{"string", "name", "name"},
		{"string list", []string{"name", "age"}, "name,age"},
		{"any list", []any{"name", "age", "id"}, "name,age,id"},
		{"array", [2]string{"a", "b"}, "a,b"},
		{"star", "*", "*"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Columns(c.items)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}

	for _, bad := range []any{nil, 12, []int{1}, []any{"a", 1}, map[string]string{}} {
		_, err := Columns(bad)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Equal(t, "items must be a string or list/tuple of strings", err.Error())
	}
}

func TestSelect(t *testing.T) {
	stmt, err := Select("Users", "name", Where(Eq("id", 5)))
	require.NoError(t, err)
	assert.Equal(t, "SELECT name FROM Users WHERE id='5'", stmt.SQL)
	assert.Empty(t, stmt.Args)

	stmt, err = Select("Users", []string{"name", "age"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "SELECT name,age FROM Users", stmt.SQL)

	stmt, err = Select("Users", "*", Where(Eq("name", "Ann"), Eq("age", 30)))
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM Users WHERE name='Ann' AND age='30'", stmt.SQL)
}

func TestSelect_EmptyConditions(t *testing.T) {
	_, err := Select("Users", "name", Where())
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "conditions must be a non-empty mapping", err.Error())

	_, err = Select("Users", "name", Conditions{})
	assert.True(t, IsValidation(err))
}

func TestSelect_BadColumnsBeforeConditions(t *testing.T) {
	_, err := Select("Users", 3, Where())
	require.Error(t, err)
	assert.Equal(t, msgItems, err.Error())
}

func TestSelect_Bound(t *testing.T) {
	b := Builder{BindSelect: true}
	stmt, err := b.Select("Users", "name", Where(Eq("id", 5), Eq("active", 1)))
	require.NoError(t, err)
	assert.Equal(t, "SELECT name FROM Users WHERE id = ? AND active = ?", stmt.SQL)
	assert.Equal(t, []any{5, 1}, stmt.Args)
}

func TestSelect_WhereIffConditions(t *testing.T) {
	for n := 0; n < 6; n++ {
		var conds Conditions
		for i := 0; i < n; i++ {
			conds = conds.And("c"+string(rune('a'+i)), i)
		}
		stmt, err := Select("t", []string{"a", "b"}, conds)
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(stmt.SQL, " FROM "))
		assert.Equal(t, n > 0, strings.Contains(stmt.SQL, " WHERE "))
		assert.NotContains(t, stmt.SQL, Placeholder)
		if n >= 2 {
			assert.Equal(t, n-1, strings.Count(stmt.SQL, " AND "))
		}
	}
}

func TestInsert(t *testing.T) {
	stmt, err := Insert("Users", []string{"name", "age"}, []any{"Ann", 30})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO Users (name,age) VALUES (?,?)", stmt.SQL)
	assert.Equal(t, []any{"Ann", 30}, stmt.Args)

	stmt, err = Insert("Users", "name", []any{"Bob"})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO Users (name) VALUES (?)", stmt.SQL)

	_, err = Insert("Users", 1.5, []any{"Bob"})
	assert.True(t, IsValidation(err))
}

func TestInsert_PlaceholderCount(t *testing.T) {
	for n := 1; n <= 8; n++ {
		values := make([]any, n)
		cols := make([]string, n)
		for i := range values {
			values[i] = i * 10
			cols[i] = "c"
		}
		stmt, err := Insert("t", cols, values)
		require.NoError(t, err)
		assert.Equal(t, n, strings.Count(stmt.SQL, Placeholder))
		assert.Equal(t, values, stmt.Args)
	}
}

func TestInsert_ArgsAreCopied(t *testing.T) {
	values := []any{"a", "b"}
	stmt, err := Insert("t", []string{"x", "y"}, values)
	require.NoError(t, err)
	values[0] = "changed"
	assert.Equal(t, "a", stmt.Args[0])
}

func TestInsertMany(t *testing.T) {
	batch, err := Default.InsertMany("Users", []string{"name", "age"}, [][]any{{"Ann", 30}, {"Bob", 41}})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO Users (name,age) VALUES (?,?)", batch.SQL)
	assert.Len(t, batch.Rows, 2)

	_, err = Default.InsertMany("Users", []string{"name", "age"}, nil)
	assert.True(t, IsValidation(err))

	_, err = Default.InsertMany("Users", []string{"name", "age"}, [][]any{{"Ann", 30}, {"Bob"}})
	assert.True(t, IsValidation(err))
}

func TestUpdate(t *testing.T) {
	stmt, err := Update("Users", "name", "Ann", Where(Eq("id", 5), Eq("active", 1)))
	require.NoError(t, err)
	assert.Equal(t, "UPDATE Users SET name = ? WHERE id = ? AND active = ?", stmt.SQL)
	assert.Equal(t, []any{"Ann", 5, 1}, stmt.Args)
	assert.NotContains(t, stmt.SQL, "Ann")

	// 没有条件也能生成, 执行与否由 client 决定
	stmt, err = Update("Users", "name", "Ann", nil)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE Users SET name = ?", stmt.SQL)
	assert.Equal(t, []any{"Ann"}, stmt.Args)

	stmt, err = Update("Users", "name", "Ann", Where())
	require.NoError(t, err)
	assert.Equal(t, "UPDATE Users SET name = ?", stmt.SQL)
}

func TestDelete(t *testing.T) {
	stmt, err := Delete("Users", Where(Eq("id", 5), Eq("active", 1)))
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM Users WHERE id = ? AND active = ?", stmt.SQL)
	assert.Equal(t, []any{5, 1}, stmt.Args)

	for _, conds := range []Conditions{nil, Where()} {
		_, err = Delete("Users", conds)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Equal(t, "conditions must be a non-empty mapping with at least one entry", err.Error())
	}

	_, err = Delete("Users", Where(Eq("", 5)))
	assert.True(t, IsValidation(err))
}

func TestBoundArgsMatchPlaceholders(t *testing.T) {
	conds := Where(Eq("a", "x'1"), Eq("b", 2), Eq("c", nil))
	for _, build := range []func() (BoundStatement, error){
		func() (BoundStatement, error) { return Update("t", "v", 9, conds) },
		func() (BoundStatement, error) { return Delete("t", conds) },
	} {
		stmt, err := build()
		require.NoError(t, err)
		assert.Equal(t, strings.Count(stmt.SQL, Placeholder), len(stmt.Args))
		assert.Equal(t, 2, strings.Count(stmt.SQL, " AND "))
		assert.NotContains(t, stmt.SQL, "x'1")
	}
}

func TestDatabaseDDL(t *testing.T) {
	stmt, err := Default.CreateDatabase("Hello")
	require.NoError(t, err)
	assert.Equal(t, "CREATE DATABASE [Hello]", stmt.SQL)
	assert.Empty(t, stmt.Args)

	stmt, err = Default.DropDatabase("Hello")
	require.NoError(t, err)
	assert.Equal(t, "DROP DATABASE [Hello]", stmt.SQL)

	_, err = Default.CreateDatabase(" ")
	assert.True(t, IsValidation(err))
}

func TestTableDDL(t *testing.T) {
	stmt, err := Default.CreateTable("Users", []ColumnDef{
		{Name: "id", Type: "INT NOT NULL"},
		{Name: "name", Type: "NVARCHAR(64)"},
	})
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE [Users] ([id] INT NOT NULL, [name] NVARCHAR(64))", stmt.SQL)

	stmt, err = Default.DropTable("Users")
	require.NoError(t, err)
	assert.Equal(t, "DROP TABLE [Users]", stmt.SQL)

	_, err = Default.CreateTable("Users", nil)
	assert.True(t, IsValidation(err))
}

func TestSysDatabases(t *testing.T) {
	stmt, err := Default.ListDatabases()
	require.NoError(t, err)
	assert.Equal(t, "SELECT name FROM master.dbo.sysdatabases", stmt.SQL)

	stmt, err = Default.DatabaseExists("Hello")
	require.NoError(t, err)
	assert.Equal(t, "SELECT name FROM master.dbo.sysdatabases WHERE name='Hello'", stmt.SQL)
}

func TestQuoteName(t *testing.T) {
	assert.Equal(t, "[a]", QuoteName("a"))
	assert.Equal(t, "[a]", QuoteName("[a]"))
}

func TestConditions(t *testing.T) {
	base := Where(Eq("a", 1))
	next := base.And("b", 2)
	assert.Equal(t, 1, base.Len())
	assert.Equal(t, []string{"a", "b"}, next.Columns())
	assert.Equal(t, []any{1, 2}, next.Values())

	var none Conditions
	assert.Nil(t, none)
	assert.NotNil(t, Where())
}
