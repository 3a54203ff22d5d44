package builder

// Default SELECT 条件直接拼接字面量
var Default = Builder{}

func Select(table string, columns any, conds Conditions) (BoundStatement, error) {
	return Default.Select(table, columns, conds)
}

func Insert(table string, columns any, values []any) (BoundStatement, error) {
	return Default.Insert(table, columns, values)
}

func Update(table, column string, value any, conds Conditions) (BoundStatement, error) {
	return Default.Update(table, column, value, conds)
}

func Delete(table string, conds Conditions) (BoundStatement, error) {
	return Default.Delete(table, conds)
}
