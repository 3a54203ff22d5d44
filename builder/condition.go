package builder

// Condition 一个等值条件 column = value
type Condition struct {
	Column string
	Value  any
}

// Conditions 有序的条件列表, 生成 SQL 时按顺序输出, 用 AND 连接
// nil 表示没有传条件, 非 nil 的空列表表示传了但是为空
type Conditions []Condition

// Eq 生成一个条件
func Eq(column string, value any) Condition {
	return Condition{Column: column, Value: value}
}

// Where 创建条件列表
// Where(Eq("id", 5), Eq("active", 1))
func Where(conds ...Condition) Conditions {
	if conds == nil {
		return Conditions{}
	}
	return conds
}

// And 追加条件, 返回新的列表
func (c Conditions) And(column string, value any) Conditions {
	out := make(Conditions, len(c), len(c)+1)
	copy(out, c)
	return append(out, Condition{Column: column, Value: value})
}

func (c Conditions) Len() int {
	return len(c)
}

func (c Conditions) Columns() []string {
	cols := make([]string, len(c))
	for i, cd := range c {
		cols[i] = cd.Column
	}
	return cols
}

func (c Conditions) Values() []any {
	vals := make([]any, len(c))
	for i, cd := range c {
		vals[i] = cd.Value
	}
	return vals
}

func (c Conditions) validate() error {
	for _, cd := range c {
		if err := checkName(cd.Column, msgColumn); err != nil {
			return err
		}
	}
	return nil
}

// whereTokens 生成 WHERE 子句
// bind=false: col='value' 直接拼接, 没有参数
// bind=true:  col = ? , 返回按顺序的参数
func (c Conditions) whereTokens(bind bool) (Tokens, []any) {
	tokens := Tokens{Kw(WHERE)}
	var args []any
	last := len(c) - 1
	for i, cd := range c {
		if bind {
			tokens = append(tokens, Raw(cd.Column), Raw("="), Param())
			args = append(args, cd.Value)
		} else {
			tokens = append(tokens, Raw(literal(cd.Column, cd.Value)))
		}
		// 最后一个条件后面不加 AND
		if i != last {
			tokens = append(tokens, Kw(AND))
		}
	}
	return tokens, args
}
