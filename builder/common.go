package builder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/duke-git/lancet/v2/strutil"
)

// Columns 把列参数转成逗号拼接的列表
// 支持: string 原样返回, []string / []any / [N]string 用 "," 连接 (不带空格)
// 其他类型直接报错, 此时还没有生成任何 SQL
func Columns(items any) (string, error) {
	switch v := items.(type) {
	case string:
		return v, nil
	case []string:
		return strings.Join(v, ","), nil
	case []any:
		cols := make([]string, 0, len(v))
		for _, it := range v {
			s, ok := it.(string)
			if !ok {
				return "", invalid(msgItems)
			}
			cols = append(cols, s)
		}
		return strings.Join(cols, ","), nil
	}

	// 定长数组 相当于 tuple
	rv := reflect.ValueOf(items)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.String {
		cols := make([]string, rv.Len())
		for i := range cols {
			cols[i] = rv.Index(i).String()
		}
		return strings.Join(cols, ","), nil
	}
	return "", invalid(msgItems)
}

// QuoteName 用方括号包裹标识符, 已经包裹的不处理
func QuoteName(name string) string {
	if strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") {
		return name
	}
	return "[" + name + "]"
}

// literal 直接拼接到 SQL 中的值: col='value'
// 注意: 不做任何转义, 只用于 SELECT 的条件
func literal(column string, value any) string {
	return column + "='" + fmt.Sprint(value) + "'"
}

// placeholders 生成 "(?,?,?)"
func placeholders(n int) string {
	return "(" + strings.Join(slice.Repeat(Placeholder, n), ",") + ")"
}

func checkName(name, reason string) error {
	if strutil.IsBlank(name) {
		return invalid(reason)
	}
	return nil
}
