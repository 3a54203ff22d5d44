package builder

import "strings"

// Placeholder 绑定参数的占位符, 执行前由驱动替换
const Placeholder = "?"

type tokenKind uint8

const (
	kindKeyword tokenKind = iota
	kindRaw
	kindPlaceholder
)

// Token 组成 SQL 的最小单元: 关键字, 原样输出的文本(表名/列名/字面量), 或占位符
type Token struct {
	kind    tokenKind
	keyword Keyword
	text    string
}

func Kw(k Keyword) Token {
	return Token{kind: kindKeyword, keyword: k}
}

func Raw(text string) Token {
	return Token{kind: kindRaw, text: text}
}

func Param() Token {
	return Token{kind: kindPlaceholder}
}

func (t Token) String() string {
	switch t.kind {
	case kindKeyword:
		return t.keyword.String()
	case kindPlaceholder:
		return Placeholder
	default:
		return t.text
	}
}

// Tokens 按顺序用单个空格拼接
type Tokens []Token

func (ts Tokens) String() string {
	parts := make([]string, 0, len(ts))
	for _, t := range ts {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, " ")
}

// BoundStatement 构建结果: SQL 文本和按占位符顺序排列的参数
type BoundStatement struct {
	SQL  string
	Args []any
}

func (b BoundStatement) String() string {
	return b.SQL
}

// BatchStatement 同一条 SQL 执行多次, 每次一组参数
type BatchStatement struct {
	SQL  string
	Rows [][]any
}

func newStatement(tokens Tokens, args []any) BoundStatement {
	return BoundStatement{SQL: tokens.String(), Args: args}
}
