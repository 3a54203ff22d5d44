package builder

// Keyword 是 SQL 关键字, 只能取下面定义的值
type Keyword uint8

const (
	SELECT Keyword = iota + 1
	INSERT
	UPDATE
	DELETE
	CREATE
	DROP
	FROM
	INTO
	SET
	WHERE
	VALUES
	AND
	OR
	DATABASE
	TABLE
)

var keywordText = [...]string{
	SELECT:   "SELECT",
	INSERT:   "INSERT",
	UPDATE:   "UPDATE",
	DELETE:   "DELETE",
	CREATE:   "CREATE",
	DROP:     "DROP",
	FROM:     "FROM",
	INTO:     "INTO",
	SET:      "SET",
	WHERE:    "WHERE",
	VALUES:   "VALUES",
	AND:      "AND",
	OR:       "OR",
	DATABASE: "DATABASE",
	TABLE:    "TABLE",
}

// String 返回关键字的大写文本, 未定义的值返回空串
func (k Keyword) String() string {
	if !k.Valid() {
		return ""
	}
	return keywordText[k]
}

func (k Keyword) Valid() bool {
	return k > 0 && int(k) < len(keywordText)
}
