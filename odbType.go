package odb

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// 以下类型用于 SelectInto, 数据库中的 NULL 扫描为零值

// 驱动返回的 []byte 先转成 string 再交给 cast
func normalize(src any) any {
	if b, ok := src.([]byte); ok {
		return string(b)
	}
	return src
}

type NullString string

func (i *NullString) Scan(src any) error {
	if src == nil {
		*i = ""
		return nil
	}
	if t, ok := src.(time.Time); ok {
		*i = NullString(t.Format(time.DateTime))
		return nil
	}
	v, err := cast.ToStringE(normalize(src))
	if err != nil {
		return errors.Wrap(err, "NullString")
	}
	*i = NullString(v)
	return nil
}

func (i NullString) String() string {
	return string(i)
}

type NullInt64 int64

func (i *NullInt64) Scan(src any) error {
	if src == nil {
		*i = 0
		return nil
	}
	v, err := cast.ToInt64E(normalize(src))
	if err != nil {
		return errors.Wrap(err, "NullInt64")
	}
	*i = NullInt64(v)
	return nil
}

func (i NullInt64) Int64() int64 {
	return int64(i)
}

func (i NullInt64) Int() int {
	return int(i)
}

type NullFloat64 float64

func (i *NullFloat64) Scan(src any) error {
	if src == nil {
		*i = 0
		return nil
	}
	v, err := cast.ToFloat64E(normalize(src))
	if err != nil {
		return errors.Wrap(err, "NullFloat64")
	}
	*i = NullFloat64(v)
	return nil
}

func (i NullFloat64) Float64() float64 {
	return float64(i)
}

// NullBool SQL Server 的 bit 会以 0/1 返回
type NullBool bool

func (i *NullBool) Scan(src any) error {
	if src == nil {
		*i = false
		return nil
	}
	v, err := cast.ToBoolE(normalize(src))
	if err != nil {
		return errors.Wrap(err, "NullBool")
	}
	*i = NullBool(v)
	return nil
}

func (i NullBool) Bool() bool {
	return bool(i)
}

// DateTime 支持 time.Time 以及 "2006-01-02 15:04:05" 格式的字符串
type DateTime time.Time

func (g *DateTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*g = DateTime(time.Time{})
		return nil
	case time.Time:
		*g = DateTime(v)
		return nil
	}
	s, err := cast.ToStringE(normalize(src))
	if err != nil {
		return errors.Wrap(err, "DateTime")
	}
	t, err := time.Parse(time.DateTime, s)
	if err != nil {
		// sqlite 等驱动可能返回 RFC3339
		if t, err = time.Parse(time.RFC3339Nano, s); err != nil {
			return errors.Errorf("incompatible value %q for DateTime", s)
		}
	}
	*g = DateTime(t)
	return nil
}

func (g DateTime) Datetime() time.Time {
	return time.Time(g)
}

// MarshalJSON 格式化为 "2006-01-02 15:04:05"
func (g DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + g.Datetime().Format(time.DateTime) + `"`), nil
}

func (g *DateTime) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	t, err := time.Parse(time.DateTime, str)
	if err != nil {
		return err
	}
	*g = DateTime(t)
	return nil
}
