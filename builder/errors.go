package builder

import "github.com/pkg/errors"

const (
	msgItems          = "items must be a string or list/tuple of strings"
	msgConditions     = "conditions must be a non-empty mapping"
	msgConditionsMust = "conditions must be a non-empty mapping with at least one entry"
	msgColumn         = "condition column must be a non-empty string"
	msgTable          = "table name must be non-empty"
	msgName           = "name must be non-empty"
)

// ValidationError 在 SQL 交给驱动之前的参数校验失败
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(reason string) error {
	return errors.WithStack(&ValidationError{Reason: reason})
}

// IsValidation 判断 err 链上是否有 ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
