package oracle

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sijms/go-ora/v2/network"

	"github.com/ormkit/adapters/adapter"
)

// ORA codes with a dedicated variant in the error taxonomy.
const (
	codeUniqueViolation     = 1    // ORA-00001
	codeUndefinedTable      = 942  // ORA-00942
	codeNotNullViolation    = 1400 // ORA-01400
	codeForeignKeyViolation = 2291 // ORA-02291
)

// MapError converts a native Oracle failure into exactly one MappedError
// variant. ORA codes in the mapping table get their named kind; any other
// *network.OracleError becomes the Oracle passthrough so the raw code is
// never lost; everything else falls back to the generic variant.
func (d *driver) MapError(err error) adapter.MappedError {
	var oraErr *network.OracleError
	if !errors.As(err, &oraErr) {
		return &adapter.GenericError{ID: uuid.NewString(), Message: err.Error()}
	}

	switch oraErr.ErrCode {
	case codeUniqueViolation:
		return &adapter.UniqueConstraintViolation{}
	case codeNotNullViolation:
		return &adapter.NullConstraintViolation{}
	case codeForeignKeyViolation:
		return &adapter.ForeignKeyConstraintViolation{}
	case codeUndefinedTable:
		return &adapter.TableDoesNotExist{}
	default:
		return &adapter.OracleError{
			Code:    oraErr.ErrCode,
			Message: oraErr.ErrMsg,
		}
	}
}
