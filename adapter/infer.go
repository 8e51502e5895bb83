package adapter

import (
	"math/big"
	"reflect"
	"time"
)

// InferColumnType derives a ColumnType from a runtime value's shape. It is a
// best-effort fallback for drivers that supply no column metadata and is
// never preferred over driver-supplied types.
func InferColumnType(value any) ColumnType {
	switch value.(type) {
	case bool:
		return ColBoolean
	case *big.Int:
		return ColInt64
	case []byte:
		return ColBytes
	case time.Time:
		return ColDateTime
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return ColUnknownNumber
	case string:
		return ColText
	}

	switch reflect.ValueOf(value).Kind() {
	case reflect.Map, reflect.Struct:
		return ColJson
	case reflect.Slice, reflect.Array:
		// Not a faithful array mapping; lists degrade to text.
		return ColText
	default:
		return ColText
	}
}

// InferColumn derives a ColumnType for a whole output column from its first
// non-null value. A column of only nulls defaults to Int32.
func InferColumn(values []any) ColumnType {
	for _, v := range values {
		if v != nil {
			return InferColumnType(v)
		}
	}
	return ColInt32
}
