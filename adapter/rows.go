package adapter

import (
	"encoding/base64"
	"encoding/json"
	"math/big"
	"strconv"
	"time"
)

const (
	dateFormat     = "2006-01-02"
	timeFormat     = "15:04:05.999999999"
	dateTimeFormat = "2006-01-02T15:04:05.999999999Z07:00"
)

// MapRowValue converts one native output value into its wire-neutral form
// for the given column type. Native nulls become logical nulls, 64-bit and
// arbitrary-precision integers become decimal text (keeping them JSON-safe),
// timestamps become ISO-8601 text and compound JSON values are serialized.
// Everything else passes through.
func MapRowValue(value any, columnType ColumnType) any {
	if value == nil {
		return nil
	}

	if columnType.IsArray() {
		if list, ok := value.([]any); ok {
			mapped := make([]any, len(list))
			for i, elem := range list {
				mapped[i] = MapRowValue(elem, columnType.Elem())
			}
			return mapped
		}
		return MapRowValue(value, columnType.Elem())
	}

	switch columnType {
	case ColInt64:
		switch v := value.(type) {
		case int64:
			return strconv.FormatInt(v, 10)
		case int32:
			return strconv.FormatInt(int64(v), 10)
		case int:
			return strconv.FormatInt(int64(v), 10)
		case *big.Int:
			return v.String()
		case []byte:
			return string(v)
		default:
			return value
		}

	case ColNumeric:
		switch v := value.(type) {
		case []byte:
			return string(v)
		case *big.Int:
			return v.String()
		default:
			return value
		}

	case ColDate:
		if t, ok := value.(time.Time); ok {
			return t.Format(dateFormat)
		}
		return asText(value)

	case ColTime:
		if t, ok := value.(time.Time); ok {
			return t.Format(timeFormat)
		}
		return asText(value)

	case ColDateTime:
		if t, ok := value.(time.Time); ok {
			return t.Format(dateTimeFormat)
		}
		return asText(value)

	case ColJson:
		switch v := value.(type) {
		case []byte:
			return string(v)
		case string:
			return v
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				return value
			}
			return string(raw)
		}

	case ColBytes:
		if raw, ok := value.([]byte); ok {
			return base64.StdEncoding.EncodeToString(raw)
		}
		return value

	case ColBoolean:
		switch v := value.(type) {
		case bool:
			return v
		case int64:
			return v != 0
		case int:
			return v != 0
		default:
			return value
		}

	case ColText, ColCharacter, ColEnum, ColUuid:
		return asText(value)

	default:
		if raw, ok := value.([]byte); ok {
			return string(raw)
		}
		return value
	}
}

func asText(value any) any {
	if raw, ok := value.([]byte); ok {
		return string(raw)
	}
	return value
}
