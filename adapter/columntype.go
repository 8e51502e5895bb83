package adapter

// ColumnType is a fixed numeric code identifying a logical column kind.
//
// The codes form a closed, versioned enumeration. External callers and wire
// formats depend on the exact values: never renumber or reorder. Array
// variants are the scalar code plus the array offset (64).
type ColumnType int32

const (
	ColInt32     ColumnType = 0
	ColInt64     ColumnType = 1
	ColFloat     ColumnType = 2
	ColDouble    ColumnType = 3
	ColNumeric   ColumnType = 4
	ColBoolean   ColumnType = 5
	ColCharacter ColumnType = 6
	ColText      ColumnType = 7
	ColDate      ColumnType = 8
	ColTime      ColumnType = 9
	ColDateTime  ColumnType = 10
	ColJson      ColumnType = 11
	ColEnum      ColumnType = 12
	ColBytes     ColumnType = 13
	ColSet       ColumnType = 14
	ColUuid      ColumnType = 15

	columnArrayOffset ColumnType = 64

	ColInt32Array     ColumnType = 64
	ColInt64Array     ColumnType = 65
	ColFloatArray     ColumnType = 66
	ColDoubleArray    ColumnType = 67
	ColNumericArray   ColumnType = 68
	ColBooleanArray   ColumnType = 69
	ColCharacterArray ColumnType = 70
	ColTextArray      ColumnType = 71
	ColDateArray      ColumnType = 72
	ColTimeArray      ColumnType = 73
	ColDateTimeArray  ColumnType = 74
	ColJsonArray      ColumnType = 75
	ColEnumArray      ColumnType = 76
	ColBytesArray     ColumnType = 77
	ColSetArray       ColumnType = 78
	ColUuidArray      ColumnType = 79

	// ColUnknownNumber is the fallback for numeric values whose width the
	// driver did not report.
	ColUnknownNumber ColumnType = 128
)

var columnTypeNames = map[ColumnType]string{
	ColInt32:         "int32",
	ColInt64:         "int64",
	ColFloat:         "float",
	ColDouble:        "double",
	ColNumeric:       "numeric",
	ColBoolean:       "boolean",
	ColCharacter:     "character",
	ColText:          "text",
	ColDate:          "date",
	ColTime:          "time",
	ColDateTime:      "datetime",
	ColJson:          "json",
	ColEnum:          "enum",
	ColBytes:         "bytes",
	ColSet:           "set",
	ColUuid:          "uuid",
	ColUnknownNumber: "unknown-number",
}

// IsArray reports whether t is an array variant.
func (t ColumnType) IsArray() bool {
	return t >= columnArrayOffset && t < columnArrayOffset*2
}

// Elem returns the scalar variant of an array type. For scalar types it
// returns the receiver unchanged.
func (t ColumnType) Elem() ColumnType {
	if t.IsArray() {
		return t - columnArrayOffset
	}
	return t
}

// ArrayOf returns the array variant of a scalar column type.
func ArrayOf(t ColumnType) ColumnType {
	if t.IsArray() || t == ColUnknownNumber {
		return t
	}
	return t + columnArrayOffset
}

func (t ColumnType) String() string {
	if name, ok := columnTypeNames[t]; ok {
		return name
	}
	if t.IsArray() {
		if name, ok := columnTypeNames[t.Elem()]; ok {
			return name + "[]"
		}
	}
	return "unknown"
}
