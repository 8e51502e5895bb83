package adapter

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"time"
)

// MapArguments converts the query's bound arguments into native-driver-ready
// values using the per-argument type hints. When no hints are supplied every
// argument is treated as ScalarUnknown. Mapping is idempotent: re-mapping an
// already-mapped value is a no-op.
func MapArguments(query Query, caps Capabilities) ([]any, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if len(query.Args) == 0 {
		return nil, nil
	}

	mapped := make([]any, len(query.Args))
	for i, arg := range query.Args {
		argType := ArgType{Kind: ScalarUnknown}
		if query.ArgTypes != nil {
			argType = query.ArgTypes[i]
		}

		v, err := MapArgument(arg, argType, caps)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		mapped[i] = v
	}

	return mapped, nil
}

// MapArgument converts a single argument value.
func MapArgument(value any, argType ArgType, caps Capabilities) (any, error) {
	if value == nil {
		return nil, nil
	}

	if argType.Arity == ArityList {
		list, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf("list argument must be []any, got %T", value)
		}
		elemType := argType
		elemType.Arity = ArityScalar
		mapped := make([]any, len(list))
		for i, elem := range list {
			v, err := MapArgument(elem, elemType, caps)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			mapped[i] = v
		}
		return mapped, nil
	}

	switch argType.Kind {
	case ScalarInt:
		if s, ok := value.(string); ok {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid integer text %q", s)
			}
			return n, nil
		}
		return value, nil

	case ScalarBigInt:
		if s, ok := value.(string); ok {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return n, nil
			}
			// Out of int64 range: keep the exact decimal text so the engine
			// parses it server-side instead of truncating here.
			if _, ok := new(big.Int).SetString(s, 10); !ok {
				return nil, fmt.Errorf("invalid big integer text %q", s)
			}
			return s, nil
		}
		return value, nil

	case ScalarFloat:
		if s, ok := value.(string); ok {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid float text %q", s)
			}
			return f, nil
		}
		return value, nil

	case ScalarDecimal:
		// Decimal text passes through untouched so precision survives.
		return value, nil

	case ScalarBytes:
		if s, ok := value.(string); ok {
			raw, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, fmt.Errorf("invalid base64 bytes: %w", err)
			}
			return raw, nil
		}
		return value, nil

	case ScalarBoolean:
		b, ok := value.(bool)
		if !ok {
			if s, isStr := value.(string); isStr {
				parsed, err := strconv.ParseBool(s)
				if err != nil {
					return nil, fmt.Errorf("invalid boolean text %q", s)
				}
				b, ok = parsed, true
			}
		}
		if ok {
			if caps.EmulatesBoolean {
				if b {
					return int64(1), nil
				}
				return int64(0), nil
			}
			return b, nil
		}
		return value, nil

	case ScalarJSON:
		switch v := value.(type) {
		case string:
			return v, nil
		case []byte:
			return v, nil
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("cannot serialize json argument: %w", err)
			}
			return string(raw), nil
		}

	case ScalarDateTime:
		switch v := value.(type) {
		case time.Time, string:
			return v, nil
		default:
			return value, nil
		}

	default:
		// Untyped booleans still need 0/1 emulation on engines without a
		// native boolean.
		if b, ok := value.(bool); ok && caps.EmulatesBoolean {
			if b {
				return int64(1), nil
			}
			return int64(0), nil
		}
		return value, nil
	}
}
