package parser

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	stderrors "errors"

	"github.com/mcncl/json2table/internal/errors"
	"github.com/mcncl/json2table/internal/models"
)

// FromValue converts an already decoded Go value into the JSON value model.
//
// It understands the shapes json.Unmarshal produces into interface values
// (map[string]any, []any, string, float64, bool, nil, json.Number) plus
// integer kinds, models.Value and models.Document. Map keys are sorted,
// since Go maps carry no order. Any other value is round-tripped through
// json.Marshal so structs keep their field order.
//
// maxDepth bounds container nesting; in-memory values may be cyclic and
// exceed it, which fails with errors.ErrDepthExceeded.
func FromValue(v any, maxDepth int) (models.Value, error) {
	return fromValue(v, 0, maxDepth)
}

func fromValue(v any, depth, maxDepth int) (models.Value, error) {
	switch t := v.(type) {
	case nil:
		return models.Null{}, nil
	case models.Document:
		return fromValue(t.Root, depth, maxDepth)
	case models.Object:
		return t, checkDepth(t, depth, maxDepth)
	case models.Array:
		return t, checkDepth(t, depth, maxDepth)
	case models.Value:
		return t, nil
	case bool:
		return models.Bool(t), nil
	case string:
		return models.String(t), nil
	case json.Number:
		return models.Number(t), nil
	case float64:
		return models.Number(strconv.FormatFloat(t, 'f', -1, 64)), nil
	case float32:
		return models.Number(strconv.FormatFloat(float64(t), 'f', -1, 32)), nil
	case int:
		return models.Number(strconv.FormatInt(int64(t), 10)), nil
	case int8:
		return models.Number(strconv.FormatInt(int64(t), 10)), nil
	case int16:
		return models.Number(strconv.FormatInt(int64(t), 10)), nil
	case int32:
		return models.Number(strconv.FormatInt(int64(t), 10)), nil
	case int64:
		return models.Number(strconv.FormatInt(t, 10)), nil
	case uint:
		return models.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint8:
		return models.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint16:
		return models.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint32:
		return models.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint64:
		return models.Number(strconv.FormatUint(t, 10)), nil
	case map[string]any:
		if depth >= maxDepth {
			return nil, errors.NewDepthError(errors.ErrorTypeParsing, depth+1, maxDepth)
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := make(models.Object, 0, len(t))
		for _, k := range keys {
			value, err := fromValue(t[k], depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			obj = append(obj, models.Member{Key: k, Value: value})
		}
		return obj, nil
	case []any:
		if depth >= maxDepth {
			return nil, errors.NewDepthError(errors.ErrorTypeParsing, depth+1, maxDepth)
		}
		arr := make(models.Array, len(t))
		for i, e := range t {
			value, err := fromValue(e, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			arr[i] = value
		}
		return arr, nil
	default:
		return fromMarshaled(v)
	}
}

// checkDepth makes sure a prebuilt model value fits under maxDepth.
func checkDepth(v models.Value, depth, maxDepth int) error {
	switch t := v.(type) {
	case models.Object:
		if depth >= maxDepth {
			return errors.NewDepthError(errors.ErrorTypeParsing, depth+1, maxDepth)
		}
		for _, m := range t {
			if err := checkDepth(m.Value, depth+1, maxDepth); err != nil {
				return err
			}
		}
	case models.Array:
		if depth >= maxDepth {
			return errors.NewDepthError(errors.ErrorTypeParsing, depth+1, maxDepth)
		}
		for _, e := range t {
			if err := checkDepth(e, depth+1, maxDepth); err != nil {
				return err
			}
		}
	}
	return nil
}

func fromMarshaled(v any) (models.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		var unsupported *json.UnsupportedValueError
		var unsupportedType *json.UnsupportedTypeError
		if stderrors.As(err, &unsupported) || stderrors.As(err, &unsupportedType) {
			return nil, errors.NewParsingError(
				fmt.Sprintf("cannot convert value of type %T", v),
				fmt.Errorf("%w: %w", errors.ErrUnsupportedValue, err),
			)
		}
		return nil, errors.NewParsingError(fmt.Sprintf("failed to encode value of type %T", v), err)
	}
	doc, err := ParseString(string(data))
	if err != nil {
		return nil, err
	}
	return doc.Root, nil
}
