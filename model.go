package store

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"sort"

	"github.com/iancoleman/strcase"
)

// SQLInsertGenerator lets a model supply its own insert columns and values.
// The placeholders it returns are ignored; every value is bound.
type SQLInsertGenerator interface {
	GenerateInsertParts() (columns []string, placeholder []string, args []any)
}

func insertPartsFromModel(model any) ([]string, []any, error) {
	if model == nil {
		return nil, nil, validationErrorf("model", "must not be nil")
	}

	if gen, ok := model.(SQLInsertGenerator); ok {
		columns, _, args := gen.GenerateInsertParts()
		return columns, args, nil
	}

	dataVal := reflect.ValueOf(model)
	if dataVal.Kind() == reflect.Ptr {
		if dataVal.IsNil() {
			return nil, nil, validationErrorf("model", "must not be a nil pointer")
		}
		dataVal = dataVal.Elem()
	}

	switch dataVal.Kind() {
	case reflect.Map:
		return insertPartsFromMap(dataVal)
	case reflect.Struct:
		return insertPartsFromStruct(dataVal)
	}

	return nil, nil, validationErrorf("model", "must be a struct or a map, got %s", dataVal.Kind())
}

func insertPartsFromMap(dataVal reflect.Value) ([]string, []any, error) {
	if dataVal.Type().Key().Kind() != reflect.String {
		return nil, nil, validationErrorf("model", "map should have string key")
	}

	keys := make([]string, 0, dataVal.Len())
	for _, key := range dataVal.MapKeys() {
		keys = append(keys, key.String())
	}
	sort.Strings(keys)

	values := make([]any, len(keys))
	for i, k := range keys {
		values[i] = dataVal.MapIndex(reflect.ValueOf(k).Convert(dataVal.Type().Key())).Interface()
	}

	return keys, values, nil
}

// insertPartsFromStruct walks exported fields in declaration order. The column
// comes from the db tag, falling back to the snake cased field name. Fields
// tagged "-" or marked auto are skipped, as are Valuers that yield nil.
func insertPartsFromStruct(dataVal reflect.Value) ([]string, []any, error) {
	valType := dataVal.Type()

	var columns []string
	var values []any
	for i := 0; i < valType.NumField(); i++ {
		field := valType.Field(i)
		if !field.IsExported() {
			continue
		}

		col := strcase.ToSnake(field.Name)
		if tagValue, ok := field.Tag.Lookup("db"); ok {
			name, _, isAuto, _, _ := ParseDBTag(tagValue)
			if name == "-" || isAuto {
				continue
			}

			if name != "" {
				col = name
			}
		}

		val := dataVal.Field(i).Interface()
		if v, ok := val.(driver.Valuer); ok {
			if fv := dataVal.Field(i); fv.Kind() == reflect.Ptr && fv.IsNil() {
				continue
			}

			buffVal, err := v.Value()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to get value of field %s: %w", field.Name, err)
			}

			if buffVal == nil {
				continue
			}

			val = buffVal
		}

		columns = append(columns, col)
		values = append(values, val)
	}

	if len(columns) == 0 {
		return nil, nil, validationErrorf("model", "%s has no insertable fields", valType.Name())
	}

	return columns, values, nil
}
