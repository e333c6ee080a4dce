package v1

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Conditions understood by ExpectCondition, Window.ExpectText and RowResult.ExpectCond.
const (
	ConditionEqual              = "Equal"
	ConditionNotEqual           = "NotEqual"
	ConditionContains           = "Contains"
	ConditionNotContains        = "NotContains"
	ConditionStartsWith         = "StartsWith"
	ConditionEndsWith           = "EndsWith"
	ConditionGreaterThan        = "GreaterThan"
	ConditionLessThan           = "LessThan"
	ConditionGreaterThanOrEqual = "GreaterThanOrEqual"
	ConditionLessThanOrEqual    = "LessThanOrEqual"
)

// evaluateCondition compares actual and expected according to the provided condition constant.
// It supports numeric comparisons, string comparisons (including contains/prefix/suffix),
// equality/non-equality, and nil (DB NULL) handling.
func evaluateCondition(actual interface{}, condition string, expected interface{}) bool {
	switch condition {
	case ConditionEqual:
		return valuesEqual(actual, expected)
	case ConditionNotEqual:
		return !valuesEqual(actual, expected)
	case ConditionGreaterThan:
		return compareNumbers(actual, expected, func(a, b float64) bool { return a > b })
	case ConditionLessThan:
		return compareNumbers(actual, expected, func(a, b float64) bool { return a < b })
	case ConditionGreaterThanOrEqual:
		return compareNumbers(actual, expected, func(a, b float64) bool { return a >= b })
	case ConditionLessThanOrEqual:
		return compareNumbers(actual, expected, func(a, b float64) bool { return a <= b })
	case ConditionContains:
		return stringContains(actual, expected, func(a, b string) bool { return strings.Contains(a, b) })
	case ConditionNotContains:
		return stringContains(actual, expected, func(a, b string) bool { return !strings.Contains(a, b) })
	case ConditionStartsWith:
		return stringContains(actual, expected, func(a, b string) bool { return strings.HasPrefix(a, b) })
	case ConditionEndsWith:
		return stringContains(actual, expected, func(a, b string) bool { return strings.HasSuffix(a, b) })
	default:
		return false
	}
}

func valuesEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if isNumber(a) && isNumber(b) {
		return toFloat64(a) == toFloat64(b)
	}

	return reflect.DeepEqual(a, b)
}

func compareNumbers(a, b interface{}, cmp func(float64, float64) bool) bool {
	if a == nil || b == nil {
		return false
	}
	if isNumber(a) && isNumber(b) {
		return cmp(toFloat64(a), toFloat64(b))
	}
	return false
}

func stringContains(a, b interface{}, cmp func(string, string) bool) bool {
	if a == nil || b == nil {
		return false
	}
	return cmp(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
}

func isNumber(v interface{}) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

func toFloat64(v interface{}) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		f, _ := strconv.ParseFloat(rv.String(), 64)
		return f
	}
	return 0
}
