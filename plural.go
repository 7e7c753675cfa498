package i18n

import (
	"math"
	"strconv"
	"strings"
)

// pluralOperands carries the CLDR operands a cardinal rule can reference:
// n is the absolute value, i its integer part, v the count of visible
// fraction digits.
type pluralOperands struct {
	n float64
	i int64
	v int
}

func operandsForCount(count any) (pluralOperands, bool) {
	switch v := count.(type) {
	case int:
		return integerOperands(int64(v)), true
	case int8:
		return integerOperands(int64(v)), true
	case int16:
		return integerOperands(int64(v)), true
	case int32:
		return integerOperands(int64(v)), true
	case int64:
		return integerOperands(v), true
	case uint:
		return integerOperands(int64(v)), true
	case uint8:
		return integerOperands(int64(v)), true
	case uint16:
		return integerOperands(int64(v)), true
	case uint32:
		return integerOperands(int64(v)), true
	case uint64:
		if v > math.MaxInt64 {
			return floatOperands(float64(v)), true
		}
		return integerOperands(int64(v)), true
	case float32:
		return floatOperands(float64(v)), true
	case float64:
		return floatOperands(v), true
	case string:
		return stringOperands(v)
	default:
		return pluralOperands{}, false
	}
}

func integerOperands(value int64) pluralOperands {
	// MinInt64 has no int64 absolute value
	if value == math.MinInt64 {
		return floatOperands(float64(value))
	}
	abs := value
	if abs < 0 {
		abs = -abs
	}
	return pluralOperands{n: float64(abs), i: abs, v: 0}
}

func floatOperands(value float64) pluralOperands {
	abs := math.Abs(value)
	if abs == math.Trunc(abs) {
		return pluralOperands{n: abs, i: integerPart(abs), v: 0}
	}
	// count visible fraction digits from the shortest representation
	formatted := strconv.FormatFloat(abs, 'f', -1, 64)
	visible := 0
	if idx := strings.IndexByte(formatted, '.'); idx >= 0 {
		visible = len(formatted) - idx - 1
	}
	return pluralOperands{n: abs, i: integerPart(abs), v: visible}
}

// integerPart saturates at MaxInt64, out of range float to int conversion
// is undefined in Go.
func integerPart(abs float64) int64 {
	if abs >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(abs)
}

func stringOperands(value string) (pluralOperands, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return pluralOperands{}, false
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return pluralOperands{}, false
	}

	operands := floatOperands(parsed)
	// trailing fraction zeros are significant in string form: "1.0" has v=1
	if idx := strings.IndexByte(value, '.'); idx >= 0 {
		operands.v = len(value) - idx - 1
	}
	return operands, true
}

// Evaluate resolves the plural category for count against the rule set.
// Counts that match no rule, and nil rule sets, resolve to "other".
func (set *PluralRuleSet) Evaluate(count any) PluralCategory {
	if set == nil || len(set.Rules) == 0 {
		return PluralOther
	}

	operands, ok := operandsForCount(count)
	if !ok {
		return PluralOther
	}

	for _, rule := range set.Rules {
		if ruleMatches(rule, operands) {
			return rule.Category
		}
	}

	return PluralOther
}

func ruleMatches(rule PluralRule, operands pluralOperands) bool {
	if len(rule.Groups) == 0 {
		return true
	}

	for _, group := range rule.Groups {
		if groupMatches(group, operands) {
			return true
		}
	}
	return false
}

func groupMatches(group []PluralCondition, operands pluralOperands) bool {
	for _, condition := range group {
		if !conditionMatches(condition, operands) {
			return false
		}
	}
	return len(group) > 0
}

func conditionMatches(condition PluralCondition, operands pluralOperands) bool {
	value, ok := operandValue(condition.Operand, operands)
	if !ok {
		return false
	}

	if condition.Mod > 0 {
		value = math.Mod(value, float64(condition.Mod))
	}

	switch condition.Operator {
	case OperatorEquals:
		return valueIn(value, condition.Values)
	case OperatorNotEquals:
		return !valueIn(value, condition.Values)
	case OperatorIn:
		return valueIn(value, condition.Values) || valueWithin(value, condition.Ranges)
	case OperatorNotIn:
		return !valueIn(value, condition.Values) && !valueWithin(value, condition.Ranges)
	case OperatorWithin:
		return valueWithin(value, condition.Ranges)
	case OperatorNotWithin:
		return !valueWithin(value, condition.Ranges)
	default:
		return false
	}
}

func operandValue(operand string, operands pluralOperands) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(operand)) {
	case "n", "":
		return operands.n, true
	case "i":
		return float64(operands.i), true
	case "v":
		return float64(operands.v), true
	default:
		return 0, false
	}
}

func valueIn(value float64, values []float64) bool {
	for _, candidate := range values {
		if value == candidate {
			return true
		}
	}
	return false
}

func valueWithin(value float64, ranges []PluralRange) bool {
	for _, r := range ranges {
		if value >= r.Start && value <= r.End {
			return true
		}
	}
	return false
}
