package interpreter

import "github.com/leonardinius/treelox/internal/parser"

// isTruthy: nil and false are falsy, everything else (0 and "" included) is truthy.
func isTruthy(value parser.Value) bool {
	switch v := value.(type) {
	case parser.ValueNil:
		return false
	case parser.ValueBool:
		return bool(v)
	}

	return true
}

// isEqual never coerces: values of different types are never equal.
func isEqual(left, right parser.Value) bool {
	if left.Type() != right.Type() {
		return false
	}

	return left == right
}

func stringify(value parser.Value) string {
	return value.String()
}
