package emit

import "fmt"

// Literal emission (codegen/emit_literals.cpp).

func stringLiteral(v string) string { return fmt.Sprintf("%q", v) }
func numberLiteral(v string) string { return v }
func floatLiteral(v string) string  { return v }
func boolLiteral(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
func noneLiteral() string   { return "std::nullopt" }
func charLiteral(v byte) string {
	if v == '\'' || v == '\\' {
		return fmt.Sprintf("'\\%c'", v)
	}
	return fmt.Sprintf("'%c'", v)
}
