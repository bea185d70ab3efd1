package emit

import (
	"fmt"
	"strings"

	"github.com/nog-lang/nogc/internal/ast"
)

// emitMethodCall dispatches `obj.method(args)` to the channel, List<T>,
// str, or user-struct lowering (grounded on codegen/emit_method_call.cpp
// and codegen/emit_list.cpp). The checker already stamped ObjectType
// (spec.md §3), so unlike the C++ original this never needs a runtime
// dynamic_cast to tell the cases apart.
func emitMethodCall(s *State, n *ast.MethodCallExpr) (string, error) {
	base, err := objTypeBase(n)
	if err != nil {
		return "", err
	}

	var args []string
	for _, a := range n.Args {
		code, err := emitExpr(s, a)
		if err != nil {
			return "", err
		}
		args = append(args, code)
	}

	obj, err := emitExpr(s, n.Object)
	if err != nil {
		return "", err
	}
	if ref, ok := n.Object.(*ast.VarRef); ok && ref.Name == "self" {
		return fmt.Sprintf("this->%s(%s)", n.Method, strings.Join(args, ", ")), nil
	}

	switch {
	case strings.HasPrefix(base, "Channel<"):
		return emitChannelMethod(n.Method, obj, args)
	case strings.HasPrefix(base, "List<"):
		return emitListMethod(n.Method, obj, args)
	case base == "str":
		return emitStrMethod(n.Method, obj, args)
	default:
		return fmt.Sprintf("%s.%s(%s)", obj, n.Method, strings.Join(args, ", ")), nil
	}
}

func emitChannelMethod(method, obj string, args []string) (string, error) {
	switch method {
	case "send":
		val := ""
		if len(args) > 0 {
			val = args[0]
		}
		return fmt.Sprintf("%s.send(%s)", obj, val), nil
	case "recv":
		return obj + ".recv()", nil
	}
	return "", malformed("unknown channel method %q", method)
}

func emitListMethod(method, obj string, args []string) (string, error) {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}
	switch method {
	case "length":
		return obj + ".size()", nil
	case "is_empty":
		return obj + ".empty()", nil
	case "append":
		return fmt.Sprintf("%s.push_back(%s)", obj, arg(0)), nil
	case "pop":
		return obj + ".pop_back()", nil
	case "get":
		return fmt.Sprintf("%s.at(%s)", obj, arg(0)), nil
	case "set":
		return fmt.Sprintf("%s[%s] = %s", obj, arg(0), arg(1)), nil
	case "clear":
		return obj + ".clear()", nil
	case "first":
		return obj + ".front()", nil
	case "last":
		return obj + ".back()", nil
	case "insert":
		return fmt.Sprintf("%s.insert(%s.begin() + %s, %s)", obj, obj, arg(0), arg(1)), nil
	case "remove":
		return fmt.Sprintf("%s.erase(%s.begin() + %s)", obj, obj, arg(0)), nil
	case "contains":
		return fmt.Sprintf("(std::find(%s.begin(), %s.end(), %s) != %s.end())", obj, obj, arg(0), obj), nil
	}
	return fmt.Sprintf("%s.%s(%s)", obj, method, strings.Join(args, ", ")), nil
}

func emitStrMethod(method, obj string, args []string) (string, error) {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}
	switch method {
	case "length":
		return obj + ".size()", nil
	case "empty":
		return obj + ".empty()", nil
	case "contains":
		return fmt.Sprintf("(%s.find(%s) != std::string::npos)", obj, arg(0)), nil
	case "starts_with":
		return fmt.Sprintf("%s.starts_with(%s)", obj, arg(0)), nil
	case "ends_with":
		return fmt.Sprintf("%s.ends_with(%s)", obj, arg(0)), nil
	case "find":
		return fmt.Sprintf("%s.find(%s)", obj, arg(0)), nil
	case "substr":
		return fmt.Sprintf("%s.substr(%s, %s)", obj, arg(0), arg(1)), nil
	case "at":
		return fmt.Sprintf("%s.at(%s)", obj, arg(0)), nil
	}
	return fmt.Sprintf("%s.%s(%s)", obj, method, strings.Join(args, ", ")), nil
}
