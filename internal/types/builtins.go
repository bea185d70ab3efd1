package types

import "strings"

// builtinSig is one entry in a fixed built-in method table: spec.md §4.4
// gives `List<T>` and `str` closed sets of methods rather than letting the
// checker resolve them through the same struct-method path as user types.
type builtinSig struct {
	params []string // placeholder "T" is substituted with the element type
	ret    string    // placeholder "T" substituted likewise; "" means void
}

// listMethods is the fixed `List<T>` method table (spec.md §4.4).
var listMethods = map[string]builtinSig{
	"length":   {ret: "int"},
	"is_empty": {ret: "bool"},
	"contains": {params: []string{"T"}, ret: "bool"},
	"get":      {params: []string{"int"}, ret: "T"},
	"set":      {params: []string{"int", "T"}},
	"append":   {params: []string{"T"}},
	"pop":      {},
	"clear":    {},
	"first":    {ret: "T"},
	"last":     {ret: "T"},
	"insert":   {params: []string{"int", "T"}},
	"remove":   {params: []string{"int"}},
}

// strMethods is the fixed `str` method table (spec.md §4.4).
var strMethods = map[string]builtinSig{
	"length":      {ret: "int"},
	"empty":       {ret: "bool"},
	"contains":    {params: []string{"str"}, ret: "bool"},
	"starts_with": {params: []string{"str"}, ret: "bool"},
	"ends_with":   {params: []string{"str"}, ret: "bool"},
	"find":        {params: []string{"str"}, ret: "int"},
	"substr":      {params: []string{"int", "int"}, ret: "str"},
	"at":          {params: []string{"int"}, ret: "char"},
}

// elemOf extracts T from a resolved "List<T>" or "Channel<T>" base string.
func elemOf(base string) string {
	start := strings.IndexByte(base, '<')
	if start < 0 || !strings.HasSuffix(base, ">") {
		return ""
	}
	return base[start+1 : len(base)-1]
}

// substitute replaces the "T" placeholder in a builtin signature's params
// and return with the concrete element type.
func (s builtinSig) substitute(elem string) ([]TypeInfo, TypeInfo) {
	params := make([]TypeInfo, len(s.params))
	for i, p := range s.params {
		if p == "T" {
			params[i] = Prim(elem)
		} else {
			params[i] = Prim(p)
		}
	}
	if s.ret == "" {
		return params, Void()
	}
	if s.ret == "T" {
		return params, Prim(elem)
	}
	return params, Prim(s.ret)
}
