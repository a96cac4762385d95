// Package routepath compiles and matches Express-style route patterns.
//
// A pattern is either the wildcard "*" or a path starting with "/" that may
// contain named parameters:
//
//	p, err := routepath.Compile("/user/:id")
//	params, ok := p.Exec("/user/42")
//	// params["id"] == "42"
//
// Query strings attached to a fragment are parsed with ParseQuery:
//
//	routepath.ParseQuery("a=1,2&b&c=x")
//	// Query{"a": []string{"1", "2"}, "b": true, "c": "x"}
//
// Clean normalizes request paths for the development server.
package routepath
