// Package tempearly implements a dynamically-typed scripting language
// embedded in HTML-like templates.
//
// Expressions are written `{{ expr }}` (HTML-escaped) or `{! expr !}`
// (raw), statements live in `{% ... %}` tags, and `{# ... #}` opens a
// comment. The language itself has C-like statements (if/while/for/
// try), single-inheritance classes, and operator overloading through
// magic methods such as __add__ and __iter__.
//
//	tpl, err := tempearly.ParseString("Hello {{ name }}!")
//	if err != nil {
//		panic(err)
//	}
//	i := tempearly.NewInterpreter(os.Stdout)
//	i.Globals.Declare("name", tempearly.NewString("world"))
//	if res := tpl.Execute(i); res.Kind == tempearly.RError {
//		panic(res.Err)
//	}
package tempearly
