package tempearly

// Version is the embeddable engine's version string.
const Version = "v1"

// Must panics if a Parse/ParseString call failed; useful for templates
// that are known-good at compile time, loaded once at startup:
//
//	var base = tempearly.Must(tempearly.ParseString("{{ name }}"))
func Must(tpl *Template, err error) *Template {
	if err != nil {
		panic(err)
	}
	return tpl
}
