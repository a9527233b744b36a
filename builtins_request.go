package tempearly

import "github.com/peelonet/tempearly/json"

// RequestData is the host-supplied backing state for a Request value.
// A host shell (cmd/tempearly's HTTP
// server, CGI entry point, or REPL) fills one of these in per request
// and hands it to NewRequest; the core never reaches into net/http
// itself, keeping the interpreter transport-agnostic.
type RequestData struct {
	Method      string
	Path        string
	ContentType string
	Secure      bool
	Ajax        bool
	Body        []byte
	Params      *OrderedMap // name -> Value (String, or List for repeated keys)
}

// NewRequest allocates a Request instance wrapping data.
func (i *Interpreter) NewRequest(data *RequestData) *Value {
	c, ok := i.LookupClass("Request")
	if !ok {
		panic("tempearly: Request class not registered")
	}
	inst, _ := c.Allocate(i)
	inst.Native = data
	v := NewObject(inst)
	i.Request = v
	i.Globals.Declare("request", v)
	return v
}

func requestData(recv *Value) (*RequestData, bool) {
	if !recv.IsObject() {
		return nil, false
	}
	d, ok := recv.AsObject().Native.(*RequestData)
	return d, ok
}

func installRequestMethods(c *Class) {
	method(c, "method", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		d, ok := requestData(recv)
		if !ok {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "not a Request")
		}
		return NewString(d.Method), nil
	})
	method(c, "path", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		d, _ := requestData(recv)
		return NewString(d.Path), nil
	})
	method(c, "content_type", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		d, _ := requestData(recv)
		if d.ContentType == "" {
			return Null, nil
		}
		return NewString(d.ContentType), nil
	})
	method(c, "is_get?", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		d, _ := requestData(recv)
		return NewBool(d.Method == "GET"), nil
	})
	method(c, "is_post?", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		d, _ := requestData(recv)
		return NewBool(d.Method == "POST"), nil
	})
	method(c, "is_secure?", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		d, _ := requestData(recv)
		return NewBool(d.Secure), nil
	})
	method(c, "is_ajax?", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		d, _ := requestData(recv)
		return NewBool(d.Ajax), nil
	})
	method(c, "body", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		d, _ := requestData(recv)
		if d.Body == nil {
			return Null, nil
		}
		return NewBinary(d.Body), nil
	})
	method(c, "json", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		d, _ := requestData(recv)
		if len(d.Body) == 0 {
			return Null, nil
		}
		jv, err := json.ParseBytes(d.Body)
		if err != nil {
			return nil, i.RaiseType(i.ValueErrorClass, ErrValue, "malformed request body: %s", err)
		}
		return jsonValueToValue(i, jv), nil
	})
	method(c, "__getitem__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		d, _ := requestData(recv)
		v, ok := d.Params.Get(args[0].AsString())
		if !ok {
			return Null, nil
		}
		return v, nil
	})
	method(c, "int", -2, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		d, _ := requestData(recv)
		def := int64(0)
		if len(args) > 1 {
			def = args[1].AsInt()
		}
		v, ok := d.Params.Get(args[0].AsString())
		if !ok {
			return NewInt(def), nil
		}
		n, err := parseInt(v.AsString())
		if err != nil {
			return NewInt(def), nil
		}
		return NewInt(n), nil
	})
	method(c, "float", -2, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		d, _ := requestData(recv)
		def := 0.0
		if len(args) > 1 {
			def = args[1].AsFloat()
		}
		v, ok := d.Params.Get(args[0].AsString())
		if !ok {
			return NewFloat(def), nil
		}
		f, err := parseFloat(v.AsString())
		if err != nil {
			return NewFloat(def), nil
		}
		return NewFloat(f), nil
	})
	method(c, "list", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		d, _ := requestData(recv)
		v, ok := d.Params.Get(args[0].AsString())
		if !ok {
			return i.NewList(nil), nil
		}
		if v.IsObject() {
			if items, ok := v.AsObject().Native.([]*Value); ok {
				return i.NewList(items), nil
			}
		}
		return i.NewList([]*Value{v}), nil
	})
	method(c, "set", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		d, _ := requestData(recv)
		return NewBool(func() bool { _, ok := d.Params.Get(args[0].AsString()); return ok }()), nil
	})
}

// jsonValueToValue converts a parsed json.Value into the interpreter's
// own Value tree, preserving json's insertion-ordered object
// representation the same way Map does.
func jsonValueToValue(i *Interpreter, jv *json.Value) *Value {
	switch jv.Type() {
	case json.Null:
		return Null
	case json.Boolean:
		b, _ := jv.AsBoolean()
		return NewBool(b)
	case json.Integer:
		n, _ := jv.AsInteger()
		return NewInt(n)
	case json.Number:
		f, _ := jv.AsNumber()
		return NewFloat(f)
	case json.String:
		s, _ := jv.AsString()
		return NewString(s)
	case json.Array:
		items, _ := jv.AsArray()
		out := make([]*Value, len(items))
		for idx, item := range items {
			out[idx] = jsonValueToValue(i, item)
		}
		return i.NewList(out)
	case json.Object:
		pairs, _ := jv.AsObject()
		m := NewValueMap()
		for _, p := range pairs {
			m.Set(i, NewString(p.Key), jsonValueToValue(i, p.Value))
		}
		return i.NewMap(m)
	default:
		return Null
	}
}
