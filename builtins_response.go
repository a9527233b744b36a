package tempearly

import "io"

// ResponseData is the host-supplied backing state for a Response value:
// a byte sink plus headers and a status code, with everything beyond
// that left to the embedding host. A host shell owns the concrete
// io.Writer (an http.ResponseWriter, os.Stdout for CGI, or an in-memory
// buffer for the REPL) and the meaning of status codes and header
// names; the core only ever touches the Writer, Headers and Status
// fields.
type ResponseData struct {
	Writer  io.Writer
	Headers *OrderedMap // name -> Value(String)
	Status  int
}

// NewResponse allocates a Response instance wrapping data and points
// the interpreter's text emitter (WriteText/WriteValue) at its Writer.
func (i *Interpreter) NewResponse(data *ResponseData) *Value {
	if data.Headers == nil {
		data.Headers = NewOrderedMap()
	}
	if data.Status == 0 {
		data.Status = 200
	}
	c, ok := i.LookupClass("Response")
	if !ok {
		panic("tempearly: Response class not registered")
	}
	inst, _ := c.Allocate(i)
	inst.Native = data
	i.Out = data.Writer
	v := NewObject(inst)
	i.Response = v
	i.Globals.Declare("response", v)
	return v
}

func responseData(recv *Value) (*ResponseData, bool) {
	if !recv.IsObject() {
		return nil, false
	}
	d, ok := recv.AsObject().Native.(*ResponseData)
	return d, ok
}

func installResponseMethods(c *Class) {
	method(c, "write", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		d, ok := responseData(recv)
		if !ok {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "not a Response")
		}
		s, err := i.Stringify(args[0])
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(d.Writer, s); err != nil {
			return nil, i.RaiseType(i.IOErrorClass, ErrIO, "%s", err)
		}
		return Null, nil
	})
	method(c, "header", 2, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		d, _ := responseData(recv)
		d.Headers.Set(args[0].AsString(), args[1])
		return Null, nil
	})
	method(c, "status", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		d, _ := responseData(recv)
		if len(args) == 0 {
			return NewInt(int64(d.Status)), nil
		}
		d.Status = int(args[0].AsInt())
		return Null, nil
	})
}
