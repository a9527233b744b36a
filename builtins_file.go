package tempearly

import (
	"os"

	"github.com/peelonet/tempearly/tstream"
)

// installFileMethods wires the File built-in class over the tstream
// package's row/col-tracking rune reader (tstream/stream.go), the same
// abstraction the template source itself is decoded through, so a
// script reading a file sees the identical decoding behavior the
// lexer does (U+FFFD substitution on bad UTF-8, never a hard error).
func (i *Interpreter) installFileMethods(c *Class) {
	method(c, "__init__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !args[0].IsString() {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "File.__init__ expects a path String")
		}
		f, err := os.Open(args[0].AsString())
		if err != nil {
			return nil, i.RaiseType(i.IOErrorClass, ErrIO, "%v", err)
		}
		recv.AsObject().Native = tstream.NewReader(f)
		return Null, nil
	})
	method(c, "read_line", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		s, ok := recv.AsObject().Native.(tstream.Stream)
		if !ok {
			return nil, i.RaiseType(i.StateErrorClass, ErrState, "file not open")
		}
		var b []rune
		for {
			r, status := s.ReadRune()
			if status == tstream.StatusEOF {
				if len(b) == 0 {
					return Null, nil
				}
				break
			}
			if r == '\n' {
				break
			}
			b = append(b, r)
		}
		return NewString(string(b)), nil
	})
	method(c, "close", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if s, ok := recv.AsObject().Native.(tstream.Stream); ok {
			if err := s.Close(); err != nil {
				return nil, i.RaiseType(i.IOErrorClass, ErrIO, "%v", err)
			}
		}
		return Null, nil
	})
}
