package tempearly

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/peelonet/tempearly/json"
	"github.com/peelonet/tempearly/runes"
)

// installStringMethods wires String's magic methods and named methods
// (upper/lower/trim/...), implemented over runes.String instead of
// Go's native string so indexing and length are rune-based, not
// byte-based.
func (i *Interpreter) installStringMethods(c *Class) {
	method(c, "__str__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return recv, nil
	})
	method(c, "__eq__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !args[0].IsString() {
			return False, nil
		}
		return NewBool(recv.AsRuneString().Equal(args[0].AsRuneString())), nil
	})
	method(c, "__cmp__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !args[0].IsString() {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "cannot compare String with %s", i.ClassOf(args[0]).Name)
		}
		return NewInt(int64(recv.AsRuneString().Compare(args[0].AsRuneString()))), nil
	})
	method(c, "__lt__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !args[0].IsString() {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "cannot compare '%s' with 'String'", i.ClassOf(args[0]).Name)
		}
		return NewBool(recv.AsRuneString().Compare(args[0].AsRuneString()) < 0), nil
	})
	method(c, "__hash__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		rs := recv.AsRuneString()
		return NewInt(int64(rs.Hash())), nil
	})
	method(c, "__bool__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewBool(recv.AsRuneString().Len() > 0), nil
	})
	method(c, "length", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewInt(int64(recv.AsRuneString().Len())), nil
	})
	alias(c, "size", "length")

	method(c, "__add__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		rhs, err := i.Stringify(args[0])
		if err != nil {
			return nil, err
		}
		return NewString(recv.AsString() + rhs), nil
	})

	method(c, "__mul__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !args[0].IsInt() {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "String multiplier must be an Int")
		}
		n := args[0].AsInt()
		if n < 0 {
			return nil, i.RaiseType(i.ValueErrorClass, ErrValue, "negative multiplier")
		}
		return NewRuneString(recv.AsRuneString().Repeat(int(n))), nil
	})

	method(c, "__getitem__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !args[0].IsInt() {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "String index must be an Int")
		}
		s := recv.AsRuneString()
		idx := int(args[0].AsInt())
		if idx < 0 {
			idx += s.Len()
		}
		if idx < 0 || idx >= s.Len() {
			return nil, i.RaiseType(i.IndexErrorClass, ErrIndex, "string index %d out of range", args[0].AsInt())
		}
		return NewRuneString(runes.FromRunes([]rune{s.At(idx)})), nil
	})

	method(c, "lines", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		rs := recv.AsRuneString().Runes()
		var out []*Value
		begin := 0
		for idx := 0; idx < len(rs); idx++ {
			if idx+1 < len(rs) && rs[idx] == '\r' && rs[idx+1] == '\n' {
				out = append(out, NewRuneString(runes.FromRunes(rs[begin:idx])))
				idx++
				begin = idx + 1
			} else if rs[idx] == '\n' || rs[idx] == '\r' {
				out = append(out, NewRuneString(runes.FromRunes(rs[begin:idx])))
				begin = idx + 1
			}
		}
		if begin < len(rs) {
			out = append(out, NewRuneString(runes.FromRunes(rs[begin:])))
		}
		return i.NewList(out), nil
	})

	method(c, "runes", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		rs := recv.AsRuneString().Runes()
		out := make([]*Value, len(rs))
		for idx, r := range rs {
			out[idx] = NewInt(int64(r))
		}
		return i.NewList(out), nil
	})

	method(c, "words", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		rs := recv.AsRuneString().Runes()
		var out []*Value
		begin := -1
		for idx, r := range rs {
			if unicode.IsSpace(r) {
				if begin >= 0 {
					out = append(out, NewRuneString(runes.FromRunes(rs[begin:idx])))
					begin = -1
				}
			} else if begin < 0 {
				begin = idx
			}
		}
		if begin >= 0 {
			out = append(out, NewRuneString(runes.FromRunes(rs[begin:])))
		}
		return i.NewList(out), nil
	})

	method(c, "capitalize", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewRuneString(recv.AsRuneString().Capitalize()), nil
	})
	method(c, "chomp", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewRuneString(recv.AsRuneString().Chomp()), nil
	})
	method(c, "chop", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewRuneString(recv.AsRuneString().Chop()), nil
	})
	method(c, "upper", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewRuneString(recv.AsRuneString().Upper()), nil
	})
	method(c, "lower", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewRuneString(recv.AsRuneString().Lower()), nil
	})
	method(c, "reverse", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewRuneString(recv.AsRuneString().Reverse()), nil
	})
	method(c, "swapcase", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewRuneString(recv.AsRuneString().SwapCase()), nil
	})
	method(c, "titleize", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewRuneString(recv.AsRuneString().Titleize()), nil
	})
	method(c, "trim", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		cutset := " \t\n\r\v\f"
		if len(args) == 1 {
			cutset = args[0].AsString()
		}
		return NewRuneString(recv.AsRuneString().Trim(cutset)), nil
	})
	method(c, "starts_with?", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewBool(recv.AsRuneString().StartsWith(args[0].AsRuneString())), nil
	})
	method(c, "index_of", -2, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		from := 0
		if len(args) > 1 {
			from = int(args[1].AsInt())
		}
		return NewInt(int64(recv.AsRuneString().IndexOf(args[0].AsRuneString(), from))), nil
	})

	method(c, "parse_json", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		jv, err := json.ParseString(recv.AsString())
		if err != nil {
			return nil, i.RaiseType(i.ValueErrorClass, ErrValue, "%s", err)
		}
		return jsonValueToValue(i, jv), nil
	})

	method(c, "split", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		sep := ""
		if len(args) == 1 {
			sep = args[0].AsString()
		}
		var parts []string
		if sep == "" {
			parts = strings.Fields(recv.AsString())
		} else {
			parts = strings.Split(recv.AsString(), sep)
		}
		out := make([]*Value, len(parts))
		for idx, p := range parts {
			out[idx] = NewString(p)
		}
		return i.NewList(out), nil
	})

	// __mod__ is a supplemented feature (original_source/src/api/string.cc):
	// printf-style interpolation, e.g. "%s is %d" % ["Alice", 30].
	method(c, "__mod__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		var operands []*Value
		if args[0].IsObject() {
			if list, ok := args[0].AsObject().Native.([]*Value); ok {
				operands = list
			}
		}
		if operands == nil {
			operands = []*Value{args[0]}
		}
		out, err := i.formatString(recv.AsString(), operands)
		if err != nil {
			return nil, err
		}
		return NewString(out), nil
	})

	method(c, "__iter__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return i.newRuneIterator(recv.AsRuneString()), nil
	})
}

// formatString implements the %-format mini-language: %s stringifies
// via __str__, %d/%i require an Int, %f a Float, %% is a literal
// percent.
func (i *Interpreter) formatString(format string, operands []*Value) (string, error) {
	var b strings.Builder
	argi := 0
	runesIn := []rune(format)
	for idx := 0; idx < len(runesIn); idx++ {
		ch := runesIn[idx]
		if ch != '%' || idx == len(runesIn)-1 {
			b.WriteRune(ch)
			continue
		}
		idx++
		verb := runesIn[idx]
		if verb == '%' {
			b.WriteByte('%')
			continue
		}
		if argi >= len(operands) {
			return "", i.RaiseType(i.ValueErrorClass, ErrValue, "not enough arguments for format string")
		}
		arg := operands[argi]
		argi++
		switch verb {
		case 's':
			s, err := i.Stringify(arg)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case 'd', 'i':
			b.WriteString(strconv.FormatInt(arg.AsInt(), 10))
		case 'f':
			b.WriteString(strconv.FormatFloat(arg.AsFloat(), 'f', 6, 64))
		default:
			return "", i.RaiseType(i.ValueErrorClass, ErrValue, "unsupported format verb %%%c", verb)
		}
	}
	return b.String(), nil
}
