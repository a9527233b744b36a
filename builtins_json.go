package tempearly

import (
	"strconv"
	"strings"
)

// toJSONString implements Iterable.as_json: a direct, best-effort
// rendering of a value tree to JSON text. Grounded on the json
// package's Value.render for escaping/number formatting conventions,
// but written against *tempearly.Value directly rather than going
// through json.Value, since the two type systems diverge (Map key
// order, Object attribute tables) enough that a conversion step would
// just be thrown away immediately.
func (i *Interpreter) toJSONString(v *Value) (string, error) {
	var b strings.Builder
	if err := i.writeJSON(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (i *Interpreter) writeJSON(b *strings.Builder, v *Value) error {
	switch v.Kind() {
	case KindNull:
		b.WriteString("null")
		return nil
	case KindBool:
		if v.AsBool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
		return nil
	case KindInt:
		b.WriteString(strconv.FormatInt(v.AsInt(), 10))
		return nil
	case KindFloat:
		b.WriteString(strconv.FormatFloat(v.AsFloat(), 'g', -1, 64))
		return nil
	case KindString:
		b.WriteString(strconv.Quote(v.AsString()))
		return nil
	case KindBinary:
		b.WriteString(strconv.Quote(string(v.AsBinary().Bytes())))
		return nil
	}

	obj := v.AsObject()
	switch native := obj.Native.(type) {
	case []*Value:
		b.WriteByte('[')
		for idx, item := range native {
			if idx > 0 {
				b.WriteByte(',')
			}
			if err := i.writeJSON(b, item); err != nil {
				return err
			}
		}
		b.WriteByte(']')
		return nil
	case *ValueMap:
		b.WriteByte('{')
		first := true
		native.Each(func(key, val *Value) bool {
			if !first {
				b.WriteByte(',')
			}
			first = false
			k, _ := i.Stringify(key)
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			if err := i.writeJSON(b, val); err != nil {
				b.WriteString("null")
			}
			return true
		})
		b.WriteByte('}')
		return nil
	}

	s, err := i.Stringify(v)
	if err != nil {
		return err
	}
	b.WriteString(strconv.Quote(s))
	return nil
}
