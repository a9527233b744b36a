package tempearly

import "sort"

// sortValues returns a stable-sorted copy of items using Compare
// (which in turn dispatches __cmp__/__lt__ for Object elements),
// backing Iterable.sort/List.sort! with sort.SliceStable so equal
// elements keep their relative order.
func (i *Interpreter) sortValues(items []*Value) ([]*Value, error) {
	out := append([]*Value{}, items...)
	var sortErr error
	sort.SliceStable(out, func(a, b int) bool {
		if sortErr != nil {
			return false
		}
		c, err := i.Compare(out[a], out[b])
		if err != nil {
			sortErr = err
			return false
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return out, nil
}
