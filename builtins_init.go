package tempearly

// initClasses builds the full built-in class hierarchy and registers
// each class as a global, in a fixed dependency order: Object,
// Iterable, the primitive scalar classes, the collection classes,
// Range, the Exception hierarchy, Class, Function, File. Order matters
// because later classes reference earlier ones as their Super.
func (i *Interpreter) initClasses() {
	i.ObjectClass = NewClass("Object", nil)
	i.RegisterClass(i.ObjectClass)
	i.installObjectMethods(i.ObjectClass)

	i.IterableClass = NewAbstractClass("Iterable", i.ObjectClass)
	i.RegisterClass(i.IterableClass)
	i.installIterableMethods(i.IterableClass)

	i.VoidClass = NewNativeClass("Void", i.ObjectClass, nil)
	i.RegisterClass(i.VoidClass)

	i.BoolClass = NewNativeClass("Bool", i.ObjectClass, nil)
	i.IntClass = NewNativeClass("Int", i.ObjectClass, nil)
	i.FloatClass = NewNativeClass("Float", i.ObjectClass, nil)
	i.StringClass = NewNativeClass("String", i.IterableClass, nil)
	i.BinaryClass = NewNativeClass("Binary", i.IterableClass, nil)
	for _, c := range []*Class{i.BoolClass, i.IntClass, i.FloatClass, i.StringClass, i.BinaryClass} {
		i.RegisterClass(c)
	}
	i.installBoolMethods(i.BoolClass)
	i.installNumberMethods(i.IntClass, i.FloatClass)
	i.installStringMethods(i.StringClass)
	i.installBinaryMethods(i.BinaryClass)

	i.ListClass = NewNativeClass("List", i.IterableClass, nil)
	i.MapClass = NewNativeClass("Map", i.IterableClass, nil)
	i.SetClass = NewNativeClass("Set", i.IterableClass, nil)
	for _, c := range []*Class{i.ListClass, i.MapClass, i.SetClass} {
		i.RegisterClass(c)
	}
	i.installListMethods(i.ListClass)
	i.installMapMethods(i.MapClass)
	i.installSetMethods(i.SetClass)

	i.RangeClass = NewNativeClass("Range", i.IterableClass, nil)
	i.IteratorClass = NewNativeClass("Iterator", i.IterableClass, nil)
	i.RegisterClass(i.RangeClass)
	i.RegisterClass(i.IteratorClass)
	i.installRangeMethods(i.RangeClass)
	i.installIteratorMethods(i.IteratorClass)

	i.installExceptionHierarchy()

	i.ClassClass = NewClass("Class", i.ObjectClass)
	i.RegisterClass(i.ClassClass)
	// Classes registered before Class existed were bound with a nil
	// class pointer; point every registered class object at Class now.
	i.Classes.Each(func(_ string, v *Value) bool {
		v.AsObject().Class = i.ClassClass
		return true
	})
	i.installClassMethods(i.ClassClass)

	i.FunctionClass = NewClass("Function", i.ObjectClass)
	i.RegisterClass(i.FunctionClass)
	i.installFunctionMethods(i.FunctionClass)

	i.FileClass = NewClass("File", i.ObjectClass)
	i.RegisterClass(i.FileClass)
	i.installFileMethods(i.FileClass)

	requestClass := NewClass("Request", i.ObjectClass)
	i.RegisterClass(requestClass)
	installRequestMethods(requestClass)

	responseClass := NewClass("Response", i.ObjectClass)
	i.RegisterClass(responseClass)
	installResponseMethods(responseClass)
}

// method is a small helper to cut boilerplate when installing a
// NativeMethod onto a class's attribute table.
func method(c *Class, name string, arity Arity, fn NativeFunc) {
	nf := NewNativeMethod(name, arity, fn)
	c.Attrs.Set(name, wrapNativeFunction(nf))
}

func staticMethod(c *Class, name string, arity Arity, fn NativeFunc) {
	nf := NewNativeStatic(name, arity, fn)
	c.Attrs.Set(name, wrapNativeFunction(nf))
}

func alias(c *Class, name, target string) {
	v, ok := c.Attrs.Get(target)
	if !ok {
		return
	}
	fn, ok := v.AsObject().Native.(*Function)
	if !ok {
		return
	}
	c.Attrs.Set(name, wrapNativeFunction(NewMethodAlias(name, fn)))
}

// wrapNativeFunction boxes a *Function as the *Value an attribute
// table stores, using a nil-class placeholder Instance since native
// Functions aren't allocated through Class.Allocate.
func wrapNativeFunction(fn *Function) *Value {
	return NewObject(&Instance{Native: fn, Attrs: NewOrderedMap()})
}
