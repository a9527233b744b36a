package tempearly

import (
	"os"
	"path/filepath"
)

// resolvePath resolves relative include()/import() paths against a
// base directory: an explicit BaseDir takes priority over the
// process's working directory.
func (i *Interpreter) resolvePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	base := i.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		base = wd
	}
	return filepath.Join(base, path), nil
}

// Include parses the file at path and executes its top-level
// statements in the current top frame (the globals frame), returning
// true on success. Raises ImportError on a read failure, or lets a
// SyntaxError from parsing propagate.
func (i *Interpreter) Include(path string) (*Value, error) {
	resolved, err := i.resolvePath(path)
	if err != nil {
		return nil, i.RaiseType(i.ImportErrorClass, ErrImport, "cannot resolve %q: %s", path, err)
	}
	src, err := os.ReadFile(resolved)
	if err != nil {
		return nil, i.RaiseType(i.ImportErrorClass, ErrImport, "cannot read %q: %s", path, err)
	}
	tpl, err := Parse(resolved, string(src))
	if err != nil {
		return nil, err
	}
	result := tpl.root.Execute(i, i.Globals)
	if result.Kind == RError {
		return nil, result.Err
	}
	return True, nil
}

// Import parses and executes the file at path in a fresh top frame,
// memoized by canonical path so a template imported twice in one
// render is parsed once, and returns the resulting locals as a Map.
// The memo also gives cmd/tempearly's
// dev server somewhere to hook fsnotify-driven invalidation: deleting
// an entry here forces the next import() to reparse.
func (i *Interpreter) Import(path string) (*Value, error) {
	resolved, err := i.resolvePath(path)
	if err != nil {
		return nil, i.RaiseType(i.ImportErrorClass, ErrImport, "cannot resolve %q: %s", path, err)
	}
	if cached, ok := i.ImportedFiles[resolved]; ok {
		return cached, nil
	}
	src, err := os.ReadFile(resolved)
	if err != nil {
		return nil, i.RaiseType(i.ImportErrorClass, ErrImport, "cannot read %q: %s", path, err)
	}
	tpl, err := Parse(resolved, string(src))
	if err != nil {
		return nil, err
	}
	frame := NewFrame(nil, nil)
	frame.Interp = i
	result := tpl.root.Execute(i, frame)
	if result.Kind == RError {
		return nil, result.Err
	}
	locals := NewValueMap()
	frame.Vars.Each(func(name string, v *Value) bool {
		locals.Set(i, NewString(name), v)
		return true
	})
	module := i.NewMap(locals)
	i.ImportedFiles[resolved] = module
	return module, nil
}

// InvalidateImport drops path's memoized import() result, forcing the
// next import() of it to reparse and re-execute. cmd/tempearly's dev
// server calls this from its fsnotify watch loop.
func (i *Interpreter) InvalidateImport(path string) {
	resolved, err := i.resolvePath(path)
	if err != nil {
		return
	}
	delete(i.ImportedFiles, resolved)
}
