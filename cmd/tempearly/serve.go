package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/peelonet/tempearly"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve [host:]port [root]",
		Short: "Serve templates under root over HTTP, reloading on change",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := args[0]
			root := "."
			if len(args) == 2 {
				root = args[1]
			}
			return serve(addr, root)
		},
	}
}

// serve implements a "[host:]port root" built-in dev server: every
// request maps to a template file under root. A single
// Interpreter is shared across requests so its ImportedFiles memo
// (loader.go's Import) actually has something to cache; a background
// fsnotify watcher calls InvalidateImport when a watched file changes,
// so edits to included/imported files are picked up without a restart.
func serve(addr string, root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	if addr != "" && addr[0] != ':' && !containsColon(addr) {
		addr = ":" + addr
	}

	h := &templateHandler{root: abs}
	h.interp = tempearly.NewInterpreter(io.Discard)
	h.interp.BaseDir = abs

	watcher, err := newReloadWatcher(abs, h.interp)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	fmt.Fprintf(os.Stdout, "tempearly serve: listening on %s, root %s\n", addr, abs)
	return http.ListenAndServe(addr, h)
}

func containsColon(s string) bool {
	for _, r := range s {
		if r == ':' {
			return true
		}
	}
	return false
}

// templateHandler serves one template file per request, reusing a
// shared Interpreter so import() caching and class registrations
// accumulate across requests the way a long-running host process
// would see them.
type templateHandler struct {
	root   string
	interp *tempearly.Interpreter
	mu     sync.Mutex
}

func (h *templateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.root, filepath.Clean("/"+r.URL.Path))
	src, err := os.ReadFile(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	tpl, err := tempearly.Parse(path, string(src))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	body, _ := io.ReadAll(r.Body)
	params := tempearly.NewOrderedMap()
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			params.Set(k, tempearly.NewString(vs[0]))
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.interp
	i.Out = w
	i.NewRequest(&tempearly.RequestData{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		Secure:      r.TLS != nil,
		Ajax:        r.Header.Get("X-Requested-With") == "XMLHttpRequest",
		Body:        body,
		Params:      params,
	})
	i.NewResponse(&tempearly.ResponseData{Writer: w})

	res := tpl.Execute(i)
	if res.Kind != tempearly.RError {
		return
	}
	if exc, ok := tempearly.ExceptionValue(res.Err); ok {
		class := i.ClassOf(exc)
		msg, _ := i.Stringify(exc)
		http.Error(w, fmt.Sprintf("%s: %s", class.Name, msg), http.StatusInternalServerError)
		return
	}
	http.Error(w, res.Err.Error(), http.StatusInternalServerError)
}

// reloadWatcher wraps fsnotify.Watcher, watching every directory under
// root and invalidating interp's import() memo for any file that
// changes.
type reloadWatcher struct {
	fsw *fsnotify.Watcher
}

func newReloadWatcher(root string, interp *tempearly.Interpreter) (*reloadWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}
		return fsw.Add(path)
	})
	if err != nil {
		fsw.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					interp.InvalidateImport(ev.Name)
					slog.Debug("reloaded", "file", ev.Name, "op", ev.Op.String())
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				slog.Error("watch error", "err", err)
			}
		}
	}()
	return &reloadWatcher{fsw: fsw}, nil
}

func (w *reloadWatcher) Close() error { return w.fsw.Close() }
