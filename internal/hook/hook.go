// Package hook runs user-supplied lua scripts on sync lifecycle events.
//
// Scripts register callbacks through the global shadowvim table:
//
//	shadowvim.on("sync", function(source) ... end)
//	shadowvim.on("conflict", function() ... end)
//	shadowvim.on("alert", function(message) ... end)
//
// Callbacks run on the mediator goroutine; a slow hook slows event
// processing, so scripts are expected to stay cheap.
package hook

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/rs/zerolog"
)

// Runner owns one lua state and the registered callbacks.
type Runner struct {
	log zerolog.Logger

	mu        sync.Mutex
	state     *lua.LState
	callbacks map[string][]*lua.LFunction
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// New creates a runner with the shadowvim API registered.
func New(opts ...Option) *Runner {
	r := &Runner{
		log:       zerolog.Nop(),
		state:     lua.NewState(),
		callbacks: make(map[string][]*lua.LFunction),
	}
	for _, opt := range opts {
		opt(r)
	}

	mod := r.state.NewTable()
	r.state.SetField(mod, "on", r.state.NewFunction(r.luaOn))
	r.state.SetGlobal("shadowvim", mod)
	return r
}

// luaOn implements shadowvim.on(name, fn).
func (r *Runner) luaOn(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	r.callbacks[name] = append(r.callbacks[name], fn)
	return 0
}

// LoadFile executes a script file.
func (r *Runner) LoadFile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.state.DoFile(path); err != nil {
		return fmt.Errorf("loading hook script %s: %w", path, err)
	}
	return nil
}

// LoadString executes script source directly.
func (r *Runner) LoadString(src string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.state.DoString(src); err != nil {
		return fmt.Errorf("loading hook script: %w", err)
	}
	return nil
}

// Close releases the lua state.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Close()
}

// fire invokes every callback registered under name. A failing callback
// is logged and skipped; hooks must never break event processing.
func (r *Runner) fire(name string, args ...lua.LValue) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, fn := range r.callbacks[name] {
		err := r.state.CallByParam(lua.P{
			Fn:      fn,
			NRet:    0,
			Protect: true,
		}, args...)
		if err != nil {
			r.log.Warn().Err(err).Str("hook", name).Msg("hook callback failed")
		}
	}
}

// OnSync reports that a full sync was issued with the given source side.
func (r *Runner) OnSync(source string) {
	r.fire("sync", lua.LString(source))
}

// OnConflict reports a rejected operation (token busy).
func (r *Runner) OnConflict() {
	r.fire("conflict")
}

// OnAlert reports a collaborator failure message.
func (r *Runner) OnAlert(msg string) {
	r.fire("alert", lua.LString(msg))
}
