// Package hook forwards player lifecycle events to a user Lua script.
//
// The script runs in a gopher-lua state with the mangal-lua-libs modules
// preloaded, and must define a global on_event(event, detail) function.
package hook

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/dotplay-cli/dotplay/constant"
	"github.com/dotplay-cli/dotplay/filesystem"
	"github.com/dotplay-cli/dotplay/key"
	"github.com/dotplay-cli/dotplay/log"
	"github.com/dotplay-cli/dotplay/player"
	"github.com/dotplay-cli/dotplay/util"
	libs "github.com/metafates/mangal-lua-libs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// ErrNoHandler is returned when a script does not define on_event.
var ErrNoHandler = errors.New("function " + constant.OnEventFn + " is required but not defined")

// Hook is a loaded script. A Lua state is not safe for concurrent use, so
// calls are serialized.
type Hook struct {
	Name string

	mu      sync.Mutex
	state   *lua.LState
	handler *lua.LFunction
}

// Load compiles and runs the script at path.
func Load(path string) (*Hook, error) {
	src, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, err
	}

	chunk, err := parse.Parse(bytes.NewReader(src), path)
	if err != nil {
		return nil, err
	}
	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return nil, err
	}

	state := lua.NewState()
	libs.Preload(state)

	state.Push(state.NewFunctionFromProto(proto))
	if err := state.PCall(0, lua.MultRet, nil); err != nil {
		state.Close()
		return nil, err
	}

	handler, ok := state.GetGlobal(constant.OnEventFn).(*lua.LFunction)
	if !ok {
		state.Close()
		return nil, fmt.Errorf("%w in %s", ErrNoHandler, util.FileStem(path))
	}

	return &Hook{Name: util.FileStem(path), state: state, handler: handler}, nil
}

// FromConfig loads the script named by hooks.script. It returns nil when none is configured.
func FromConfig() (*Hook, error) {
	path := viper.GetString(key.HooksScript)
	if path == "" {
		return nil, nil
	}
	return Load(path)
}

// Call invokes on_event for one event.
func (h *Hook) Call(ev player.Event, d player.Detail) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == nil {
		return nil
	}

	detail := h.state.NewTable()
	detail.RawSetString("frame", lua.LNumber(d.Frame))
	detail.RawSetString("seeker", lua.LNumber(d.Seeker))
	detail.RawSetString("index", lua.LNumber(d.Index))
	detail.RawSetString("state", lua.LString(d.State))
	if d.Error != "" {
		detail.RawSetString("error", lua.LString(d.Error))
	}

	return h.state.CallByParam(lua.P{
		Fn:      h.handler,
		NRet:    0,
		Protect: true,
	}, lua.LString(ev), detail)
}

// Attach subscribes the hook to every event of e. Script errors are logged
// and do not stop later events.
func (h *Hook) Attach(e *player.Emitter) (off func()) {
	return e.OnAny(func(ev player.Event, d player.Detail) {
		if err := h.Call(ev, d); err != nil {
			log.WithFields(logrus.Fields{"hook": h.Name, "event": ev}).Warn("hook: ", err)
		}
	})
}

// Close releases the Lua state.
func (h *Hook) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != nil {
		h.state.Close()
		h.state = nil
	}
}
