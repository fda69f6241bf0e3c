package constant

// OnEventFn is the global function a hook script must define.
const OnEventFn = "on_event"

// HookTemplate is a Go text/template for scaffolding new Lua hook scripts.
const HookTemplate = `{{ $divider := repeat "-" (plus (len .Name) 16) }}{{ $divider }}
-- @name    {{ .Name }}
-- @author  {{ .Author }}
{{ $divider }}

---@alias detail { frame: number, seeker: number, state: string, index: number }

--- Called for every player lifecycle event.
--- event is one of: load, ready, play, pause, stop, freeze, loop,
--- complete, next, previous, error, rendered, destroyed, frame
---@param event string
---@param detail detail
function ` + OnEventFn + `(event, detail)
	if event == "complete" then
		print(string.format("finished at frame %d", detail.frame))
	end
end
`
