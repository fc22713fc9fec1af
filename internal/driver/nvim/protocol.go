package nvim

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/darvelo/ShadowVim/internal/engine/buffer"
	"github.com/darvelo/ShadowVim/internal/mode"
)

// linesNotification is the bridge's delta report for a buffer change.
type linesNotification struct {
	Change buffer.ChangeDescriptor
}

// cursorNotification is the bridge's cursor/mode report.
type cursorNotification struct {
	Pos  buffer.Position
	Mode mode.Mode
}

// errorNotification is an engine-side fault report.
type errorNotification struct {
	Message string
}

// refreshNotification asks for a full resync with the engine as ground
// truth, typically bound to a user command on the engine side.
type refreshNotification struct{}

// decodeNotification parses one protocol line into a typed notification.
func decodeNotification(line string) (any, error) {
	if !gjson.Valid(line) {
		return nil, fmt.Errorf("invalid message: %q", line)
	}
	root := gjson.Parse(line)
	method := root.Get("method").String()
	params := root.Get("params")

	switch method {
	case "lines":
		change := buffer.ChangeDescriptor{
			FirstLine: int(params.Get("firstline").Int()),
			LastLine:  int(params.Get("lastline").Int()),
		}
		for _, v := range params.Get("linedata").Array() {
			change.Lines = append(change.Lines, v.String())
		}
		return linesNotification{Change: change}, nil

	case "cursor":
		return cursorNotification{
			Pos: buffer.Position{
				Line:   int(params.Get("line").Int()),
				Column: int(params.Get("col").Int()),
			},
			Mode: mode.FromShortName(params.Get("mode").String()),
		}, nil

	case "error":
		return errorNotification{Message: params.Get("message").String()}, nil

	case "refresh":
		return refreshNotification{}, nil

	default:
		return nil, fmt.Errorf("unknown method %q", method)
	}
}

// encodeSetLines builds a "setlines" message replacing the half-open
// range [first, last) with the replacement lines.
func encodeSetLines(first, last int, replacement []string) string {
	msg, _ := sjson.Set("{}", "method", "setlines")
	msg, _ = sjson.Set(msg, "params.firstline", first)
	msg, _ = sjson.Set(msg, "params.lastline", last)
	if replacement == nil {
		replacement = []string{}
	}
	msg, _ = sjson.Set(msg, "params.replacement", replacement)
	return msg
}

// encodeSetCursor builds a "setcursor" message.
func encodeSetCursor(pos buffer.Position) string {
	msg, _ := sjson.Set("{}", "method", "setcursor")
	msg, _ = sjson.Set(msg, "params.line", pos.Line)
	msg, _ = sjson.Set(msg, "params.col", pos.Column)
	return msg
}
