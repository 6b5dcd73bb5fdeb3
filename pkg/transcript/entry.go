// Package transcript turns a line-delimited JSON conversation log into a
// readable, terminal-style text transcript.
//
// The log is an external format; decoding is lenient and only the fields
// the renderer needs are extracted. Entries and content blocks are closed
// variant types and the renderer dispatches on them with type switches.
package transcript

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Entry is one decoded log line: *SummaryEntry, *SystemEntry, *UserEntry,
// *AssistantEntry or *UnknownEntry.
type Entry interface {
	envelope() *Envelope
}

// Envelope carries the fields any entry type may have that feed SessionInfo.
type Envelope struct {
	// Version is the logging client version, nil when absent.
	Version *string
	// Cwd is the working directory at the time of the entry, nil when absent.
	Cwd *string
	// Model is the message's model identifier, "" when absent.
	Model string
}

func (e *Envelope) envelope() *Envelope { return e }

type SummaryEntry struct {
	Envelope
	Summary *string
}

type SystemEntry struct {
	Envelope
	Subtype string
}

// IsCompactBoundary reports whether the entry marks a compaction point.
func (e *SystemEntry) IsCompactBoundary() bool {
	return e.Subtype == "compact_boundary"
}

type UserEntry struct {
	Envelope
	IsMeta  bool
	Content Content
}

// HasToolResult reports whether the entry carries a tool_result block.
func (e *UserEntry) HasToolResult() bool {
	for _, b := range e.Content.Blocks {
		if _, ok := b.(*ToolResultBlock); ok {
			return true
		}
	}
	return false
}

type AssistantEntry struct {
	Envelope
	Content Content
}

// UnknownEntry is any entry whose type the renderer does not handle.
type UnknownEntry struct {
	Envelope
	Type string
}

// Content is a message body: either a plain string or a list of blocks.
type Content struct {
	IsText bool
	Text   string
	Blocks []Block
}

// Block is one element of list content: *TextBlock, *ThinkingBlock,
// *ToolUseBlock, *ToolResultBlock or *UnknownBlock.
type Block interface {
	block()
}

type TextBlock struct {
	Text string
}

type ThinkingBlock struct {
	Thinking string
}

type ToolUseBlock struct {
	ID    string
	Name  string
	Input Params
}

type ToolResultBlock struct {
	ToolUseID string
	IsError   bool
	Content   ResultContent
}

// Interrupted reports whether the result is the error left behind when the
// user interrupted a tool request.
func (b *ToolResultBlock) Interrupted() bool {
	return b.IsError && strings.Contains(b.Content.raw, "Request interrupted")
}

type UnknownBlock struct {
	Type string
}

func (*TextBlock) block()       {}
func (*ThinkingBlock) block()   {}
func (*ToolUseBlock) block()    {}
func (*ToolResultBlock) block() {}
func (*UnknownBlock) block()    {}

// ResultContent is the payload of a tool result: a string, a list of
// typed items, or something else that is not rendered.
type ResultContent struct {
	Text  *string
	Items []ResultItem
	raw   string
}

type ResultItem struct {
	Type string
	Text string
}

// Param is one tool input parameter. Params keep the order of the log.
type Param struct {
	Key   string
	Value gjson.Result
}

type Params []Param

// Lookup returns the parameter named key.
func (p Params) Lookup(key string) (gjson.Result, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return gjson.Result{}, false
}

// String returns the string form of parameter key, or "" when absent.
func (p Params) String(key string) string {
	v, _ := p.Lookup(key)
	return v.String()
}

func decodeEntry(r gjson.Result) Entry {
	env := decodeEnvelope(r)

	switch typ := r.Get("type").String(); typ {
	case "summary":
		e := &SummaryEntry{Envelope: env}
		if s := r.Get("summary"); s.Exists() && s.Type != gjson.Null {
			summary := s.String()
			e.Summary = &summary
		}
		return e
	case "system":
		return &SystemEntry{Envelope: env, Subtype: r.Get("subtype").String()}
	case "user":
		return &UserEntry{
			Envelope: env,
			IsMeta:   r.Get("isMeta").Bool(),
			Content:  decodeContent(message(r).Get("content")),
		}
	case "assistant":
		return &AssistantEntry{
			Envelope: env,
			Content:  decodeContent(message(r).Get("content")),
		}
	default:
		return &UnknownEntry{Envelope: env, Type: typ}
	}
}

func message(r gjson.Result) gjson.Result {
	msg := r.Get("message")
	if !msg.IsObject() {
		return gjson.Result{}
	}
	return msg
}

func decodeEnvelope(r gjson.Result) Envelope {
	var env Envelope
	if v := r.Get("version"); v.Exists() && v.Type != gjson.Null {
		version := v.String()
		env.Version = &version
	}
	if v := r.Get("cwd"); v.Type == gjson.String {
		cwd := v.String()
		env.Cwd = &cwd
	}
	if v := message(r).Get("model"); v.Type == gjson.String {
		env.Model = v.String()
	}
	return env
}

func decodeContent(r gjson.Result) Content {
	if r.Type == gjson.String {
		return Content{IsText: true, Text: r.String()}
	}
	if !r.IsArray() {
		return Content{}
	}
	var c Content
	for _, item := range r.Array() {
		if !item.IsObject() {
			continue
		}
		c.Blocks = append(c.Blocks, decodeBlock(item))
	}
	return c
}

func decodeBlock(r gjson.Result) Block {
	switch typ := r.Get("type").String(); typ {
	case "text":
		return &TextBlock{Text: r.Get("text").String()}
	case "thinking":
		return &ThinkingBlock{Thinking: r.Get("thinking").String()}
	case "tool_use":
		name := "Unknown"
		if n := r.Get("name"); n.Exists() {
			name = n.String()
		}
		return &ToolUseBlock{
			ID:    r.Get("id").String(),
			Name:  name,
			Input: decodeParams(r.Get("input")),
		}
	case "tool_result":
		return &ToolResultBlock{
			ToolUseID: r.Get("tool_use_id").String(),
			IsError:   r.Get("is_error").Bool(),
			Content:   decodeResultContent(r.Get("content")),
		}
	default:
		return &UnknownBlock{Type: typ}
	}
}

func decodeParams(r gjson.Result) Params {
	if !r.IsObject() {
		return nil
	}
	var params Params
	r.ForEach(func(key, value gjson.Result) bool {
		params = append(params, Param{Key: key.String(), Value: value})
		return true
	})
	return params
}

func decodeResultContent(r gjson.Result) ResultContent {
	rc := ResultContent{raw: r.Raw}
	switch {
	case r.Type == gjson.String:
		text := r.String()
		rc.Text = &text
	case r.IsArray():
		for _, item := range r.Array() {
			if !item.IsObject() {
				continue
			}
			rc.Items = append(rc.Items, ResultItem{
				Type: item.Get("type").String(),
				Text: item.Get("text").String(),
			})
		}
	}
	return rc
}
