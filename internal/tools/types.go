// Package tools holds the tool registry shared by every travvy server: descriptors,
// argument validation, invocation and the structured result envelope.
package tools

import (
	"context"
	"encoding/json"
)

// Param describes a single input parameter of a tool.
type Param struct {
	Name        string
	Type        string // string, number, integer, boolean, array, object
	Description string
	Required    bool

	Enum      []string
	Pattern   string
	Minimum   *float64
	Maximum   *float64
	MinLength *int
	MaxLength *int
	Default   any
	// Items describes array elements; Name and Required are ignored.
	Items *Param
	// Fields describes object properties.
	Fields []Param
}

// Descriptor is the static metadata advertising a tool.
type Descriptor struct {
	Name        string
	Description string
	Params      []Param
}

// Handler executes a tool with already-validated arguments and returns display text.
type Handler func(ctx context.Context, args Args) (string, error)

// Call is a single tool invocation request.
type Call struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Result is the outcome of a tool invocation.
type Result struct {
	Success bool   `json:"success"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    Kind   `json:"kind,omitempty"`
}

// Text returns the content on success and the error message otherwise.
func (r Result) Text() string {
	if r.Success {
		return r.Content
	}
	return r.Error
}

// Success wraps formatter output as a successful result.
func Success(content string) Result {
	return Result{Success: true, Content: content}
}

// Failure converts err into a failed result, keeping its kind.
func Failure(err error) Result {
	return Result{Success: false, Error: err.Error(), Kind: KindOf(err)}
}

// Float is a convenience for optional schema bounds.
func Float(v float64) *float64 { return &v }

// Int is a convenience for optional length bounds.
func Int(v int) *int { return &v }

// InputSchema renders the parameters as a JSON schema object.
func (d Descriptor) InputSchema() map[string]any {
	return objectSchema(d.Params)
}

// MarshalJSON emits the wire form {name, description, inputSchema}.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name        string         `json:"name"`
		Description string         `json:"description"`
		InputSchema map[string]any `json:"inputSchema"`
	}{d.Name, d.Description, d.InputSchema()})
}

func (d Descriptor) clone() Descriptor {
	out := d
	out.Params = cloneParams(d.Params)
	return out
}

func cloneParams(in []Param) []Param {
	if in == nil {
		return nil
	}
	out := make([]Param, len(in))
	for i, p := range in {
		out[i] = p
		out[i].Enum = append([]string(nil), p.Enum...)
		out[i].Fields = cloneParams(p.Fields)
		if p.Items != nil {
			items := *p.Items
			items.Fields = cloneParams(p.Items.Fields)
			out[i].Items = &items
		}
	}
	return out
}

func objectSchema(params []Param) map[string]any {
	props := make(map[string]any, len(params))
	required := []string{}
	for _, p := range params {
		props[p.Name] = paramSchema(p)
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func paramSchema(p Param) map[string]any {
	if p.Type == "object" {
		s := objectSchema(p.Fields)
		if p.Description != "" {
			s["description"] = p.Description
		}
		return s
	}
	s := map[string]any{"type": p.Type}
	if p.Description != "" {
		s["description"] = p.Description
	}
	if len(p.Enum) > 0 {
		s["enum"] = p.Enum
	}
	if p.Pattern != "" {
		s["pattern"] = p.Pattern
	}
	if p.Minimum != nil {
		s["minimum"] = *p.Minimum
	}
	if p.Maximum != nil {
		s["maximum"] = *p.Maximum
	}
	if p.MinLength != nil {
		s["minLength"] = *p.MinLength
	}
	if p.MaxLength != nil {
		s["maxLength"] = *p.MaxLength
	}
	if p.Default != nil {
		s["default"] = p.Default
	}
	if p.Items != nil {
		s["items"] = paramSchema(*p.Items)
	}
	return s
}
