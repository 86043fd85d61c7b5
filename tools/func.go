package tools

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/dumptruck-ai/agents/chatmodel"
	"github.com/dumptruck-ai/agents/llmutils"
	"github.com/dumptruck-ai/agents/schema"
)

// Result is a tool result carrying the upstream provider's JSON unchanged.
// Pass-through is a documented contract: tools do not reshape responses.
type Result struct {
	Raw json.RawMessage
}

// GetContent implements the chatmodel.ContentProvider interface.
func (r *Result) GetContent() string {
	return string(r.Raw)
}

func (r *Result) String() string {
	return string(r.Raw)
}

// Func adapts a typed function into a Tool. The request type's jsonschema
// tags define the parameter schema shown to the model.
type Func[I any] struct {
	name        string
	description string
	params      any
	fn          func(context.Context, *I) (json.RawMessage, error)
}

var _ Tool[struct{}, Result] = (*Func[struct{}])(nil)

// NewFunc creates a tool from a typed function.
func NewFunc[I any](name, description string, fn func(context.Context, *I) (json.RawMessage, error)) *Func[I] {
	var req I
	return &Func[I]{
		name:        name,
		description: description,
		params:      schema.MustBuild(reflect.TypeOf(req)),
		fn:          fn,
	}
}

// Name implements the ITool interface.
func (t *Func[I]) Name() string {
	return t.name
}

// Description implements the ITool interface.
func (t *Func[I]) Description() string {
	return t.description
}

// Parameters implements the ITool interface.
func (t *Func[I]) Parameters() any {
	return t.params
}

// Run executes the tool with a typed request.
func (t *Func[I]) Run(ctx context.Context, req *I) (*Result, error) {
	raw, err := t.fn(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Result{Raw: raw}, nil
}

// Call implements the ITool interface.
func (t *Func[I]) Call(ctx context.Context, input string) (string, error) {
	var req I
	if err := json.Unmarshal(llmutils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithMessage(chatmodel.ErrFailedUnmarshalInput, err.Error())
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return res.GetContent(), nil
}
