// Package request models the raw per-workflow request document handed to the
// transferor by the request manager. Documents are plain string-keyed maps;
// this package gives them a typed view and applies the lookup rules shared by
// all request types: a top-level value wins, with a fallback to the first
// task or step sub-document.
package request

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/gridwm/transferor/internal/common/planerrors"
)

// Document is a typed view over a raw workflow request document.
type Document struct {
	fields map[string]any
}

// TaskSpec holds the input-data declarations of a single task or step.
// Single-task requests (e.g. ReReco, DQMHarvesting) declare these fields at
// the top level of the document and decode into one implicit TaskSpec.
type TaskSpec struct {
	InputDataset string `mapstructure:"InputDataset"`
	MCPileup     string `mapstructure:"MCPileup"`
	DataPileup   string `mapstructure:"DataPileup"`
	Campaign     string `mapstructure:"Campaign"`
}

// Decode validates raw and wraps it in a Document. All field-shape problems
// are aggregated into a single multierror so the caller can report every
// defect of a rejected request at once.
func Decode(raw map[string]any) (*Document, error) {
	d := &Document{fields: raw}
	var result *multierror.Error
	if _, err := d.Tasks(); err != nil {
		result = multierror.Append(result, err)
	}
	for _, key := range []string{"SiteWhitelist", "SiteBlacklist", "BlockWhitelist", "BlockBlacklist"} {
		if v, ok := raw[key]; ok && truthy(v) {
			if _, err := decodeValue[[]string](v); err != nil {
				result = multierror.Append(result, &planerrors.ErrMalformedRequest{
					Field:   key,
					Message: "expected a list of strings",
				})
			}
		}
	}
	for _, key := range []string{"RunWhitelist", "RunBlacklist"} {
		if v := d.Value(key); v != nil {
			if _, err := decodeValue[[]int](v); err != nil {
				result = multierror.Append(result, &planerrors.ErrMalformedRequest{
					Field:   key,
					Message: "expected a list of run numbers",
				})
			}
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return d, nil
}

// Tasks returns the ordered task or step sub-documents declared by the
// request: Task1..TaskN or Step1..StepN when a chain count is present,
// otherwise the document itself as a single implicit task.
func (d *Document) Tasks() ([]TaskSpec, error) {
	n, chained, err := d.chainCount()
	if err != nil {
		return nil, err
	}
	if !chained {
		task, err := decodeValue[TaskSpec](d.fields)
		if err != nil {
			return nil, &planerrors.ErrMalformedRequest{Message: err.Error()}
		}
		return []TaskSpec{task}, nil
	}
	tasks := make([]TaskSpec, 0, n)
	for i := 1; i <= n; i++ {
		sub := d.fields[fmt.Sprintf("Task%d", i)]
		if sub == nil {
			sub = d.fields[fmt.Sprintf("Step%d", i)]
		}
		if sub == nil {
			return nil, &planerrors.ErrMalformedRequest{
				Field:   fmt.Sprintf("Task%d", i),
				Message: "declared by the chain count but missing from the document",
			}
		}
		task, err := decodeValue[TaskSpec](sub)
		if err != nil {
			return nil, &planerrors.ErrMalformedRequest{
				Field:   fmt.Sprintf("Task%d", i),
				Message: err.Error(),
			}
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Value returns the value of key, preferring a non-empty top-level value and
// falling back to the Task1 and then Step1 sub-documents. Returns nil when
// the key is absent everywhere.
func (d *Document) Value(key string) any {
	if v, ok := d.fields[key]; ok && truthy(v) {
		return v
	}
	for _, taskKey := range []string{"Task1", "Step1"} {
		if sub, ok := d.fields[taskKey].(map[string]any); ok {
			if v, ok := sub[key]; ok {
				return v
			}
		}
	}
	return nil
}

// String returns the value of key as a string, or "" when absent.
func (d *Document) String(key string) string {
	v := d.Value(key)
	if v == nil {
		return ""
	}
	s, err := decodeValue[string](v)
	if err != nil {
		return ""
	}
	return s
}

// Bool returns the value of key as a bool, or false when absent.
func (d *Document) Bool(key string) bool {
	v := d.Value(key)
	if v == nil {
		return false
	}
	b, err := decodeValue[bool](v)
	if err != nil {
		return false
	}
	return b
}

// Strings returns the value of key as a list of strings, or nil when absent.
func (d *Document) Strings(key string) []string {
	v := d.Value(key)
	if v == nil {
		return nil
	}
	s, err := decodeValue[[]string](v)
	if err != nil {
		return nil
	}
	return s
}

// Ints returns the value of key as a list of ints, or nil when absent.
func (d *Document) Ints(key string) []int {
	v := d.Value(key)
	if v == nil {
		return nil
	}
	s, err := decodeValue[[]int](v)
	if err != nil {
		return nil
	}
	return s
}

// LumiMask returns the run to lumi-range-list mask declared by the request,
// or nil when absent.
func (d *Document) LumiMask() map[string][][]int {
	v := d.Value("LumiList")
	if v == nil {
		return nil
	}
	mask, err := decodeValue[map[string][][]int](v)
	if err != nil {
		return nil
	}
	return mask
}

func (d *Document) chainCount() (int, bool, error) {
	for _, key := range []string{"TaskChain", "StepChain"} {
		v, ok := d.fields[key]
		if !ok || v == nil {
			continue
		}
		n, err := decodeValue[int](v)
		if err != nil || n < 1 {
			return 0, true, &planerrors.ErrMalformedRequest{Field: key, Message: "expected a positive integer"}
		}
		return n, true, nil
	}
	return 0, false, nil
}

func decodeValue[T any](v any) (T, error) {
	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return out, errors.WithStack(err)
	}
	if err := decoder.Decode(v); err != nil {
		return out, errors.WithStack(err)
	}
	return out, nil
}

// truthy mirrors the presence rules of the upstream request manager: empty
// strings, collections, zeroes and false all count as unset.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	default:
		return true
	}
}
