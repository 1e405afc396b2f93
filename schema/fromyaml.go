package schema

import (
	"fmt"

	pbnjson "github.com/webosce/pbnjson"
	"gopkg.in/yaml.v3"
)

// CompileYAML compiles a schema document authored in YAML rather than JSON.
// YAML's map[any]any/[]any decode shape is normalized into a *pbnjson.Value
// tree via the public constructors, then handed to the same builder
// ParseBytes's JSON path uses, the same way the lineage's kubeopenapi
// importer normalizes a decoded YAML node before treating it as schema
// data.
func CompileYAML(data []byte, resolver Resolver) (*Schema, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &pbnjson.Issue{Code: pbnjson.ErrLexical, Message: err.Error()}
	}
	doc := yamlToValue(node)
	root, err := buildNode(doc)
	doc.Release()
	if err != nil {
		return nil, err
	}
	reg := NewRegistry(resolver)
	root.CollectSchemas(reg, "")
	if err := Resolve(root, reg); err != nil {
		return nil, err
	}
	return &Schema{root: root, reg: reg}, nil
}

// yamlToValue converts one YAML-decoded node (string, bool, int, float64,
// []any, map[string]any, or map[any]any) into an owned *pbnjson.Value.
func yamlToValue(v any) *pbnjson.Value {
	switch t := v.(type) {
	case nil:
		return pbnjson.Null()
	case bool:
		return pbnjson.Bool(t)
	case int:
		return pbnjson.Int(int64(t))
	case int64:
		return pbnjson.Int(t)
	case float64:
		return pbnjson.Double(t)
	case string:
		return pbnjson.String(t)
	case []any:
		out := pbnjson.NewArray(len(t))
		for _, elem := range t {
			if err := out.ArrayAppend(yamlToValue(elem)); err != nil {
				out.Release()
				return pbnjson.Invalid()
			}
		}
		return out
	case map[string]any:
		out := pbnjson.NewObject(len(t))
		for k, vv := range t {
			if err := out.ObjectPut(pbnjson.String(k), yamlToValue(vv)); err != nil {
				out.Release()
				return pbnjson.Invalid()
			}
		}
		return out
	case map[any]any:
		out := pbnjson.NewObject(len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			if err := out.ObjectPut(pbnjson.String(ks), yamlToValue(vv)); err != nil {
				out.Release()
				return pbnjson.Invalid()
			}
		}
		return out
	default:
		return pbnjson.String(fmt.Sprint(t))
	}
}
