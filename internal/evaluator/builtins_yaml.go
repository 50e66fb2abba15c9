package evaluator

import (
	"fmt"
	"sort"

	"github.com/funvibe/tessera/internal/config"
	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a YAML document into a value.
func DecodeYAML(content []byte) (Object, error) {
	var data interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("yaml decode: %w", err)
	}
	return inferFromYaml(data)
}

// DecodeYAMLValue converts an already parsed YAML node into a value.
// Mappings become Record products and strings become (List Char).
func DecodeYAMLValue(node *yaml.Node) (Object, error) {
	var data interface{}
	if err := node.Decode(&data); err != nil {
		return nil, fmt.Errorf("yaml decode: %w", err)
	}
	return inferFromYaml(data)
}

func inferFromYaml(data interface{}) (Object, error) {
	switch v := data.(type) {
	case nil:
		return UnitValue(), nil
	case bool:
		return NativeBool(v), nil
	case int:
		return &Integer{Value: int64(v)}, nil
	case int64:
		return &Integer{Value: v}, nil
	case uint64:
		return &UInteger{Value: v}, nil
	case float64:
		return &Float{Value: v}, nil
	case string:
		return StringToList(v), nil
	case []interface{}:
		elements := make([]Object, len(v))
		for i, item := range v {
			obj, err := inferFromYaml(item)
			if err != nil {
				return nil, err
			}
			elements[i] = obj
		}
		return NewList(elements), nil
	case map[string]interface{}:
		fields := make(map[string]Object, len(v))
		for k, val := range v {
			obj, err := inferFromYaml(val)
			if err != nil {
				return nil, err
			}
			fields[k] = obj
		}
		return NewRecord(fields), nil
	case map[interface{}]interface{}:
		fields := make(map[string]Object, len(v))
		for k, val := range v {
			obj, err := inferFromYaml(val)
			if err != nil {
				return nil, err
			}
			fields[fmt.Sprintf("%v", k)] = obj
		}
		return NewRecord(fields), nil
	default:
		return nil, fmt.Errorf("unsupported YAML value type: %T", data)
	}
}

// NewRecord builds an anonymous product value.
func NewRecord(fields map[string]Object) *Algebraic {
	return &Algebraic{Kind: Product, TypeName: config.RecordTypeName, Fields: fields}
}

// EncodeYAML renders a value as a YAML document. Functions and promises
// have no YAML form.
func EncodeYAML(obj Object) ([]byte, error) {
	data, err := objectToYaml(obj)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("yaml encode: %w", err)
	}
	return out, nil
}

func objectToYaml(obj Object) (interface{}, error) {
	switch o := obj.(type) {
	case *Integer:
		return o.Value, nil
	case *UInteger:
		return o.Value, nil
	case *Float:
		return o.Value, nil
	case *Boolean:
		return o.Value, nil
	case *Char:
		return string(o.Value), nil
	case *Byte:
		return int(o.Value), nil
	case *List:
		if IsStringList(o) {
			return ListToString(o), nil
		}
		return objectsToYaml(o.Elements)
	case *Tuple:
		if len(o.Elements) == 0 {
			return nil, nil
		}
		return objectsToYaml(o.Elements)
	case *Algebraic:
		if len(o.Fields) == 0 && o.Tag != "" {
			return o.Tag, nil
		}
		m := make(map[string]interface{}, len(o.Fields))
		for k, f := range o.Fields {
			v, err := objectToYaml(f)
			if err != nil {
				return nil, err
			}
			m[k] = v
		}
		return m, nil
	case *Alias:
		return objectToYaml(o.Value)
	case *Reference:
		return objectToYaml(o.Load())
	default:
		return nil, fmt.Errorf("yaml encode: unsupported value %s", typeOrNil(obj))
	}
}

func objectsToYaml(objs []Object) ([]interface{}, error) {
	out := make([]interface{}, len(objs))
	for i, el := range objs {
		v, err := objectToYaml(el)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// SeedGlobals declares every global listed in g on interp, tier by tier,
// in name order.
func SeedGlobals(interp *Interpreter, g config.GlobalsConfig) error {
	tiers := []struct {
		tier  Tier
		nodes map[string]yaml.Node
	}{
		{SharedImmutable, g.Shared},
		{SharedMutable, g.Mutable},
		{ThreadLocal, g.Local},
	}
	for _, t := range tiers {
		names := make([]string, 0, len(t.nodes))
		for name := range t.nodes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			node := t.nodes[name]
			val, err := DecodeYAMLValue(&node)
			if err != nil {
				return fmt.Errorf("global %s: %w", name, err)
			}
			if err := interp.DeclareGlobal(name, t.tier, nil, val); err != nil {
				return fmt.Errorf("global %s: %w", name, err)
			}
		}
	}
	return nil
}
