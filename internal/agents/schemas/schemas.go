// Package schemas declares the expected-output shape for each analysis role.
// The schemas steer model output formatting only; nothing validates the
// model's response against them.
package schemas

import (
	"sort"
	"strings"

	"google.golang.org/genai"
)

// Example renders a schema as an indented example-output block for prompt
// embedding. Leaves render as their human-readable description, mirroring
// the shape the model is asked to produce.
func Example(schema *genai.Schema) string {
	var b strings.Builder
	writeExample(&b, schema, 0)
	return b.String()
}

func writeExample(b *strings.Builder, schema *genai.Schema, depth int) {
	if schema == nil {
		b.WriteString(`""`)
		return
	}

	switch schema.Type {
	case "OBJECT":
		b.WriteString("{\n")
		names := make([]string, 0, len(schema.Properties))
		for name := range schema.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for i, name := range names {
			indent(b, depth+1)
			b.WriteString(`"` + name + `": `)
			writeExample(b, schema.Properties[name], depth+1)
			if i < len(names)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		indent(b, depth)
		b.WriteString("}")
	case "ARRAY":
		b.WriteString("[")
		writeExample(b, schema.Items, depth)
		b.WriteString("]")
	default:
		b.WriteString(`"` + leafText(schema) + `"`)
	}
}

func leafText(schema *genai.Schema) string {
	if len(schema.Enum) > 0 {
		return schema.Description + " (one of: " + strings.Join(schema.Enum, "/") + ")"
	}
	return schema.Description
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}
