package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

// toPlain converts an Exported tree into plain Go values (map[string]any,
// []any, scalars) suitable for JSON/YAML encoding.
func toPlain(e pklvalue.Exported) any {
	switch e.Kind {
	case pklvalue.ExportNull:
		return nil
	case pklvalue.ExportScalar, pklvalue.ExportQuantity, pklvalue.ExportRegex:
		return e.Scalar
	case pklvalue.ExportList:
		out := make([]any, len(e.Elements))
		for i, el := range e.Elements {
			out[i] = toPlain(el)
		}
		return out
	case pklvalue.ExportMap, pklvalue.ExportObject:
		out := make(map[string]any, len(e.Entries))
		for _, entry := range e.Entries {
			key := fmt.Sprint(toPlain(entry.Key))
			out[key] = toPlain(entry.Value)
		}
		return out
	default:
		return nil
	}
}

func renderJSON(e pklvalue.Exported) (string, error) {
	data, err := json.MarshalIndent(toPlain(e), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func renderYAML(e pklvalue.Exported) (string, error) {
	data, err := yaml.Marshal(toPlain(e))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// renderText renders a pcf-ish (Pkl-Config-Format-ish) textual form:
// sorted "name = value" lines for an object's properties, one per line.
func renderText(e pklvalue.Exported) string {
	var b strings.Builder
	renderTextInto(&b, e, 0)
	return b.String()
}

func renderTextInto(b *strings.Builder, e pklvalue.Exported, indent int) {
	pad := strings.Repeat("  ", indent)
	switch e.Kind {
	case pklvalue.ExportNull:
		b.WriteString("null")
	case pklvalue.ExportScalar, pklvalue.ExportQuantity, pklvalue.ExportRegex:
		fmt.Fprintf(b, "%v", e.Scalar)
	case pklvalue.ExportList:
		b.WriteString("{\n")
		for _, el := range e.Elements {
			b.WriteString(pad + "  ")
			renderTextInto(b, el, indent+1)
			b.WriteString("\n")
		}
		b.WriteString(pad + "}")
	case pklvalue.ExportMap, pklvalue.ExportObject:
		entries := append([]pklvalue.ExportedEntry(nil), e.Entries...)
		sort.Slice(entries, func(i, j int) bool {
			return fmt.Sprint(toPlain(entries[i].Key)) < fmt.Sprint(toPlain(entries[j].Key))
		})
		b.WriteString("{\n")
		for _, entry := range entries {
			fmt.Fprintf(b, "%s  %v = ", pad, toPlain(entry.Key))
			renderTextInto(b, entry.Value, indent+1)
			b.WriteString("\n")
		}
		b.WriteString(pad + "}")
	}
}

func render(e pklvalue.Exported, format string) (string, error) {
	switch format {
	case "json":
		return renderJSON(e)
	case "yaml":
		return renderYAML(e)
	case "text", "":
		return renderText(e), nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json, yaml)", format)
	}
}
