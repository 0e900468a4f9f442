package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Output formats understood by [Document.FormatAs].
const (
	FormatNative = "native"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatHCL    = "hcl"
)

// Formats lists the output formats in the order they are documented.
var Formats = []string{FormatNative, FormatJSON, FormatYAML, FormatHCL}

// Document is the externally visible product of a compilation: the resolved
// variables and the lowered rules.
type Document struct {
	Vars  map[string]string `json:"vars"  yaml:"vars"`
	Rules []LoweredRule     `json:"rules" yaml:"rules"`
}

// Document returns the resolved variables and lowered rules of r.
func (r *Result) Document() Document {
	return Document{
		Vars:  r.Env.Map(),
		Rules: r.Lowered,
	}
}

// FormatAs writes d in the named format.
func (d Document) FormatAs(
	ctx context.Context,
	w io.Writer,
	format string,
	indent int,
) error {
	switch format {
	case FormatNative, "":
		return d.Format(ctx, w)

	case FormatJSON:
		return d.FormatJSON(ctx, w, indent)

	case FormatYAML:
		return d.FormatYAML(ctx, w, indent)

	case FormatHCL:
		return d.FormatHCL(ctx, w)

	default:
		return ErrInvalidFormat.With(slog.String("format", format))
	}
}

// Format writes d in make syntax: one "NAME = value" line per variable in
// sorted order, then each rule separated by a blank line.
func (d Document) Format(_ context.Context, w io.Writer) error {
	for _, name := range sortedKeys(d.Vars) {
		if _, err := fmt.Fprintf(w, "%s = %s\n", name, d.Vars[name]); err != nil {
			return err
		}
	}

	for i, rule := range d.Rules {
		if i > 0 || len(d.Vars) > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w, rule.String()); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes d as JSON.
func (d Document) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(d, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(d)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes d as YAML. An indent of zero selects flow style.
func (d Document) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, d, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// FormatHCL writes d as HCL: a vars attribute holding the variable map,
// followed by one rule block per rule labeled with its targets.
func (d Document) FormatHCL(_ context.Context, w io.Writer) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	vars := make(map[string]cty.Value, len(d.Vars))
	for name, value := range d.Vars {
		vars[name] = cty.StringVal(value)
	}

	if len(vars) > 0 {
		body.SetAttributeValue("vars", cty.MapVal(vars))
	} else {
		body.SetAttributeValue("vars", cty.MapValEmpty(cty.String))
	}

	for _, rule := range d.Rules {
		body.AppendNewline()

		block := body.AppendNewBlock("rule", rule.Targets)
		block.Body().SetAttributeValue("prereqs", stringList(rule.Prereqs))
		block.Body().SetAttributeValue("recipe", stringList(rule.Recipe))
		block.Body().SetAttributeValue("line", cty.NumberIntVal(int64(rule.Line)))
	}

	_, err := f.WriteTo(w)

	return err
}

func stringList(list []string) cty.Value {
	if len(list) == 0 {
		return cty.ListValEmpty(cty.String)
	}

	vals := make([]cty.Value, len(list))
	for i, s := range list {
		vals[i] = cty.StringVal(s)
	}

	return cty.ListVal(vals)
}

// PrintTokens writes tokens one source line at a time, each line prefixed
// with its number. Line ends are implied by the grouping and not printed.
func PrintTokens(w io.Writer, tokens []Token) error {
	line := 0

	for _, tok := range tokens {
		if tok.Kind == KindLineEnd {
			continue
		}

		var err error

		switch {
		case tok.Line != line && line == 0:
			_, err = fmt.Fprintf(w, "%4d: %s", tok.Line, tok)

		case tok.Line != line:
			_, err = fmt.Fprintf(w, "\n%4d: %s", tok.Line, tok)

		default:
			_, err = fmt.Fprintf(w, " %s", tok)
		}

		if err != nil {
			return err
		}

		line = tok.Line
	}

	if line == 0 {
		return nil
	}

	_, err := fmt.Fprintln(w)

	return err
}

// PrintAST writes the variable definitions and then the rules as parsed,
// each prefixed with the line it begins on.
func PrintAST(w io.Writer, defs []VarDef, rules []Rule) error {
	for _, def := range defs {
		if _, err := fmt.Fprintf(w, "%4d: %s\n", def.Line, def); err != nil {
			return err
		}
	}

	for _, rule := range rules {
		if _, err := fmt.Fprintf(w, "%4d: %s\n", rule.Line, rule); err != nil {
			return err
		}
	}

	return nil
}

// SourceLine returns the text of the 1-based physical line of src, without
// its terminator.
func SourceLine(src string, line int) (string, bool) {
	if line < 1 {
		return "", false
	}

	for n := 1; ; n++ {
		text, rest, found := strings.Cut(src, "\n")
		if n == line {
			return strings.TrimSuffix(text, "\r"), true
		}

		if !found {
			return "", false
		}

		src = rest
	}
}
