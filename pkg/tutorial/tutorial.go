package tutorial

import (
	"bytes"
	"embed"
	"io/fs"
	"sort"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pkg/errors"
)

//go:embed samples/*
var samples embed.FS

// Steps returns the unrendered guide steps in display order.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

func SampleNames() []string {
	entries, _ := fs.ReadDir(samples, "samples")

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// Sample renders the code sample called name against data.
func Sample(name string, data Data) (string, error) {
	contents, err := samples.ReadFile("samples/" + name)
	if err != nil {
		return "", errors.Wrapf(err, "unknown code sample %q", name)
	}

	return execute(name, string(contents), data)
}

// Render returns every step in array order with all text templates executed
// and code samples inlined.
func Render(data Data) ([]Step, error) {
	rendered := make([]Step, 0, len(steps))

	for i, step := range steps {
		r, err := renderStep(step, data)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to render step %d (%s)", i+1, step.Title)
		}
		rendered = append(rendered, r)
	}

	return rendered, nil
}

func renderStep(step Step, data Data) (Step, error) {
	out := Step{Title: step.Title, Icon: step.Icon, Blocks: make([]Block, 0, len(step.Blocks))}

	var err error
	for _, b := range step.Blocks {
		if b.Title, err = execute("title", b.Title, data); err != nil {
			return out, err
		}
		if b.Text, err = execute("text", b.Text, data); err != nil {
			return out, err
		}

		items := make([]string, len(b.Items))
		for i := range b.Items {
			if items[i], err = execute("item", b.Items[i], data); err != nil {
				return out, err
			}
		}
		b.Items = items

		if b.Kind == BlockCode {
			if b.Sample != "" {
				b.Code, err = Sample(b.Sample, data)
			} else {
				b.Code, err = execute("code", b.Code, data)
			}
			if err != nil {
				return out, err
			}
		}

		out.Blocks = append(out.Blocks, b)
	}

	return out, nil
}

func execute(name, text string, data Data) (string, error) {
	if text == "" {
		return "", nil
	}

	tpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse template %s", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, &data); err != nil {
		return "", errors.Wrapf(err, "failed to execute template %s", name)
	}

	return buf.String(), nil
}
