package workflow

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// Render serializes w as YAML. Keys keep IR order and multi-line scripts are emitted
// as literal blocks.
func Render(w Workflow) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{workflowNode(w)}}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func workflowNode(w Workflow) *yaml.Node {
	root := mapping()
	put(root, "name", str(w.Name))

	on := mapping()
	for _, t := range w.Triggers {
		branches := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, b := range t.Branches {
			branches.Content = append(branches.Content, str(b))
		}
		ev := mapping()
		put(ev, "branches", branches)
		put(on, t.Event, ev)
	}
	put(root, "on", on)

	if len(w.Env) > 0 {
		put(root, "env", varsNode(w.Env, true))
	}

	jobs := mapping()
	for _, j := range w.Jobs {
		put(jobs, j.ID, jobNode(j))
	}
	put(root, "jobs", jobs)
	return root
}

func jobNode(j Job) *yaml.Node {
	n := mapping()
	put(n, "runs-on", str(j.RunsOn))
	if j.Needs != "" {
		put(n, "needs", str(j.Needs))
	}
	if j.If != "" {
		put(n, "if", str(j.If))
	}
	steps := &yaml.Node{Kind: yaml.SequenceNode}
	for _, s := range j.Steps {
		steps.Content = append(steps.Content, stepNode(s))
	}
	put(n, "steps", steps)
	return n
}

func stepNode(s Step) *yaml.Node {
	n := mapping()
	put(n, "name", str(s.Name))
	if s.Uses != "" {
		put(n, "uses", str(s.Uses))
	}
	if len(s.With) > 0 {
		put(n, "with", varsNode(s.With, false))
	}
	if s.Run != "" {
		put(n, "run", str(s.Run))
	}
	if len(s.Env) > 0 {
		put(n, "env", varsNode(s.Env, false))
	}
	if s.ContinueOnError {
		put(n, "continue-on-error", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"})
	}
	return n
}

// varsNode renders an ordered map. Top-level env values are single-quoted so version
// numbers stay strings for every YAML reader.
func varsNode(vars []Var, quote bool) *yaml.Node {
	n := mapping()
	for _, v := range vars {
		val := str(v.Value)
		if quote && !strings.Contains(v.Value, "\n") {
			val.Style = yaml.SingleQuotedStyle
		}
		put(n, v.Key, val)
	}
	return n
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

func str(v string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
	if strings.Contains(v, "\n") {
		n.Style = yaml.LiteralStyle
	}
	return n
}

func put(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, str(key), value)
}
