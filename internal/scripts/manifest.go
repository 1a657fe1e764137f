package scripts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	derrors "github.com/tiation/deploygen/internal/errors"
)

// ManifestName is the file the script table is merged into.
const ManifestName = "package.json"

type member struct {
	key   string
	value json.RawMessage
}

// MergeManifest writes t into the "scripts" object of an existing package.json.
//
// Top-level and script key order is preserved. Scripts named in t overwrite the
// existing value in place; scripts only present in the manifest are kept; new names
// are appended in table order. A manifest without "scripts" gets one appended.
// Repeated keys are collapsed the way JSON.parse reads them.
func MergeManifest(existing []byte, t Table) ([]byte, error) {
	top, err := readObject(existing)
	if err != nil {
		return nil, derrors.ManifestInvalid(ManifestName, err)
	}

	top = collapse(top)

	idx := -1
	for i, m := range top {
		if m.key == "scripts" {
			idx = i
			break
		}
	}

	// "scripts": null is merged like a missing object, keeping its position.
	var scripts []member
	if idx >= 0 && !bytes.Equal(bytes.TrimSpace(top[idx].value), []byte("null")) {
		scripts, err = readObject(top[idx].value)
		if err != nil {
			return nil, derrors.ManifestInvalid(ManifestName, fmt.Errorf("scripts: %w", err))
		}
		scripts = collapse(scripts)
	}

	for _, e := range t {
		raw, err := encodeString(e.Command)
		if err != nil {
			return nil, derrors.InternalError("failed to encode script command", err)
		}
		replaced := false
		for i := range scripts {
			if scripts[i].key == e.Name {
				scripts[i].value = raw
				replaced = true
			}
		}
		if !replaced {
			scripts = append(scripts, member{key: e.Name, value: raw})
		}
	}

	merged, err := writeObject(scripts)
	if err != nil {
		return nil, derrors.InternalError("failed to encode scripts", err)
	}
	if idx >= 0 {
		top[idx].value = merged
	} else {
		top = append(top, member{key: "scripts", value: merged})
	}

	compact, err := writeObject(top)
	if err != nil {
		return nil, derrors.InternalError("failed to encode manifest", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, derrors.InternalError("failed to indent manifest", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// collapse keeps one member per repeated key, at its first position with its last
// value. This is how JSON.parse and npm read a manifest with duplicate keys.
func collapse(members []member) []member {
	pos := make(map[string]int, len(members))
	out := make([]member, 0, len(members))
	for _, m := range members {
		if i, ok := pos[m.key]; ok {
			out[i].value = m.value
			continue
		}
		pos[m.key] = len(out)
		out = append(out, m)
	}
	return out
}

// readObject decodes a JSON object into its members without reordering them.
func readObject(data []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("not valid JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("not a JSON object")
	}

	var members []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("member %q: %w", key, err)
		}
		members = append(members, member{key: key, value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level object")
	}
	return members, nil
}

func writeObject(members []member) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := encodeString(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(m.value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeString(s string) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Render emits the table alone as a "scripts" object, used by `deploygen show`.
func Render(t Table) ([]byte, error) {
	return MergeManifest([]byte(`{}`), t)
}
