// Package surge builds the surge.json hosting document for a catalog repository.
//
// The document is a plain struct tree so encoding/json emits keys in declaration
// order; header rules are ordered slices with their own MarshalJSON because paths and
// header names are data, not fields.
package surge

import (
	"bytes"
	"encoding/json"
)

// SchemaURL is written to the "$schema" key of every document.
const SchemaURL = "https://surge.sh/schema.json"

// Document is the complete hosting configuration.
type Document struct {
	Schema      string `json:"$schema"`
	Domain      string `json:"domain"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Repository  string `json:"repository"`
	Author      string `json:"author"`
	License     string `json:"license"`

	CORS   bool   `json:"cors"`
	HTTPS  bool   `json:"https"`
	HTTP2  bool   `json:"http2"`
	Gzip   bool   `json:"gzip"`
	Brotli bool   `json:"brotli"`
	Minify Minify `json:"minify"`

	Environment Environment `json:"environment"`
	Rewrites    []Rewrite   `json:"rewrites"`
	Redirects   []Redirect  `json:"redirects"`
	Headers     Headers     `json:"headers"`

	CleanURLs     bool        `json:"cleanUrls"`
	TrailingSlash bool        `json:"trailing_slash"`
	Custom404     string      `json:"custom_404"`
	Custom500     string      `json:"custom_500"`
	Performance   Performance `json:"performance"`
	SEO           SEO         `json:"seo"`
	Analytics     Analytics   `json:"analytics"`
	Monitoring    Monitoring  `json:"monitoring"`
}

type Minify struct {
	HTML bool `json:"html"`
	CSS  bool `json:"css"`
	JS   bool `json:"js"`
}

type Environment struct {
	NodeEnv        string `json:"NODE_ENV"`
	Platform       string `json:"PLATFORM"`
	DeploymentType string `json:"DEPLOYMENT_TYPE"`
	ProjectType    string `json:"PROJECT_TYPE"`
	Features       string `json:"FEATURES"`
}

// Rewrite serves Destination for requests matching Source when Condition holds.
type Rewrite struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Condition   string `json:"condition"`
}

type Redirect struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Type        int    `json:"type"`
}

type Performance struct {
	Preload  []string `json:"preload"`
	Prefetch []string `json:"prefetch"`
}

type SEO struct {
	Canonical string `json:"canonical"`
	Robots    string `json:"robots"`
	Sitemap   string `json:"sitemap"`
}

type Analytics struct {
	Provider   string `json:"provider"`
	TrackingID string `json:"tracking_id"`
}

type Monitoring struct {
	Uptime      bool `json:"uptime"`
	Performance bool `json:"performance"`
	Security    bool `json:"security"`
}

// Header is a single response header.
type Header struct {
	Name  string
	Value string
}

// HeaderBlock is an ordered set of headers applied to one path pattern.
type HeaderBlock []Header

// Get returns the value of the named header.
func (b HeaderBlock) Get(name string) (string, bool) {
	for _, h := range b {
		if h.Name == name {
			return h.Value, true
		}
	}
	return "", false
}

// MarshalJSON writes the block as an object in insertion order.
func (b HeaderBlock) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, h := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, h.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeString(&buf, h.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// HeaderRule binds a block to a path pattern.
type HeaderRule struct {
	Path  string
	Block HeaderBlock
}

// Headers is the ordered "headers" object.
type Headers []HeaderRule

// Get returns the block for a path pattern.
func (h Headers) Get(path string) (HeaderBlock, bool) {
	for _, r := range h {
		if r.Path == path {
			return r.Block, true
		}
	}
	return nil, false
}

// Paths returns the path patterns in order.
func (h Headers) Paths() []string {
	out := make([]string, len(h))
	for i, r := range h {
		out[i] = r.Path
	}
	return out
}

// MarshalJSON writes the rules as an object keyed by path, in order.
func (h Headers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range h {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, r.Path); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		block, err := r.Block.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(block)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Render serializes doc as 2-space indented JSON with a trailing newline.
func Render(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
