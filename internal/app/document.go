package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/textdoc"
)

// DocumentSpec describes a document in YAML:
//
//	width: 320
//	elements:
//	  - kind: text
//	    text: Call +1 555 123 4567 today
//	  - kind: input
//	    type: password
//	    text: hunter2
//	  - kind: frame
//	    height: 64
//	    elements:
//	      - kind: text
//	        dir: rtl
//	        text: שלום עולם
type DocumentSpec struct {
	Width    float64       `yaml:"width"`
	Height   float64       `yaml:"height"`
	Elements []ElementSpec `yaml:"elements"`
}

// ElementSpec describes one element. Kind is one of text, pre, input,
// textarea, button, image and frame.
type ElementSpec struct {
	Kind string `yaml:"kind"`
	Text string `yaml:"text"`
	// Type is the input type attribute.
	Type string `yaml:"type"`
	// Height sizes images and frames.
	Height float64 `yaml:"height"`
	// Dir is ltr, rtl or auto.
	Dir      string        `yaml:"dir"`
	Disabled bool          `yaml:"disabled"`
	NoSelect bool          `yaml:"noselect"`
	Elements []ElementSpec `yaml:"elements"`
}

// LoadDocument reads a YAML document description.
func LoadDocument(r io.Reader) (*textdoc.Document, error) {
	var spec DocumentSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrMarkup, err)
	}
	return BuildDocument(spec)
}

// LoadDocumentFile reads a YAML document description from path.
func LoadDocumentFile(path string) (*textdoc.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := LoadDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// BuildDocument creates the document spec describes.
func BuildDocument(spec DocumentSpec) (*textdoc.Document, error) {
	doc := textdoc.New(textdoc.WithSize(spec.Width, spec.Height))
	if err := addElements(doc, spec.Elements, "elements"); err != nil {
		return nil, err
	}
	return doc, nil
}

func addElements(doc *textdoc.Document, specs []ElementSpec, path string) error {
	for i, s := range specs {
		where := fmt.Sprintf("%s[%d]", path, i)
		var el *textdoc.Element
		switch s.Kind {
		case "text", "":
			el = doc.AddText(s.Text)
		case "pre":
			el = doc.AddPre(s.Text)
		case "input":
			typ := s.Type
			if typ == "" {
				typ = "text"
			}
			el = doc.AddInput(typ, s.Text)
		case "textarea":
			el = doc.AddTextArea(s.Text)
		case "button":
			el = doc.AddButton(s.Text)
		case "image":
			el = doc.AddImage(heightOr(s.Height, textdoc.DefaultCellHeight*4))
		case "frame":
			var child *textdoc.Document
			el, child = doc.AddFrame(heightOr(s.Height, textdoc.DefaultCellHeight*4))
			if err := addElements(child, s.Elements, where+".elements"); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %s: unknown kind %q", ErrMarkup, where, s.Kind)
		}
		if len(s.Elements) > 0 && s.Kind != "frame" {
			return fmt.Errorf("%w: %s: only frames have elements", ErrMarkup, where)
		}

		switch s.Dir {
		case "", "ltr":
		case "rtl":
			el.SetDirection(dom.RTL)
		case "auto":
			el.SetAutoDirection()
		default:
			return fmt.Errorf("%w: %s: unknown dir %q", ErrMarkup, where, s.Dir)
		}
		el.SetDisabled(s.Disabled)
		el.SetUserSelectNone(s.NoSelect)
	}
	return nil
}

func heightOr(h, def float64) float64 {
	if h > 0 {
		return h
	}
	return def
}

// DemoDocument returns the document shown when none is given.
func DemoDocument() *textdoc.Document {
	doc, _ := BuildDocument(DocumentSpec{Elements: []ElementSpec{
		{Kind: "text", Text: "Long press a word to select it, then drag the handles."},
		{Kind: "text", Text: "Call +1 (555) 123-4567 for the phone action."},
		{Kind: "pre", Text: "select all here\nselects this block"},
		{Kind: "input", Type: "text", Text: "an editable field"},
		{Kind: "input", Type: "password", Text: "secret"},
		{Kind: "textarea", Text: "a multi-line\ntext area"},
		{Kind: "text", Dir: "rtl", Text: "right to left paragraph"},
		{Kind: "frame", Height: 48, Elements: []ElementSpec{
			{Kind: "text", Text: "text inside a nested frame"},
		}},
		{Kind: "button", Text: "not selectable"},
	}})
	return doc
}
