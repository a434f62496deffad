// Package present renders collated folder content as plain text or JSON.
// The engine only produces typed records; everything about how they look
// lives here.
package present

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fseq/fseq/internal/sequence"
)

// TypeString names an ItemType the way the JSON output spells it.
func TypeString(t sequence.ItemType) string {
	switch t {
	case sequence.Single:
		return "single"
	case sequence.Indiced:
		return "indiced"
	case sequence.Packed:
		return "packed"
	default:
		return "invalid"
	}
}

// Text writes the human-readable listing: the folder name, its
// directories, a blank separator, then its files. Packed items print as
// `pattern [start:end] #padding`, with `/step` inserted when the step is
// not 1; Indiced items print their index count and padding.
func Text(w io.Writer, fc sequence.FolderContent) error {
	if _, err := fmt.Fprintf(w, "* %s\n", fc.Name); err != nil {
		return err
	}
	for _, item := range fc.Directories {
		if err := textItem(w, item); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, item := range fc.Files {
		if err := textItem(w, item); err != nil {
			return err
		}
	}
	return nil
}

func textItem(w io.Writer, item sequence.Item) error {
	var err error
	switch item.Type {
	case sequence.Single:
		_, err = fmt.Fprintf(w, "%s\n", item.Filename)
	case sequence.Indiced:
		_, err = fmt.Fprintf(w, "%s (%d) %d\n", item.Pattern, len(item.Indices), item.Padding)
	case sequence.Packed:
		if item.Step == 1 {
			_, err = fmt.Fprintf(w, "%s [%d:%d] #%d\n", item.Pattern, item.Start, item.End, item.Padding)
		} else {
			_, err = fmt.Fprintf(w, "%s [%d:%d]/%d #%d\n", item.Pattern, item.Start, item.End, item.Step, item.Padding)
		}
	default:
		_, err = fmt.Fprintln(w, "Invalid")
	}
	return err
}

// ItemJSON is the canonical machine-readable form of one Item. Fields not
// meaningful for the item's type are omitted, except padding, which is kept
// for Indiced and Packed items even at its variable-width zero sentinel.
type ItemJSON struct {
	Type     string           `json:"type"`
	Filename string           `json:"filename,omitempty"`
	Pattern  string           `json:"pattern,omitempty"`
	Padding  *int             `json:"padding,omitempty"`
	Indices  []sequence.Index `json:"indices,omitempty"`
	Start    *sequence.Index  `json:"start,omitempty"`
	End      *sequence.Index  `json:"end,omitempty"`
	Step     *int             `json:"step,omitempty"`
}

// FolderJSON is the canonical machine-readable form of a FolderContent.
type FolderJSON struct {
	Path        string     `json:"path"`
	Directories []ItemJSON `json:"directories"`
	Files       []ItemJSON `json:"files"`
}

// ToItemJSON converts one engine item to its JSON form.
func ToItemJSON(item sequence.Item) ItemJSON {
	out := ItemJSON{Type: TypeString(item.Type)}
	switch item.Type {
	case sequence.Single:
		out.Filename = item.Filename
	case sequence.Indiced:
		out.Pattern = item.Pattern
		padding := item.Padding
		out.Padding = &padding
		out.Indices = item.Indices
	case sequence.Packed:
		out.Pattern = item.Pattern
		padding := item.Padding
		out.Padding = &padding
		start, end, step := item.Start, item.End, int(item.Step)
		out.Start = &start
		out.End = &end
		out.Step = &step
	}
	return out
}

// ToFolderJSON converts a FolderContent to its JSON form. The slices are
// always non-nil so empty listings render as [] rather than null.
func ToFolderJSON(fc sequence.FolderContent) FolderJSON {
	out := FolderJSON{
		Path:        fc.Name,
		Directories: make([]ItemJSON, 0, len(fc.Directories)),
		Files:       make([]ItemJSON, 0, len(fc.Files)),
	}
	for _, item := range fc.Directories {
		out.Directories = append(out.Directories, ToItemJSON(item))
	}
	for _, item := range fc.Files {
		out.Files = append(out.Files, ToItemJSON(item))
	}
	return out
}

// JSON writes the folder content as one indented JSON document.
func JSON(w io.Writer, fc sequence.FolderContent) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToFolderJSON(fc))
}
