// Package snapshot encodes container contents to and from a small
// versioned JSON document, for seeding containers from stored state and
// exporting their current items.
//
// The document shape is:
//
//	{"version": 1, "count": 3, "items": [...]}
//
// Encoding builds the document incrementally with sjson; decoding reads it
// tolerantly with gjson, so extra fields added by newer writers are
// ignored. How documents are stored or transported is the caller's
// concern.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Version is the document schema version written by Marshal.
const Version = 1

// Common snapshot errors.
var (
	// ErrMalformed is returned when a document is not valid JSON or is
	// missing the items array.
	ErrMalformed = errors.New("malformed snapshot document")

	// ErrVersion is returned when a document's version is newer than
	// this package understands.
	ErrVersion = errors.New("unsupported snapshot version")
)

// Marshal encodes items into a snapshot document.
func Marshal[T any](items []T) ([]byte, error) {
	doc := []byte(`{}`)
	doc, err := sjson.SetBytes(doc, "version", Version)
	if err != nil {
		return nil, fmt.Errorf("snapshot: set version: %w", err)
	}
	doc, err = sjson.SetBytes(doc, "count", len(items))
	if err != nil {
		return nil, fmt.Errorf("snapshot: set count: %w", err)
	}
	doc, err = sjson.SetRawBytes(doc, "items", []byte(`[]`))
	if err != nil {
		return nil, fmt.Errorf("snapshot: set items: %w", err)
	}
	for i, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("snapshot: encode item %d: %w", i, err)
		}
		doc, err = sjson.SetRawBytes(doc, "items.-1", raw)
		if err != nil {
			return nil, fmt.Errorf("snapshot: append item %d: %w", i, err)
		}
	}
	return doc, nil
}

// Unmarshal decodes a snapshot document back into items.
func Unmarshal[T any](doc []byte) ([]T, error) {
	if !gjson.ValidBytes(doc) {
		return nil, ErrMalformed
	}
	if v := gjson.GetBytes(doc, "version"); v.Exists() && v.Int() > Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, v.Int())
	}
	arr := gjson.GetBytes(doc, "items")
	if !arr.IsArray() {
		return nil, ErrMalformed
	}

	elems := arr.Array()
	items := make([]T, 0, len(elems))
	for i, elem := range elems {
		var item T
		if err := json.Unmarshal([]byte(elem.Raw), &item); err != nil {
			return nil, fmt.Errorf("snapshot: decode item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Seeder is the container surface Restore needs: a block transaction
// wrapping a bulk append, so restoring is one undo unit.
type Seeder[T any] interface {
	Block(fn func() error) error
	Clear() error
	AddRange(items []T) error
}

// Restore replaces a container's contents from a snapshot document inside
// a single block transaction: one Undo reverts the whole restore.
func Restore[T any](dst Seeder[T], doc []byte) error {
	items, err := Unmarshal[T](doc)
	if err != nil {
		return err
	}
	return dst.Block(func() error {
		if err := dst.Clear(); err != nil {
			return err
		}
		return dst.AddRange(items)
	})
}
