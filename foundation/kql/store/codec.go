// File: codec.go
// Title: KEPLER-SAVE Codec
// Description: Binary encoding of the store. Numbers and sizes use the
//              host byte order; sizes are written as 64-bit unsigned
//              integers. Keys are written in sorted order so identical
//              stores produce identical files.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-05
// Modified: 2026-10-05
//
// Change History:
// - 2026-10-05 v0.1.0: Initial implementation

package store

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/msto63/keplerkv/foundation/kql/ast"
)

const (
	// FileHeader opens every save file
	FileHeader = "KEPLERKV-SAVE|"

	// FileExtension is appended to save file names that lack it
	FileExtension = ".kep"

	// DefaultSaveFile is the save file name used when none is given
	DefaultSaveFile = "default_kep_save"

	keyDelimiter = '|'

	tagInt       = 'i'
	tagFloat     = 'f'
	tagString    = 's'
	tagList      = 'l'
	subTagString = 's'
	subTagIdent  = 'i'

	maxChunkSize = 1 << 30
	maxListDepth = 512
	maxPrealloc  = 1024
)

var byteOrder = binary.NativeEndian

// Entry is one decoded key-value pair
type Entry struct {
	Key   string
	Value ast.Value
}

// WriteTo writes the store in KEPLER-SAVE format
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	enc := &encoder{w: bufio.NewWriter(cw)}

	enc.raw([]byte(FileHeader))
	for _, key := range s.Keys() {
		enc.size(len(key))
		enc.raw([]byte(key))
		enc.byte(keyDelimiter)
		enc.value(*s.data[key])
	}
	if enc.err == nil {
		enc.err = enc.w.Flush()
	}
	return cw.n, enc.err
}

type encoder struct {
	w   *bufio.Writer
	err error
}

func (e *encoder) raw(b []byte) {
	if e.err == nil {
		_, e.err = e.w.Write(b)
	}
}

func (e *encoder) byte(b byte) {
	if e.err == nil {
		e.err = e.w.WriteByte(b)
	}
}

func (e *encoder) fixed(v interface{}) {
	if e.err == nil {
		e.err = binary.Write(e.w, byteOrder, v)
	}
}

func (e *encoder) size(n int) {
	e.fixed(uint64(n))
}

func (e *encoder) value(v ast.Value) {
	switch v.Kind {
	case ast.KindInt:
		e.byte(tagInt)
		e.fixed(v.Int)
	case ast.KindFloat:
		e.byte(tagFloat)
		e.fixed(v.Float)
	case ast.KindString, ast.KindIdentifier:
		e.byte(tagString)
		if v.Kind == ast.KindIdentifier {
			e.byte(subTagIdent)
		} else {
			e.byte(subTagString)
		}
		e.size(len(v.Str))
		e.raw([]byte(v.Str))
	case ast.KindList:
		items := v.Items()
		e.byte(tagList)
		e.size(len(items))
		for _, item := range items {
			e.value(item)
		}
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Decode reads a complete KEPLER-SAVE stream. Nothing is returned unless
// the whole stream is valid.
func Decode(r io.Reader) ([]Entry, error) {
	d := &decoder{r: bufio.NewReader(r)}

	header := make([]byte, len(FileHeader))
	if _, err := io.ReadFull(d.r, header); err != nil {
		return nil, errNotValidSave("missing header")
	}
	if string(header) != FileHeader {
		return nil, errNotValidSave("header mismatch")
	}

	var entries []Entry
	for {
		var keySize uint64
		err := binary.Read(d.r, byteOrder, &keySize)
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, errNotValidSave("truncated key size")
		}

		key, err := d.bytes(keySize)
		if err != nil {
			return nil, err
		}
		delim, err := d.r.ReadByte()
		if err != nil || delim != keyDelimiter {
			return nil, errNotValidSave("missing key delimiter")
		}

		value, err := d.value(0)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: string(key), Value: value})
	}
}

type decoder struct {
	r *bufio.Reader
}

func (d *decoder) bytes(n uint64) ([]byte, error) {
	if n > maxChunkSize {
		return nil, errNotValidSave("size out of range")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, errNotValidSave("truncated data")
	}
	return buf, nil
}

func (d *decoder) fixed(v interface{}) error {
	if err := binary.Read(d.r, byteOrder, v); err != nil {
		return errNotValidSave("truncated value")
	}
	return nil
}

func (d *decoder) value(depth int) (ast.Value, error) {
	tag, err := d.r.ReadByte()
	if err != nil {
		return ast.Value{}, errNotValidSave("truncated value")
	}

	switch tag {
	case tagInt:
		var i int32
		if err := d.fixed(&i); err != nil {
			return ast.Value{}, err
		}
		return ast.Int(i), nil

	case tagFloat:
		var f float32
		if err := d.fixed(&f); err != nil {
			return ast.Value{}, err
		}
		return ast.Float(f), nil

	case tagString:
		sub, err := d.r.ReadByte()
		if err != nil {
			return ast.Value{}, errNotValidSave("truncated value")
		}
		if sub != subTagString && sub != subTagIdent {
			return ast.Value{}, errUnknownSaveItem(sub)
		}
		var n uint64
		if err := d.fixed(&n); err != nil {
			return ast.Value{}, err
		}
		raw, err := d.bytes(n)
		if err != nil {
			return ast.Value{}, err
		}
		if sub == subTagIdent {
			return ast.Identifier(string(raw)), nil
		}
		return ast.String(string(raw)), nil

	case tagList:
		if depth >= maxListDepth {
			return ast.Value{}, errNotValidSave("lists nested too deeply")
		}
		var count uint64
		if err := d.fixed(&count); err != nil {
			return ast.Value{}, err
		}
		items := make([]ast.Value, 0, min(count, maxPrealloc))
		for i := uint64(0); i < count; i++ {
			item, err := d.value(depth + 1)
			if err != nil {
				return ast.Value{}, err
			}
			items = append(items, item)
		}
		return ast.NewList(items...), nil

	default:
		return ast.Value{}, errUnknownSaveItem(tag)
	}
}
