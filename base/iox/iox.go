// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package iox provides boilerplate wrapper functions for reading and
// writing any type of file with any codec, using generic [Decoder]
// and [Encoder] interfaces.
package iox

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
)

// Decoder is an interface for standard decoder types.
type Decoder interface {
	// Decode decodes from its reader into the given object.
	Decode(v any) error
}

// DecoderFunc is a function that creates a new [Decoder] for the given reader.
type DecoderFunc func(r io.Reader) Decoder

// Open reads the given object from the given filename, using the given [DecoderFunc].
func Open(v any, filename string, f DecoderFunc) error {
	fp, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return Read(v, bufio.NewReader(fp), f)
}

// OpenFiles reads the given object from the given filenames, in order,
// using the given [DecoderFunc], with later files overriding earlier ones.
func OpenFiles(v any, filenames []string, f DecoderFunc) error {
	var errs []error
	for _, file := range filenames {
		err := Open(v, file, f)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenFS reads the given object from the given filename, using the given
// [DecoderFunc], in the given filesystem (e.g., for embedded files).
func OpenFS(v any, fsys fs.FS, filename string, f DecoderFunc) error {
	fp, err := fsys.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return Read(v, bufio.NewReader(fp), f)
}

// Read reads the given object from the given reader, using the given [DecoderFunc].
func Read(v any, reader io.Reader, f DecoderFunc) error {
	d := f(reader)
	return d.Decode(v)
}

// ReadBytes reads the given object from the given bytes, using the given [DecoderFunc].
func ReadBytes(v any, data []byte, f DecoderFunc) error {
	b := bytes.NewBuffer(data)
	return Read(v, b, f)
}

// Encoder is an interface for standard encoder types.
type Encoder interface {
	// Encode encodes the given object to its writer.
	Encode(v any) error
}

// EncoderFunc is a function that creates a new [Encoder] for the given writer.
type EncoderFunc func(w io.Writer) Encoder

// Save writes the given object to the given filename, using the given [EncoderFunc].
func Save(v any, filename string, f EncoderFunc) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	bw := bufio.NewWriter(fp)
	err = Write(v, bw, f)
	if err != nil {
		return err
	}
	return bw.Flush()
}

// Write writes the given object to the given writer, using the given [EncoderFunc].
func Write(v any, writer io.Writer, f EncoderFunc) error {
	e := f(writer)
	return e.Encode(v)
}

// WriteBytes writes the given object to bytes, using the given [EncoderFunc].
func WriteBytes(v any, f EncoderFunc) ([]byte, error) {
	var b bytes.Buffer
	err := Write(v, &b, f)
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
