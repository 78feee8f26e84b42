/*
 * synacorvm - Binary image loader.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package image reads and writes the little-endian 16-bit word stream
// that is the Synacor Challenge binary format.
package image

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/rcornwell/synacorvm/internal/vmerr"
)

// Load reads path as a stream of little-endian 16-bit words. The file
// length must be even; an odd length, a missing file, or any read
// error is fatal.
func Load(path string) ([]uint16, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, vmerr.Wrap(vmerr.Image, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, vmerr.Wrap(vmerr.Image, err)
	}
	if len(raw)%2 != 0 {
		return nil, vmerr.New(vmerr.Image, "image %q has an odd byte count (%d)", path, len(raw))
	}

	words := make([]uint16, len(raw)/2)
	for i := range words {
		words[i] = binary.LittleEndian.Uint16(raw[2*i:])
	}
	return words, nil
}

// Dump writes words back out as little-endian byte pairs, the inverse
// of Load. Round-tripping a loaded image through Load then Dump
// reproduces the original file byte-for-byte.
func Dump(words []uint16, w io.Writer) error {
	raw := make([]byte, 2*len(words))
	for i, word := range words {
		binary.LittleEndian.PutUint16(raw[2*i:], word)
	}
	_, err := w.Write(raw)
	return err
}
