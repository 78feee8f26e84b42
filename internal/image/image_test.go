/*
 * synacorvm - Image loader tests.
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

package image

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadDecodesLittleEndianWords(t *testing.T) {
	path := writeTemp(t, []byte{0x09, 0x00, 0x00, 0x80, 0xff, 0x7f})
	words, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []uint16{9, 32768, 32767}
	if len(words) != len(want) {
		t.Fatalf("len(words) = %d, want %d", len(words), len(want))
	}
	for i, w := range want {
		if words[i] != w {
			t.Errorf("words[%d] = %d, want %d", i, words[i], w)
		}
	}
}

func TestLoadRejectsOddLength(t *testing.T) {
	path := writeTemp(t, []byte{0x01, 0x02, 0x03})
	if _, err := Load(path); err == nil {
		t.Error("expected an error for an odd-length image")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.bin")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestRoundTrip(t *testing.T) {
	original := []byte{0x09, 0x00, 0x00, 0x80, 0xb6, 0x5a, 0xff, 0x7f}
	path := writeTemp(t, original)

	words, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var buf bytes.Buffer
	if err := Dump(words, &buf); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), original) {
		t.Errorf("round trip = % x, want % x", buf.Bytes(), original)
	}
}
