// Copyright 2026 肖其顿 (XIAO QI DUN)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package advisor

import (
	"errors"
	"testing"

	"golang.org/x/text/encoding/unicode"
)

// TestCodecByName verifies IANA names resolve to decoders.
func TestCodecByName(t *testing.T) {
	codec, err := CodecByName("IBM850")
	if err != nil {
		t.Fatalf("CodecByName failed: %v", err)
	}
	got, err := codec.Decode([]byte{'C', 'a', 'f', 0x82, 0xB3})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != "Café│" {
		t.Errorf("Decode = %q, want %q", got, "Café│")
	}

	if _, err := CodecByName("no-such-charset"); err == nil {
		t.Error("CodecByName should fail for unknown charsets")
	}
}

// TestCodecReplacement verifies undecodable bytes become U+FFFD with a non-fatal error.
func TestCodecReplacement(t *testing.T) {
	codec := NewCodec("UTF-8", unicode.UTF8)

	got, err := codec.Decode([]byte{'A', 0xFF, 'B'})
	if got != "A�B" {
		t.Errorf("Decode = %q, want %q", got, "A�B")
	}
	if !errors.Is(err, ErrCodec) {
		t.Errorf("expected ErrCodec, got %v", err)
	}
	if IsFatal(err) {
		t.Error("codec errors must not be fatal")
	}

	got, err = codec.DecodeBytewise([]byte{'x', 0xC3, 'y'})
	if got != "x�y" {
		t.Errorf("DecodeBytewise = %q, want %q", got, "x�y")
	}
	var cerr *CodecDecodeError
	if !errors.As(err, &cerr) || cerr.Replaced != 1 {
		t.Errorf("expected one replacement, got %v", err)
	}
}

// TestCodecDecodeTrimmed verifies trailing padding is removed.
func TestCodecDecodeTrimmed(t *testing.T) {
	got, err := DefaultCodec().DecodeTrimmed([]byte("HELP.HLP  \x00\x00"))
	if err != nil {
		t.Fatalf("DecodeTrimmed failed: %v", err)
	}
	if got != "HELP.HLP" {
		t.Errorf("DecodeTrimmed = %q, want HELP.HLP", got)
	}
}

// TestIsFatal verifies the error taxonomy classification.
func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"format", &FormatError{Field: "magic number"}, true},
		{"unsupported", &UnsupportedFeatureError{Feature: "flags"}, true},
		{"corrupt", corruptf("topic", 0, 1, 2), true},
		{"io", &IOError{Operation: "open", Err: errors.New("boom")}, true},
		{"missing reference", &MissingReferenceError{ID: "x"}, false},
		{"wrapped missing reference", &LineDiagnostic{Err: &MissingReferenceError{ID: "x"}}, false},
		{"codec", &CodecDecodeError{Codec: "IBM850", Replaced: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
