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
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// Codec 文本字符集解码器
type Codec struct {
	name string
	enc  encoding.Encoding
}

// NewCodec 创建字符集解码器
// 入参: name 名称, enc 字符集
// 返回: *Codec 解码器
func NewCodec(name string, enc encoding.Encoding) *Codec {
	if enc == nil {
		enc = encoding.Nop
	}
	return &Codec{name: name, enc: enc}
}

// DefaultCodec 默认字符集 (IBM 代码页 850)
// 返回: *Codec 解码器
func DefaultCodec() *Codec {
	return NewCodec("IBM850", charmap.CodePage850)
}

// CodecByName 按 IANA 名称查找字符集
// 入参: name 字符集名称
// 返回: *Codec 解码器, error 错误信息
func CodecByName(name string) (*Codec, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("advisor: unknown charset %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("advisor: charset %q has no decoder", name)
	}
	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		canonical = name
	}
	return NewCodec(canonical, enc), nil
}

// Name 字符集名称
// 返回: string 名称
func (c *Codec) Name() string {
	return c.name
}

// Decode 整段解码, 无法解码的字节以替换字符代替
// 入参: b 原始字节
// 返回: string 文本, error 非致命解码错误
func (c *Codec) Decode(b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	out, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		s, _ := c.DecodeBytewise(b)
		return s, &CodecDecodeError{Codec: c.name, Err: err}
	}
	if n := countReplacements(out); n > 0 {
		return string(out), &CodecDecodeError{Codec: c.name, Replaced: n}
	}
	return string(out), nil
}

// DecodeBytewise 逐字节解码, 无法解码的字节以替换字符代替
// 入参: b 原始字节
// 返回: string 文本, error 非致命解码错误
func (c *Codec) DecodeBytewise(b []byte) (string, error) {
	var sb strings.Builder
	dec := c.enc.NewDecoder()
	replaced := 0
	for i := range b {
		out, err := dec.Bytes(b[i : i+1])
		if err != nil || len(out) == 0 {
			sb.WriteRune(utf8.RuneError)
			replaced++
			dec.Reset()
			continue
		}
		replaced += countReplacements(out)
		sb.Write(out)
	}
	if replaced > 0 {
		return sb.String(), &CodecDecodeError{Codec: c.name, Replaced: replaced}
	}
	return sb.String(), nil
}

// DecodeTrimmed 解码并去除尾部填充与空白
// 入参: b 原始字节
// 返回: string 文本, error 非致命解码错误
func (c *Codec) DecodeTrimmed(b []byte) (string, error) {
	s, err := c.Decode(b)
	return strings.TrimRightFunc(s, func(r rune) bool {
		return r <= ' ' || unicode.IsSpace(r)
	}), err
}

// countReplacements 统计替换字符数量
// 入参: b UTF-8 字节
// 返回: int 数量
func countReplacements(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError {
			n++
		}
		b = b[size:]
	}
	return n
}
