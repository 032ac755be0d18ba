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

// Line 主题中的一行: 解码文本与原始属性字节
type Line struct {
	text       string
	attributes []byte
	codec      *Codec
}

// NewLine 创建行对象
// 入参: text 文本, attributes 属性字节, codec 字符集
// 返回: *Line 行对象
func NewLine(text string, attributes []byte, codec *Codec) *Line {
	if codec == nil {
		codec = DefaultCodec()
	}
	return &Line{text: text, attributes: attributes, codec: codec}
}

// Text 行文本
// 返回: string 文本
func (l *Line) Text() string {
	return l.text
}

// Attributes 原始属性字节副本
// 返回: []byte 属性字节
func (l *Line) Attributes() []byte {
	out := make([]byte, len(l.attributes))
	copy(out, l.attributes)
	return out
}

// LineAttribute 行级属性值 (首个属性字节, 不作解释)
// 返回: byte 属性值, bool 是否存在
func (l *Line) LineAttribute() (byte, bool) {
	if len(l.attributes) == 0 {
		return 0, false
	}
	return l.attributes[0], true
}

// SegmentTopic 将解压后的主题数据切分为行
// 每行格式: 文本长度+1, 文本, 属性长度+1, 属性字节
// 入参: data 解压数据, codec 字符集
// 返回: []*Line 行集合, []error 非致命解码错误, error 错误信息
func SegmentTopic(data []byte, codec *Codec) ([]*Line, []error, error) {
	if codec == nil {
		codec = DefaultCodec()
	}
	var lines []*Line
	var diags []error
	idx := 0
	readSpan := func(what string) ([]byte, error) {
		if idx >= len(data) {
			return nil, corruptf(what+" length", idx, 1, 0)
		}
		n := int(data[idx]) - 1
		if n < 0 {
			return nil, corruptf(what+" length", idx, 1, 0)
		}
		idx++
		if idx+n > len(data) {
			return nil, corruptf(what, idx, n, len(data)-idx)
		}
		span := data[idx : idx+n]
		idx += n
		return span, nil
	}
	for idx < len(data) {
		raw, err := readSpan("line text")
		if err != nil {
			return nil, nil, err
		}
		attrs, err := readSpan("line attributes")
		if err != nil {
			return nil, nil, err
		}
		text, derr := codec.Decode(raw)
		if derr != nil {
			diags = append(diags, &LineDiagnostic{Topic: -1, Line: len(lines), Err: derr})
		}
		owned := make([]byte, len(attrs))
		copy(owned, attrs)
		lines = append(lines, NewLine(text, owned, codec))
	}
	return lines, diags, nil
}
