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

// Element 属性解析结果: TextRun 或 CrossReference
type Element interface {
	Span() (start, end int)
	isElement()
}

// TextRun 样式文本区间 [Start, End)
type TextRun struct {
	Start int
	End   int
	Style Style
}

// Span 字符区间
// 返回: int 起点, int 终点
func (r TextRun) Span() (int, int) {
	return r.Start, r.End
}

func (TextRun) isElement() {}

// CrossReference 交叉引用区间 [Start, End) 及其目标
// Global 非空时为全局引用, 否则 Local 为局部主题标识
type CrossReference struct {
	Start  int
	End    int
	Global string
	Local  int
}

// Span 字符区间
// 返回: int 起点, int 终点
func (x CrossReference) Span() (int, int) {
	return x.Start, x.End
}

// IsGlobal 是否全局引用
// 返回: bool 是否全局
func (x CrossReference) IsGlobal() bool {
	return x.Global != ""
}

func (CrossReference) isElement() {}

// Elements 解析属性字节: 先是样式游程, 遇 0xFF 后为交叉引用
// 文本游程总是完整覆盖行文本; 出错时返回已解析部分及首个错误
// 返回: []Element 元素集合, error 错误信息
func (l *Line) Elements() ([]Element, error) {
	runes := []rune(l.text)
	attrs := l.attributes
	var elements []Element
	var firstErr error
	fail := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}
	idx := 1
	cursor := 0
	xref := false
	for idx < len(attrs) {
		style := attrs[idx]
		idx++
		if style == AttrXrefMarker {
			xref = true
			break
		}
		if idx >= len(attrs) {
			fail(corruptf("style run length", idx, 1, 0))
			break
		}
		n := int(attrs[idx])
		idx++
		end := cursor + n
		if end > len(runes) {
			fail(corruptf("style run", cursor, n, len(runes)-cursor))
			end = len(runes)
		}
		if end > cursor {
			elements = append(elements, TextRun{Start: cursor, End: end, Style: Style(style) & (StyleBold | StyleItalic | StyleUnderline)})
		}
		cursor = end
	}
	if cursor < len(runes) {
		elements = append(elements, TextRun{Start: cursor, End: len(runes)})
	}
	for xref && idx < len(attrs) {
		if idx+3 > len(attrs) {
			fail(corruptf("cross reference", idx, 3, len(attrs)-idx))
			break
		}
		first, last := int(attrs[idx]), int(attrs[idx+1])
		ref := CrossReference{Start: first - 1, End: last}
		idx += 2
		if attrs[idx] != 0 {
			n := idx
			for n < len(attrs) && attrs[n] != 0 {
				n++
			}
			if n >= len(attrs) {
				fail(corruptf("unterminated global context id", idx, 0, 0))
				break
			}
			id, err := l.codec.DecodeBytewise(attrs[idx:n])
			if err != nil {
				fail(err)
			}
			ref.Global = id
			idx = n + 1
		} else {
			if idx+3 > len(attrs) {
				fail(corruptf("local context id", idx, 3, len(attrs)-idx))
				break
			}
			ref.Local = int(attrs[idx+1]) | int(attrs[idx+2])<<8
			idx += 3
		}
		if ref.Start < 0 || ref.End > len(runes) || ref.Start >= ref.End {
			fail(corruptf("cross reference span", first, len(runes), last))
			continue
		}
		elements = append(elements, ref)
	}
	return elements, firstErr
}

// Runs 样式文本游程, 按文本顺序覆盖整行
// 返回: []TextRun 游程集合, error 错误信息
func (l *Line) Runs() ([]TextRun, error) {
	elements, err := l.Elements()
	var runs []TextRun
	for _, e := range elements {
		if r, ok := e.(TextRun); ok {
			runs = append(runs, r)
		}
	}
	return runs, err
}

// CrossReferences 交叉引用, 按属性字节中的顺序
// 返回: []CrossReference 引用集合, error 错误信息
func (l *Line) CrossReferences() ([]CrossReference, error) {
	elements, err := l.Elements()
	var refs []CrossReference
	for _, e := range elements {
		if x, ok := e.(CrossReference); ok {
			refs = append(refs, x)
		}
	}
	return refs, err
}
