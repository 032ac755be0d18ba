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
	"html"
	"net/url"
	"slices"
	"strconv"
)

// ResolveReference 解析交叉引用目标
// 全局引用查不到时返回仅含片段的链接与非致命错误
// 入参: x 交叉引用
// 返回: string 链接, *Topic 目标主题 (可为 nil), error 非致命错误
func (d *Document) ResolveReference(x CrossReference) (string, *Topic, error) {
	if x.IsGlobal() {
		if topic, ok := d.LookupGlobal(x.Global); ok {
			return (&url.URL{Path: topic.FileName(), Fragment: x.Global}).String(), topic, nil
		}
		return (&url.URL{Fragment: x.Global}).String(), nil, &MissingReferenceError{ID: x.Global}
	}
	if topic, ok := d.Topic(x.Local); ok {
		return (&url.URL{Path: topic.FileName(), Fragment: strconv.Itoa(x.Local)}).String(), topic, nil
	}
	return (&url.URL{Fragment: strconv.Itoa(x.Local)}).String(), nil, &MissingReferenceError{Local: x.Local}
}

// shiftTable 按原始字符下标记录插入标记后的累计偏移
// 原始字符 i 在输出中的起点为 i + shift[i], 宽度为 width[i] 字节
type shiftTable struct {
	shift []int
	width []int
}

// newShiftTable 创建偏移表
// 入参: n 字符数
// 返回: *shiftTable 偏移表
func newShiftTable(n int) *shiftTable {
	return &shiftTable{shift: make([]int, n), width: make([]int, n)}
}

// before 字符 i 之前的输出位置
// 入参: i 原始字符下标
// 返回: int 输出位置
func (s *shiftTable) before(i int) int {
	return i + s.shift[i]
}

// after 字符 i 之后的输出位置
// 入参: i 原始字符下标
// 返回: int 输出位置
func (s *shiftTable) after(i int) int {
	return i + s.shift[i] + s.width[i]
}

// grow 下标 from 及之后的字符整体后移 n 字节
// 入参: from 原始字符下标, n 字节数
func (s *shiftTable) grow(from, n int) {
	for i := from; i < len(s.shift); i++ {
		s.shift[i] += n
	}
}

// insertLink 在已含样式标记的输出中插入链接标记并更新偏移表
// 入参: out 输出, tbl 偏移表, x 交叉引用, open 起始标记, closing 结束标记
// 返回: []byte 新输出
func insertLink(out []byte, tbl *shiftTable, x CrossReference, open, closing string) []byte {
	out = slices.Insert(out, tbl.before(x.Start), []byte(open)...)
	tbl.grow(x.Start, len(open))
	out = slices.Insert(out, tbl.after(x.End-1), []byte(closing)...)
	tbl.grow(x.End, len(closing))
	return out
}

// linkMarkup 生成链接标记
// 入参: href 链接, dead 是否失效
// 返回: string 起始标记, string 结束标记
func linkMarkup(href string, dead bool) (string, string) {
	if dead {
		return fmt.Sprintf("<a class='missing' href='%s'>", html.EscapeString(href)), "</a>"
	}
	return fmt.Sprintf("<a href='%s'>", html.EscapeString(href)), "</a>"
}
