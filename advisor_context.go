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
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GlobalContext 全局上下文标识与主题的对应
type GlobalContext struct {
	ID    string
	Topic *Topic
}

// ContextMap 大小写不敏感的全局上下文映射
type ContextMap struct {
	entries map[string]GlobalContext
}

// NewContextMap 创建全局上下文映射
// 返回: *ContextMap 映射对象
func NewContextMap() *ContextMap {
	return &ContextMap{entries: make(map[string]GlobalContext)}
}

// FoldKey 与区域设置无关的键规范化
// 入参: id 上下文标识
// 返回: string 规范化键
func FoldKey(id string) string {
	return cases.Lower(language.Und).String(id)
}

// Put 添加映射, 规范化后相同的键以后者为准
// 入参: id 上下文标识, topic 主题
func (m *ContextMap) Put(id string, topic *Topic) {
	m.entries[FoldKey(id)] = GlobalContext{ID: id, Topic: topic}
}

// Get 大小写不敏感查找
// 入参: id 上下文标识
// 返回: *Topic 主题, bool 是否存在
func (m *ContextMap) Get(id string) (*Topic, bool) {
	if m == nil {
		return nil, false
	}
	e, ok := m.entries[FoldKey(id)]
	return e.Topic, ok
}

// Len 映射数量
// 返回: int 数量
func (m *ContextMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries 全部映射, 按主题标识再按上下文标识排序
// 返回: []GlobalContext 映射集合
func (m *ContextMap) Entries() []GlobalContext {
	if m == nil {
		return nil
	}
	out := make([]GlobalContext, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Topic.ID() != out[j].Topic.ID() {
			return out[i].Topic.ID() < out[j].Topic.ID()
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// parseContextMap 读取主题下标表与 NUL 结尾字符串表并构建映射
// 入参: stream 字节流, hdr 文件头, topics 主题集合, codec 字符集
// 返回: *ContextMap 映射对象, []error 非致命解码错误, error 错误信息
func parseContextMap(stream *BitStream, hdr *Header, topics []*Topic, codec *Codec) (*ContextMap, []error, error) {
	m := NewContextMap()
	count := int(hdr.GlobalContextCount)
	if count == 0 {
		return m, nil, nil
	}
	if err := stream.SetOffset(hdr.ContextMapOffset); err != nil {
		return nil, nil, err
	}
	indexes := make([]int, count)
	for i := range indexes {
		v, err := stream.ReadShortInteger()
		if err != nil {
			return nil, nil, err
		}
		if int(v) >= len(topics) {
			return nil, nil, corruptf("context topic index", int(stream.GetOffset())-2, len(topics), int(v))
		}
		indexes[i] = int(v)
	}
	if err := stream.SetOffset(hdr.ContextStringTableOffset); err != nil {
		return nil, nil, err
	}
	var diags []error
	for i := 0; i < count; i++ {
		raw, err := stream.ReadCString()
		if err != nil {
			return nil, nil, err
		}
		id, derr := codec.DecodeBytewise(raw)
		if derr != nil {
			diags = append(diags, derr)
		}
		m.Put(id, topics[indexes[i]])
	}
	return m, diags, nil
}
