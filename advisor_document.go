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
	"log/slog"
)

// Topic 帮助主题, 标识为解析顺序下标
type Topic struct {
	id     int
	offset uint32
	lines  []*Line
}

// ID 主题标识 (局部上下文标识)
// 返回: int 标识
func (t *Topic) ID() int {
	return t.id
}

// Offset 压缩数据在文件中的偏移, 仅用于诊断
// 返回: uint32 偏移量
func (t *Topic) Offset() uint32 {
	return t.offset
}

// Lines 主题行集合
// 返回: []*Line 行集合
func (t *Topic) Lines() []*Line {
	return append([]*Line(nil), t.lines...)
}

// FileName 主题渲染文件名
// 返回: string 文件名
func (t *Topic) FileName() string {
	return TopicFileName(t.id)
}

// TopicFileName 由主题标识生成文件名
// 入参: id 主题标识
// 返回: string 文件名
func TopicFileName(id int) string {
	return fmt.Sprintf("TOPIC_%d.HTML", id)
}

// Document 解码完成的帮助文档, 构建后只读
type Document struct {
	header      Header
	prefix      rune
	topics      []*Topic
	contexts    *ContextMap
	codec       *Codec
	digest      string
	diagnostics []error
}

// ApplicationPrefix 应用命令前缀字符
// 返回: rune 字符
func (d *Document) ApplicationPrefix() rune {
	return d.prefix
}

// MaxDisplayWidth 最大显示宽度 (字符)
// 返回: int 宽度
func (d *Document) MaxDisplayWidth() int {
	return int(d.header.MaxDisplayWidth)
}

// OriginalName 原始 8.3 文件名
// 返回: string 文件名
func (d *Document) OriginalName() string {
	return d.header.OriginalName
}

// Header 文件头副本
// 返回: Header 文件头
func (d *Document) Header() Header {
	return d.header
}

// Topics 主题集合, 下标即主题标识
// 返回: []*Topic 主题集合
func (d *Document) Topics() []*Topic {
	return append([]*Topic(nil), d.topics...)
}

// Topic 按局部上下文标识查找主题
// 入参: id 主题标识
// 返回: *Topic 主题, bool 是否存在
func (d *Document) Topic(id int) (*Topic, bool) {
	if id < 0 || id >= len(d.topics) {
		return nil, false
	}
	return d.topics[id], true
}

// LookupGlobal 按全局上下文标识查找主题, 大小写不敏感
// 入参: id 全局上下文标识
// 返回: *Topic 主题, bool 是否存在
func (d *Document) LookupGlobal(id string) (*Topic, bool) {
	return d.contexts.Get(id)
}

// GlobalContexts 全部全局上下文映射
// 返回: []GlobalContext 映射集合
func (d *Document) GlobalContexts() []GlobalContext {
	return d.contexts.Entries()
}

// NumGlobalContexts 全局上下文数量 (规范化后去重)
// 返回: int 数量
func (d *Document) NumGlobalContexts() int {
	return d.contexts.Len()
}

// Codec 文档字符集
// 返回: *Codec 解码器
func (d *Document) Codec() *Codec {
	return d.codec
}

// Digest 源文件 BLAKE3 摘要 (十六进制)
// 返回: string 摘要
func (d *Document) Digest() string {
	return d.digest
}

// Diagnostics 加载期间的非致命错误
// 返回: []error 错误集合
func (d *Document) Diagnostics() []error {
	return append([]error(nil), d.diagnostics...)
}

// assembleDocument 顺序解析文件头, 字典, 霍夫曼表, 主题与上下文映射
// 入参: data 文件数据, codec 字符集, logger 日志
// 返回: *Document 文档, error 错误信息
func assembleDocument(data []byte, codec *Codec, logger *slog.Logger) (*Document, error) {
	stream := NewBitStream(data)
	hdr, err := ParseHeader(stream, codec)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed header",
		"original_name", hdr.OriginalName,
		"topics", hdr.TopicCount,
		"global_contexts", hdr.GlobalContextCount,
		"max_display_width", hdr.MaxDisplayWidth)
	dict, err := NewKeywordDictFromStream(stream, hdr.KeywordTableOffset, hdr.KeywordTableEnd())
	if err != nil {
		return nil, fmt.Errorf("keyword table: %w", err)
	}
	table, err := NewHuffmanTableFromStream(stream, hdr.HuffmanOffset)
	if err != nil {
		return nil, fmt.Errorf("huffman table: %w", err)
	}
	logger.Debug("loaded tables", "keywords", dict.NumKeywords(), "huffman_entries", table.Size())
	doc := &Document{header: *hdr, codec: codec}
	prefix, _ := codec.DecodeBytewise([]byte{hdr.ApplicationPrefix})
	for _, r := range prefix {
		doc.prefix = r
		break
	}
	doc.topics, err = parseTopics(stream, hdr, table, dict, codec, doc, logger)
	if err != nil {
		return nil, err
	}
	contexts, diags, err := parseContextMap(stream, hdr, doc.topics, codec)
	if err != nil {
		return nil, fmt.Errorf("context map: %w", err)
	}
	doc.contexts = contexts
	doc.diagnostics = append(doc.diagnostics, diags...)
	return doc, nil
}

// parseTopics 读取主题偏移表并逐个解压切分
// 入参: stream 字节流, hdr 文件头, table 霍夫曼表, dict 关键字字典, codec 字符集, doc 文档, logger 日志
// 返回: []*Topic 主题集合, error 错误信息
func parseTopics(stream *BitStream, hdr *Header, table *HuffmanTable, dict *KeywordDict, codec *Codec, doc *Document, logger *slog.Logger) ([]*Topic, error) {
	count := int(hdr.TopicCount)
	offsets := make([]uint32, count+1)
	offsets[count] = hdr.DocumentEndOffset
	if count > 0 {
		if err := stream.SetOffset(hdr.TopicMapOffset); err != nil {
			return nil, fmt.Errorf("topic map: %w", err)
		}
	}
	for i := 0; i < count; i++ {
		v, err := stream.ReadInteger()
		if err != nil {
			return nil, fmt.Errorf("topic map: %w", err)
		}
		offsets[i] = v
	}
	topics := make([]*Topic, 0, count)
	for i := 0; i < count; i++ {
		compressed, err := stream.Slice(offsets[i], offsets[i+1])
		if err != nil {
			return nil, fmt.Errorf("topic %d: %w", i, err)
		}
		raw, err := DecompressTopic(compressed, table, dict)
		if err != nil {
			return nil, fmt.Errorf("topic %d at offset %d: %w", i, offsets[i], err)
		}
		lines, diags, err := SegmentTopic(raw, codec)
		if err != nil {
			return nil, fmt.Errorf("topic %d at offset %d: %w", i, offsets[i], err)
		}
		for _, diag := range diags {
			if ld, ok := diag.(*LineDiagnostic); ok {
				ld.Topic = i
			}
			doc.diagnostics = append(doc.diagnostics, diag)
		}
		logger.Debug("decoded topic", "topic", i, "offset", offsets[i], "compressed", len(compressed), "decompressed", len(raw), "lines", len(lines))
		topics = append(topics, &Topic{id: i, offset: offsets[i], lines: lines})
	}
	return topics, nil
}
