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

import "encoding/binary"

// testLine 测试行
type testLine struct {
	text  string
	attrs []byte
}

// testContext 测试全局上下文
type testContext struct {
	id    string
	topic uint16
}

// fileBuilder 逐字节构造 Advisor 测试文件
type fileBuilder struct {
	prefix   byte
	width    uint16
	name     string
	keywords [][]byte
	huffman  []uint16
	topics   [][]byte
	contexts []testContext
}

// encodeLines 编码解压后的主题数据
// 入参: lines 行集合
// 返回: []byte 主题数据
func encodeLines(lines ...testLine) []byte {
	var out []byte
	for _, l := range lines {
		out = append(out, byte(len(l.text)+1))
		out = append(out, l.text...)
		out = append(out, byte(len(l.attrs)+1))
		out = append(out, l.attrs...)
	}
	return out
}

// storeTopic 以无霍夫曼表模式编码主题, 命令区间内的字节使用字面量转义
// 入参: raw 解压数据
// 返回: []byte 压缩主题
func storeTopic(raw []byte) []byte {
	out := []byte{byte(len(raw)), byte(len(raw) >> 8)}
	for _, b := range raw {
		if b >= CommandFirst && b <= CommandLast {
			out = append(out, CommandFirst+CommandLiteral)
		}
		out = append(out, b)
	}
	return out
}

// build 生成文件数据
// 返回: []byte 文件数据
func (b *fileBuilder) build() []byte {
	buf := make([]byte, AdvisorHeaderSize)
	le := binary.LittleEndian
	le.PutUint16(buf[0:], AdvisorMagic)
	le.PutUint16(buf[2:], AdvisorVersion)
	buf[6] = b.prefix
	le.PutUint16(buf[8:], uint16(len(b.topics)))
	le.PutUint16(buf[10:], uint16(len(b.contexts)))
	le.PutUint16(buf[12:], b.width)
	name := []byte(b.name)
	for i := 0; i < AdvisorOriginalNameSize; i++ {
		if i < len(name) {
			buf[16+i] = name[i]
		} else {
			buf[16+i] = ' '
		}
	}

	var keywordOffset, huffmanOffset uint32
	if len(b.keywords) > 0 {
		keywordOffset = uint32(len(buf))
		for _, k := range b.keywords {
			buf = append(buf, byte(len(k)))
			buf = append(buf, k...)
		}
	}
	if len(b.huffman) > 0 {
		huffmanOffset = uint32(len(buf))
		for _, e := range b.huffman {
			buf = le.AppendUint16(buf, e)
		}
	}

	topicMapOffset := uint32(len(buf))
	topicTextOffset := topicMapOffset
	buf = append(buf, make([]byte, 4*len(b.topics))...)
	for i, t := range b.topics {
		le.PutUint32(buf[int(topicMapOffset)+4*i:], uint32(len(buf)))
		buf = append(buf, t...)
	}
	documentEnd := uint32(len(buf))

	contextMapOffset := uint32(len(buf))
	for _, c := range b.contexts {
		buf = le.AppendUint16(buf, c.topic)
	}
	contextStringOffset := uint32(len(buf))
	for _, c := range b.contexts {
		buf = append(buf, c.id...)
		buf = append(buf, 0)
	}

	le.PutUint32(buf[34:], topicMapOffset)
	le.PutUint32(buf[38:], contextStringOffset)
	le.PutUint32(buf[42:], contextMapOffset)
	le.PutUint32(buf[46:], keywordOffset)
	le.PutUint32(buf[50:], huffmanOffset)
	le.PutUint32(buf[54:], topicTextOffset)
	le.PutUint32(buf[66:], documentEnd)
	return buf
}
