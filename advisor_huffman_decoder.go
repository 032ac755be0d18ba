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

// HuffmanTable 以平铺数组表示的霍夫曼树
// 叶子节点最高位为1, 低8位为字面量; 内部节点值右移1位为0分支下标, 1分支紧随其后
type HuffmanTable struct {
	entries []uint16
}

// NewHuffmanTable 由表项创建霍夫曼表
// 入参: entries 表项
// 返回: *HuffmanTable 霍夫曼表
func NewHuffmanTable(entries []uint16) *HuffmanTable {
	return &HuffmanTable{entries: entries}
}

// NewHuffmanTableFromStream 从流读取霍夫曼表, 偏移为0时返回 nil 表示未压缩
// 入参: stream 字节流, offset 表偏移
// 返回: *HuffmanTable 霍夫曼表, error 错误信息
func NewHuffmanTableFromStream(stream *BitStream, offset uint32) (*HuffmanTable, error) {
	if offset == 0 {
		return nil, nil
	}
	if err := stream.SetOffset(offset); err != nil {
		return nil, err
	}
	ht := &HuffmanTable{}
	for {
		val, err := stream.ReadShortInteger()
		if err != nil {
			return nil, err
		}
		ht.entries = append(ht.entries, val)
		if val == 0 {
			return ht, nil
		}
	}
}

// Size 获取霍夫曼表大小 (含结束项)
// 返回: int 大小
func (h *HuffmanTable) Size() int {
	if h == nil {
		return 0
	}
	return len(h.entries)
}

// IsEmpty 是否为空表
// 返回: bool 是否为空
func (h *HuffmanTable) IsEmpty() bool {
	return h.Size() == 0
}

// ByteDecoder 从位流逐字节解码; 无霍夫曼表时直接透传原始字节
type ByteDecoder struct {
	table    *HuffmanTable
	data     []byte
	byteIdx  int
	byteMask uint8
}

// NewByteDecoder 创建字节解码器
// 入参: table 霍夫曼表 (可为 nil), data 位流, offset 起始偏移
// 返回: *ByteDecoder 解码器
func NewByteDecoder(table *HuffmanTable, data []byte, offset int) *ByteDecoder {
	return &ByteDecoder{table: table, data: data, byteIdx: offset, byteMask: 0x80}
}

// NextByte 解码下一个逻辑字节
// 返回: byte 结果, error 错误信息
func (d *ByteDecoder) NextByte() (byte, error) {
	if d.table.IsEmpty() {
		if d.byteIdx >= len(d.data) {
			return 0, corruptf("topic stream exhausted", d.byteIdx, 1, 0)
		}
		b := d.data[d.byteIdx]
		d.byteIdx++
		return b, nil
	}
	entries := d.table.entries
	idx := 0
	for {
		if idx >= len(entries) {
			return 0, corruptf("huffman node index", d.byteIdx, len(entries), idx)
		}
		entry := entries[idx]
		if entry&huffmanLeafFlag != 0 {
			return byte(entry), nil
		}
		bit, err := d.nextBit()
		if err != nil {
			return 0, err
		}
		idx = int(entry >> 1)
		if bit {
			idx++
		}
	}
}

// Offset 当前字节偏移
// 返回: int 偏移量
func (d *ByteDecoder) Offset() int {
	return d.byteIdx
}

// nextBit 按高位优先读取1位
// 返回: bool 位值, error 错误信息
func (d *ByteDecoder) nextBit() (bool, error) {
	if d.byteIdx >= len(d.data) {
		return false, corruptf("huffman stream exhausted", d.byteIdx, 1, 0)
	}
	bit := d.data[d.byteIdx]&d.byteMask != 0
	d.byteMask >>= 1
	if d.byteMask == 0 {
		d.byteMask = 0x80
		d.byteIdx++
	}
	return bit, nil
}
