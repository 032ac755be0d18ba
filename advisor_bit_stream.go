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

// BitStream 小端序字节流游标
type BitStream struct {
	data    []byte
	byteIdx uint32
}

// NewBitStream 创建字节流
// 入参: data 数据源
// 返回: *BitStream 字节流对象
func NewBitStream(data []byte) *BitStream {
	return &BitStream{data: data}
}

// Read1Byte 读取1字节
// 返回: uint8 结果, error 错误信息
func (b *BitStream) Read1Byte() (uint8, error) {
	if !b.IsInBounds() {
		return 0, corruptf("byte read past end of file", int(b.byteIdx), 1, 0)
	}
	result := b.data[b.byteIdx]
	b.byteIdx++
	return result, nil
}

// ReadShortInteger 读取2字节小端整数
// 返回: uint16 结果, error 错误信息
func (b *BitStream) ReadShortInteger() (uint16, error) {
	if uint64(b.byteIdx)+2 > uint64(len(b.data)) {
		return 0, corruptf("short read past end of file", int(b.byteIdx), 2, int(b.GetByteLeft()))
	}
	result := uint16(b.data[b.byteIdx]) | uint16(b.data[b.byteIdx+1])<<8
	b.byteIdx += 2
	return result, nil
}

// ReadInteger 读取4字节小端整数
// 返回: uint32 结果, error 错误信息
func (b *BitStream) ReadInteger() (uint32, error) {
	if uint64(b.byteIdx)+4 > uint64(len(b.data)) {
		return 0, corruptf("integer read past end of file", int(b.byteIdx), 4, int(b.GetByteLeft()))
	}
	result := uint32(b.data[b.byteIdx]) |
		uint32(b.data[b.byteIdx+1])<<8 |
		uint32(b.data[b.byteIdx+2])<<16 |
		uint32(b.data[b.byteIdx+3])<<24
	b.byteIdx += 4
	return result, nil
}

// ReadBytes 读取指定长度的字节, 返回副本
// 入参: n 字节数
// 返回: []byte 结果, error 错误信息
func (b *BitStream) ReadBytes(n uint32) ([]byte, error) {
	if uint64(b.byteIdx)+uint64(n) > uint64(len(b.data)) {
		return nil, corruptf("span read past end of file", int(b.byteIdx), int(n), int(b.GetByteLeft()))
	}
	out := make([]byte, n)
	copy(out, b.data[b.byteIdx:b.byteIdx+n])
	b.byteIdx += n
	return out, nil
}

// ReadCString 读取以 NUL 结尾的字节串, 不含结尾符
// 返回: []byte 结果, error 错误信息
func (b *BitStream) ReadCString() ([]byte, error) {
	start := b.byteIdx
	for i := start; i < uint32(len(b.data)); i++ {
		if b.data[i] == 0 {
			out := make([]byte, i-start)
			copy(out, b.data[start:i])
			b.byteIdx = i + 1
			return out, nil
		}
	}
	return nil, corruptf("unterminated string", int(start), 0, 0)
}

// GetOffset 获取当前偏移量
// 返回: uint32 偏移量
func (b *BitStream) GetOffset() uint32 {
	return b.byteIdx
}

// SetOffset 设置偏移量, 越界时报错
// 入参: offset 偏移量
// 返回: error 错误信息
func (b *BitStream) SetOffset(offset uint32) error {
	if uint64(offset) > uint64(len(b.data)) {
		return corruptf("seek past end of file", int(offset), len(b.data), int(offset))
	}
	b.byteIdx = offset
	return nil
}

// Slice 截取文件区间, 不移动游标
// 入参: start 起点, end 终点
// 返回: []byte 区间数据, error 错误信息
func (b *BitStream) Slice(start, end uint32) ([]byte, error) {
	if start > end || uint64(end) > uint64(len(b.data)) {
		return nil, corruptf("span", int(start), int(end), len(b.data))
	}
	return b.data[start:end], nil
}

// GetByteLeft 获取剩余字节数
// 返回: uint32 剩余字节数
func (b *BitStream) GetByteLeft() uint32 {
	if b.byteIdx >= uint32(len(b.data)) {
		return 0
	}
	return uint32(len(b.data)) - b.byteIdx
}

// GetLength 获取总字节数
// 返回: uint32 总字节数
func (b *BitStream) GetLength() uint32 {
	return uint32(len(b.data))
}

// IsInBounds 检查是否在边界内
// 返回: bool 是否在边界内
func (b *BitStream) IsInBounds() bool {
	return b.byteIdx < uint32(len(b.data))
}
