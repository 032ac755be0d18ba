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

// DecompressTopic 解压主题数据; 前2字节为解压后长度, 其后为命令编码的位流
// 入参: data 压缩数据, table 霍夫曼表 (可为 nil), dict 关键字字典
// 返回: []byte 解压结果, error 错误信息
func DecompressTopic(data []byte, table *HuffmanTable, dict *KeywordDict) ([]byte, error) {
	if len(data) < 2 {
		return nil, corruptf("topic length prefix", 0, 2, len(data))
	}
	size := int(data[0]) | int(data[1])<<8
	out := make([]byte, 0, size)
	dec := NewByteDecoder(table, data, 2)
	emit := func(b ...byte) error {
		if len(out)+len(b) > size {
			return corruptf("topic decompressed length", dec.Offset(), size, len(out)+len(b))
		}
		out = append(out, b...)
		return nil
	}
	for len(out) < size {
		c, err := dec.NextByte()
		if err != nil {
			return nil, err
		}
		if c < CommandFirst || c > CommandLast {
			out = append(out, c)
			continue
		}
		command := int(c - CommandFirst)
		param, err := dec.NextByte()
		if err != nil {
			return nil, err
		}
		switch {
		case command < CommandSpaceRun:
			var keyword []byte
			keyword, err = dict.GetKeyword(command&CommandSlotMask, param)
			if err == nil {
				err = emit(keyword...)
			}
			if err == nil && command >= CommandKeywordSpace {
				err = emit(' ')
			}
		case command == CommandSpaceRun:
			err = emit(repeatByte(' ', int(param))...)
		case command == CommandByteRun:
			count, cerr := dec.NextByte()
			if cerr != nil {
				return nil, cerr
			}
			err = emit(repeatByte(param, int(count))...)
		case command == CommandLiteral:
			err = emit(param)
		default:
			return nil, &UnsupportedFeatureError{Feature: "compression command", Offset: uint32(dec.Offset()), Value: uint32(command)}
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// repeatByte 生成重复字节
// 入参: b 字节, n 次数
// 返回: []byte 结果
func repeatByte(b byte, n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = b
	}
	return buf
}
