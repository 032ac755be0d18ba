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

// KeywordDict 关键字字典, 下标 = 参数字节 + 256 * 槽位
type KeywordDict struct {
	keywords [][]byte
}

// NewKeywordDict 创建关键字字典
// 入参: keywords 关键字集合
// 返回: *KeywordDict 字典对象
func NewKeywordDict(keywords ...[]byte) *KeywordDict {
	return &KeywordDict{keywords: keywords}
}

// NewKeywordDictFromStream 从流读取长度前缀字节串, 直到到达表尾
// 入参: stream 字节流, offset 表偏移, end 表尾偏移
// 返回: *KeywordDict 字典对象, error 错误信息
func NewKeywordDictFromStream(stream *BitStream, offset, end uint32) (*KeywordDict, error) {
	dict := &KeywordDict{}
	if offset == 0 {
		return dict, nil
	}
	if err := stream.SetOffset(offset); err != nil {
		return nil, err
	}
	for stream.GetOffset() < end {
		n, err := stream.Read1Byte()
		if err != nil {
			return nil, err
		}
		keyword, err := stream.ReadBytes(uint32(n))
		if err != nil {
			return nil, err
		}
		dict.keywords = append(dict.keywords, keyword)
	}
	return dict, nil
}

// NumKeywords 获取关键字数量
// 返回: int 数量
func (k *KeywordDict) NumKeywords() int {
	if k == nil {
		return 0
	}
	return len(k.keywords)
}

// GetKeyword 按命令槽位与参数获取关键字
// 入参: slot 槽位, param 参数字节
// 返回: []byte 关键字, error 错误信息
func (k *KeywordDict) GetKeyword(slot int, param byte) ([]byte, error) {
	index := int(param) + 256*slot
	if index >= k.NumKeywords() {
		return nil, corruptf("keyword index", index, k.NumKeywords(), index)
	}
	return k.keywords[index], nil
}
