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

const (
	// AdvisorMagic 文件魔数, 小端序下的 "LN"
	AdvisorMagic = 0x4E4C
	// AdvisorVersion 唯一支持的文件版本
	AdvisorVersion = 2
	// AdvisorHeaderSize 固定文件头长度
	AdvisorHeaderSize = 70
	// AdvisorOriginalNameSize 原始文件名字段长度
	AdvisorOriginalNameSize = 12
)

const (
	// CommandFirst 压缩命令字节下界
	CommandFirst = 0x10
	// CommandLast 压缩命令字节上界
	CommandLast = 0x1A
	// CommandSpaceRun 空格游程命令
	CommandSpaceRun = 8
	// CommandByteRun 任意字节游程命令
	CommandByteRun = 9
	// CommandLiteral 字面量转义命令
	CommandLiteral = 10
	// CommandKeywordSpace 大于等于此值的关键字命令追加空格
	CommandKeywordSpace = 4
	// CommandSlotMask 关键字槽位掩码
	CommandSlotMask = 0x03
)

const (
	// AttrXrefMarker 交叉引用数据起始标记
	AttrXrefMarker = 0xFF
	// huffmanLeafFlag 霍夫曼叶子节点标志
	huffmanLeafFlag = 0x8000
)

// Style 文本样式标志
type Style uint8

const (
	// StyleNone 无样式
	StyleNone Style = 0
	// StyleBold 粗体
	StyleBold Style = 0x01
	// StyleItalic 斜体
	StyleItalic Style = 0x02
	// StyleUnderline 下划线
	StyleUnderline Style = 0x04
)

// Has 判断是否包含样式
// 入参: f 样式标志
// 返回: bool 是否包含
func (s Style) Has(f Style) bool {
	return s&f == f && f != 0
}

// String 样式名称
// 返回: string 名称
func (s Style) String() string {
	if s == StyleNone {
		return "plain"
	}
	name := ""
	for _, f := range []struct {
		flag Style
		name string
	}{{StyleBold, "bold"}, {StyleItalic, "italic"}, {StyleUnderline, "underline"}} {
		if s.Has(f.flag) {
			if name != "" {
				name += "+"
			}
			name += f.name
		}
	}
	return name
}
