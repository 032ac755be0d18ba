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

// Header 固定布局文件头
type Header struct {
	Magic                    uint16
	Version                  uint16
	ApplicationPrefix        byte
	TopicCount               uint16
	GlobalContextCount       uint16
	MaxDisplayWidth          uint16
	OriginalName             string
	TopicMapOffset           uint32
	ContextStringTableOffset uint32
	ContextMapOffset         uint32
	KeywordTableOffset       uint32
	HuffmanOffset            uint32
	TopicTextOffset          uint32
	DocumentEndOffset        uint32
}

// ParseHeader 从偏移0解析文件头
// 入参: stream 字节流, codec 字符集
// 返回: *Header 文件头, error 错误信息
func ParseHeader(stream *BitStream, codec *Codec) (*Header, error) {
	if err := stream.SetOffset(0); err != nil {
		return nil, err
	}
	if stream.GetLength() < AdvisorHeaderSize {
		return nil, corruptf("header", 0, AdvisorHeaderSize, int(stream.GetLength()))
	}
	h := &Header{}
	var err error
	if h.Magic, err = stream.ReadShortInteger(); err != nil {
		return nil, err
	}
	if h.Magic != AdvisorMagic {
		return nil, &FormatError{Field: "magic number", Expected: AdvisorMagic, Actual: uint32(h.Magic)}
	}
	if h.Version, err = stream.ReadShortInteger(); err != nil {
		return nil, err
	}
	if h.Version != AdvisorVersion {
		return nil, &FormatError{Field: "file version", Expected: AdvisorVersion, Actual: uint32(h.Version)}
	}
	if err = skipReservedShort(stream, "flags"); err != nil {
		return nil, err
	}
	if h.ApplicationPrefix, err = stream.Read1Byte(); err != nil {
		return nil, err
	}
	if err = skipReservedByte(stream, "reserved byte"); err != nil {
		return nil, err
	}
	if h.TopicCount, err = stream.ReadShortInteger(); err != nil {
		return nil, err
	}
	if h.GlobalContextCount, err = stream.ReadShortInteger(); err != nil {
		return nil, err
	}
	if h.MaxDisplayWidth, err = stream.ReadShortInteger(); err != nil {
		return nil, err
	}
	if err = skipReservedShort(stream, "reserved field 2"); err != nil {
		return nil, err
	}
	name, err := stream.ReadBytes(AdvisorOriginalNameSize)
	if err != nil {
		return nil, err
	}
	// 文件名中的不可解码字节已被替换, 不影响后续解析
	h.OriginalName, _ = codec.DecodeTrimmed(name)
	for _, field := range []string{"reserved field 3", "reserved field 4", "reserved field 5"} {
		if err = skipReservedShort(stream, field); err != nil {
			return nil, err
		}
	}
	for _, dst := range []*uint32{
		&h.TopicMapOffset,
		&h.ContextStringTableOffset,
		&h.ContextMapOffset,
		&h.KeywordTableOffset,
		&h.HuffmanOffset,
		&h.TopicTextOffset,
	} {
		if *dst, err = stream.ReadInteger(); err != nil {
			return nil, err
		}
	}
	for _, field := range []string{"reserved field 6", "reserved field 7"} {
		if err = skipReservedInteger(stream, field); err != nil {
			return nil, err
		}
	}
	if h.DocumentEndOffset, err = stream.ReadInteger(); err != nil {
		return nil, err
	}
	return h, nil
}

// KeywordTableEnd 关键字表结束偏移: 有霍夫曼表时为其偏移, 否则为主题文本偏移
// 返回: uint32 偏移量
func (h *Header) KeywordTableEnd() uint32 {
	if h.HuffmanOffset != 0 {
		return h.HuffmanOffset
	}
	return h.TopicTextOffset
}

// skipReservedByte 跳过必须为0的保留字节
// 入参: stream 字节流, name 字段名
// 返回: error 错误信息
func skipReservedByte(stream *BitStream, name string) error {
	offset := stream.GetOffset()
	v, err := stream.Read1Byte()
	if err != nil {
		return err
	}
	if v != 0 {
		return &UnsupportedFeatureError{Feature: name, Offset: offset, Value: uint32(v)}
	}
	return nil
}

// skipReservedShort 跳过必须为0的保留短整数
// 入参: stream 字节流, name 字段名
// 返回: error 错误信息
func skipReservedShort(stream *BitStream, name string) error {
	offset := stream.GetOffset()
	v, err := stream.ReadShortInteger()
	if err != nil {
		return err
	}
	if v != 0 {
		return &UnsupportedFeatureError{Feature: name, Offset: offset, Value: uint32(v)}
	}
	return nil
}

// skipReservedInteger 跳过必须为0的保留整数
// 入参: stream 字节流, name 字段名
// 返回: error 错误信息
func skipReservedInteger(stream *BitStream, name string) error {
	offset := stream.GetOffset()
	v, err := stream.ReadInteger()
	if err != nil {
		return err
	}
	if v != 0 {
		return &UnsupportedFeatureError{Feature: name, Offset: offset, Value: v}
	}
	return nil
}
