package mysql

import (
	"bytes"
	"fmt"
)

type PktType uint8

const (
	PktTypeOther PktType = iota
	PktTypeCommand
	PktTypeOk
	PktTypeEof
	PktTypeErr
)

var pktType2Name = map[PktType]string{
	PktTypeOther:   "Other",
	PktTypeCommand: "Command",
	PktTypeOk:      "Ok",
	PktTypeEof:     "Eof",
	PktTypeErr:     "Err",
}

func (t PktType) String() string {
	if name, exist := pktType2Name[t]; exist {
		return name
	}
	return fmt.Sprintf("PktType(%d)", uint8(t))
}

// PacketHeader 帧头：3 字节小端序长度 + 1 字节序号
type PacketHeader struct {
	Size uint32
	Seq  uint8
}

func extractHeader(dataPtr *[]byte) (*PacketHeader, error) {
	size, err := extractUint24(dataPtr)
	if err != nil {
		return nil, err
	}

	seq, err := extractUint8(dataPtr)
	if err != nil {
		return nil, err
	}

	return &PacketHeader{Size: size, Seq: seq}, nil
}

// marshalHeader 长度超过 3 字节表示范围时直接报错，不做静默截断
func marshalHeader(hdr *PacketHeader) ([]byte, error) {
	if hdr.Size > MaxPacketSize {
		return nil, &ErrorDecodePkt{
			event:   "marshal header",
			errType: DecodeErrTypeInvalidPkt,
			raw:     fmt.Errorf("size %d overflows 24-bit length field", hdr.Size),
		}
	}

	ret := marshalInt(uint64(hdr.Size), 3)
	ret = append(ret, hdr.Seq)
	return ret, nil
}

// Packet 一个完整的协议帧。语义类型在分帧时确定一次，之后不再变化
type Packet struct {
	Header *PacketHeader
	Body   []byte

	ptype PktType
}

func (p *Packet) Type() PktType {
	return p.ptype
}

// Frame 从 data 中切出一个完整帧。data 不足一个帧时返回
// ErrIncompleteHeader/ErrIncompleteBody，调用方应暂存字节稍后重试；
// 帧尾多余的字节不会被消费，由调用方留作下一帧
func Frame(data []byte, phase Phase) (*Packet, error) {
	if len(data) < 4 {
		return nil, ErrIncompleteHeader
	}

	cursor := data
	hdr, err := extractHeader(&cursor)
	if err != nil {
		return nil, ErrIncompleteHeader
	}

	if uint32(len(cursor)) < hdr.Size {
		return nil, ErrIncompleteBody
	}

	// 类型判定至少需要 1 个字节，空 body 直接拒绝
	if hdr.Size == 0 {
		return nil, &ErrorDecodePkt{
			event:   "frame pkt",
			errType: DecodeErrTypeInvalidPkt,
			raw:     fmt.Errorf("empty body, seq: %d", hdr.Seq),
		}
	}

	body := cursor[:hdr.Size:hdr.Size]

	return &Packet{
		Header: hdr,
		Body:   body,
		ptype:  getPktType(body, phase),
	}, nil
}

// getPktType 按序匹配，先中先得。OK/EOF/ERR 的标记字节互不相同，前三条规则
// 不会互相冲突。未实现 deprecate EOF 能力下的变体
func getPktType(body []byte, phase Phase) PktType {
	if len(body) >= 7 && body[0] == MarkerOK {
		return PktTypeOk
	}

	if len(body) <= 9 && body[0] == MarkerEOF {
		return PktTypeEof
	}

	if body[0] == MarkerERR {
		return PktTypeErr
	}

	if phase == PhasePendingResponse {
		return PktTypeCommand
	}

	return PktTypeOther
}

// Serialize 序列化为帧头 + body。一次性操作，序列化后不应再使用该 Packet
func (p *Packet) Serialize() ([]byte, error) {
	hdrRaw, err := marshalHeader(p.Header)
	if err != nil {
		return nil, err
	}

	buf := bytes.Buffer{}
	buf.Write(hdrRaw)
	buf.Write(p.Body)
	return buf.Bytes(), nil
}
