package mysql

import (
	"fmt"
)

// Command 客户端命令：1 字节命令号 + 剩余参数（如 COM_QUERY 的 SQL 文本）
type Command struct {
	Name byte
	Arg  []byte
}

func (c *Command) String() string {
	name, exist := com2Name[c.Name]
	if !exist {
		name = fmt.Sprintf("COM_UNKNOWN(%#X)", c.Name)
	}

	if len(c.Arg) == 0 {
		return name
	}
	return fmt.Sprintf("%s %s", name, Byte2Str(c.Arg))
}

// DecodeCommand 从 Command 类型的包中提取命令
func DecodeCommand(pkt *Packet) (*Command, error) {
	if pkt.Type() != PktTypeCommand {
		return nil, &ErrorDecodePkt{
			event:   "decode Command",
			errType: DecodeErrTypeTypeMismatch,
			raw:     fmt.Errorf("pkt type is %s, not Command", pkt.Type()),
		}
	}

	cursor := pkt.Body
	name, err := extractUint8(&cursor)
	if err != nil {
		return nil, &ErrorDecodePkt{event: "decode Command field name", errType: decodeErrType(err), raw: err}
	}

	arg, err := extractFixedLengthByte(&cursor, len(cursor))
	if err != nil {
		return nil, &ErrorDecodePkt{event: "decode Command field arg", errType: decodeErrType(err), raw: err}
	}

	return &Command{Name: name, Arg: arg}, nil
}
