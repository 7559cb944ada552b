package mysql

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// SQLState 标准错误分类码：1 字符标记 + 5 字符状态码
type SQLState struct {
	Marker string
	State  string
}

// OkData OK 数据包格式参考：
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_ok_packet.html
// StatusFlags/Warnings 是否存在由能力标识决定，缺席时为 nil
type OkData struct {
	AffectedRows uint64
	LastInsertID uint64
	StatusFlags  *SrvStatus
	Warnings     *uint16

	// sessionTrack 场景下这两个字段的解码触发条件在协议文档中并不明确，
	// 目前显式不支持，始终为空。见 DecodeOk
	Info             string
	SessionStateInfo string
}

// ErrData ERR 数据包格式参考：
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_err_packet.html
type ErrData struct {
	Code     uint16
	SQLState *SQLState
	Message  string
}

// EofData EOF 数据包，protocol41 下携带 warnings 和 status_flags
type EofData struct {
	Warnings    *uint16
	StatusFlags *SrvStatus
}

// DecodeOk 解码 OK 包 body。游标从标记字节后开始：
//  1. affected_rows、last_insert_id 均为变长整数
//  2. protocol41: status_flags(2) + warnings(2)；仅 transactions: status_flags(2)
//  3. sessionTrack 下的 info/session_state_info 暂不解码（触发条件不明确，
//     不做猜测），扩展时在此函数结尾补充
//
// body 末尾的剩余字节只记录日志不报错，trailing 字段的歧义是已知缺口
func DecodeOk(pkt *Packet, cf CapFlag) (*OkData, error) {
	if pkt.Type() != PktTypeOk {
		return nil, &ErrorDecodePkt{
			event:   "decode OkData",
			errType: DecodeErrTypeTypeMismatch,
			raw:     fmt.Errorf("pkt type is %s, not Ok", pkt.Type()),
		}
	}

	ret := new(OkData)
	cursor := pkt.Body[1:]

	var err error
	var isNull bool
	ret.AffectedRows, isNull, err = extractVarInt(&cursor)
	if err != nil || isNull {
		return nil, wrapOkFieldErr("affected_rows", isNull, err)
	}

	ret.LastInsertID, isNull, err = extractVarInt(&cursor)
	if err != nil || isNull {
		return nil, wrapOkFieldErr("last_insert_id", isNull, err)
	}

	switch {
	case cf.IsSet(CapClientProtocol41):
		var status, warnings uint16
		if status, err = extractUint16(&cursor); err != nil {
			return nil, wrapOkFieldErr("status_flags", false, err)
		}
		if warnings, err = extractUint16(&cursor); err != nil {
			return nil, wrapOkFieldErr("warnings", false, err)
		}
		ss := SrvStatus(status)
		ret.StatusFlags = &ss
		ret.Warnings = &warnings
	case cf.IsSet(CapClientTransactions):
		var status uint16
		if status, err = extractUint16(&cursor); err != nil {
			return nil, wrapOkFieldErr("status_flags", false, err)
		}
		ss := SrvStatus(status)
		ret.StatusFlags = &ss
	}

	if rest := len(cursor); rest > 0 {
		logrus.Warnf("decode OkData: %d trailing bytes left undecoded", rest)
	}

	return ret, nil
}

func wrapOkFieldErr(field string, isNull bool, err error) *ErrorDecodePkt {
	if isNull {
		return &ErrorDecodePkt{
			event:   fmt.Sprintf("decode OkData field %s", field),
			errType: DecodeErrTypeMalformedPkt,
			raw:     fmt.Errorf("unexpected NULL var int"),
		}
	}
	return &ErrorDecodePkt{
		event:   fmt.Sprintf("decode OkData field %s", field),
		errType: decodeErrType(err),
		raw:     err,
	}
}

// DecodeErr 解码 ERR 包 body。protocol41 下 error_code 之后是 6 字节
// SQL state（1 字节标记 + 5 字节状态码），剩余字节全部是错误信息。
// 解码结束时游标必须恰好落在 body 末尾，否则说明协议解析已经漂移
func DecodeErr(pkt *Packet, cf CapFlag) (*ErrData, error) {
	if pkt.Type() != PktTypeErr {
		return nil, &ErrorDecodePkt{
			event:   "decode ErrData",
			errType: DecodeErrTypeTypeMismatch,
			raw:     fmt.Errorf("pkt type is %s, not Err", pkt.Type()),
		}
	}

	ret := new(ErrData)
	cursor := pkt.Body[1:]

	var err error
	if ret.Code, err = extractUint16(&cursor); err != nil {
		return nil, &ErrorDecodePkt{event: "decode ErrData field error_code", errType: decodeErrType(err), raw: err}
	}

	if cf.IsSet(CapClientProtocol41) {
		var marker, state string
		if marker, err = extractFixedLengthString(&cursor, 1); err != nil {
			return nil, &ErrorDecodePkt{event: "decode ErrData field sql_state_marker", errType: decodeErrType(err), raw: err}
		}
		if state, err = extractFixedLengthString(&cursor, 5); err != nil {
			return nil, &ErrorDecodePkt{event: "decode ErrData field sql_state", errType: decodeErrType(err), raw: err}
		}
		ret.SQLState = &SQLState{Marker: marker, State: state}
	}

	if ret.Message, err = extractRestOfPacketString(&cursor); err != nil {
		return nil, &ErrorDecodePkt{event: "decode ErrData field error_message", errType: decodeErrType(err), raw: err}
	}

	if len(cursor) != 0 {
		return nil, &ErrorDecodePkt{
			event:   "decode ErrData",
			errType: DecodeErrTypeMalformedPkt,
			raw:     fmt.Errorf("%d bytes left after decoding", len(cursor)),
		}
	}

	return ret, nil
}

// DecodeEof EOF 包在 protocol41 下为标记字节 + warnings(2) + status_flags(2)，
// 否则只有标记字节
func DecodeEof(pkt *Packet, cf CapFlag) (*EofData, error) {
	if pkt.Type() != PktTypeEof {
		return nil, &ErrorDecodePkt{
			event:   "decode EofData",
			errType: DecodeErrTypeTypeMismatch,
			raw:     fmt.Errorf("pkt type is %s, not Eof", pkt.Type()),
		}
	}

	ret := new(EofData)
	if !cf.IsSet(CapClientProtocol41) {
		return ret, nil
	}

	cursor := pkt.Body[1:]

	var warnings, status uint16
	var err error
	if warnings, err = extractUint16(&cursor); err != nil {
		return nil, &ErrorDecodePkt{event: "decode EofData field warnings", errType: decodeErrType(err), raw: err}
	}
	if status, err = extractUint16(&cursor); err != nil {
		return nil, &ErrorDecodePkt{event: "decode EofData field status_flags", errType: decodeErrType(err), raw: err}
	}

	ss := SrvStatus(status)
	ret.Warnings = &warnings
	ret.StatusFlags = &ss
	return ret, nil
}

func decodeErrType(err error) string {
	switch err {
	case ErrLessLength:
		return DecodeErrTypeTruncatedField
	case ErrInvalidEncoding:
		return DecodeErrTypeInvalidEncoding
	default:
		return DecodeErrTypeMalformedPkt
	}
}
