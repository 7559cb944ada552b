package mysql

import (
	"fmt"
	"unicode/utf8"
)

// 基础字段解码器。统一约定：入参为指向剩余字节的游标，成功时游标前移
// 消费掉的字节数，失败时游标不动。任何越界读取都返回 ErrLessLength。

func extractUint8(dataPtr *[]byte) (uint8, error) {
	ret, err := extractInt(dataPtr, 1)
	if err != nil {
		return 0, err
	}
	return uint8(ret), nil
}

func extractUint16(dataPtr *[]byte) (uint16, error) {
	ret, err := extractInt(dataPtr, 2)
	if err != nil {
		return 0, err
	}
	return uint16(ret), nil
}

func extractUint24(dataPtr *[]byte) (uint32, error) {
	ret, err := extractInt(dataPtr, 3)
	if err != nil {
		return 0, err
	}
	return uint32(ret), nil
}

// extractInt 小端序定长整数
func extractInt(dataPtr *[]byte, length int) (uint64, error) {
	data := *dataPtr
	if len(data) < length {
		return 0, ErrLessLength
	}

	var ret uint64
	for idx := 0; idx < length; idx++ {
		ret |= uint64(data[idx]) << (8 * idx)
	}

	*dataPtr = (*dataPtr)[length:]
	return ret, nil
}

// extractVarInt 变长整数，格式参考：
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_dt_integers.html
// 首字节 0xFB 表示 NULL，此时 isNull 为 true 且返回值无意义
func extractVarInt(dataPtr *[]byte) (val uint64, isNull bool, err error) {
	data := *dataPtr
	if len(data) == 0 {
		return 0, false, ErrLessLength
	}

	fb := data[0]

	switch {
	case fb < 0xFB:
		*dataPtr = (*dataPtr)[1:]
		return uint64(fb), false, nil
	case fb == 0xFB:
		*dataPtr = (*dataPtr)[1:]
		return 0, true, nil
	}

	last := data[1:]
	switch fb {
	case 0xFC:
		val, err = extractInt(&last, 2)
	case 0xFD:
		val, err = extractInt(&last, 3)
	case 0xFE:
		val, err = extractInt(&last, 8)
	default:
		return 0, false, fmt.Errorf("unknown prefix of var int: %#X", fb)
	}

	if err != nil {
		return 0, false, err
	}
	*dataPtr = last
	return val, false, nil
}

func extractFixedLengthString(dataPtr *[]byte, length int) (string, error) {
	data := *dataPtr
	if len(data) < length {
		return "", ErrLessLength
	}

	raw := data[:length:length]
	if !utf8.Valid(raw) {
		return "", ErrInvalidEncoding
	}

	*dataPtr = data[length:]
	return string(raw), nil
}

func extractFixedLengthByte(dataPtr *[]byte, length int) ([]byte, error) {
	data := *dataPtr
	if len(data) < length {
		return nil, ErrLessLength
	}

	ret := data[:length:length]
	*dataPtr = data[length:]
	return ret, nil
}

// extractRestOfPacketString 消费游标剩余的全部字节，剩余为空时返回空串
func extractRestOfPacketString(dataPtr *[]byte) (string, error) {
	data := *dataPtr
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}

	*dataPtr = data[len(data):]
	return string(data), nil
}

func marshalInt(v uint64, length int) []byte {
	ret := make([]byte, length)

	for idx := 0; idx < length; idx++ {
		ret[idx] = byte(v >> (8 * idx))
	}

	return ret
}

func marshalVarInt(v uint64) []byte {
	if v < 0xFB {
		return marshalInt(v, 1)
	}

	if v < 1<<16 {
		return append([]byte{0xFC}, marshalInt(v, 2)...)
	}

	if v < 1<<24 {
		return append([]byte{0xFD}, marshalInt(v, 3)...)
	}

	return append([]byte{0xFE}, marshalInt(v, 8)...)
}
