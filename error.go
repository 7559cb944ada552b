package mysql

import (
	"errors"
	"fmt"
)

// 分帧错误是可恢复的：调用方应把已收到的字节存入 Connection 的 partialData，
// 等更多字节到达后重试
var (
	ErrIncompleteHeader = errors.New("incomplete header")
	ErrIncompleteBody   = errors.New("incomplete body")
)

var (
	ErrLessLength      = errors.New("less length")
	ErrInvalidEncoding = errors.New("invalid utf8 sequence")
)

// 区分解码错误的目的是：truncated field/invalid encoding/malformed pkt 说明对端数据
// 已经不可信，链接应该直接关闭；type mismatch 是调用方用错了解码器
const (
	DecodeErrTypeTruncatedField  = "truncated field"
	DecodeErrTypeInvalidEncoding = "invalid encoding"
	DecodeErrTypeTypeMismatch    = "type mismatch"
	DecodeErrTypeMalformedPkt    = "malformed pkt"
	DecodeErrTypeInvalidPkt      = "invalid pkt"
)

var _ error = (*ErrorDecodePkt)(nil)

type ErrorDecodePkt struct {
	event   string
	errType string
	raw     error
}

func (e *ErrorDecodePkt) Error() string {
	return fmt.Sprintf("event: %s, errType: %s, rawErr: %v", e.event, e.errType, e.raw)
}

func (e *ErrorDecodePkt) Unwrap() error {
	return e.raw
}

// Type 返回错误分类，供链接管理层决定是否中断链接
func (e *ErrorDecodePkt) Type() string {
	return e.errType
}

// IsIncomplete 数据不足时返回 true，调用方应继续等待字节而不是报错
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrIncompleteHeader) || errors.Is(err, ErrIncompleteBody)
}
