package mysql

import (
	"reflect"
	"unsafe"
)

func Str2Byte(s string) []byte {
	strHeader := (*reflect.StringHeader)(unsafe.Pointer(&s))
	sliceHeader := reflect.SliceHeader{
		Data: strHeader.Data,
		Len:  strHeader.Len,
		Cap:  strHeader.Len,
	}
	return *(*[]byte)(unsafe.Pointer(&sliceHeader))
}

func Byte2Str(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}
