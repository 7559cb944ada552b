package mysql

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func Test_headerRoundTrip(t *testing.T) {
	convey.Convey("", t, func() {
		testCases := []*PacketHeader{
			{Size: 0, Seq: 0},
			{Size: 1, Seq: 255},
			{Size: 7, Seq: 3},
			{Size: MaxPacketSize, Seq: 128},
		}

		for _, hdr := range testCases {
			raw, err := marshalHeader(hdr)
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(raw), convey.ShouldEqual, 4)

			cursor := raw
			got, err := extractHeader(&cursor)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldResemble, hdr)
			convey.So(len(cursor), convey.ShouldEqual, 0)
		}
	})
}

func Test_marshalHeaderOverflow(t *testing.T) {
	convey.Convey("", t, func() {
		_, err := marshalHeader(&PacketHeader{Size: 1 << 24})
		convey.So(err, convey.ShouldNotBeNil)

		decodeErr, ok := err.(*ErrorDecodePkt)
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(decodeErr.Type(), convey.ShouldEqual, DecodeErrTypeInvalidPkt)
	})
}

func Test_Frame(t *testing.T) {
	convey.Convey("", t, func() {
		convey.Convey("incomplete header", func() {
			for _, data := range [][]byte{nil, {}, {0x01}, {0x01, 0x00, 0x00}} {
				_, err := Frame(data, PhaseAuthDone)
				convey.So(err, convey.ShouldEqual, ErrIncompleteHeader)
				convey.So(IsIncomplete(err), convey.ShouldBeTrue)
			}
		})

		convey.Convey("incomplete body", func() {
			// 头部声明 7 字节，只给 6 字节
			data := append([]byte{0x07, 0x00, 0x00, 0x00}, make([]byte, 6)...)
			_, err := Frame(data, PhaseAuthDone)
			convey.So(err, convey.ShouldEqual, ErrIncompleteBody)
			convey.So(IsIncomplete(err), convey.ShouldBeTrue)
		})

		convey.Convey("empty body is rejected before classification", func() {
			_, err := Frame([]byte{0x00, 0x00, 0x00, 0x01}, PhaseAuthDone)
			convey.So(err, convey.ShouldNotBeNil)

			decodeErr, ok := err.(*ErrorDecodePkt)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(decodeErr.Type(), convey.ShouldEqual, DecodeErrTypeInvalidPkt)
		})

		convey.Convey("trailing bytes are not consumed", func() {
			body := []byte{0xFF, 0x01, 0x02}
			data := append([]byte{0x03, 0x00, 0x00, 0x05}, body...)
			data = append(data, 0xAA, 0xBB)

			pkt, err := Frame(data, PhaseAuthDone)
			convey.So(err, convey.ShouldBeNil)
			convey.So(pkt.Header, convey.ShouldResemble, &PacketHeader{Size: 3, Seq: 5})
			convey.So(pkt.Body, convey.ShouldResemble, body)
		})
	})
}

func frameBody(body []byte, phase Phase) (*Packet, error) {
	data := append(marshalInt(uint64(len(body)), 3), 0x00)
	return Frame(append(data, body...), phase)
}

func Test_getPktType(t *testing.T) {
	convey.Convey("", t, func() {
		testCases := []struct {
			name  string
			body  []byte
			phase Phase
			want  PktType
		}{
			{
				name:  "ok needs marker and at least 7 bytes",
				body:  []byte{0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00},
				phase: PhaseAuthDone,
				want:  PktTypeOk,
			},
			{
				name:  "short 0x00 body is not ok",
				body:  []byte{0x00, 0x00, 0x00},
				phase: PhaseAuthDone,
				want:  PktTypeOther,
			},
			{
				name:  "eof needs marker and at most 9 bytes",
				body:  []byte{0xFE, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
				phase: PhaseAuthDone,
				want:  PktTypeEof,
			},
			{
				name:  "long 0xFE body is not eof",
				body:  append([]byte{0xFE}, make([]byte, 12)...),
				phase: PhaseAuthDone,
				want:  PktTypeOther,
			},
			{
				name:  "err marker wins regardless of length",
				body:  []byte{0xFF, 0x84, 0x04},
				phase: PhaseInitiated,
				want:  PktTypeErr,
			},
			{
				name:  "command while pending response",
				body:  []byte{0x03, 'S', 'E', 'L'},
				phase: PhasePendingResponse,
				want:  PktTypeCommand,
			},
			{
				name:  "same bytes outside command phase",
				body:  []byte{0x03, 'S', 'E', 'L'},
				phase: PhaseAuthDone,
				want:  PktTypeOther,
			},
		}

		for _, testCase := range testCases {
			convey.Convey(testCase.name, func() {
				pkt, err := frameBody(testCase.body, testCase.phase)
				convey.So(err, convey.ShouldBeNil)
				convey.So(pkt.Type(), convey.ShouldEqual, testCase.want)
			})
		}
	})
}

func Test_Serialize(t *testing.T) {
	convey.Convey("", t, func() {
		body := []byte{0xFF, 0x84, 0x04}
		data := append([]byte{0x03, 0x00, 0x00, 0x02}, body...)

		pkt, err := Frame(data, PhaseAuthDone)
		convey.So(err, convey.ShouldBeNil)

		raw, err := pkt.Serialize()
		convey.So(err, convey.ShouldBeNil)
		convey.So(raw, convey.ShouldResemble, data)
	})
}
