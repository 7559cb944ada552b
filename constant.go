package mysql

// 各回复数据包的标记字节
const (
	MarkerOK  byte = 0x00
	MarkerEOF byte = 0xFE
	MarkerERR byte = 0xFF
)

// MaxPacketSize 包头 length 字段为 3 字节，payload 最大 2^24 - 1
const MaxPacketSize = 1<<24 - 1

// 参考：https://dev.mysql.com/doc/dev/mysql-server/latest/group__group__cs__capabilities__flags.html
const (
	CapClientLongPassword         = 0
	CapClientColumnLongFlag       = 2
	CapClientConnectWithDB        = 3
	CapClientProtocol41           = 9
	CapClientTransactions         = 13
	CapClientAuthentication41     = 15
	CapClientMultiResults         = 16
	CapClientPluginAuth           = 19
	CapClientSessionTrack         = 23
	CapClientDeprecateEof         = 24
	CapClientOptResultSetMetadata = 25
	CapClientOptQueryAttributes   = 27
)

// 参考：https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_command_phase.html
const (
	ComQuit        byte = 0x01
	ComInitDB      byte = 0x02
	ComQuery       byte = 0x03
	ComFieldList   byte = 0x04
	ComStatistics  byte = 0x09
	ComProcessInfo byte = 0x0A
	ComPing        byte = 0x0E
	ComChangeUser  byte = 0x11
	ComStmtPrepare byte = 0x16
	ComStmtExecute byte = 0x17
	ComStmtClose   byte = 0x19
	ComStmtReset   byte = 0x1A
	ComResetConn   byte = 0x1F
)

var com2Name = map[byte]string{
	ComQuit:        "COM_QUIT",
	ComInitDB:      "COM_INIT_DB",
	ComQuery:       "COM_QUERY",
	ComFieldList:   "COM_FIELD_LIST",
	ComStatistics:  "COM_STATISTICS",
	ComProcessInfo: "COM_PROCESS_INFO",
	ComPing:        "COM_PING",
	ComChangeUser:  "COM_CHANGE_USER",
	ComStmtPrepare: "COM_STMT_PREPARE",
	ComStmtExecute: "COM_STMT_EXECUTE",
	ComStmtClose:   "COM_STMT_CLOSE",
	ComStmtReset:   "COM_STMT_RESET",
	ComResetConn:   "COM_RESET_CONNECTION",
}

// 参考：https://dev.mysql.com/doc/dev/mysql-server/latest/mysql__com_8h.html
const (
	SrvStatusInTrans             = 0
	SrvStatusAutoCommit          = 1
	SrvStatusMoreResultsExist    = 3
	SrvStatusSessionStateChanged = 14
)

// SrvStatus OK/EOF 数据包中的 status_flags 字段
type SrvStatus uint16

func (s *SrvStatus) Set(pos int) {
	*s |= 1 << pos
}

func (s *SrvStatus) UnSet(pos int) {
	*s &= ^(1 << pos)
}

func (s SrvStatus) IsSet(pos int) bool {
	return s&(1<<pos) != 0
}
