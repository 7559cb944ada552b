package mysql

import (
	"github.com/sirupsen/logrus"
)

// Phase 链接所处的协议阶段，用于消歧数据包语义
type Phase uint8

const (
	PhaseInitiated Phase = iota
	PhaseAuthDone
	PhasePendingResponse
)

var phase2Name = map[Phase]string{
	PhaseInitiated:       "Initiated",
	PhaseAuthDone:        "AuthDone",
	PhasePendingResponse: "PendingResponse",
}

func (p Phase) String() string {
	if name, exist := phase2Name[p]; exist {
		return name
	}
	return "Unknown"
}

// Direction 数据包的流向，供链接管理层标注流量
type Direction uint8

const (
	DirectionC2S Direction = iota
	DirectionS2C
)

func (d Direction) String() string {
	if d == DirectionC2S {
		return "C2S"
	}
	return "S2C"
}

// Connection 单条链接的解码上下文。阶段切换由外部协作方驱动：握手方在认证
// 成功后调用 MarkAuthDone；命令分发方在发送命令时调用 MarkPendingResponse，
// 收到终结回复包（Ok/Err/Eof）后调用 MarkResponseDone。partialData 由 I/O 方
// 在读到不完整帧时暂存，凑齐完整帧交给 Frame 后清除；本结构自身不做读循环。
//
// 不同链接的 Connection 之间没有共享状态，可以各自并行处理；单条链接内的
// 数据包必须按到达顺序解码，否则阶段相关的类型判定会错乱
type Connection struct {
	phase       Phase
	partialData []byte
	lastCommand *Command
	capFlag     *CapFlag
}

// NewConnection 链接建立时创建，初始处于 Initiated 阶段。capFlag 为握手协商
// 结果的引用，解码期间只读
func NewConnection(capFlag *CapFlag) *Connection {
	return &Connection{
		phase:   PhaseInitiated,
		capFlag: capFlag,
	}
}

func (c *Connection) Phase() Phase {
	return c.phase
}

func (c *Connection) CapFlag() CapFlag {
	if c.capFlag == nil {
		return 0
	}
	return *c.capFlag
}

func (c *Connection) LastCommand() *Command {
	return c.lastCommand
}

// MarkAuthDone 认证完成。任何阶段都不会再回到 Initiated
func (c *Connection) MarkAuthDone() {
	c.phase = PhaseAuthDone
}

// MarkPendingResponse 命令已发出，等待服务端回复
func (c *Connection) MarkPendingResponse(cmd *Command) {
	c.phase = PhasePendingResponse
	c.lastCommand = cmd
	if cmd != nil {
		logrus.Debugf("conn pending response, direction: %s, cmd: %s", DirectionC2S, cmd)
	}
}

// MarkResponseDone 收到终结回复包，回到 AuthDone，等待下一条命令
func (c *Connection) MarkResponseDone() {
	c.phase = PhaseAuthDone
}

// SetPartialData 暂存不完整帧的字节。拷贝一份，调用方可以复用入参缓冲
func (c *Connection) SetPartialData(data []byte) {
	temp := make([]byte, len(data))
	copy(temp, data)
	c.partialData = temp
}

func (c *Connection) UnsetPartialData() {
	c.partialData = nil
}

func (c *Connection) PartialData() []byte {
	return c.partialData
}

// Frame 以链接当前阶段分帧，等价于 Frame(data, c.Phase())
func (c *Connection) Frame(data []byte) (*Packet, error) {
	return Frame(data, c.phase)
}
