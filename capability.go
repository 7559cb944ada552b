package mysql

// CapFlag 握手阶段协商出来的能力标识，解码器只读
type CapFlag uint32

func (c *CapFlag) Set(pos int) {
	*c |= 1 << pos
}

func (c *CapFlag) UnSet(pos int) {
	*c &= ^(1 << pos)
}

func (c CapFlag) IsSet(pos int) bool {
	return c&(1<<pos) != 0
}

func newCapFlag(cpbs ...int) (cf CapFlag) {
	for _, cpb := range cpbs {
		cf.Set(cpb)
	}
	return
}

// combCapFlag 握手包中能力标识分为高低两个 16 位传输
func combCapFlag(partOne, partTwo uint16) CapFlag {
	ret := CapFlag(partOne)
	ret |= CapFlag(partTwo) << 16
	return ret
}
