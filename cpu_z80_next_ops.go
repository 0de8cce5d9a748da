package main

// Z80N register-select and data ports for NEXTREG emulation.
const (
	nextRegSelectPort = 0x243B
	nextRegDataPort   = 0x253B
)

// initNextOps registers the Z80N (Spectrum Next) extended ED opcodes.
// Only wired when the CPU is constructed with the extended set enabled.
func (c *CPU_Z80) initNextOps() {
	c.extendedOps[0x23] = (*CPU_Z80).opNextSwapnib
	c.extendedOps[0x24] = (*CPU_Z80).opNextMirror
	c.extendedOps[0x27] = (*CPU_Z80).opNextTest
	c.extendedOps[0x30] = (*CPU_Z80).opNextMul
	c.extendedOps[0x31] = (*CPU_Z80).opNextAddHLA
	c.extendedOps[0x32] = (*CPU_Z80).opNextAddDEA
	c.extendedOps[0x33] = (*CPU_Z80).opNextAddBCA
	c.extendedOps[0x34] = (*CPU_Z80).opNextAddHLNN
	c.extendedOps[0x35] = (*CPU_Z80).opNextAddDENN
	c.extendedOps[0x36] = (*CPU_Z80).opNextAddBCNN
	c.extendedOps[0x8A] = (*CPU_Z80).opNextPushNN
	c.extendedOps[0x90] = (*CPU_Z80).opNextOutinb
	c.extendedOps[0x91] = (*CPU_Z80).opNextNextregN
	c.extendedOps[0x92] = (*CPU_Z80).opNextNextregA
	c.extendedOps[0x93] = (*CPU_Z80).opNextPixeldn
	c.extendedOps[0x94] = (*CPU_Z80).opNextPixelad
	c.extendedOps[0x95] = (*CPU_Z80).opNextSetae
	c.extendedOps[0x98] = (*CPU_Z80).opNextJPC
	c.extendedOps[0xA4] = (*CPU_Z80).opNextLdix
	c.extendedOps[0xA5] = (*CPU_Z80).opNextLdws
	c.extendedOps[0xAC] = (*CPU_Z80).opNextLddx
	c.extendedOps[0xB4] = (*CPU_Z80).opNextLdirx
	c.extendedOps[0xB7] = (*CPU_Z80).opNextLdpirx
	c.extendedOps[0xBC] = (*CPU_Z80).opNextLddrx
}

func (c *CPU_Z80) opNextSwapnib() {
	c.A = c.A<<4 | c.A>>4
}

func (c *CPU_Z80) opNextMirror() {
	a := c.A
	a = a&0xF0>>4 | a&0x0F<<4
	a = a&0xCC>>2 | a&0x33<<2
	a = a&0xAA>>1 | a&0x55<<1
	c.A = a
}

// opNextTest is AND without committing A.
func (c *CPU_Z80) opNextTest() {
	value := c.fetchByte()
	c.F = aluLogOpFlags[c.A&value] | z80FlagH
}

func (c *CPU_Z80) opNextMul() {
	c.SetDE(uint16(c.D) * uint16(c.E))
}

func (c *CPU_Z80) opNextAddHLA() {
	c.SetHL(c.HL() + uint16(c.A))
}

func (c *CPU_Z80) opNextAddDEA() {
	c.SetDE(c.DE() + uint16(c.A))
}

func (c *CPU_Z80) opNextAddBCA() {
	c.SetBC(c.BC() + uint16(c.A))
}

func (c *CPU_Z80) opNextAddHLNN() {
	value := c.fetchWord()
	c.delayTacts(2)
	c.SetHL(c.HL() + value)
}

func (c *CPU_Z80) opNextAddDENN() {
	value := c.fetchWord()
	c.delayTacts(2)
	c.SetDE(c.DE() + value)
}

func (c *CPU_Z80) opNextAddBCNN() {
	value := c.fetchWord()
	c.delayTacts(2)
	c.SetBC(c.BC() + value)
}

// opNextPushNN takes its immediate high byte first, unlike every other
// 16-bit immediate on the chip.
func (c *CPU_Z80) opNextPushNN() {
	high := c.fetchByte()
	low := c.fetchByte()
	c.delayTacts(3)
	c.pushWord(uint16(high)<<8 | uint16(low))
}

func (c *CPU_Z80) opNextOutinb() {
	value := c.readMem(c.HL())
	c.writePort(c.BC(), value)
	c.SetHL(c.HL() + 1)
	c.delayTacts(1)
}

func (c *CPU_Z80) opNextNextregN() {
	reg := c.fetchByte()
	value := c.fetchByte()
	c.writePort(nextRegSelectPort, reg)
	c.writePort(nextRegDataPort, value)
}

func (c *CPU_Z80) opNextNextregA() {
	reg := c.fetchByte()
	c.writePort(nextRegSelectPort, reg)
	c.writePort(nextRegDataPort, c.A)
}

// opNextPixeldn steps HL one raster line down in the Spectrum screen
// layout.
func (c *CPU_Z80) opNextPixeldn() {
	hl := c.HL()
	if hl&0x0700 != 0x0700 {
		hl += 0x0100
	} else if hl&0x00E0 != 0x00E0 {
		hl = hl&0xF8FF + 0x20
	} else {
		hl = hl&0xF81F + 0x0800
	}
	c.SetHL(hl)
}

// opNextPixelad computes the screen address of pixel (E,D) into HL.
func (c *CPU_Z80) opNextPixelad() {
	x := uint16(c.E)
	y := uint16(c.D)
	c.SetHL(0x4000 | y&0xC0<<5 | y&0x07<<8 | y&0x38<<2 | x>>3)
}

func (c *CPU_Z80) opNextSetae() {
	c.A = 0x80 >> (c.E & 0x07)
}

func (c *CPU_Z80) opNextJPC() {
	value := c.readPort(c.BC())
	c.delayTacts(1)
	c.PC = c.PC&0xC000 | uint16(value)<<6
}

// blockLDX moves a byte like LDI/LDD but skips the write when the byte
// equals A, and always steps DE forward. Flags are untouched except
// P/V, which tracks BC like the classic block moves.
func (c *CPU_Z80) blockLDX(dir int32) {
	value := c.readMem(c.HL())
	if value != c.A {
		c.writeMem(c.DE(), value)
	} else {
		c.delayTacts(3)
	}
	c.delayTacts(2)
	c.SetHL(uint16(int32(c.HL()) + dir))
	c.SetDE(c.DE() + 1)
	c.SetBC(c.BC() - 1)
	if c.BC() != 0 {
		c.F |= z80FlagPV
	} else {
		c.F &^= z80FlagPV
	}
}

func (c *CPU_Z80) opNextLdix() {
	c.blockLDX(1)
}

func (c *CPU_Z80) opNextLddx() {
	c.blockLDX(-1)
}

func (c *CPU_Z80) opNextLdirx() {
	c.blockLDX(1)
	if c.BC() != 0 {
		c.delayTacts(5)
		c.PC -= 2
	}
}

func (c *CPU_Z80) opNextLddrx() {
	c.blockLDX(-1)
	if c.BC() != 0 {
		c.delayTacts(5)
		c.PC -= 2
	}
}

// opNextLdws: LD (DE),(HL) then INC L / INC D, with INC D's flags.
func (c *CPU_Z80) opNextLdws() {
	value := c.readMem(c.HL())
	c.writeMem(c.DE(), value)
	c.L++
	c.D = c.inc8(c.D)
}

// opNextLdpirx is the pattern-fill repeat: the source address keeps
// HL's top 13 bits and takes its low 3 from E.
func (c *CPU_Z80) opNextLdpirx() {
	addr := c.HL()&0xFFF8 | uint16(c.E)&0x07
	value := c.readMem(addr)
	if value != c.A {
		c.writeMem(c.DE(), value)
	} else {
		c.delayTacts(3)
	}
	c.delayTacts(2)
	c.SetDE(c.DE() + 1)
	c.SetBC(c.BC() - 1)
	if c.BC() != 0 {
		c.delayTacts(5)
		c.PC -= 2
	}
}
