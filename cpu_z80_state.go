package main

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Z80State is the bulk snapshot exchanged with the host. Field order is
// the serialization order; tacts travel as two 32-bit halves so the
// layout has no 64-bit alignment concerns on any host.
type Z80State struct {
	AF  uint16
	BC  uint16
	DE  uint16
	HL  uint16
	AF2 uint16
	BC2 uint16
	DE2 uint16
	HL2 uint16
	I   byte
	R   byte
	PC  uint16
	SP  uint16
	IX  uint16
	IY  uint16
	WZ  uint16

	TactsL uint32
	TactsH uint32

	StateFlags                   byte
	IFF1                         bool
	IFF2                         bool
	InterruptMode                byte
	InterruptBlocked             bool
	InOpExecution                bool
	PrefixMode                   byte
	IndexMode                    byte
	MaskableInterruptModeEntered bool
	OpCode                       byte
	UseGateArrayContention       bool
}

func (c *CPU_Z80) GetState() Z80State {
	return Z80State{
		AF:  c.AF(),
		BC:  c.BC(),
		DE:  c.DE(),
		HL:  c.HL(),
		AF2: c.AF2(),
		BC2: c.BC2(),
		DE2: c.DE2(),
		HL2: c.HL2(),
		I:   c.I,
		R:   c.R,
		PC:  c.PC,
		SP:  c.SP,
		IX:  c.IX,
		IY:  c.IY,
		WZ:  c.WZ,

		TactsL: uint32(c.Tacts),
		TactsH: uint32(c.Tacts >> 32),

		StateFlags:                   c.signalFlags,
		IFF1:                         c.IFF1,
		IFF2:                         c.IFF2,
		InterruptMode:                c.IM,
		InterruptBlocked:             c.interruptBlocked,
		InOpExecution:                c.inOpExecution,
		PrefixMode:                   c.prefixMode,
		IndexMode:                    c.indexMode,
		MaskableInterruptModeEntered: c.maskableEntered,
		OpCode:                       c.opCode,
		UseGateArrayContention:       c.UseGateArrayContention,
	}
}

func (c *CPU_Z80) UpdateState(s Z80State) {
	c.SetAF(s.AF)
	c.SetBC(s.BC)
	c.SetDE(s.DE)
	c.SetHL(s.HL)
	c.SetAF2(s.AF2)
	c.SetBC2(s.BC2)
	c.SetDE2(s.DE2)
	c.SetHL2(s.HL2)
	c.I = s.I
	c.R = s.R
	c.PC = s.PC
	c.SP = s.SP
	c.IX = s.IX
	c.IY = s.IY
	c.WZ = s.WZ

	c.Tacts = uint64(s.TactsH)<<32 | uint64(s.TactsL)

	c.signalFlags = s.StateFlags
	c.IFF1 = s.IFF1
	c.IFF2 = s.IFF2
	c.IM = s.InterruptMode
	c.interruptBlocked = s.InterruptBlocked
	c.inOpExecution = s.InOpExecution
	c.prefixMode = s.PrefixMode
	c.indexMode = s.IndexMode
	c.maskableEntered = s.MaskableInterruptModeEntered
	c.opCode = s.OpCode
	c.UseGateArrayContention = s.UseGateArrayContention
}

// SaveState writes the snapshot in the fixed little-endian layout.
func (c *CPU_Z80) SaveState(w io.Writer) error {
	s := c.GetState()
	if err := binary.Write(w, binary.LittleEndian, &s); err != nil {
		return fmt.Errorf("z80: save state: %w", err)
	}
	return nil
}

func (c *CPU_Z80) LoadState(r io.Reader) error {
	var s Z80State
	if err := binary.Read(r, binary.LittleEndian, &s); err != nil {
		return fmt.Errorf("z80: load state: %w", err)
	}
	c.UpdateState(s)
	return nil
}

// --- memory status bitmaps -------------------------------------------

// The three bitmaps cover the whole 64K address space, one bit per
// address: opcode fetches, operand reads, and writes. The test harness
// reads them; the core only pays for them when instrumentation is on.

func (c *CPU_Z80) ExecutionFlowTouched(addr uint16) bool {
	return c.execFlow[addr>>5]&(1<<(addr&31)) != 0
}

func (c *CPU_Z80) MemoryReadTouched(addr uint16) bool {
	return c.memReads[addr>>5]&(1<<(addr&31)) != 0
}

func (c *CPU_Z80) MemoryWriteTouched(addr uint16) bool {
	return c.memWrites[addr>>5]&(1<<(addr&31)) != 0
}

func (c *CPU_Z80) ClearMemoryStatus() {
	for i := range c.execFlow {
		c.execFlow[i] = 0
		c.memReads[i] = 0
		c.memWrites[i] = 0
	}
}
