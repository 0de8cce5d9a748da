package main

import "testing"

func TestZ80LDIXImmediate(t *testing.T) {
	rig := newCPUZ80TestRig()
	rig.resetAndLoad(0x0000, []byte{0xDD, 0x21, 0x34, 0x12}) // LD IX,$1234

	rig.step()

	requireZ80EqualU16(t, "IX", rig.cpu.IX, 0x1234)
	requireZ80EqualU16(t, "PC", rig.cpu.PC, 0x0004)
	requireZ80Tacts(t, rig.cpu, 14)
}

func TestZ80LDFromIndexed(t *testing.T) {
	rig := newCPUZ80TestRig()
	rig.resetAndLoad(0x0000, []byte{0xDD, 0x7E, 0x05}) // LD A,(IX+5)
	rig.cpu.IX = 0x1000
	rig.bus.mem[0x1005] = 0x42

	rig.step()

	requireZ80EqualU8(t, "A", rig.cpu.A, 0x42)
	requireZ80EqualU16(t, "WZ", rig.cpu.WZ, 0x1005)
	requireZ80Tacts(t, rig.cpu, 19)
}

func TestZ80LDToIndexedNegativeDisp(t *testing.T) {
	rig := newCPUZ80TestRig()
	rig.resetAndLoad(0x0000, []byte{0xFD, 0x70, 0xFE}) // LD (IY-2),B
	rig.cpu.IY = 0x2000
	rig.cpu.B = 0x99

	rig.step()

	requireZ80EqualU8(t, "M[0x1FFE]", rig.bus.mem[0x1FFE], 0x99)
	requireZ80Tacts(t, rig.cpu, 19)
}

func TestZ80LDIndexedImmediate(t *testing.T) {
	rig := newCPUZ80TestRig()
	rig.resetAndLoad(0x0000, []byte{0xDD, 0x36, 0x03, 0xAB}) // LD (IX+3),$AB
	rig.cpu.IX = 0x3000

	rig.step()

	requireZ80EqualU8(t, "M[0x3003]", rig.bus.mem[0x3003], 0xAB)
	requireZ80Tacts(t, rig.cpu, 19)
}

func TestZ80ALUIndexed(t *testing.T) {
	rig := newCPUZ80TestRig()
	rig.resetAndLoad(0x0000, []byte{0xDD, 0x86, 0x01}) // ADD A,(IX+1)
	rig.cpu.IX = 0x1000
	rig.cpu.A = 0x10
	rig.bus.mem[0x1001] = 0x05

	rig.step()

	requireZ80EqualU8(t, "A", rig.cpu.A, 0x15)
	requireZ80Tacts(t, rig.cpu, 19)
}

func TestZ80INCDECIndexed(t *testing.T) {
	rig := newCPUZ80TestRig()
	rig.resetAndLoad(0x0000, []byte{0xDD, 0x34, 0x00}) // INC (IX+0)
	rig.cpu.IX = 0x1000
	rig.bus.mem[0x1000] = 0x7F

	rig.step()

	requireZ80EqualU8(t, "M[0x1000]", rig.bus.mem[0x1000], 0x80)
	if rig.cpu.F&z80FlagPV == 0 {
		t.Fatalf("INC 0x7F should set P/V")
	}
	requireZ80Tacts(t, rig.cpu, 23)
}

// Undocumented halves: the prefix folds H/L into IXH/IXL.
func TestZ80IndexRegisterHalves(t *testing.T) {
	rig := newCPUZ80TestRig()
	rig.resetAndLoad(0x0000, []byte{
		0xDD, 0x26, 0x12, // LD IXH,$12
		0xDD, 0x2E, 0x34, // LD IXL,$34
		0xDD, 0x7C, // LD A,IXH
	})

	rig.stepInstructions(3)

	requireZ80EqualU16(t, "IX", rig.cpu.IX, 0x1234)
	requireZ80EqualU8(t, "A", rig.cpu.A, 0x12)
	requireZ80EqualU16(t, "HL", rig.cpu.HL(), 0x0000)
	requireZ80Tacts(t, rig.cpu, 30)
}

// Plain registers in indexed loads stay plain: LD H,(IX+d) writes H.
func TestZ80IndexedMemLoadUsesPlainRegister(t *testing.T) {
	rig := newCPUZ80TestRig()
	rig.resetAndLoad(0x0000, []byte{0xDD, 0x66, 0x00}) // LD H,(IX+0)
	rig.cpu.IX = 0x1000
	rig.bus.mem[0x1000] = 0x7E

	rig.step()

	requireZ80EqualU8(t, "H", rig.cpu.H, 0x7E)
	requireZ80EqualU16(t, "IX", rig.cpu.IX, 0x1000)
}

func TestZ80ADDIXAndExchange(t *testing.T) {
	rig := newCPUZ80TestRig()
	rig.resetAndLoad(0x0000, []byte{0xDD, 0x29}) // ADD IX,IX
	rig.cpu.IX = 0x4000

	rig.step()

	requireZ80EqualU16(t, "IX", rig.cpu.IX, 0x8000)
	requireZ80Tacts(t, rig.cpu, 15)

	rig.resetAndLoad(0x0000, []byte{0xDD, 0xE3}) // EX (SP),IX
	rig.cpu.IX = 0x1234
	rig.cpu.SP = 0x8000
	rig.bus.mem[0x8000] = 0xCD
	rig.bus.mem[0x8001] = 0xAB
	rig.step()
	requireZ80EqualU16(t, "IX", rig.cpu.IX, 0xABCD)
	requireZ80Tacts(t, rig.cpu, 23)
}

func TestZ80PushPopIX(t *testing.T) {
	rig := newCPUZ80TestRig()
	rig.resetAndLoad(0x0000, []byte{
		0xDD, 0xE5, // PUSH IX
		0xFD, 0xE1, // POP IY
	})
	rig.cpu.IX = 0xBEEF
	rig.cpu.SP = 0x8000

	rig.stepInstructions(2)

	requireZ80EqualU16(t, "IY", rig.cpu.IY, 0xBEEF)
	requireZ80EqualU16(t, "SP", rig.cpu.SP, 0x8000)
	requireZ80Tacts(t, rig.cpu, 29)
}

func TestZ80IndexedBitSetWithStoreBack(t *testing.T) {
	rig := newCPUZ80TestRig()
	rig.resetAndLoad(0x0000, []byte{0xDD, 0xCB, 0x02, 0xC0}) // SET 0,(IX+2),B
	rig.cpu.IX = 0x1000
	rig.bus.mem[0x1002] = 0x40

	rig.step()

	requireZ80EqualU8(t, "M[0x1002]", rig.bus.mem[0x1002], 0x41)
	requireZ80EqualU8(t, "B", rig.cpu.B, 0x41) // undocumented store-back
	requireZ80EqualU16(t, "WZ", rig.cpu.WZ, 0x1002)
	requireZ80Tacts(t, rig.cpu, 23)
}

func TestZ80IndexedBitMemOnly(t *testing.T) {
	rig := newCPUZ80TestRig()
	rig.resetAndLoad(0x0000, []byte{0xFD, 0xCB, 0x01, 0x86}) // RES 0,(IY+1)
	rig.cpu.IY = 0x2000
	rig.cpu.B = 0x77
	rig.bus.mem[0x2001] = 0xFF

	rig.step()

	requireZ80EqualU8(t, "M[0x2001]", rig.bus.mem[0x2001], 0xFE)
	requireZ80EqualU8(t, "B", rig.cpu.B, 0x77) // slot 6 means no store-back
	requireZ80Tacts(t, rig.cpu, 23)
}

func TestZ80IndexedBITTiming(t *testing.T) {
	rig := newCPUZ80TestRig()
	rig.resetAndLoad(0x0000, []byte{0xDD, 0xCB, 0x00, 0x46}) // BIT 0,(IX+0)
	rig.cpu.IX = 0x1000
	rig.bus.mem[0x1000] = 0x01

	rig.step()

	if rig.cpu.F&z80FlagZ != 0 {
		t.Fatalf("BIT of set bit should clear Z")
	}
	// R3/R5 come from the effective-address high byte.
	requireZ80EqualU8(t, "F&X|Y", rig.cpu.F&(z80FlagX|z80FlagY), 0x10&(z80FlagX|z80FlagY))
	requireZ80Tacts(t, rig.cpu, 20)
}

func TestZ80IndexedRotateStoreBack(t *testing.T) {
	rig := newCPUZ80TestRig()
	rig.resetAndLoad(0x0000, []byte{0xDD, 0xCB, 0x00, 0x01}) // RLC (IX+0),C
	rig.cpu.IX = 0x1000
	rig.bus.mem[0x1000] = 0x81

	rig.step()

	requireZ80EqualU8(t, "M[0x1000]", rig.bus.mem[0x1000], 0x03)
	requireZ80EqualU8(t, "C", rig.cpu.C, 0x03)
	if rig.cpu.F&z80FlagC == 0 {
		t.Fatalf("RLC should carry bit 7 out")
	}
}

func TestZ80JPIndexed(t *testing.T) {
	rig := newCPUZ80TestRig()
	rig.resetAndLoad(0x0000, []byte{0xFD, 0xE9}) // JP (IY)
	rig.cpu.IY = 0x4000

	rig.step()

	requireZ80EqualU16(t, "PC", rig.cpu.PC, 0x4000)
	requireZ80Tacts(t, rig.cpu, 8)
}
