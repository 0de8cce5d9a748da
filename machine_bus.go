// machine_bus.go - Host memory and port bus for the IntuitionZ80 core

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionZ80
Buy me a coffee: https://ko-fi.com/intuition/tip

License: GPLv3 or later
*/

package main

const z80AddressSpace = 0x10000

// MachineBus is the reference host: flat 64KB RAM, a 16-bit port space
// and a tact accumulator a cycle-exact renderer can hang off. The CPU
// only ever touches it through the Z80Bus methods.
type MachineBus struct {
	mem   [z80AddressSpace]byte
	ports [z80AddressSpace]byte
	tacts uint64
}

func NewMachineBus() *MachineBus {
	return &MachineBus{}
}

func (b *MachineBus) Read(addr uint16) byte {
	return b.mem[addr]
}

func (b *MachineBus) Write(addr uint16, value byte) {
	b.mem[addr] = value
}

func (b *MachineBus) In(port uint16) byte {
	return b.ports[port]
}

func (b *MachineBus) Out(port uint16, value byte) {
	b.ports[port] = value
}

func (b *MachineBus) Tick(tacts int) {
	b.tacts += uint64(tacts)
}

func (b *MachineBus) Tacts() uint64 {
	return b.tacts
}

// LoadProgram copies a raw image into RAM at org, wrapping at the top
// of the address space like the real part would.
func (b *MachineBus) LoadProgram(org uint16, program []byte) {
	for i, value := range program {
		b.mem[org+uint16(i)] = value
	}
}

func (b *MachineBus) Peek(addr uint16) byte {
	return b.mem[addr]
}

func (b *MachineBus) Poke(addr uint16, value byte) {
	b.mem[addr] = value
}

func (b *MachineBus) PeekPort(port uint16) byte {
	return b.ports[port]
}

func (b *MachineBus) PokePort(port uint16, value byte) {
	b.ports[port] = value
}

func (b *MachineBus) Reset() {
	for i := range b.mem {
		b.mem[i] = 0
	}
	for i := range b.ports {
		b.ports[i] = 0
	}
	b.tacts = 0
}
