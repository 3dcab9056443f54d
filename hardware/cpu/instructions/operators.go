// This file is part of Gopher1541.
//
// Gopher1541 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher1541 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher1541.  If not, see <https://www.gnu.org/licenses/>.

package instructions

// Operator identifies the operation performed by an instruction,
// independently of its addressing mode.
type Operator int

// List of valid Operator values. Undocumented operators are named after
// their most common mnemonic.
const (
	Nop Operator = iota
	Adc
	Ahx
	Anc
	And
	Arr
	Asl
	Asr
	Axs
	Bcc
	Bcs
	Beq
	Bit
	Bmi
	Bne
	Bpl
	Brk
	Bvc
	Bvs
	Clc
	Cld
	Cli
	Clv
	Cmp
	Cpx
	Cpy
	Dcp
	Dec
	Dex
	Dey
	Eor
	Inc
	Inx
	Iny
	Isc
	Jmp
	Jsr
	Kil
	Las
	Lax
	Lda
	Ldx
	Ldy
	Lsr
	Ora
	Pha
	Php
	Pla
	Plp
	Rla
	Rol
	Ror
	Rra
	Rti
	Rts
	Sax
	Sbc
	Sec
	Sed
	Sei
	Shx
	Shy
	Slo
	Sre
	Sta
	Stx
	Sty
	Tas
	Tax
	Tay
	Tsx
	Txa
	Txs
	Tya
	Xaa
)

func (op Operator) String() string {
	if op < 0 || int(op) >= len(mnemonics) {
		return "???"
	}
	return mnemonics[op]
}

// IsUndocumented returns true for operators that are not part of the
// published instruction set.
func (op Operator) IsUndocumented() bool {
	switch op {
	case Ahx, Anc, Arr, Asr, Axs, Dcp, Isc, Kil, Las, Lax, Rla, Rra, Sax, Shx, Shy, Slo, Sre, Tas, Xaa:
		return true
	}
	return false
}

var mnemonics = [...]string{
	Nop: "NOP",
	Adc: "ADC",
	Ahx: "AHX",
	Anc: "ANC",
	And: "AND",
	Arr: "ARR",
	Asl: "ASL",
	Asr: "ASR",
	Axs: "AXS",
	Bcc: "BCC",
	Bcs: "BCS",
	Beq: "BEQ",
	Bit: "BIT",
	Bmi: "BMI",
	Bne: "BNE",
	Bpl: "BPL",
	Brk: "BRK",
	Bvc: "BVC",
	Bvs: "BVS",
	Clc: "CLC",
	Cld: "CLD",
	Cli: "CLI",
	Clv: "CLV",
	Cmp: "CMP",
	Cpx: "CPX",
	Cpy: "CPY",
	Dcp: "DCP",
	Dec: "DEC",
	Dex: "DEX",
	Dey: "DEY",
	Eor: "EOR",
	Inc: "INC",
	Inx: "INX",
	Iny: "INY",
	Isc: "ISC",
	Jmp: "JMP",
	Jsr: "JSR",
	Kil: "KIL",
	Las: "LAS",
	Lax: "LAX",
	Lda: "LDA",
	Ldx: "LDX",
	Ldy: "LDY",
	Lsr: "LSR",
	Ora: "ORA",
	Pha: "PHA",
	Php: "PHP",
	Pla: "PLA",
	Plp: "PLP",
	Rla: "RLA",
	Rol: "ROL",
	Ror: "ROR",
	Rra: "RRA",
	Rti: "RTI",
	Rts: "RTS",
	Sax: "SAX",
	Sbc: "SBC",
	Sec: "SEC",
	Sed: "SED",
	Sei: "SEI",
	Shx: "SHX",
	Shy: "SHY",
	Slo: "SLO",
	Sre: "SRE",
	Sta: "STA",
	Stx: "STX",
	Sty: "STY",
	Tas: "TAS",
	Tax: "TAX",
	Tay: "TAY",
	Tsx: "TSX",
	Txa: "TXA",
	Txs: "TXS",
	Tya: "TYA",
	Xaa: "XAA",
}
