package chip8

// Exec runs the single decoded instruction in against st/iface and
// returns the next PC. It is the one place all 34 operations are
// implemented, reused verbatim by the interpreter, the dynarec and
// the AOT trampoline -- this is what guarantees the three backends
// produce identical traces (spec.md §8's cross-backend property).
//
// Grounded on the teacher's instructions.go, function-per-opcode, but
// rewritten as pure functions of (State, Interface, Instruction)
// instead of VM methods, and fixed to the conventions spec.md pins:
// modern SHR/SHL (operate on Vx, ignore Vy -- the teacher's own
// _0x0006/_0x000E read Vy, the classic behavior spec.md explicitly
// calls out as ambiguous and resolves the other way), wrap-at-plot DRW
// instead of the teacher's flat-index clip, and I left unchanged by
// LD [I],Vx / LD Vx,[I].
func Exec(st *State, iface *Interface, in Instruction) (nextPC uint16, err error) {
	switch in.Kind {
	case OpCLS:
		st.Clear()
		iface.PublishFrame(&st.FrameBuffer)
		return st.PC + 2, nil

	case OpRET:
		addr, err := st.Pop()
		if err != nil {
			return 0, err
		}
		return addr + 2, nil

	case OpJP:
		return in.NNN, nil

	case OpCALL:
		if err := st.Push(st.PC); err != nil {
			return 0, err
		}
		return in.NNN, nil

	case OpSE_VX_KK:
		if st.V[in.X] == in.KK {
			return st.PC + 4, nil
		}
		return st.PC + 2, nil

	case OpSNE_VX_KK:
		if st.V[in.X] != in.KK {
			return st.PC + 4, nil
		}
		return st.PC + 2, nil

	case OpSE_VX_VY:
		if st.V[in.X] == st.V[in.Y] {
			return st.PC + 4, nil
		}
		return st.PC + 2, nil

	case OpSNE_VX_VY:
		if st.V[in.X] != st.V[in.Y] {
			return st.PC + 4, nil
		}
		return st.PC + 2, nil

	case OpSKP:
		if iface.KeyPressed(st.V[in.X]) {
			return st.PC + 4, nil
		}
		return st.PC + 2, nil

	case OpSKNP:
		if !iface.KeyPressed(st.V[in.X]) {
			return st.PC + 4, nil
		}
		return st.PC + 2, nil

	case OpLD_VX_KK:
		st.V[in.X] = in.KK
		return st.PC + 2, nil

	case OpADD_VX_KK:
		st.V[in.X] += in.KK
		return st.PC + 2, nil

	case OpLD_VX_VY:
		st.V[in.X] = st.V[in.Y]
		return st.PC + 2, nil

	case OpOR:
		st.V[in.X] |= st.V[in.Y]
		return st.PC + 2, nil

	case OpAND:
		st.V[in.X] &= st.V[in.Y]
		return st.PC + 2, nil

	case OpXOR:
		st.V[in.X] ^= st.V[in.Y]
		return st.PC + 2, nil

	case OpADD_VX_VY:
		sum := uint16(st.V[in.X]) + uint16(st.V[in.Y])
		st.V[0xF] = boolByte(sum > 0xFF)
		st.V[in.X] = byte(sum)
		return st.PC + 2, nil

	case OpSUB:
		borrow := st.V[in.X] > st.V[in.Y]
		st.V[0xF] = boolByte(borrow)
		st.V[in.X] = st.V[in.X] - st.V[in.Y]
		return st.PC + 2, nil

	case OpSHR:
		vx := st.V[in.X]
		st.V[0xF] = vx & 0x1
		st.V[in.X] = vx >> 1
		return st.PC + 2, nil

	case OpSUBN:
		borrow := st.V[in.Y] > st.V[in.X]
		st.V[0xF] = boolByte(borrow)
		st.V[in.X] = st.V[in.Y] - st.V[in.X]
		return st.PC + 2, nil

	case OpSHL:
		vx := st.V[in.X]
		st.V[0xF] = (vx >> 7) & 0x1
		st.V[in.X] = vx << 1
		return st.PC + 2, nil

	case OpLD_I_NNN:
		st.I = in.NNN
		return st.PC + 2, nil

	case OpJP_V0:
		return in.NNN + uint16(st.V[0]), nil

	case OpRND:
		st.V[in.X] = st.RNG.next(in.KK)
		return st.PC + 2, nil

	case OpDRW:
		collision := false
		ox, oy := int(st.V[in.X]), int(st.V[in.Y])
		for row := 0; row < int(in.N); row++ {
			rowByte := st.Memory[st.maskAddr(st.I+uint16(row))]
			for col := 0; col < 8; col++ {
				if rowByte&(0x80>>uint(col)) == 0 {
					continue
				}
				if st.SetPixel(ox+col, oy+row) {
					collision = true
				}
			}
		}
		st.V[0xF] = boolByte(collision)
		iface.PublishFrame(&st.FrameBuffer)
		return st.PC + 2, nil

	case OpLD_VX_DT:
		st.V[in.X] = iface.DelayTimer()
		return st.PC + 2, nil

	case OpLD_VX_K:
		key, ok := iface.AnyKeyPressed()
		if !ok {
			// block: re-issue the same instruction until a key is down.
			return st.PC, nil
		}
		st.V[in.X] = key
		return st.PC + 2, nil

	case OpLD_DT_VX:
		iface.SetDelayTimer(st.V[in.X])
		return st.PC + 2, nil

	case OpLD_ST_VX:
		iface.SetSoundTimer(st.V[in.X])
		return st.PC + 2, nil

	case OpADD_I_VX:
		st.I += uint16(st.V[in.X])
		return st.PC + 2, nil

	case OpLD_F_VX:
		st.I = uint16(st.V[in.X]) * 5
		return st.PC + 2, nil

	case OpLD_B_VX:
		v := st.V[in.X]
		st.Memory[st.maskAddr(st.I)] = v / 100
		st.Memory[st.maskAddr(st.I+1)] = (v / 10) % 10
		st.Memory[st.maskAddr(st.I+2)] = v % 10
		return st.PC + 2, nil

	case OpLD_I_VX:
		for i := uint16(0); i <= uint16(in.X); i++ {
			st.Memory[st.maskAddr(st.I+i)] = st.V[i]
		}
		return st.PC + 2, nil

	case OpLD_VX_I:
		for i := uint16(0); i <= uint16(in.X); i++ {
			st.V[i] = st.Memory[st.maskAddr(st.I+i)]
		}
		return st.PC + 2, nil

	default:
		return 0, &InvalidOpcodeError{Word: in.Word, PC: st.PC}
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
