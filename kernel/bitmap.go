package kernel

// mapTable is the 256-entry lookup used by topPriority to find the index
// of the lowest set bit within a byte lane in O(1). Ported verbatim from
// the reference port's OS_MapTable (original_source/Source/Portable/
// RISC-V QingkeV4/os_cpu.c) — table[b] is the bit-index of the lowest set
// bit of b, for b != 0; table[0] is unused (top priority is only called
// with a non-zero map).
var mapTable = [256]uint8{
	0, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	5, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	6, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	5, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	7, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	5, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	6, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	5, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
}

// topPriority returns the index of the lowest set bit of m — the highest
// (numerically smallest) priority with a non-empty ready-queue — examining
// byte lanes low-to-high so "smaller index = higher priority" holds. The
// result is only defined for m != 0 (spec §4.2); callers (findNext) always
// hold that precondition because the idle task guarantees bit 31 is set.
func topPriority(m uint32) uint8 {
	if m&0xFF != 0 {
		return mapTable[m&0xFF]
	} else if m&0xFF00 != 0 {
		return 8 + mapTable[(m>>8)&0xFF]
	} else if m&0xFF0000 != 0 {
		return 16 + mapTable[(m>>16)&0xFF]
	}
	return 24 + mapTable[(m>>24)&0xFF]
}
