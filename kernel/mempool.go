package kernel

import "unsafe"

// MinBlockSize is the smallest usable block size: a free block's first
// word is used to chain the free-list (spec §4.10), so blocks must be at
// least pointer-sized.
const MinBlockSize = int(unsafe.Sizeof(uintptr(0)))

// Mem is a fixed-block memory pool: an intrusive free-list of equal-size
// blocks plus a wait list for Get (spec §4.10).
type Mem struct {
	base       uintptr
	blockSize  int
	totalCount int
	freeCount  int
	freeList   uintptr // address of head free block, or 0
	backing    []byte  // retained so addr<->slice translation stays valid
	waitList   list
}

// addrToSlice returns the byte slice backing the block at addr.
func (m *Mem) addrToSlice(addr uintptr) []byte {
	off := addr - m.base
	return m.backing[off : off+uintptr(m.blockSize)]
}

func (m *Mem) readNext(addr uintptr) uintptr {
	s := m.addrToSlice(addr)
	var v uintptr
	for i := 0; i < int(unsafe.Sizeof(v)); i++ {
		v |= uintptr(s[i]) << (8 * i)
	}
	return v
}

func (m *Mem) writeNext(addr uintptr, next uintptr) {
	s := m.addrToSlice(addr)
	for i := 0; i < int(unsafe.Sizeof(next)); i++ {
		s[i] = byte(next >> (8 * i))
	}
}

// MemInit lays out a singly-linked free-list over backing, which must be
// exactly blocks*blockSize bytes, stepping by blockSize (spec §4.10).
// blockSize must be at least MinBlockSize because the first word of each
// free block chains the list.
func (k *Kernel) MemInit(m *Mem, backing []byte, blocks, blockSize int) Status {
	if m == nil || backing == nil || blocks <= 0 || blockSize < MinBlockSize || len(backing) != blocks*blockSize {
		return Param
	}
	m.backing = backing
	m.base = uintptr(unsafe.Pointer(&backing[0]))
	m.blockSize = blockSize
	m.totalCount = blocks
	m.freeCount = blocks
	m.waitList.init()

	m.freeList = m.base
	for i := 0; i < blocks-1; i++ {
		addr := m.base + uintptr(i*blockSize)
		m.writeNext(addr, m.base+uintptr((i+1)*blockSize))
	}
	m.writeNext(m.base+uintptr((blocks-1)*blockSize), 0)
	return Ok
}

// MemGet blocks (FIFO) while the pool is exhausted, then pops and returns
// the head free block's address. The returned block's contents are
// undefined (spec §4.10 observation).
func (k *Kernel) MemGet(m *Mem) uintptr {
	k.enterCritical()
	for m.freeCount == 0 {
		k.blockOn(&m.waitList)
		k.exitCritical()
		k.enterCritical()
	}
	addr := m.freeList
	m.freeList = m.readNext(addr)
	m.freeCount--
	k.exitCritical()
	return addr
}

// MemPut returns block to the pool. Validates that block lies within the
// pool's backing region and is block-size aligned relative to the pool's
// base before accepting it (spec §4.10).
func (k *Kernel) MemPut(m *Mem, block uintptr) Status {
	if m == nil || block == 0 {
		return Param
	}
	k.enterCritical()
	defer k.exitCritical()

	end := m.base + uintptr(m.totalCount*m.blockSize)
	if block < m.base || block >= end {
		return InvalidAddr
	}
	if (block-m.base)%uintptr(m.blockSize) != 0 {
		return NotAlign
	}

	m.writeNext(block, m.freeList)
	m.freeList = block
	m.freeCount++

	if !m.waitList.empty() {
		woken := m.waitList.popHead()
		woken.State = Ready
		k.readyAdd(woken)
		k.requestSwitch()
	}
	return Ok
}

// FreeBlocks reports the pool's current free-block count (invariant I8,
// P6).
func (m *Mem) FreeBlocks() int { return m.freeCount }

// TotalBlocks reports the pool's fixed block count.
func (m *Mem) TotalBlocks() int { return m.totalCount }
