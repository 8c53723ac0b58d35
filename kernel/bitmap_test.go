package kernel

import "testing"

func TestTopPriorityLowestBitWins(t *testing.T) {
	cases := []struct {
		m    uint32
		want uint8
	}{
		{1 << 0, 0},
		{1 << 5, 5},
		{(1 << 5) | (1 << 10) | (1 << 31), 5},
		{1 << 31, 31},
		{1<<8 | 1<<9, 8},
		{1<<16 | 1<<20, 16},
		{1<<24 | 1<<31, 24},
	}
	for _, c := range cases {
		if got := topPriority(c.m); got != c.want {
			t.Errorf("topPriority(%#x) = %d, want %d", c.m, got, c.want)
		}
	}
}

func TestTopPriorityEveryBit(t *testing.T) {
	for bit := uint8(0); bit < 32; bit++ {
		m := uint32(1) << bit
		if got := topPriority(m); got != bit {
			t.Errorf("topPriority(1<<%d) = %d, want %d", bit, got, bit)
		}
	}
}
