package buffer

import "testing"

func TestNewZeroFilled(t *testing.T) {
	b := New(3, 8)
	if b.NumChannels() != 3 || b.NumSamples() != 8 {
		t.Fatalf("shape = %dx%d, want 3x8", b.NumChannels(), b.NumSamples())
	}

	for ch := range b.NumChannels() {
		for i, v := range b.Channel(ch) {
			if v != 0 {
				t.Fatalf("Channel(%d)[%d] = %v, want 0", ch, i, v)
			}
		}
	}
}

func TestNewNegativeShape(t *testing.T) {
	b := New(-1, -5)
	if b.NumChannels() != 0 || b.NumSamples() != 0 {
		t.Fatalf("shape = %dx%d, want 0x0 for negative input", b.NumChannels(), b.NumSamples())
	}
}

func TestChannelsDoNotOverlap(t *testing.T) {
	b := New(2, 4)
	ch0 := b.Channel(0)
	ch0 = append(ch0, 99)

	if b.Channel(1)[0] != 0 {
		t.Fatal("append on channel 0 overwrote channel 1")
	}

	if len(ch0) != 5 {
		t.Fatalf("len = %d, want 5", len(ch0))
	}
}

func TestResizeReusesCapacity(t *testing.T) {
	b := New(4, 256)
	capBefore := b.Cap()

	b.Resize(2, 128)
	if b.Cap() != capBefore {
		t.Fatalf("Cap() = %d after shrink, want %d", b.Cap(), capBefore)
	}

	b.Resize(4, 256)
	if b.Cap() != capBefore {
		t.Fatalf("Cap() = %d after regrow, want %d", b.Cap(), capBefore)
	}

	if len(b.Channel(3)) != 256 {
		t.Fatalf("len(Channel(3)) = %d, want 256", len(b.Channel(3)))
	}
}

func TestResizeGrow(t *testing.T) {
	b := New(1, 2)
	b.Resize(3, 16)

	if b.Cap() < 48 {
		t.Fatalf("Cap() = %d, want >= 48", b.Cap())
	}

	for ch := range 3 {
		if len(b.Channel(ch)) != 16 {
			t.Fatalf("len(Channel(%d)) = %d, want 16", ch, len(b.Channel(ch)))
		}
	}
}

func TestZero(t *testing.T) {
	b := New(2, 3)
	b.Channel(0)[1] = 5
	b.Channel(1)[2] = -1
	b.Zero()

	for ch := range 2 {
		for i, v := range b.Channel(ch) {
			if v != 0 {
				t.Fatalf("Channel(%d)[%d] = %v after Zero", ch, i, v)
			}
		}
	}
}

func TestLoadFloat32(t *testing.T) {
	src := [][]float32{
		{1, 2, 3, 4},
		{-1, -2, -3, -4},
		{9, 9, 9, 9},
	}

	b := New(0, 0)
	b.LoadFloat32(src, 2, 3)

	if b.NumChannels() != 2 || b.NumSamples() != 3 {
		t.Fatalf("shape = %dx%d, want 2x3", b.NumChannels(), b.NumSamples())
	}

	for ch := range 2 {
		for i, v := range b.Channel(ch) {
			if v != float64(src[ch][i]) {
				t.Fatalf("Channel(%d)[%d] = %v, want %v", ch, i, v, src[ch][i])
			}
		}
	}

	src[0][0] = 100
	if b.Channel(0)[0] != 1 {
		t.Fatal("LoadFloat32 should copy, not alias")
	}
}
