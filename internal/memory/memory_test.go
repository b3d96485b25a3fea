package memory

import "testing"

func TestZeroPageReadsAsZero(t *testing.T) {
	m := New()
	var buf [8]byte
	m.Load(0x1000, buf[:])
	for i, b := range buf {
		if b != 0 {
			t.Errorf("byte %d: got %#x want 0", i, b)
		}
	}
}

func TestStoreLoadRoundTrip(t *testing.T) {
	m := New()
	m.StoreWord(0x2000, 0xdeadbeef)
	if got := m.LoadWord(0x2000); got != 0xdeadbeef {
		t.Errorf("got %#x want 0xdeadbeef", got)
	}
}

func TestUnalignedCrossPageLoad(t *testing.T) {
	m := New()
	// Place 0xAABBCCDD straddling the page boundary at 0x1000.
	m.StoreWord(PageSize-2, 0xAABBCCDD)
	got := m.LoadWord(PageSize - 2)
	if got != 0xAABBCCDD {
		t.Errorf("unaligned cross-page load: got %#x want 0xaabbccdd", got)
	}
}

func TestWriteCallbackFires(t *testing.T) {
	m := New()
	var gotAddr uint32
	var gotSize int
	m.OnWrite(func(addr uint32, size int) {
		gotAddr, gotSize = addr, size
	})
	m.StoreWord(0x40, 0x1)
	if gotAddr != 0x40 || gotSize != 4 {
		t.Errorf("onWrite callback: got addr=%#x size=%d want addr=0x40 size=4", gotAddr, gotSize)
	}
}

func TestReserveCheckAndClear(t *testing.T) {
	m := New()
	m.Reserve(0x100)
	if !m.CheckAndClear(0x100) {
		t.Fatal("matching SC should succeed")
	}
	if m.CheckAndClear(0x100) {
		t.Fatal("second SC with no intervening LR should fail")
	}
}

func TestInterveningStoreInvalidatesReservation(t *testing.T) {
	m := New()
	m.Reserve(0x100)
	m.StoreWord(0x100, 0x5) // any observer's store to the reserved word
	if m.CheckAndClear(0x100) {
		t.Fatal("SC should fail after an intervening store")
	}
}

func TestReservationGranuleIsWholeWord(t *testing.T) {
	m := New()
	m.Reserve(0x100)
	m.StoreWord(0x104, 0x5) // outside the reserved word
	if !m.CheckAndClear(0x100) {
		t.Fatal("SC should still succeed: unrelated word was written")
	}
}

func TestAmoAdd(t *testing.T) {
	m := New()
	m.StoreWord(0x10, 5)
	old := m.Amo(AmoAdd, 0x10, 7)
	if old != 5 {
		t.Errorf("Amo returned %d, want old value 5", old)
	}
	if got := m.LoadWord(0x10); got != 12 {
		t.Errorf("memory after AmoAdd: got %d want 12", got)
	}
}

func TestAmoMinMaxSigned(t *testing.T) {
	m := New()
	neg := int32(-5)
	m.StoreWord(0x10, uint32(neg))
	m.Amo(AmoMax, 0x10, 3)
	if got := int32(m.LoadWord(0x10)); got != 3 {
		t.Errorf("AmoMax(-5,3): got %d want 3", got)
	}
}

func TestWatcherInterposesOnRange(t *testing.T) {
	m := New()
	w := NewWatcher(m)
	var seenWrite uint32
	err := w.Watch(0x1000, 0x1008, func(addr uint32, dst []byte) {
		dst[0] = 0x42
	}, func(addr uint32, src []byte) {
		seenWrite = addr
	})
	if err != nil {
		t.Fatal(err)
	}

	w.StoreWord(0x1000, 0xffffffff)
	if seenWrite != 0x1000 {
		t.Errorf("write callback not invoked for watched range")
	}
	if _, ok := m.pages[0x1000&^uint32(pageMask)]; ok {
		t.Errorf("watched write must not reach the underlying store")
	}

	var buf [1]byte
	w.Load(0x1000, buf[:])
	if buf[0] != 0x42 {
		t.Errorf("read callback not invoked for watched range")
	}
}

func TestWatcherRejectsOverlap(t *testing.T) {
	m := New()
	w := NewWatcher(m)
	if err := w.Watch(0x1000, 0x1010, nil, nil); err != nil {
		t.Fatal(err)
	}
	if err := w.Watch(0x1008, 0x1020, nil, nil); err == nil {
		t.Fatal("expected overlap rejection")
	}
}

func TestPassThroughOutsideWatchedRange(t *testing.T) {
	m := New()
	w := NewWatcher(m)
	_ = w.Watch(0x1000, 0x1008, func(addr uint32, dst []byte) {}, nil)
	w.StoreWord(0x2000, 0xaa)
	if got := m.LoadWord(0x2000); got != 0xaa {
		t.Errorf("unwatched access should pass through: got %#x want 0xaa", got)
	}
}
