package register

import "testing"

func TestX0WritesDiscarded(t *testing.T) {
	f := NewFile()
	f.Add("x0", 32)
	f.Write("x0", 0xdeadbeef)
	v, ok := f.Read("x0")
	if !ok || v != 0 {
		t.Errorf("x0 read: got %#x ok=%v want 0", v, ok)
	}
}

func TestAliasSharesStorage(t *testing.T) {
	f := NewFile()
	f.Add("x2", 32)
	f.Alias("x2", "sp")

	f.Write("sp", 0x1234)
	v, ok := f.Read("x2")
	if !ok || v != 0x1234 {
		t.Errorf("write via alias not observed on canonical name: got %#x", v)
	}

	f.Write("x2", 0x5678)
	v, ok = f.Read("sp")
	if !ok || v != 0x5678 {
		t.Errorf("write via canonical name not observed via alias: got %#x", v)
	}
}

func TestDoubleAddPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic registering the same name twice")
		}
	}()
	f := NewFile()
	f.Add("x1", 32)
	f.Add("x1", 32)
}

func TestUnknownRegisterLookupFails(t *testing.T) {
	f := NewFile()
	if _, ok := f.Read("x99"); ok {
		t.Fatal("expected lookup failure for unregistered name")
	}
	if f.Write("x99", 1) {
		t.Fatal("expected write failure for unregistered name")
	}
}

func TestCSRWriteHookFires(t *testing.T) {
	f := NewFile()
	var seen uint64 = 999
	f.AddCSR(CSRFrm, func(old, new uint64) { seen = new })
	f.Write("frm", 3)
	if seen != 3 {
		t.Errorf("CSR write hook did not observe new value: got %d", seen)
	}
}
