package tool

import "testing"

func TestParamsDefaults(t *testing.T) {
	p := NewParams()
	if p.String("missing") != "" {
		t.Error("missing string param should default to empty")
	}
	if p.Integer("missing", 42) != 42 {
		t.Error("missing integer param should return the given default")
	}
	if p.List("missing") != nil {
		t.Error("missing list param should default to nil")
	}
	if _, ok := p.RowSet("missing"); ok {
		t.Error("missing rowset param should report absent")
	}
}

func TestOkAndFail(t *testing.T) {
	ok := Ok("kept 3 of 24", 3)
	if !ok.Success || ok.Error != "" {
		t.Errorf("Ok() produced a non-successful result: %+v", ok)
	}
	fail := Fail("empty needle")
	if fail.Success || fail.Error != "empty needle" {
		t.Errorf("Fail() did not mark the result unsuccessful: %+v", fail)
	}
}
