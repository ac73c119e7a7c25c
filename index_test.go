package wfobj

import "testing"

func TestParseFaceVertexToken_VOnly(t *testing.T) {
	vi, err := parseFaceVertexToken("3", 5, 5, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := VertexIndex{VIdx: 2, VtIdx: -1, VnIdx: -1}
	if vi != want {
		t.Errorf("want=%+v got=%+v", want, vi)
	}
}

func TestParseFaceVertexToken_VSlashVt(t *testing.T) {
	vi, err := parseFaceVertexToken("3/2", 5, 5, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := VertexIndex{VIdx: 2, VtIdx: 1, VnIdx: -1}
	if vi != want {
		t.Errorf("want=%+v got=%+v", want, vi)
	}
}

func TestParseFaceVertexToken_VDoubleSlashVn(t *testing.T) {
	vi, err := parseFaceVertexToken("3//4", 5, 5, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := VertexIndex{VIdx: 2, VtIdx: -1, VnIdx: 3}
	if vi != want {
		t.Errorf("want=%+v got=%+v", want, vi)
	}
}

func TestParseFaceVertexToken_VVtVn(t *testing.T) {
	vi, err := parseFaceVertexToken("3/2/4", 5, 5, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := VertexIndex{VIdx: 2, VtIdx: 1, VnIdx: 3}
	if vi != want {
		t.Errorf("want=%+v got=%+v", want, vi)
	}
}

func TestParseFaceVertexToken_Negative(t *testing.T) {
	vi, err := parseFaceVertexToken("-1/-2/-3", 5, 5, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := VertexIndex{VIdx: 4, VtIdx: 3, VnIdx: 2}
	if vi != want {
		t.Errorf("want=%+v got=%+v", want, vi)
	}
}

func TestParseFaceVertexToken_ZeroIsInvalid(t *testing.T) {
	if _, err := parseFaceVertexToken("0", 5, 5, 5); err != ErrZeroIndex {
		t.Errorf("want=ErrZeroIndex got=%v", err)
	}
	if _, err := parseFaceVertexToken("1/0", 5, 5, 5); err != ErrZeroIndex {
		t.Errorf("want=ErrZeroIndex got=%v", err)
	}
	if _, err := parseFaceVertexToken("1//0", 5, 5, 5); err != ErrZeroIndex {
		t.Errorf("want=ErrZeroIndex got=%v", err)
	}
}

func TestParseFaceVertexToken_TrailingGarbageIsMalformed(t *testing.T) {
	cases := []string{"3x", "3/2x", "3//4x", "3/2/4x", "3/2/4/5"}
	for _, tok := range cases {
		if _, err := parseFaceVertexToken(tok, 5, 5, 5); err != ErrMalformedFace {
			t.Errorf("token %q: want=ErrMalformedFace got=%v", tok, err)
		}
	}
}

func TestNormalizeIndex(t *testing.T) {
	cases := []struct {
		raw, poolSize int
		want          int
		ok            bool
	}{
		{1, 5, 0, true},
		{5, 5, 4, true},
		{-1, 5, 4, true},
		{-5, 5, 0, true},
		{0, 5, 0, false},
	}
	for _, c := range cases {
		got, ok := normalizeIndex(c.raw, c.poolSize)
		if got != c.want || ok != c.ok {
			t.Errorf("normalizeIndex(%d,%d): want=(%d,%v) got=(%d,%v)", c.raw, c.poolSize, c.want, c.ok, got, ok)
		}
	}
}
