package render

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func testPager() Pager {
	return Pager{Markup: Brackets{Open: "<", Close: ">"}}
}

func TestPaginateAlwaysReturnsExactlyNLines(t *testing.T) {
	p := testPager()
	for n := 2; n <= 6; n++ {
		for k := 1; k <= 9; k++ {
			content := make([]string, k)
			for i := range content {
				content[i] = fmt.Sprintf("L%d", i+1)
			}
			got, err := p.Paginate(strings.Join(content, LineBreak), "S", 1, 1, n)
			if err != nil {
				t.Fatalf("n=%d k=%d: %v", n, k, err)
			}
			if lines := strings.Split(got, LineBreak); len(lines) != n {
				t.Fatalf("n=%d k=%d: got %d lines: %q", n, k, len(lines), got)
			}
		}
	}
}

func TestPaginateKeepsTailWindow(t *testing.T) {
	got, err := testPager().Paginate("L1\nL2\nL3\nL4\nL5", "deck", 5, 3, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := "L3\nL4\nL5\n<deck [+] 5,3 All>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPaginatePadsWithFiller(t *testing.T) {
	got, err := testPager().Paginate("only", "s", 1, 5, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := "only\n~\n~\n<s [+] 1,5 All>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPaginateExactFit(t *testing.T) {
	got, err := testPager().Paginate("a\nb", "s", 2, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got != "a\nb\n<s [+] 2,2 All>" {
		t.Fatalf("got %q", got)
	}
}

func TestPaginateRejectsTooFewLines(t *testing.T) {
	for _, n := range []int{-1, 0, 1} {
		_, err := testPager().Paginate("x", "s", 1, 1, n)
		if !errors.Is(err, ErrTooFewLines) {
			t.Fatalf("n=%d: expected ErrTooFewLines, got %v", n, err)
		}
	}
}

func TestPaginateWrapsAtColumns(t *testing.T) {
	p := testPager()
	p.Columns = 3
	got, err := p.Paginate("abcdefg\nhi", "s", 2, 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := "abc\ndef\ng\nhi\n<s [+] 2,3 All>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPaginateWithoutMarkup(t *testing.T) {
	got, err := Pager{}.Paginate("", "s", 1, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != "\ns [+] 1,1 All" {
		t.Fatalf("got %q", got)
	}
}
