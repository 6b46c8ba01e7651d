package position

import (
	"testing"

	"github.com/dshills/loom/internal/engine/tree"
)

// buildDoc returns div > [p > ["foo", b > ["bar"]], img].
func buildDoc() (div, para *tree.Container, foo, bar *tree.Text, b *tree.AttributeSpan, img *tree.VoidLeaf) {
	foo = tree.NewText("foo")
	bar = tree.NewText("bar")
	b = tree.NewSpan("b", bar)
	para = tree.NewContainer("p", foo, b)
	img = tree.NewVoidLeaf("img")
	div = tree.NewContainer("div", para, img)
	return
}

func TestConstructors(t *testing.T) {
	div, para, foo, _, b, img := buildDoc()

	if got := BeforeNode(para); !got.IsEqual(At(div, 0)) {
		t.Errorf("BeforeNode(para) = %v, want %v", got, At(div, 0))
	}
	if got := AfterNode(para); !got.IsEqual(At(div, 1)) {
		t.Errorf("AfterNode(para) = %v, want %v", got, At(div, 1))
	}
	if got := AfterNode(img); !got.IsEqual(At(div, 2)) {
		t.Errorf("AfterNode(img) = %v, want %v", got, At(div, 2))
	}
	if got := BeforeNode(b); !got.IsEqual(At(para, 1)) {
		t.Errorf("BeforeNode(b) = %v, want %v", got, At(para, 1))
	}

	p := At(foo, 2)
	if p.Parent != tree.Node(foo) || p.Offset != 2 {
		t.Errorf("At(foo, 2) = %v", p)
	}
}

func TestNodeNeighbors(t *testing.T) {
	_, para, foo, _, b, _ := buildDoc()

	if got := At(para, 1).NodeBefore(); got != tree.Node(foo) {
		t.Errorf("NodeBefore() = %v, want foo", got)
	}
	if got := At(para, 1).NodeAfter(); got != tree.Node(b) {
		t.Errorf("NodeAfter() = %v, want b", got)
	}
	if got := At(para, 0).NodeBefore(); got != nil {
		t.Errorf("NodeBefore() at start = %v, want nil", got)
	}
	if got := At(para, 2).NodeAfter(); got != nil {
		t.Errorf("NodeAfter() at end = %v, want nil", got)
	}
	if got := At(foo, 1).NodeBefore(); got != nil {
		t.Errorf("NodeBefore() inside text = %v, want nil", got)
	}
}

func TestStartEnd(t *testing.T) {
	_, para, foo, _, _, img := buildDoc()

	tests := []struct {
		name    string
		pos     Position
		atStart bool
		atEnd   bool
	}{
		{"element start", At(para, 0), true, false},
		{"element end", At(para, 2), false, true},
		{"text start", At(foo, 0), true, false},
		{"text end", At(foo, 3), false, true},
		{"text middle", At(foo, 1), false, false},
		{"leaf interior", At(img, 0), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsAtStart(); got != tt.atStart {
				t.Errorf("IsAtStart() = %v, want %v", got, tt.atStart)
			}
			if got := tt.pos.IsAtEnd(); got != tt.atEnd {
				t.Errorf("IsAtEnd() = %v, want %v", got, tt.atEnd)
			}
		})
	}
}

func TestCompareWith(t *testing.T) {
	div, para, foo, bar, b, _ := buildDoc()
	other := tree.NewContainer("div")

	tests := []struct {
		name string
		a, b Position
		want Relation
	}{
		{"same", At(para, 1), At(para, 1), Same},
		{"sibling order", At(para, 0), At(para, 1), Before},
		{"reverse sibling order", At(para, 1), At(para, 0), After},
		{"parent before interior", At(div, 0), At(foo, 1), Before},
		{"interior after parent slot", At(bar, 2), At(div, 0), After},
		{"across subtrees", At(foo, 3), At(bar, 0), Before},
		{"different roots", At(para, 0), At(other, 0), Different},

		// A text node's inner edge and the outer position are distinct
		// points for ordering, outer first.
		{"outer before inner edge", BeforeNode(foo), At(foo, 0), Before},
		{"inner edge after outer", At(foo, 0), BeforeNode(foo), After},
		{"inner end before outer", At(bar, 3), AfterNode(bar), Before},

		{"span slot vs text interior", BeforeNode(b), At(bar, 1), Before},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.CompareWith(tt.b); got != tt.want {
				t.Errorf("CompareWith() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSamePoint(t *testing.T) {
	_, _, foo, bar, _, _ := buildDoc()

	tests := []struct {
		name string
		a, b Position
		want bool
	}{
		{"inner start vs outer", At(foo, 0), BeforeNode(foo), true},
		{"inner end vs outer", At(foo, 3), AfterNode(foo), true},
		{"between adjacent nodes", AfterNode(foo), At(foo, 3), true},
		{"interior offsets differ", At(foo, 1), At(foo, 2), false},
		{"different texts", At(foo, 0), At(bar, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.SamePoint(tt.b); got != tt.want {
				t.Errorf("SamePoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShiftedBy(t *testing.T) {
	_, para, _, _, _, _ := buildDoc()

	if got := At(para, 1).ShiftedBy(1); got.Offset != 2 {
		t.Errorf("ShiftedBy(1) offset = %d, want 2", got.Offset)
	}
	if got := At(para, 1).ShiftedBy(-5); got.Offset != 0 {
		t.Errorf("ShiftedBy(-5) offset = %d, want 0 (clamped)", got.Offset)
	}
}

func TestRange(t *testing.T) {
	_, para, foo, _, b, _ := buildDoc()

	on := On(b)
	if !on.Start.IsEqual(At(para, 1)) || !on.End.IsEqual(At(para, 2)) {
		t.Errorf("On(b) = %v", on)
	}

	in := In(para)
	if !in.Start.IsEqual(At(para, 0)) || !in.End.IsEqual(At(para, 2)) {
		t.Errorf("In(para) = %v", in)
	}

	inText := In(foo)
	if inText.End.Offset != 3 {
		t.Errorf("In(foo).End.Offset = %d, want 3", inText.End.Offset)
	}

	if !Collapsed(At(para, 1)).IsCollapsed() {
		t.Error("Collapsed() range should be collapsed")
	}
	if on.IsCollapsed() {
		t.Error("On() range should not be collapsed")
	}

	if !in.ContainsPosition(At(foo, 1)) {
		t.Error("In(para) should contain a position inside foo")
	}
	if in.ContainsPosition(At(para, 0)) {
		t.Error("ContainsPosition is strict, the start is not inside")
	}
}
