package writer

import (
	"errors"
	"testing"

	"github.com/dshills/loom/internal/engine/codec"
	"github.com/dshills/loom/internal/engine/position"
	"github.com/dshills/loom/internal/engine/selection"
	"github.com/dshills/loom/internal/engine/tree"
)

func TestWrapText(t *testing.T) {
	root, r := parseFixture(t, "<p>f{oo}ar</p>")
	got, err := New().Wrap(r, tree.NewSpan("b"))
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if out := renderRange(root, got); out != "<p>f[<b>oo</b>]ar</p>" {
		t.Errorf("got %s, want <p>f[<b>oo</b>]ar</p>", out)
	}
}

func TestWrapAbsorbsSimilarNeighbor(t *testing.T) {
	root, r := parseFixture(t, "<p>[foo<b>bar</b>]</p>")
	got, err := New().Wrap(r, tree.NewSpan("b"))
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if out := renderRange(root, got); out != "<p>[<b>foobar</b>]</p>" {
		t.Errorf("got %s, want <p>[<b>foobar</b>]</p>", out)
	}
}

func TestWrapAdoptsMissingFormatting(t *testing.T) {
	t.Run("attribute is copied onto the covered span", func(t *testing.T) {
		root, r := parseFixture(t, "<p>[<b>x</b>]</p>")
		template := tree.NewSpan("b")
		template.SetAttribute("data-k", "v")
		got, err := New().Wrap(r, template)
		if err != nil {
			t.Fatalf("Wrap: %v", err)
		}
		want := `<p>[<b data-k="v">x</b>]</p>`
		if out := renderRange(root, got); out != want {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("conflicting attribute nests instead", func(t *testing.T) {
		root, r := parseFixture(t, `<p>[<b data-k="v">x</b>]</p>`)
		template := tree.NewSpan("b")
		template.SetAttribute("data-k", "w")
		if _, err := New().Wrap(r, template); err != nil {
			t.Fatalf("Wrap: %v", err)
		}
		want := `<p><b data-k="v"><b data-k="w">x</b></b></p>`
		if out := render(root); out != want {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("classes union on the interior fast path", func(t *testing.T) {
		root, r := parseFixture(t, `<p><b class="z">[foo]</b></p>`)
		template := tree.NewSpan("b")
		template.AddClass("hot")
		got, err := New().Wrap(r, template)
		if err != nil {
			t.Fatalf("Wrap: %v", err)
		}
		want := `<p>[<b class="hot z">foo</b>]</p>`
		if out := renderRange(root, got); out != want {
			t.Errorf("got %s, want %s", out, want)
		}
	})
}

func TestWrapAroundDissimilarSpan(t *testing.T) {
	root, r := parseFixture(t, "<p><i>[x]</i></p>")
	if _, err := New().Wrap(r, tree.NewSpan("b")); err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if out := render(root); out != "<p><b><i>x</i></b></p>" {
		t.Errorf("got %s, want <p><b><i>x</i></b></p>", out)
	}
}

func TestWrapPriorityOrder(t *testing.T) {
	em := func() tree.Node {
		s := tree.NewSpan("i")
		s.SetPriority(5)
		return s
	}
	strong := func() tree.Node { return tree.NewSpan("b") }

	wrapBoth := func(t *testing.T, first, second func() tree.Node) string {
		t.Helper()
		root, r := parseFixture(t, "<p>{xyz}</p>")
		w := New()
		mid, err := w.Wrap(r, first())
		if err != nil {
			t.Fatalf("first Wrap: %v", err)
		}
		if _, err := w.Wrap(mid, second()); err != nil {
			t.Fatalf("second Wrap: %v", err)
		}
		return render(root)
	}

	t.Run("lower priority stays outside either way", func(t *testing.T) {
		want := `<p><i priority="5"><b>xyz</b></i></p>`
		if got := wrapBoth(t, strong, em); got != want {
			t.Errorf("strong first: got %s, want %s", got, want)
		}
		if got := wrapBoth(t, em, strong); got != want {
			t.Errorf("em first: got %s, want %s", got, want)
		}
	})

	t.Run("equal priority breaks the tie by identity", func(t *testing.T) {
		italic := func() tree.Node { return tree.NewSpan("i") }
		want := "<p><b><i>xyz</i></b></p>"
		if got := wrapBoth(t, strong, italic); got != want {
			t.Errorf("strong first: got %s, want %s", got, want)
		}
		if got := wrapBoth(t, italic, strong); got != want {
			t.Errorf("italic first: got %s, want %s", got, want)
		}
	})
}

func TestWrapIdempotent(t *testing.T) {
	root, r := parseFixture(t, "<p>f{oo}ar</p>")
	w := New()
	first, err := w.Wrap(r, tree.NewSpan("b"))
	if err != nil {
		t.Fatalf("first Wrap: %v", err)
	}
	before := render(root)
	second, err := w.Wrap(first, tree.NewSpan("b"))
	if err != nil {
		t.Fatalf("second Wrap: %v", err)
	}
	if out := render(root); out != before {
		t.Errorf("second wrap changed the tree: got %s, want %s", out, before)
	}
	if !second.IsEqual(first) {
		t.Errorf("second wrap moved the range: got %v, want %v", second, first)
	}
}

func TestWrapInsideExistingFormatting(t *testing.T) {
	root, r := parseFixture(t, "<p><b>f{oo}ar</b></p>")
	got, err := New().Wrap(r, tree.NewSpan("b"))
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if out := renderRange(root, got); out != "<p><b>f{oo}ar</b></p>" {
		t.Errorf("got %s, want <p><b>f{oo}ar</b></p>", out)
	}
}

func TestWrapCollapsed(t *testing.T) {
	t.Run("creates an empty span at the caret", func(t *testing.T) {
		root, r := parseFixture(t, "<p>fo{}ar</p>")
		got, err := New().Wrap(r, tree.NewSpan("b"))
		if err != nil {
			t.Fatalf("Wrap: %v", err)
		}
		if !got.IsCollapsed() {
			t.Fatalf("got %v, want a collapsed range", got)
		}
		if out := renderRange(root, got); out != "<p>fo<b>[]</b>ar</p>" {
			t.Errorf("got %s, want <p>fo<b>[]</b>ar</p>", out)
		}
	})

	t.Run("caret at a similar span edge moves inside", func(t *testing.T) {
		root, r := parseFixture(t, "<p><b>fo</b>{}ar</p>")
		got, err := New().Wrap(r, tree.NewSpan("b"))
		if err != nil {
			t.Fatalf("Wrap: %v", err)
		}
		if out := renderRange(root, got); out != "<p><b>fo{}</b>ar</p>" {
			t.Errorf("got %s, want <p><b>fo{}</b>ar</p>", out)
		}
	})

	t.Run("caret already inside a similar span stays", func(t *testing.T) {
		root, r := parseFixture(t, "<p><b>fo[]</b>ar</p>")
		got, err := New().Wrap(r, tree.NewSpan("b"))
		if err != nil {
			t.Fatalf("Wrap: %v", err)
		}
		if out := renderRange(root, got); out != "<p><b>fo{}</b>ar</p>" {
			t.Errorf("got %s, want <p><b>fo{}</b>ar</p>", out)
		}
	})

	t.Run("caret in formatted text is untouched", func(t *testing.T) {
		root, r := parseFixture(t, "<p><b>f{}o</b></p>")
		got, err := New().Wrap(r, tree.NewSpan("b"))
		if err != nil {
			t.Fatalf("Wrap: %v", err)
		}
		if out := renderRange(root, got); out != "<p><b>f{}o</b></p>" {
			t.Errorf("got %s, want <p><b>f{}o</b></p>", out)
		}
	})

	t.Run("moves the selection into the wrapper", func(t *testing.T) {
		_, r := parseFixture(t, "<p>fo{}ar</p>")
		sel := selection.New()
		sel.SetTo(r.Start)
		got, err := New(WithSelection(sel)).Wrap(r, tree.NewSpan("b"))
		if err != nil {
			t.Fatalf("Wrap: %v", err)
		}
		caret, ok := sel.Position()
		if !ok {
			t.Fatalf("selection is no longer a caret")
		}
		if !caret.IsEqual(got.Start) {
			t.Errorf("selection at %v, want %v", caret, got.Start)
		}
	})

	t.Run("unmoved selection is left alone", func(t *testing.T) {
		root, r := parseFixture(t, "<p>fo{}ar</p>")
		sel := selection.New()
		other := position.At(root, 0)
		sel.SetTo(other)
		if _, err := New(WithSelection(sel)).Wrap(r, tree.NewSpan("b")); err != nil {
			t.Fatalf("Wrap: %v", err)
		}
		caret, ok := sel.Position()
		if !ok || !caret.IsEqual(other) {
			t.Errorf("selection at %v, want %v", caret, other)
		}
	})
}

func TestWrapLeaves(t *testing.T) {
	root, r := parseFixture(t, "<p>[<img/><widget:vid/>]</p>")
	got, err := New().Wrap(r, tree.NewSpan("b"))
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	want := "<p>[<b><img/><widget:vid/></b>]</p>"
	if out := renderRange(root, got); out != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestWrapErrors(t *testing.T) {
	t.Run("template must be a span", func(t *testing.T) {
		_, r := parseFixture(t, "<p>{x}</p>")
		if _, err := New().Wrap(r, tree.NewContainer("q")); !errors.Is(err, ErrInvalidAttributeKind) {
			t.Errorf("wrap: got %v, want ErrInvalidAttributeKind", err)
		}
		if _, err := New().Unwrap(r, tree.NewText("x")); !errors.Is(err, ErrInvalidAttributeKind) {
			t.Errorf("unwrap: got %v, want ErrInvalidAttributeKind", err)
		}
	})

	t.Run("ends must share a container", func(t *testing.T) {
		_, r := parseFixture(t, "<div><p>{x</p><p>y}</p></div>")
		if _, err := New().Wrap(r, tree.NewSpan("b")); !errors.Is(err, ErrInvalidRangeContainer) {
			t.Errorf("got %v, want ErrInvalidRangeContainer", err)
		}
	})
}

func TestUnwrap(t *testing.T) {
	t.Run("restores the wrapped range", func(t *testing.T) {
		root, r := parseFixture(t, "<p>f{oo}ar</p>")
		w := New()
		wrapped, err := w.Wrap(r, tree.NewSpan("b"))
		if err != nil {
			t.Fatalf("Wrap: %v", err)
		}
		unwrapped, err := w.Unwrap(wrapped, tree.NewSpan("b"))
		if err != nil {
			t.Fatalf("Unwrap: %v", err)
		}
		if out := renderRange(root, unwrapped); out != "<p>f{oo}ar</p>" {
			t.Errorf("got %s, want <p>f{oo}ar</p>", out)
		}
	})

	t.Run("dissolves a fully covered span", func(t *testing.T) {
		root, r := parseFixture(t, "<p><b>{xy}</b></p>")
		got, err := New().Unwrap(r, tree.NewSpan("b"))
		if err != nil {
			t.Fatalf("Unwrap: %v", err)
		}
		if out := renderRange(root, got); out != "<p>[xy]</p>" {
			t.Errorf("got %s, want <p>[xy]</p>", out)
		}
	})

	t.Run("strips template formatting from a richer span", func(t *testing.T) {
		root, r := parseFixture(t, `<p>[<span class="big hot">x</span>]</p>`)
		template := tree.NewSpan("span")
		template.AddClass("hot")
		if _, err := New().Unwrap(r, template); err != nil {
			t.Fatalf("Unwrap: %v", err)
		}
		want := `<p><span class="big">x</span></p>`
		if out := render(root); out != want {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("subset template does not strip", func(t *testing.T) {
		root, r := parseFixture(t, `<p>[<b class="big">x</b>]</p>`)
		template := tree.NewSpan("b")
		template.AddClass("hot")
		if _, err := New().Unwrap(r, template); err != nil {
			t.Fatalf("Unwrap: %v", err)
		}
		want := `<p><b class="big">x</b></p>`
		if out := render(root); out != want {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("unwraps nested occurrences", func(t *testing.T) {
		root, r := parseFixture(t, "<p>[<i><b>x</b></i><b>y</b>]</p>")
		if _, err := New().Unwrap(r, tree.NewSpan("b")); err != nil {
			t.Fatalf("Unwrap: %v", err)
		}
		if out := render(root); out != "<p><i>x</i>y</p>" {
			t.Errorf("got %s, want <p><i>x</i>y</p>", out)
		}
	})

	t.Run("collapsed range is a no-op", func(t *testing.T) {
		root, r := parseFixture(t, "<p><b>f{}o</b></p>")
		got, err := New().Unwrap(r, tree.NewSpan("b"))
		if err != nil {
			t.Fatalf("Unwrap: %v", err)
		}
		if !got.IsEqual(r) {
			t.Errorf("got %v, want %v", got, r)
		}
		if out := render(root); out != "<p><b>fo</b></p>" {
			t.Errorf("tree changed: %s", out)
		}
	})
}

func BenchmarkWrapUnwrap(b *testing.B) {
	parsed := codec.MustParse("<p>[lorem <i>ipsum</i> dolor <i>sit</i> amet]</p>")
	r := parsed.Range
	w := New()
	template := tree.NewSpan("b")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wrapped, err := w.Wrap(r, template)
		if err != nil {
			b.Fatal(err)
		}
		r, err = w.Unwrap(wrapped, template)
		if err != nil {
			b.Fatal(err)
		}
	}
}
