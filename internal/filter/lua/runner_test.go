package lua

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/loom/internal/engine"
	"github.com/dshills/loom/internal/engine/codec"
)

// loadRunner compiles a script and binds its cleanup to the test.
func loadRunner(t *testing.T, script string) *Runner {
	t.Helper()
	r, err := NewRunnerFromString(script)
	if err != nil {
		t.Fatalf("load filter: %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

// filter parses markup, runs the script over it and renders the result.
func filter(t *testing.T, markup, script string) string {
	t.Helper()
	d := engine.New(engine.WithRoot(codec.MustParse(markup).Root))
	if err := loadRunner(t, script).Run(d); err != nil {
		t.Fatalf("run filter: %v", err)
	}
	return codec.Stringify(d.Root())
}

func TestRunnerRemove(t *testing.T) {
	got := filter(t, "<p>a<b>x</b>b</p>", `
		function span(node)
			if node:name() == "b" then
				return "remove"
			end
		end
	`)
	if want := "<p>ab</p>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRunnerRemoveEmptySpans(t *testing.T) {
	got := filter(t, "<p>a<b></b>c</p>", `
		function span(node)
			if node:text() == "" then
				return "remove"
			end
		end
	`)
	if want := "<p>ac</p>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRunnerUnwrap(t *testing.T) {
	got := filter(t, "<div><p><i><b>x</b></i>y</p></div>", `
		function span(node)
			if node:name() == "i" then
				return "unwrap"
			end
		end
	`)
	if want := "<div><p><b>x</b>y</p></div>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRunnerWrap(t *testing.T) {
	got := filter(t, "<p>foo</p>", `
		function text(node)
			return {wrap = {name = "b"}}
		end
	`)
	if want := "<p><b>foo</b></p>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRunnerWrapWithSpec(t *testing.T) {
	got := filter(t, "<p><img/></p>", `
		function voidleaf(node)
			if node:name() == "img" then
				return {wrap = {name = "span", classes = {"note"}}}
			end
		end
	`)
	if want := `<p><span class="note"><img/></span></p>`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRunnerMutatesInPlace(t *testing.T) {
	got := filter(t, `<p><a href="http://x">link</a></p>`, `
		function span(node)
			if node:name() == "a" then
				node:setattr("rel", "nofollow")
			end
		end
	`)
	if want := `<p><a href="http://x" rel="nofollow">link</a></p>`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRunnerBottomUpOrder(t *testing.T) {
	r := loadRunner(t, `
		order = {}
		function text(node) order[#order+1] = "#" .. node:data() end
		function span(node) order[#order+1] = node:name() end
		function container(node) order[#order+1] = node:name() end
	`)
	d := engine.New(engine.WithRoot(codec.MustParse("<div><p><b>x</b></p><p>y</p></div>").Root))
	if err := r.Run(d); err != nil {
		t.Fatalf("run filter: %v", err)
	}

	tbl, ok := r.state.Global("order").(*glua.LTable)
	if !ok {
		t.Fatal("order table missing")
	}
	var got []string
	for i := 1; i <= tbl.Len(); i++ {
		got = append(got, tbl.RawGetInt(i).String())
	}

	want := []string{"#x", "b", "p", "#y", "p"}
	if len(got) != len(want) {
		t.Fatalf("visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visited %v, want %v", got, want)
		}
	}
}

func TestRunnerSkipsDetachedNodes(t *testing.T) {
	// Removing the text between two similar spans fuses them; the
	// right-hand span and its text are detached before their turn.
	r := loadRunner(t, `
		spans = 0
		function span(node) spans = spans + 1 end
		function text(node)
			if node:data() == "i" then
				return "remove"
			end
		end
	`)
	d := engine.New(engine.WithRoot(codec.MustParse("<p><b>x</b>i<b>y</b></p>").Root))
	if err := r.Run(d); err != nil {
		t.Fatalf("run filter: %v", err)
	}

	if got, want := codec.Stringify(d.Root()), "<p><b>xy</b></p>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if got := r.state.Global("spans").String(); got != "1" {
		t.Errorf("span handler ran %s times, want 1", got)
	}
}

func TestRunnerNoHandlers(t *testing.T) {
	got := filter(t, "<p><b>x</b></p>", `version = 1`)
	if want := "<p><b>x</b></p>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRunnerHandlerError(t *testing.T) {
	r := loadRunner(t, `function text(node) error("boom") end`)
	d := engine.New(engine.WithRoot(codec.MustParse("<p>x</p>").Root))

	err := r.Run(d)
	if err == nil {
		t.Fatal("Run() should fail when a handler raises")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Run() error = %v, want the script message", err)
	}
}

func TestRunnerInvalidAction(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"unknown string", `function text(node) return "explode" end`},
		{"unwrap on text", `function text(node) return "unwrap" end`},
		{"number return", `function text(node) return 7 end`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := loadRunner(t, tt.script)
			d := engine.New(engine.WithRoot(codec.MustParse("<p>x</p>").Root))
			if err := r.Run(d); !errors.Is(err, ErrInvalidAction) {
				t.Errorf("Run() error = %v, want ErrInvalidAction", err)
			}
		})
	}
}

func TestRunnerClosed(t *testing.T) {
	r := loadRunner(t, `function text(node) end`)
	r.Close()

	d := engine.New()
	if err := r.Run(d); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Run() after Close error = %v, want ErrStateClosed", err)
	}
}

func TestNewRunnerFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drop_bold.lua")
	script := []byte(`
		function span(node)
			if node:name() == "b" then
				return "unwrap"
			end
		end
	`)
	if err := os.WriteFile(path, script, 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewRunner(path)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	defer r.Close()

	d := engine.New(engine.WithRoot(codec.MustParse("<p><b>x</b>y</p>").Root))
	if err := r.Run(d); err != nil {
		t.Fatalf("run filter: %v", err)
	}
	if got, want := codec.Stringify(d.Root()), "<p>xy</p>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestNewRunnerMissingFile(t *testing.T) {
	if _, err := NewRunner(filepath.Join(t.TempDir(), "absent.lua")); err == nil {
		t.Error("NewRunner() on a missing file should return an error")
	}
}
