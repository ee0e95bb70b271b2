package format

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	Path  string   `json:"path"`
	Deps  []string `json:"dependencies"`
	Flag  string   `json:"flag"`
	Count int      `json:"count"`
}

func TestWrite_Formats(t *testing.T) {
	t.Parallel()

	v := sample{Path: "src/a.go", Deps: []string{"b", "c"}, Flag: "true", Count: 2}

	var js bytes.Buffer
	if err := Write(&js, v, "json", false); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got := strings.TrimSpace(js.String()); got != `{"path":"src/a.go","dependencies":["b","c"],"flag":"true","count":2}` {
		t.Fatalf("unexpected json %q", got)
	}

	var ym bytes.Buffer
	if err := Write(&ym, v, "yaml", false); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	out := ym.String()
	for _, want := range []string{"path: src/a.go\n", "dependencies:\n  - b\n  - c\n", "count: 2\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in yaml output:\n%s", want, out)
		}
	}
	if strings.Index(out, "path:") > strings.Index(out, "count:") {
		t.Fatalf("expected field order preserved:\n%s", out)
	}
	if strings.Contains(out, "flag: true\n") {
		t.Fatalf("string that looks like a bool must stay quoted:\n%s", out)
	}

	if err := Write(&ym, v, "edn", false); err == nil {
		t.Fatalf("expected unknown format error")
	}
}
