package page

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"blockstyle/common"
)

const sampleYAML = `title: Café
blocks:
  - key: top
    type: hero
    behavior: horizontal-scroll
    props:
      padding: { desktop: 64px, mobile: 16px }
    markup: <section>Bienvenue</section>
  - type: logo-strip
`

func TestDecode(t *testing.T) {
	l, err := Decode(strings.NewReader(sampleYAML), "")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if l.Title != "Café" {
		t.Errorf("Title = %q", l.Title)
	}
	if len(l.Blocks) != 2 {
		t.Fatalf("Blocks = %d, want 2", len(l.Blocks))
	}
	b := l.Blocks[0]
	if b.Key != "top" || b.Type != "hero" {
		t.Errorf("unexpected block %+v", b)
	}
	if b.Behavior == nil || *b.Behavior != common.BehaviorHorizontalScroll {
		t.Errorf("Behavior = %v", b.Behavior)
	}
	if _, ok := b.Props["padding"].(map[string]any); !ok {
		t.Errorf("padding should decode as tier map, got %T", b.Props["padding"])
	}
}

func TestDecode_JSON(t *testing.T) {
	l, err := Decode(strings.NewReader(`{"blocks": [{"type": "gallery", "props": {"columns": 4}}]}`), "")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if l.Blocks[0].Props["columns"] != 4 {
		t.Errorf("columns = %v", l.Blocks[0].Props["columns"])
	}
}

func TestDecode_Charset(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String(sampleYAML)
	if err != nil {
		t.Fatal(err)
	}

	for _, label := range []string{"windows-1252", ""} {
		l, err := Decode(strings.NewReader(encoded), label)
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", label, err)
		}
		if l.Title != "Café" {
			t.Errorf("Decode(%q) Title = %q", label, l.Title)
		}
	}

	if _, err := Decode(strings.NewReader(sampleYAML), "no-such-charset"); err == nil {
		t.Error("expected error for unknown charset")
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown field": "blocks: []\nfooter: true\n",
		"missing type":  "blocks:\n  - key: x\n",
		"bad behavior":  "blocks:\n  - type: hero\n    behavior: sideways\n",
		"not yaml":      "blocks: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(doc), ""); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLayout_Encode(t *testing.T) {
	l, err := Decode(strings.NewReader(sampleYAML), "")
	if err != nil {
		t.Fatal(err)
	}
	data, err := l.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	back, err := Decode(bytes.NewReader(data), "")
	if err != nil {
		t.Fatalf("Decode(Encode()) error = %v", err)
	}
	if back.Title != l.Title || len(back.Blocks) != len(l.Blocks) || back.Blocks[0].Markup != l.Blocks[0].Markup {
		t.Errorf("layout changed after encoding:\n%s", data)
	}
	if *back.Blocks[0].Behavior != *l.Blocks[0].Behavior {
		t.Errorf("behavior changed after encoding:\n%s", data)
	}
}
