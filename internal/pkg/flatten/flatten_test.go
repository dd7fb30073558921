package flatten

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenPlainText(t *testing.T) {
	assert.Equal(t, "hello world", Flatten("hello   world"))
	assert.Equal(t, "第一段\n第二段", Flatten("第一段\n\n第二段"))
	assert.Equal(t, "", Flatten("   \n\t  "))
}

func TestFlattenBlocks(t *testing.T) {
	raw := `[
		{"type":"heading","text":"How to renew a visa"},
		{"type":"paragraph","text":"Go to the   office early."},
		{"type":"list","items":["Bring your passport","Bring form I-485"]}
	]`

	got := Flatten(raw)
	want := "How to renew a visa\nGo to the office early.\nBring your passport\nBring form I-485"
	assert.Equal(t, want, got)
}

func TestFlattenBlocksKeepOrder(t *testing.T) {
	raw := `[{"type":"p","text":"c"},{"type":"p","text":"a"},{"type":"p","text":"b"}]`
	assert.Equal(t, "c\na\nb", Flatten(raw))
}

func TestFlattenSkipsEmptyBlocks(t *testing.T) {
	raw := `[{"type":"image","text":""},{"type":"p","text":"only text"},{"type":"list","items":["", "x"]}]`
	assert.Equal(t, "only text\nx", Flatten(raw))
}

func TestFlattenMalformedJSONFallsBack(t *testing.T) {
	raw := `[{"type":"p","text":"broken"`
	assert.Equal(t, `[{"type":"p","text":"broken"`, Flatten(raw))
}

func TestFlattenUnknownBlockTypes(t *testing.T) {
	raw := `[{"type":"carousel","text":"slide text","extra":{"a":1}}]`
	assert.Equal(t, "slide text", Flatten(raw))
}

func FuzzFlatten(f *testing.F) {
	f.Add("plain text")
	f.Add(`[{"type":"p","text":"hi"}]`)
	f.Add(`[{"broken"`)
	f.Add("")
	f.Add("多语言 内容\nwith lines")
	f.Add(`[{"items":["a","b"]}]`)

	f.Fuzz(func(t *testing.T, raw string) {
		got := Flatten(raw)
		if strings.TrimSpace(raw) == "" && got != "" {
			t.Fatalf("blank input produced %q", got)
		}
		if strings.HasPrefix(got, "\n") || strings.HasSuffix(got, "\n") {
			t.Fatalf("output has dangling newline: %q", got)
		}
	})
}
