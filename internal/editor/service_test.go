package editor_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mdsync/internal/editor"
	"mdsync/internal/markdown"
)

const sample = "# Title\n\nSome paragraph text.\n\n> A quote"

func TestEditorService_Render(t *testing.T) {
	svc := editor.NewService(nil, nil, nil, testOptions(newManualClock()))

	out, err := svc.Render(testContext(), "# Hi\n\n![shot](img-1700000000000-abcdef12)")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{
		`<div class="preview-content">`,
		`<h1 id="hi">Hi</h1>`,
		`src="/api/images/img-1700000000000-abcdef12"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output missing %q:\n%s", want, out)
		}
	}
}

func TestEditorService_KeyPoints(t *testing.T) {
	svc := editor.NewService(nil, nil, nil, testOptions(newManualClock()))

	got := svc.KeyPoints(testContext(), sample)
	want := []markdown.KeyPoint{
		{Type: markdown.Heading, LineIndex: 0, Content: "# Title", Level: 1},
		{Type: markdown.Paragraph, LineIndex: 2, Content: "Some paragraph text."},
		{Type: markdown.Blockquote, LineIndex: 4, Content: "> A quote"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("KeyPoints() mismatch (-want +got):\n%s", diff)
	}
}

func TestEditorService_Locate(t *testing.T) {
	svc := editor.NewService(nil, nil, nil, testOptions(newManualClock()))

	t.Run("rendered from source", func(t *testing.T) {
		got, err := svc.Locate(testContext(), editor.LocateRequest{Source: sample})
		if err != nil {
			t.Fatalf("Locate() error = %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("Locate() returned %d matches, want 3", len(got))
		}
		tags := []string{got[0].Element.Tag, got[1].Element.Tag, got[2].Element.Tag}
		if diff := cmp.Diff([]string{"h1", "p", "blockquote"}, tags); diff != "" {
			t.Errorf("tags mismatch (-want +got):\n%s", diff)
		}
		if got[2].Element.Ordinal != 2 {
			t.Errorf("blockquote ordinal = %d, want 2", got[2].Element.Ordinal)
		}
		if got[1].OffsetTop <= got[0].OffsetTop || got[2].OffsetTop <= got[1].OffsetTop {
			t.Errorf("offsets not increasing: %v %v %v", got[0].OffsetTop, got[1].OffsetTop, got[2].OffsetTop)
		}
	})

	t.Run("client html and offsets", func(t *testing.T) {
		got, err := svc.Locate(testContext(), editor.LocateRequest{
			HTML:      `<div class="preview-content"><p>other</p><h2>Later</h2></div>`,
			KeyPoints: []markdown.KeyPoint{{Type: markdown.Heading, Level: 2, LineIndex: 7, Content: "## Later"}},
			Offsets:   []float64{0, 800},
		})
		if err != nil {
			t.Fatalf("Locate() error = %v", err)
		}
		if len(got) != 1 || got[0].OffsetTop != 800 || got[0].Score != 1 {
			t.Errorf("Locate() = %+v", got)
		}
	})

	t.Run("no content container", func(t *testing.T) {
		got, err := svc.Locate(testContext(), editor.LocateRequest{Source: sample, HTML: "<p>Some paragraph text.</p>"})
		if err != nil {
			t.Fatalf("Locate() error = %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("Locate() = %v, want empty", got)
		}
	})

	t.Run("negative line index", func(t *testing.T) {
		_, err := svc.Locate(testContext(), editor.LocateRequest{
			Source:    sample,
			KeyPoints: []markdown.KeyPoint{{Type: markdown.Paragraph, LineIndex: -1, Content: "x"}},
		})
		var vErr *editor.ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "keyPoints" {
			t.Errorf("Locate() error = %v, want keyPoints validation error", err)
		}
	})
}
