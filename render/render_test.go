package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iand/ddx/infer"
	"github.com/iand/ddx/model"
)

func testKB(t *testing.T) *model.KnowledgeBase {
	t.Helper()
	b := model.NewBuilder(model.DefaultParams())
	inputs := []model.DiseaseInput{
		{Name: "A", Symptoms: []string{"fever", "headache"}, Treatments: "Rest", Contagious: "Yes", Chronic: "No"},
		{Name: "B", Symptoms: []string{"cough"}},
	}
	for _, in := range inputs {
		if _, err := b.Add(in); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	return b.Build()
}

func testReport(t *testing.T, reported []string) (*Report, *model.KnowledgeBase) {
	t.Helper()
	kb := testKB(t)
	r := NewReport(reported, kb, infer.Rank(reported, kb, model.DefaultParams()))
	return r, kb
}

func TestNewReport(t *testing.T) {
	r, _ := testReport(t, []string{"fever", "glowing skin"})

	want := &Report{
		Reported: []string{"fever", "glowing skin"},
		Ignored:  []string{"glowing skin"},
		Results: []Result{
			{
				Rank:        1,
				Name:        "A",
				Probability: 0.8889,
				Matched:     []string{"fever"},
				Symptoms:    []string{"fever", "headache"},
				Treatments:  "Rest",
				Contagious:  "Yes",
				Chronic:     "No",
			},
			{
				Rank:        2,
				Name:        "B",
				Probability: 0.1111,
				Symptoms:    []string{"cough"},
				Treatments:  model.DefaultTreatments,
				Contagious:  model.NotApplicable,
				Chronic:     model.NotApplicable,
			},
		},
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestTextEncoder(t *testing.T) {
	r, kb := testReport(t, []string{"fever", "headach"})
	r.AddSuggestions(kb, 3)

	var buf bytes.Buffer
	if err := (&TextEncoder{}).Encode(&buf, r); err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}

	rule := strings.Repeat("-", 60)
	want := "Ignored symptoms: headach (did you mean headache?)\n" +
		"\nTop 2 probable diseases with details:\n\n" +
		"Disease: A\n" +
		"Probability: 88.89%\n" +
		"Treatments: Rest\n" +
		"Contagious: Yes\n" +
		"Chronic: No\n" +
		rule + "\n" +
		"Disease: B\n" +
		"Probability: 11.11%\n" +
		"Treatments: Consult a healthcare provider for diagnosis and treatment.\n" +
		"Contagious: N/A\n" +
		"Chronic: N/A\n" +
		rule + "\n"

	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdownEncoder(t *testing.T) {
	r, _ := testReport(t, []string{"fever"})

	var buf bytes.Buffer
	if err := (&MarkdownEncoder{}).Encode(&buf, r); err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}

	want := "# Probable diseases\n\n" +
		"Reported symptoms: fever\n\n" +
		"## 1. A\n\n" +
		"- **Probability:** 88.89%\n" +
		"- **Matched symptoms:** fever\n" +
		"- **Treatments:** Rest\n" +
		"- **Contagious:** Yes\n" +
		"- **Chronic:** No\n\n" +
		"## 2. B\n\n" +
		"- **Probability:** 11.11%\n" +
		"- **Treatments:** Consult a healthcare provider for diagnosis and treatment.\n" +
		"- **Contagious:** N/A\n" +
		"- **Chronic:** N/A\n\n"

	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdownEncoderNoResults(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownEncoder{Title: "Nothing"}).Encode(&buf, &Report{}); err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}
	if diff := cmp.Diff("# Nothing\n\nNo diseases found.\n", buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONEncoder(t *testing.T) {
	r, _ := testReport(t, []string{"fever", "glowing skin"})

	var buf bytes.Buffer
	if err := (&JSONEncoder{}).Encode(&buf, r); err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}

	var got reportJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}

	if diff := cmp.Diff([]string{"glowing skin"}, got.Ignored); diff != "" {
		t.Errorf("ignored mismatch (-want +got):\n%s", diff)
	}
	if len(got.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(got.Results))
	}
	first := got.Results[0]
	if first.Disease != "A" || first.Probability != 0.8889 || first.Rank != 1 {
		t.Errorf("unexpected first result: %+v", first)
	}
	if diff := cmp.Diff([]string{"fever"}, first.Matched); diff != "" {
		t.Errorf("matched mismatch (-want +got):\n%s", diff)
	}
}

func TestNewEncoder(t *testing.T) {
	testCases := []struct {
		format  string
		want    Encoder
		wantErr bool
	}{
		{format: "", want: &TextEncoder{}},
		{format: "text", want: &TextEncoder{}},
		{format: "Markdown", want: &MarkdownEncoder{}},
		{format: "md", want: &MarkdownEncoder{}},
		{format: "json", want: &JSONEncoder{Indent: "  "}},
		{format: "xml", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.format, func(t *testing.T) {
			got, err := NewEncoder(tc.format)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("missing expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("got unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("encoder mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
