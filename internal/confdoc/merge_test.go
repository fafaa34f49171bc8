package confdoc_test

import (
	"errors"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/calvinalkan/confdoc/internal/confdoc"
	"github.com/calvinalkan/confdoc/internal/document"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		a, b    string
		want    string
		wantErr error
	}{
		{
			name: "disjoint keys",
			a:    `{"a":"1"}`,
			b:    `{"b":"2"}`,
			want: `{"a":"1","b":"2"}`,
		},
		{
			name: "collision takes right value",
			a:    `{"db":"first","k":"x"}`,
			b:    `{"db":"twotree"}`,
			want: `{"db":"twotree","k":"x"}`,
		},
		{
			name: "nested values are replaced not merged",
			a:    `{"prog":[{"0":"u"}],"o":{"x":1}}`,
			b:    `{"o":{"y":2}}`,
			want: `{"o":{"y":2},"prog":[{"0":"u"}]}`,
		},
		{
			name:    "empty left object",
			a:       `{}`,
			b:       `{"b":"2"}`,
			wantErr: document.ErrSyntax,
		},
		{
			name:    "empty right object",
			a:       `{"a":"1"}`,
			b:       `{}`,
			wantErr: document.ErrSyntax,
		},
		{
			name:    "object and array",
			a:       `{"a":"1"}`,
			b:       `[1]`,
			wantErr: document.ErrSyntax,
		},
		{
			name:    "two arrays splice into a valid array",
			a:       `[1]`,
			b:       `[2]`,
			wantErr: confdoc.ErrMergeNotObject,
		},
		{
			name:    "two strings splice into a valid string",
			a:       `"ab"`,
			b:       `"cd"`,
			wantErr: confdoc.ErrMergeNotObject,
		},
		{
			name:    "scalars",
			a:       `1`,
			b:       `2`,
			wantErr: document.ErrSyntax,
		},
		{
			name:    "null documents",
			a:       `null`,
			b:       `null`,
			wantErr: document.ErrSyntax,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, _ := newSession(t)

			got, err := s.Merge(mustParse(t, tc.a), mustParse(t, tc.b))

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) || !errors.Is(err, confdoc.ErrMerge) {
					t.Fatalf("err=%v, want %v wrapped in ErrMerge", err, tc.wantErr)
				}

				if !got.IsNull() {
					t.Fatalf("result should be null on error, got %s", got.String())
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.String() != tc.want {
				t.Fatalf("got  %s\nwant %s", got.String(), tc.want)
			}
		})
	}
}

func TestMerge_EmptyLeftReportsLeadingComma(t *testing.T) {
	t.Parallel()

	_, err := confdoc.Merge(document.FromMap(nil), document.FromMap(map[string]string{"b": "2"}))
	if err == nil {
		t.Fatal("expected error")
	}

	if !strings.Contains(err.Error(), "','") {
		t.Fatalf("diagnostic should mention the stray comma: %v", err)
	}
}

func TestMerge_ScalarInputsFailWithoutPanic(t *testing.T) {
	t.Parallel()

	seven, err := document.FromNumber("7")
	if err != nil {
		t.Fatal(err)
	}

	obj := document.FromMap(map[string]string{"b": "2"})

	for _, pair := range [][2]document.Document{
		{seven, obj},
		{obj, seven},
		{seven, seven},
		{{}, obj},
		{document.FromString(""), document.FromBool(true)},
	} {
		got, err := confdoc.Merge(pair[0], pair[1])
		if !errors.Is(err, confdoc.ErrMerge) {
			t.Fatalf("Merge(%s, %s) err=%v, want ErrMerge", pair[0], pair[1], err)
		}

		if got.Kind() != document.Null {
			t.Fatalf("Merge(%s, %s) = %s, want null", pair[0], pair[1], got)
		}
	}
}

func TestMerge_InputsAreNotModified(t *testing.T) {
	t.Parallel()

	a := mustParse(t, `{"k":"a"}`)
	b := mustParse(t, `{"k":"b","x":"y"}`)

	if _, err := confdoc.Merge(a, b); err != nil {
		t.Fatal(err)
	}

	if a.String() != `{"k":"a"}` || b.String() != `{"k":"b","x":"y"}` {
		t.Fatalf("inputs changed: a=%s b=%s", a.String(), b.String())
	}
}

func genObject(t *rapid.T, label string) map[string]string {
	key := rapid.StringMatching(`[a-e]{1,2}`)
	value := rapid.StringMatching(`[a-z0-9"]{0,4}`)

	return rapid.MapOfN(key, value, 1, 6).Draw(t, label)
}

func TestMerge_RightWinsOnEveryCollision(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		a := genObject(t, "a")
		b := genObject(t, "b")

		merged, err := confdoc.Merge(document.FromMap(a), document.FromMap(b))
		if err != nil {
			t.Fatalf("merge: %v", err)
		}

		for k, v := range b {
			got, _ := merged.Get(k).StringValue()
			if got != v {
				t.Fatalf("merged[%q]=%q, want right value %q", k, got, v)
			}
		}

		for k, v := range a {
			if _, inB := b[k]; inB {
				continue
			}

			got, _ := merged.Get(k).StringValue()
			if got != v {
				t.Fatalf("merged[%q]=%q, want left value %q", k, got, v)
			}
		}

		if merged.Len() > len(a)+len(b) {
			t.Fatalf("merged has %d members, more than inputs", merged.Len())
		}
	})
}

func TestMerge_MatchesSpliceAndReparse(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		a := document.FromMap(genObject(t, "a"))
		b := document.FromMap(genObject(t, "b"))

		as, bs := a.String(), b.String()

		spliced, err := document.Parse(as[:len(as)-1] + "," + bs[1:])
		if err != nil {
			t.Fatalf("splice should parse: %v", err)
		}

		merged, err := confdoc.Merge(a, b)
		if err != nil {
			t.Fatalf("merge: %v", err)
		}

		if !document.Equal(spliced, merged) {
			t.Fatalf("structural merge differs from splice:\n%s", document.Diff(spliced, merged))
		}
	})
}
