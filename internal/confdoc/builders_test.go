package confdoc_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/calvinalkan/confdoc/internal/confdoc"
	"github.com/calvinalkan/confdoc/internal/logging"
)

func TestInsertKeyValue_RejectsDuplicateKeepingFirstValue(t *testing.T) {
	t.Parallel()

	s, logBuf := newSession(t)
	kv := confdoc.KeyValue{}

	if !s.InsertKeyValue("db", "testdb", kv) {
		t.Fatal("first insert should succeed")
	}

	if s.InsertKeyValue("db", "other", kv) {
		t.Fatal("duplicate insert should fail")
	}

	if diff := cmp.Diff(confdoc.KeyValue{"db": "testdb"}, kv); diff != "" {
		t.Fatalf("map mismatch (-want +got):\n%s", diff)
	}

	log := logBuf.String()
	if got := strings.Count(log, "msg=insert "); got != 2 {
		t.Fatalf("want 2 insert trace records, got %d\n%s", got, log)
	}

	if !strings.Contains(log, "key=db ok=true") || !strings.Contains(log, "key=db ok=false") {
		t.Fatalf("trace log should name key and outcome:\n%s", log)
	}
}

func TestInsertKeyValue_DisjointKeysAllSucceedOnce(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		keys := rapid.SliceOfDistinct(rapid.StringMatching(`[a-z0-9]{1,6}`), func(k string) string { return k }).
			Draw(t, "keys")

		s := confdoc.NewSession(confdoc.DefaultConfig(), logging.Discard(), nil)
		kv := confdoc.KeyValue{}

		for i, k := range keys {
			if !s.InsertKeyValue(k, k+"-first", kv) {
				t.Fatalf("insert %d (%q) failed", i, k)
			}
		}

		for _, k := range keys {
			if s.InsertKeyValue(k, "second", kv) {
				t.Fatalf("second insert of %q succeeded", k)
			}

			if kv[k] != k+"-first" {
				t.Fatalf("kv[%q]=%q, want first value", k, kv[k])
			}
		}

		if len(kv) != len(keys) {
			t.Fatalf("len=%d, want %d", len(kv), len(keys))
		}
	})
}

func TestInsertJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		start  confdoc.KeyValue
		text   string
		wantOK bool
		want   confdoc.KeyValue
	}{
		{
			name:   "values become json text",
			start:  confdoc.KeyValue{},
			text:   `{"k1":"v1","n":3,"list":[1,2,3],"obj":{"x":true}}`,
			wantOK: true,
			want: confdoc.KeyValue{
				"k1":   `"v1"`,
				"n":    "3",
				"list": "[1,2,3]",
				"obj":  `{"x":true}`,
			},
		},
		{
			name:   "duplicate member fails but others insert",
			start:  confdoc.KeyValue{"a": "kept"},
			text:   `{"a":"new","b":"2"}`,
			wantOK: false,
			want:   confdoc.KeyValue{"a": "kept", "b": `"2"`},
		},
		{
			name:   "parse error inserts nothing",
			start:  confdoc.KeyValue{},
			text:   `{"a":`,
			wantOK: false,
			want:   confdoc.KeyValue{},
		},
		{
			name:   "non object has no members",
			start:  confdoc.KeyValue{},
			text:   `[1,2]`,
			wantOK: true,
			want:   confdoc.KeyValue{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, _ := newSession(t)

			if got := s.InsertJSON(tc.text, tc.start); got != tc.wantOK {
				t.Fatalf("InsertJSON=%v, want %v", got, tc.wantOK)
			}

			if diff := cmp.Diff(tc.want, tc.start); diff != "" {
				t.Fatalf("map mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInsertJSON_LogsParseErrorAsWarning(t *testing.T) {
	t.Parallel()

	s, logBuf := newSession(t)
	s.InsertJSON(`{nope}`, confdoc.KeyValue{})

	if !strings.Contains(logBuf.String(), "level=WARN") {
		t.Fatalf("expected warning in log:\n%s", logBuf.String())
	}
}

func TestRowArray_AppendPreservesOrder(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	var rows confdoc.RowArray

	s.AppendRow(&rows, confdoc.KeyValue{"0": "u"})
	s.AppendRow(&rows, confdoc.KeyValue{"0": "p"})
	rows.Append(confdoc.KeyValue{"0": "u"})

	if got, want := rows.Document().String(), `[{"0":"u"},{"0":"p"},{"0":"u"}]`; got != want {
		t.Fatalf("rows=%s, want %s", got, want)
	}
}

func TestRowArray_EmptyIsEmptyArray(t *testing.T) {
	t.Parallel()

	var rows confdoc.RowArray

	if got := rows.Document().String(); got != "[]" {
		t.Fatalf("rows=%s, want []", got)
	}
}

func TestInsertRows_RejectsDuplicateName(t *testing.T) {
	t.Parallel()

	s, logBuf := newSession(t)
	coll := confdoc.NamedCollection{}

	first := confdoc.RowArray{{"0": "u"}}
	second := confdoc.RowArray{{"0": "other"}}

	if !s.InsertRows("prog2", first, coll) {
		t.Fatal("first insert should succeed")
	}

	if s.InsertRows("prog2", second, coll) {
		t.Fatal("duplicate name should fail")
	}

	if !s.InsertRows("prog3", first, coll) {
		t.Fatal("second name should succeed")
	}

	if got, want := coll.Document().String(), `{"prog2":[{"0":"u"}],"prog3":[{"0":"u"}]}`; got != want {
		t.Fatalf("collection=%s, want %s", got, want)
	}

	if diff := cmp.Diff([]string{"prog2", "prog3"}, coll.Names()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}

	if !strings.Contains(logBuf.String(), "key=prog2 rows=1 ok=false") {
		t.Fatalf("missing failure trace:\n%s", logBuf.String())
	}
}

func TestBuilders_AssembleProgramCollection(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	args := confdoc.KeyValue{}
	for i, v := range []string{"u", "p", "ip", "uuid"} {
		s.InsertKeyValue(string(rune('0'+i)), v, args)
	}

	var prog confdoc.RowArray

	s.AppendRow(&prog, args)

	progs := confdoc.NamedCollection{}
	s.InsertRows("prog2", prog, progs)
	s.InsertRows("prog3", prog, progs)

	want := `{"prog2":[{"0":"u","1":"p","2":"ip","3":"uuid"}],"prog3":[{"0":"u","1":"p","2":"ip","3":"uuid"}]}`
	if got := progs.Document().String(); got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}
