package transcript

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"text wins", `{"result":{"text":"hello","utterances":[{"text":"x","definite":true}]}}`, "hello"},
		{"empty text falls through", `{"result":{"text":"","utterances":[{"text":"a","definite":false}]}}`, "a"},
		{"non-string text ignored", `{"result":{"text":42,"utterances":[{"text":"a"}]}}`, "a"},
		{"definite only", `{"result":{"utterances":[{"text":"a","definite":false},{"text":"b","definite":true}]}}`, "b"},
		{"definite in order", `{"result":{"utterances":[{"text":"one ","definite":true},{"text":"two","definite":false},{"text":"three","definite":true}]}}`, "one three"},
		{"all tentative", `{"result":{"utterances":[{"text":"a","definite":false},{"text":"b"}]}}`, "ab"},
		{"definite must be boolean true", `{"result":{"utterances":[{"text":"a","definite":"true"},{"text":"b","definite":1}]}}`, "ab"},
		{"non-object utterance skipped", `{"result":{"utterances":["a",{"text":"b"}]}}`, "b"},
		{"utterances not array", `{"result":{"utterances":{"text":"a"}}}`, ""},
		{"no result", `{"audio_info":{"duration":100}}`, ""},
		{"result not object", `{"result":"text"}`, ""},
		{"top level array", `[1,2]`, ""},
		{"empty doc", ``, ""},
		{"invalid doc", `{"result":`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract([]byte(tt.doc)); got != tt.want {
				t.Errorf("Extract(%s) = %q, want %q", tt.doc, got, tt.want)
			}
		})
	}
}

func TestUtterances(t *testing.T) {
	doc := []byte(`{"result":{"utterances":[{"text":"a","definite":true,"start_time":0},{"text":"b"}]}}`)
	got := Utterances(doc)
	want := []Utterance{{Text: "a", Definite: true}, {Text: "b"}}
	if len(got) != len(want) {
		t.Fatalf("Utterances = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Utterances[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestJoinEmpty(t *testing.T) {
	if got := Join(nil); got != "" {
		t.Errorf("Join(nil) = %q, want empty", got)
	}
}
