// Package transcript picks the best transcript string out of a streaming ASR
// server payload.
//
// The server streams tentative utterances before committing definite ones, so
// the precedence is:
//
//  1. a non-empty string at result.text;
//  2. otherwise the concatenated text of the definite entries of
//     result.utterances, or of all entries when none is definite;
//  3. otherwise the empty string.
//
// Payloads are weakly typed upstream data; fields of the wrong JSON type are
// treated as absent.
package transcript

import (
	"strings"

	"github.com/tidwall/gjson"
)

const (
	pathText       = "result.text"
	pathUtterances = "result.utterances"
)

// Utterance is one recognized span in result.utterances.
type Utterance struct {
	Text     string
	Definite bool
}

// Extract returns the best transcript in doc, or "" when there is none.
// doc must be a JSON document; invalid JSON yields "".
func Extract(doc []byte) string {
	if len(doc) == 0 || !gjson.ValidBytes(doc) {
		return ""
	}
	if text := gjson.GetBytes(doc, pathText); text.Type == gjson.String && text.Str != "" {
		return text.Str
	}
	return Join(Utterances(doc))
}

// Utterances returns the entries of result.utterances in array order.
func Utterances(doc []byte) []Utterance {
	arr := gjson.GetBytes(doc, pathUtterances)
	if !arr.IsArray() {
		return nil
	}
	var out []Utterance
	arr.ForEach(func(_, u gjson.Result) bool {
		if !u.IsObject() {
			return true
		}
		var text string
		if t := u.Get("text"); t.Type == gjson.String {
			text = t.Str
		}
		out = append(out, Utterance{
			Text:     text,
			Definite: u.Get("definite").Type == gjson.True,
		})
		return true
	})
	return out
}

// Join concatenates the definite utterances if any exist, otherwise all of
// them.
func Join(utterances []Utterance) string {
	var (
		all      strings.Builder
		definite strings.Builder
		found    bool
	)
	for _, u := range utterances {
		all.WriteString(u.Text)
		if u.Definite {
			found = true
			definite.WriteString(u.Text)
		}
	}
	if found {
		return definite.String()
	}
	return all.String()
}
