package asr

import "encoding/json"

type requestPayload struct {
	User    *requestUser   `json:"user,omitempty"`
	Audio   requestAudio   `json:"audio"`
	Request requestOptions `json:"request"`
}

type requestUser struct {
	UID string `json:"uid"`
}

type requestAudio struct {
	Format  string `json:"format"`
	Rate    int    `json:"rate"`
	Bits    int    `json:"bits"`
	Channel int    `json:"channel"`
}

type requestOptions struct {
	ModelName       string `json:"model_name"`
	EnableNonStream bool   `json:"enable_nonstream"`
	EnableITN       bool   `json:"enable_itn"`
	EnablePunc      bool   `json:"enable_punc"`
	ShowUtterances  bool   `json:"show_utterances"`
	ResultType      string `json:"result_type"`
	EndWindowSize   int    `json:"end_window_size"`
}

// requestJSON builds the FULL_CLIENT_REQUEST payload. c must already have
// defaults applied.
func requestJSON(c Config) ([]byte, error) {
	p := requestPayload{
		Audio: requestAudio{
			Format:  "pcm",
			Rate:    16000,
			Bits:    16,
			Channel: 1,
		},
		Request: requestOptions{
			ModelName:       c.ModelName,
			EnableNonStream: c.EnableNonStream,
			EnableITN:       c.EnableITN,
			EnablePunc:      c.EnablePunc,
			ShowUtterances:  c.ShowUtterances,
			ResultType:      "full",
			EndWindowSize:   c.EndWindowSize,
		},
	}
	if c.UserID != "" {
		p.User = &requestUser{UID: c.UserID}
	}
	return json.Marshal(p)
}
