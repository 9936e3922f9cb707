package run

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/flarebyte/seshat-scribe/internal/stage"
)

// outputsEnv names the optional key=value outputs file, the way CI runners
// expose step outputs.
const outputsEnv = "SESHAT_OUTPUT"

// runOutputs is the stable set of facts published at the end of every run.
type runOutputs struct {
	Committed  bool   `json:"committed"`
	CommitSha  string `json:"commit_sha"`
	CommitLong string `json:"commit_long_sha"`
	Tagged     bool   `json:"tagged"`
	Pushed     bool   `json:"pushed"`
	TagPushed  bool   `json:"tag_pushed"`
}

func collectOutputs(env stage.Envelope) runOutputs {
	var out runOutputs
	if env.Meta == nil {
		return out
	}
	r := env.Meta.Result
	out.Committed = r.Committed
	out.Tagged = r.Tagged
	out.Pushed = r.Pushed
	out.TagPushed = r.TagPushed
	if n := len(r.CommitShas); n > 0 {
		out.CommitLong = r.CommitShas[n-1]
		out.CommitSha = out.CommitLong
		if len(out.CommitSha) > 7 {
			out.CommitSha = out.CommitSha[:7]
		}
	}
	return out
}

// encodeJSONLine returns the compact JSON encoding with HTML escaping
// disabled, newline-terminated.
func encodeJSONLine(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatOutputLines(out runOutputs) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "committed=%t\n", out.Committed)
	fmt.Fprintf(&buf, "commit_sha=%s\n", out.CommitSha)
	fmt.Fprintf(&buf, "commit_long_sha=%s\n", out.CommitLong)
	fmt.Fprintf(&buf, "tagged=%t\n", out.Tagged)
	fmt.Fprintf(&buf, "pushed=%t\n", out.Pushed)
	fmt.Fprintf(&buf, "tag_pushed=%t\n", out.TagPushed)
	return buf.Bytes()
}

// publishOutputs writes the run facts as one JSON line to w and, when a
// target file is named, appends key=value lines to it. Runs on every exit
// path, success or failure.
func publishOutputs(env stage.Envelope, w io.Writer, outPath string) error {
	out := collectOutputs(env)
	line, err := encodeJSONLine(out)
	if err != nil {
		return err
	}
	if _, err := w.Write(line); err != nil {
		return err
	}
	if outPath == "" {
		return nil
	}
	if dir := filepath.Dir(outPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("outputs: %v", err)
		}
	}
	f, err := os.OpenFile(outPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("outputs: %v", err)
	}
	defer f.Close()
	if _, err := f.Write(formatOutputLines(out)); err != nil {
		return fmt.Errorf("outputs: %v", err)
	}
	return nil
}
