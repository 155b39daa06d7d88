package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/clipcat/internal/check"
	"github.com/backmassage/clipcat/internal/pipeline"
)

// cliEnv isolates a test from the user's config files.
func cliEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	chdirTest(t, dir)
	return dir
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestParseCommand_JSON(t *testing.T) {
	cliEnv(t)
	code, out, stderr := runCLI(t, "parse", "-o", "json", `a\@b.mp4@00:10-01:00.5,-00:03`, "outro.mkv")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}

	var got []parsedClip
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(got) != 2 {
		t.Fatalf("clips: got %d, want 2", len(got))
	}
	first := got[0]
	if first.Filename != "a@b.mp4" || len(first.Segments) != 2 {
		t.Fatalf("first clip: %+v", first)
	}
	if s := first.Segments[0]; s.Start != "00:10" || s.End != "01:00.5" || *s.StartSeconds != 10 || *s.EndSeconds != 60.5 {
		t.Errorf("segment 1: %+v", s)
	}
	if s := first.Segments[1]; s.Start != "" || s.StartSeconds != nil || s.End != "00:03" {
		t.Errorf("segment 2: %+v", s)
	}
	if first.Canonical != `a\@b.mp4@00:10-01:00.5, -00:03` {
		t.Errorf("canonical: got %q", first.Canonical)
	}
	if got[1].Filename != "outro.mkv" || len(got[1].Segments) != 1 {
		t.Errorf("second clip: %+v", got[1])
	}
}

func TestParseCommand_YAML(t *testing.T) {
	cliEnv(t)
	code, out, stderr := runCLI(t, "parse", "--output", "yaml", "talk.mp4@1:00:00-")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	for _, want := range []string{"spec:", "talk.mp4@1:00:00-", "filename: talk.mp4", "start_seconds: 3600"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml output missing %q:\n%s", want, out)
		}
	}
}

func TestParseCommand_Table(t *testing.T) {
	cliEnv(t)
	code, out, _ := runCLI(t, "parse", "talk.mp4@-00:30,01:00-")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	for _, want := range []string{"Segment", "talk.mp4", "(start)", "00:30", "(end)", "2/2"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestParseCommand_Errors(t *testing.T) {
	cliEnv(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"invalid timecode", []string{"parse", "a.mp4@1:2:3"}, "invalid timecode: 1:2:3"},
		{"second spec invalid", []string{"parse", "a.mp4", "b.mp4@xx-"}, "input clip 2"},
		{"unknown format", []string{"parse", "-o", "xml", "a.mp4"}, "unknown output format"},
		{"no specs", []string{"parse"}, "requires at least 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != exitUsage {
				t.Errorf("exit: got %d, want %d", code, exitUsage)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr %q does not contain %q", stderr, tt.want)
			}
		})
	}
}

func TestRoot_NoArgsPrintsHelp(t *testing.T) {
	cliEnv(t)
	code, out, _ := runCLI(t)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out, "clipcat [flags] <output>") {
		t.Errorf("help not printed:\n%s", out)
	}
}

func TestRoot_UsageErrors(t *testing.T) {
	dir := cliEnv(t)
	src := filepath.Join(dir, "a.mp4")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no output", []string{"-i", src}, "need an output file name"},
		{"no clips", []string{"out.mp4"}, "need at least one --input-clip"},
		{"bad spec", []string{"-i", src + "@1-2", "out.mp4"}, "invalid timecode"},
		{"missing config", []string{"-c", filepath.Join(dir, "nope.toml"), "-i", src, "out.mp4"}, "not found"},
		{"missing source", []string{"-n", "--no-color", "-i", filepath.Join(dir, "b.mp4"), "out.mp4"}, "source not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != exitUsage {
				t.Errorf("exit: got %d, want %d (stderr %q)", code, exitUsage, stderr)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr %q does not contain %q", stderr, tt.want)
			}
		})
	}
}

func TestRoot_DryRun(t *testing.T) {
	dir := cliEnv(t)
	src := filepath.Join(dir, "talk.mp4")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	tmp := t.TempDir()

	code, out, stderr := runCLI(t, "-n", "--no-color", "--temp-dir", tmp,
		"-i", src+"@00:01-00:02,00:10-", "-i", src, "joined.mp4")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	for _, want := range []string{"DRY RUN", "[DRY] 2 clips, 3 segments", "-to 00:02", "-f concat", "joined.mp4"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "joined.mp4")); !os.IsNotExist(err) {
		t.Error("dry run must not create the output")
	}
	entries, _ := os.ReadDir(tmp)
	if len(entries) != 0 {
		t.Errorf("dry run created %d entries in temp dir", len(entries))
	}
}

func TestRoot_ExistingOutput(t *testing.T) {
	dir := cliEnv(t)
	src := filepath.Join(dir, "a.mp4")
	for _, p := range []string{src, filepath.Join(dir, "out.mp4")} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	code, _, stderr := runCLI(t, "-n", "--no-color", "-i", src, "out.mp4")
	if code != exitUsage || !strings.Contains(stderr, "already exists") {
		t.Errorf("exit %d, stderr %q", code, stderr)
	}
}

func TestRoot_MissingFFmpeg(t *testing.T) {
	dir := cliEnv(t)
	src := filepath.Join(dir, "a.mp4")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, stderr := runCLI(t, "--no-color", "--ffmpeg", "clipcat-no-such-ffmpeg", "-i", src, "out.mp4")
	if code != exitTool {
		t.Errorf("exit: got %d, want %d", code, exitTool)
	}
	if !strings.Contains(stderr, "ffmpeg not found") {
		t.Errorf("stderr %q", stderr)
	}
}

func TestConfigCommands(t *testing.T) {
	dir := cliEnv(t)
	cfgPath := filepath.Join(dir, "clipcat.toml")
	data := "[ffmpeg]\nloglevel = \"warning\"\n\n[workspace]\nkeep_temp = true\n"
	if err := os.WriteFile(cfgPath, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	code, out, stderr := runCLI(t, "config", "show", "-v")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	for _, want := range []string{"[ffmpeg]", "warning", "verbose = true", "keep_temp = true"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}

	code, out, _ = runCLI(t, "config", "path")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if want := filepath.Join(dir, "xdg", "clipcat", "config.toml"); strings.TrimSpace(out) != want {
		t.Errorf("config path: got %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestVersionCommand(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	if code != 0 || !strings.HasPrefix(out, "clipcat "+version) {
		t.Errorf("exit %d, output %q", code, out)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"plain", errors.New("bad flag"), exitUsage},
		{"coded", withCode(exitResource, errors.New("x")), exitResource},
		{"pipeline input", &pipeline.RunError{Class: pipeline.ClassInput, Err: errors.New("x")}, exitUsage},
		{"pipeline resource", &pipeline.RunError{Class: pipeline.ClassResource, Err: errors.New("x")}, exitResource},
		{"pipeline tool", &pipeline.RunError{Class: pipeline.ClassTool, Err: errors.New("x")}, exitTool},
		{"no ffmpeg", check.ErrFFmpegNotFound, exitTool},
		{"temp dir", check.ErrTempDirUnwritable, exitResource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode: got %d, want %d", got, tt.want)
			}
		})
	}
}

// chdirTest changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdirTest(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
