// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danschultequb/hashtap/pkg/hashing/hasherr"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := New()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDigest(t *testing.T) {
	abc := writeFile(t, "abc.txt", []byte("abc"))
	five := writeFile(t, "five.bin", []byte{5, 1, 2, 3})

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name: "file md5",
			args: []string{"digest", "-a", "md5", abc},
			want: "900150983CD24FB0D6963F7D28E17F72  " + abc + "\n",
		},
		{
			name: "default algorithm",
			args: []string{"digest", abc},
			want: "BA7816BF8F01CFEA414140DE5DAE2223B00361A396177A9CB410FF61F20015AD  " + abc + "\n",
		},
		{
			name:  "stdin",
			stdin: "abc",
			args:  []string{"digest", "--algorithm", "SHA1"},
			want:  "A9993E364706816ABA3E25717850C26C9CD0D89D  -\n",
		},
		{
			name: "sections",
			args: []string{"digest", "-a", "MD5", "--section-size", "1", "--chunk-size", "1", five},
			want: "8BB6C17838643F9691CC6A4DE6C51709  " + five + ":0\n" +
				"55A54008AD1BA589AA210D2629C1DF41  " + five + ":1\n" +
				"9E688C58A5487B8EAF69C9E1005AD0BF  " + five + ":2\n" +
				"8666683506AACD900BBD5A74AC4EDF68  " + five + ":3\n",
		},
		{
			name: "expect match",
			args: []string{"digest", "-a", "md5", "--expect", "900150983cd24fb0d6963f7d28e17f72", abc},
			want: "900150983CD24FB0D6963F7D28E17F72  " + abc + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, stderr, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v (stderr %q)", err, stderr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDigest_ExpectMismatch(t *testing.T) {
	abc := writeFile(t, "abc.txt", []byte("abc"))

	_, _, err := execute(t, "", "digest", "-a", "md5", "--expect", "D41D8CD98F00B204E9800998ECF8427E", abc)

	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Execute() error = %v, want *MismatchError", err)
	}
	if mismatch.ExitCode() != ExitCodeMismatch {
		t.Errorf("ExitCode() = %d, want %d", mismatch.ExitCode(), ExitCodeMismatch)
	}
	if mismatch.Name != abc {
		t.Errorf("mismatch Name = %q, want %q", mismatch.Name, abc)
	}
}

func TestDigest_Errors(t *testing.T) {
	abc := writeFile(t, "abc.txt", []byte("abc"))
	missing := filepath.Join(t.TempDir(), "missing")

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{"unknown algorithm", []string{"digest", "-a", "spam", abc}, hasherr.ErrAlgorithmUnavailable, "spam"},
		{"negative chunk size", []string{"digest", "--chunk-size", "-1", abc}, hasherr.ErrInvalidArgument, "chunk size"},
		{"missing file", []string{"digest", missing}, nil, "does not exist"},
		{"bad expect", []string{"digest", "--expect", "xyz", abc}, hasherr.ErrInvalidArgument, "invalid --expect"},
		{"bad log level", []string{"--log-level", "loud", "digest", abc}, nil, "unknown log level"},
		{"expect with sections", []string{"digest", "--expect", "00", "--section-size", "2", abc}, nil, "none of the others"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			if err == nil {
				t.Fatal("Execute() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Execute() error = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestDigest_OutputFile(t *testing.T) {
	abc := writeFile(t, "abc.txt", []byte("abc"))
	outPath := filepath.Join(t.TempDir(), "digests.txt")

	stdout, _, err := execute(t, "", "--output-file", outPath, "digest", "-a", "md5", abc)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want output redirected", stdout)
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if want := "900150983CD24FB0D6963F7D28E17F72  " + abc + "\n"; string(got) != want {
		t.Errorf("output file = %q, want %q", got, want)
	}
}

func TestCopy(t *testing.T) {
	data := bytes.Repeat([]byte("message digest"), 500)
	src := writeFile(t, "src.bin", data)
	dst := filepath.Join(t.TempDir(), "dst.bin")

	out, _, err := execute(t, "", "copy", "-a", "sha1", "--chunk-size", "100", src, dst)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	copied, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Equal(copied, data) {
		t.Error("destination content differs from the source")
	}

	digest, _, err := execute(t, "", "digest", "-a", "sha1", src)
	if err != nil {
		t.Fatalf("Execute(digest) error = %v", err)
	}
	hex := strings.Fields(digest)[0]
	if want := hex + "  " + src + " -> " + dst + "\n"; out != want {
		t.Errorf("copy output = %q, want %q", out, want)
	}
}

func TestCopy_Stdio(t *testing.T) {
	stdout, stderr, err := execute(t, "abc", "copy", "-a", "md5", "-", "-")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout != "abc" {
		t.Errorf("stdout = %q, want the copied data", stdout)
	}
	if want := "900150983CD24FB0D6963F7D28E17F72  - -> -\n"; stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
}

func TestCopy_ExpectMismatch(t *testing.T) {
	src := writeFile(t, "src.bin", []byte("abc"))
	dst := filepath.Join(t.TempDir(), "dst.bin")

	_, _, err := execute(t, "", "copy", "-a", "md5", "--expect", "D41D8CD98F00B204E9800998ECF8427E", src, dst)
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Execute() error = %v, want *MismatchError", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("destination not written: %v", err)
	}
}

func TestAlgorithms(t *testing.T) {
	out, _, err := execute(t, "", "algorithms")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	wantLines := [][]string{
		{"ALGORITHM", "BITS"},
		{"BLAKE2b-256", "256"},
		{"BLAKE2b-512", "512"},
		{"MD5", "128"},
		{"SHA-1", "160"},
		{"SHA-256", "256"},
		{"SHA-512", "512"},
		{"SHA3-256", "256"},
		{"SHA3-512", "512"},
	}
	var gotLines [][]string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		gotLines = append(gotLines, strings.Fields(line))
	}
	if diff := cmp.Diff(wantLines, gotLines); diff != "" {
		t.Errorf("algorithms output mismatch (-want +got):\n%s", diff)
	}
}

func TestCheck(t *testing.T) {
	abc := writeFile(t, "abc.txt", []byte("abc"))
	empty := writeFile(t, "empty.txt", nil)
	missing := filepath.Join(t.TempDir(), "gone.txt")

	list := "# md5 sums\n" +
		"900150983cd24fb0d6963f7d28e17f72  " + abc + "\n" +
		"00000000000000000000000000000000 *" + empty + "\n" +
		"D41D8CD98F00B204E9800998ECF8427E  " + missing + "\n"
	sums := writeFile(t, "MD5SUMS", []byte(list))

	tests := []struct {
		name         string
		args         []string
		want         string
		wantMismatch int
		wantMissing  int
	}{
		{
			name:         "all results",
			args:         []string{"check", "-a", "md5", sums},
			want:         sortedLines(abc+": OK", empty+": FAILED", missing+": MISSING"),
			wantMismatch: 1,
			wantMissing:  1,
		},
		{
			name:         "single job",
			args:         []string{"check", "-a", "md5", "-j", "1", sums},
			want:         sortedLines(abc+": OK", empty+": FAILED", missing+": MISSING"),
			wantMismatch: 1,
			wantMissing:  1,
		},
		{
			name:         "quiet",
			args:         []string{"check", "-a", "md5", "-q", sums},
			want:         sortedLines(empty+": FAILED", missing+": MISSING"),
			wantMismatch: 1,
			wantMissing:  1,
		},
		{
			name:         "ignore missing",
			args:         []string{"check", "-a", "md5", "--ignore-missing", sums},
			want:         sortedLines(abc+": OK", empty+": FAILED"),
			wantMismatch: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := execute(t, "", tt.args...)
			var checkErr *CheckError
			if !errors.As(err, &checkErr) {
				t.Fatalf("Execute() error = %v, want *CheckError", err)
			}
			if checkErr.Mismatched != tt.wantMismatch || checkErr.Missing != tt.wantMissing {
				t.Errorf("CheckError = %+v, want %d mismatched and %d missing", checkErr, tt.wantMismatch, tt.wantMissing)
			}
			if checkErr.ExitCode() != ExitCodeMismatch {
				t.Errorf("ExitCode() = %d, want %d", checkErr.ExitCode(), ExitCodeMismatch)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheck_DigestOutput(t *testing.T) {
	a := writeFile(t, "a.txt", []byte("abc"))
	b := writeFile(t, "b.txt", []byte("hello world"))

	sums, _, err := execute(t, "", "digest", "-a", "sha3-256", a, b)
	if err != nil {
		t.Fatalf("digest error = %v", err)
	}

	got, _, err := execute(t, sums, "check", "-a", "sha3-256")
	if err != nil {
		t.Fatalf("check error = %v", err)
	}
	if diff := cmp.Diff(sortedLines(a+": OK", b+": OK"), got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestCheck_Errors(t *testing.T) {
	malformed := writeFile(t, "bad.sums", []byte("not-a-digest\n"))

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "malformed list", args: []string{"check", malformed}, wantErr: "line 1"},
		{name: "no such list", args: []string{"check", filepath.Join(t.TempDir(), "none")}, wantErr: "open checksum file"},
		{name: "unknown algorithm", args: []string{"check", "-a", "crc32", malformed}, wantErr: "crc32"},
		{name: "negative jobs", args: []string{"check", "--jobs=-2", malformed}, wantErr: "concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			if err == nil {
				t.Fatal("Execute() expected error, got nil")
			}
			var checkErr *CheckError
			if errors.As(err, &checkErr) {
				t.Errorf("Execute() error = %v, want a non-verification error", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

// sortedLines joins lines in the order check prints them: sorted by name.
func sortedLines(lines ...string) string {
	sort.Strings(lines)
	return strings.Join(lines, "\n") + "\n"
}
