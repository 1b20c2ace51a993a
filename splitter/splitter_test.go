package splitter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lf = Options{NewLine: "\n"}

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts Options
		want []File
	}{
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "no markers",
			text: "just\nsome text\n",
			want: nil,
		},
		{
			name: "one empty file",
			text: "==> a.txt",
			want: []File{{Name: "a.txt", Text: ""}},
		},
		{
			name: "two empty files",
			text: "==> a.txt\n==> b.txt",
			want: []File{{Name: "a.txt"}, {Name: "b.txt"}},
		},
		{
			name: "blank line trimming",
			text: "==> a.txt\n\n\nline 1\n\n\n==> b.txt\n\nline 1\n\n",
			opts: lf,
			want: []File{
				{Name: "a.txt", Text: "\nline 1\n"},
				{Name: "b.txt", Text: "line 1\n"},
			},
		},
		{
			name: "prologue discarded",
			text: "before\n==> a.txt\nafter\n",
			opts: lf,
			want: []File{{Name: "a.txt", Text: "after\n"}},
		},
		{
			name: "name is trimmed",
			text: "==>    spaced name.txt   \nx",
			opts: lf,
			want: []File{{Name: "spaced name.txt", Text: "x\n"}},
		},
		{
			name: "name without space after token",
			text: "==>a.txt\nx",
			opts: lf,
			want: []File{{Name: "a.txt", Text: "x\n"}},
		},
		{
			name: "first marker fixes the token",
			text: "===> a.txt\n==> not a marker\n===> b.txt\nb",
			opts: lf,
			want: []File{
				{Name: "a.txt", Text: "==> not a marker\n"},
				{Name: "b.txt", Text: "b\n"},
			},
		},
		{
			name: "longer run is not the token",
			text: "==> a.txt\na\n===> b.txt\nb",
			opts: lf,
			want: []File{
				{Name: "a.txt", Text: "a\n===> b.txt\nb\n"},
			},
		},
		{
			name: "indented marker is content",
			text: "==> a.txt\n  ==> b.txt\n",
			opts: lf,
			want: []File{{Name: "a.txt", Text: "  ==> b.txt\n"}},
		},
		{
			name: "trailing whitespace trimmed",
			text: "==> a.txt\nline 1 \t \nline 2\t\n",
			opts: lf,
			want: []File{{Name: "a.txt", Text: "line 1\nline 2\n"}},
		},
		{
			name: "whitespace-only lines are blank",
			text: "==> a.txt\n   \nx\n \t \n",
			opts: lf,
			want: []File{{Name: "a.txt", Text: "x\n"}},
		},
		{
			name: "crlf newline",
			text: "==> a.txt\nline 1\nline 2",
			opts: Options{NewLine: "\r\n"},
			want: []File{{Name: "a.txt", Text: "line 1\r\nline 2\r\n"}},
		},
		{
			name: "crlf and cr input",
			text: "==> a.txt\r\nline 1\rline 2\r\n==> b.txt\r\n",
			opts: lf,
			want: []File{
				{Name: "a.txt", Text: "line 1\nline 2\n"},
				{Name: "b.txt", Text: ""},
			},
		},
		{
			name: "default newline is lf",
			text: "==> a.txt\nx",
			want: []File{{Name: "a.txt", Text: "x\n"}},
		},
		{
			name: "single file keeps everything",
			text: "before\n==> a.txt\n\nafter\n\n",
			opts: Options{NewLine: "\n", SingleFileName: "single.txt"},
			want: []File{{Name: "single.txt", Text: "before\n==> a.txt\n\nafter\n"}},
		},
		{
			name: "single file with leading blank",
			text: "\n\nbody",
			opts: Options{NewLine: "\n", SingleFileName: "single.txt"},
			want: []File{{Name: "single.txt", Text: "\nbody\n"}},
		},
		{
			name: "single file empty text",
			text: "",
			opts: Options{SingleFileName: "single.txt"},
			want: []File{{Name: "single.txt", Text: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.text, tt.opts)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Split() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplit_Errors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
		message string
	}{
		{
			name:    "missing file name",
			text:    "==>\nA\n",
			wantErr: ErrMissingFileName,
			message: "missing file name",
		},
		{
			name:    "whitespace file name",
			text:    "==> a.txt\n==>   \t\n",
			wantErr: ErrMissingFileName,
			message: "missing file name",
		},
		{
			name:    "duplicate file name",
			text:    "==> a.txt\n==> a.txt",
			wantErr: ErrDuplicateFileName,
			message: "duplicate file name: a.txt",
		},
		{
			name:    "duplicate ignores case",
			text:    "==> Readme.md\nx\n==> README.MD\ny\n",
			wantErr: ErrDuplicateFileName,
			message: "duplicate file name: README.MD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := Split(tt.text, lf)
			require.Error(t, err)
			assert.Nil(t, files)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestSplit_SingleFileIgnoresMarkerErrors(t *testing.T) {
	files, err := Split("==>\n==> a\n==> a\n", Options{NewLine: "\n", SingleFileName: "out.txt"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "==>\n==> a\n==> a\n", files[0].Text)
}

func TestSplit_PreserveIndent(t *testing.T) {
	for _, indent := range []string{"\t", "  ", "    "} {
		t.Run(indent, func(t *testing.T) {
			text := "==> a.txt\nline 1\n" + indent + "line 2\n" + indent + indent + "line 3"
			got, err := Split(text, lf)
			require.NoError(t, err)

			want := []File{{Name: "a.txt", Text: "line 1\n" + indent + "line 2\n" + indent + indent + "line 3\n"}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplit_ConvertIndent(t *testing.T) {
	tests := []struct {
		before string
		after  string
	}{
		{"\t", "\t"},
		{"  ", "  "},
		{"\t", "  "},
		{"  ", "\t"},
		{"    ", "  "},
		{"  ", "    "},
	}

	for _, tt := range tests {
		t.Run(tt.before+"->"+tt.after, func(t *testing.T) {
			text := "==> a.txt\nline 1\n" + tt.before + "line 2\n" + tt.before + tt.before + "line 3"
			got, err := Split(text, Options{NewLine: "\n", IndentText: tt.after})
			require.NoError(t, err)

			want := []File{{Name: "a.txt", Text: "line 1\n" + tt.after + "line 2\n" + tt.after + tt.after + "line 3\n"}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplit_IndentUnitSharedAcrossFiles(t *testing.T) {
	// The unit is captured from a.txt (two spaces) and reused for b.txt,
	// where four spaces therefore mean two levels.
	text := "==> a.txt\nx\n  y\n==> b.txt\n    z\n"
	got, err := Split(text, Options{NewLine: "\n", IndentText: "\t"})
	require.NoError(t, err)

	want := []File{
		{Name: "a.txt", Text: "x\n\ty\n"},
		{Name: "b.txt", Text: "\t\tz\n"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSplit_IndentRemainderKept(t *testing.T) {
	// Unit is two spaces; five spaces are two units plus one leftover space.
	text := "==> a.txt\n  a\n     b\n"
	got, err := Split(text, Options{NewLine: "\n", IndentText: "\t"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "\ta\n\t\t b\n", got[0].Text)
}

func TestSplit_IndentUnitFreshPerCall(t *testing.T) {
	opts := Options{NewLine: "\n", IndentText: "\t"}

	first, err := Split("==> a.txt\n    a\n", opts)
	require.NoError(t, err)
	assert.Equal(t, "\ta\n", first[0].Text)

	second, err := Split("==> a.txt\n  a\n", opts)
	require.NoError(t, err)
	assert.Equal(t, "\ta\n", second[0].Text)
}

func TestSplit_Idempotent(t *testing.T) {
	text := "pro\n==> a.txt\n\n  x\n==> b.txt\ny\n\n"
	opts := Options{NewLine: "\r\n", IndentText: "\t"}

	first, err := Split(text, opts)
	require.NoError(t, err)
	second, err := Split(text, opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFindMarker(t *testing.T) {
	tests := []struct {
		line   string
		token  string
		marker bool
	}{
		{"==> a.txt", "==>", true},
		{"===> a.txt", "===>", true},
		{"==========>", "==========>", true},
		{"=> a.txt", "", false},
		{" ==> a.txt", "", false},
		{"==", "", false},
		{"== > a.txt", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			token, ok := FindMarker(tt.line)
			assert.Equal(t, tt.marker, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\n\n", []string{"a", ""}},
		{"a\r\nb", []string{"a", "b"}},
		{"a\rb\r", []string{"a", "b"}},
		{"\n", []string{""}},
		{"a\r\r\nb", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, splitLines(tt.text), "splitLines(%q)", tt.text)
	}
}
