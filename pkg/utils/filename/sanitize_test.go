package filename_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/m-mizutani/gt"
	"github.com/tiksnap/tiksnap/pkg/utils/filename"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty input falls back", input: "", want: "tiktok"},
		{name: "illegal characters removed", input: "a/b:c", want: "abc"},
		{name: "whitespace run collapsed", input: "hello   world", want: "hello_world"},
		{name: "all illegal characters", input: `<>:"/\|?*`, want: "tiktok"},
		{name: "control characters removed", input: "a\x00b\x1fc", want: "abc"},
		{name: "tab and newline are control characters", input: "a\tb\nc", want: "abc"},
		{name: "leading and trailing spaces trimmed", input: "  hello world  ", want: "hello_world"},
		{name: "only spaces falls back", input: "    ", want: "tiktok"},
		{name: "unicode kept", input: "Xin chào Việt Nam", want: "Xin_chào_Việt_Nam"},
		{name: "unicode space collapsed", input: "a 　b", want: "a_b"},
		{name: "hashtags kept", input: "#fyp #trend", want: "#fyp_#trend"},
		{name: "byte order mark trimmed", input: "\uFEFFcaption", want: "caption"},
		{name: "byte order mark collapsed", input: "a\uFEFF b", want: "a_b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, filename.Sanitize(tt.input)).Equal(tt.want)
		})
	}
}

func TestSanitize_Truncate(t *testing.T) {
	got := filename.Sanitize(strings.Repeat("x", 200))
	gt.Number(t, len(got)).Equal(100)

	// Length is counted in characters, not bytes
	got = filename.Sanitize(strings.Repeat("ả", 150))
	gt.Number(t, utf8.RuneCountInString(got)).Equal(100)
	gt.True(t, utf8.ValidString(got))
}

func TestSanitizeN(t *testing.T) {
	gt.Value(t, filename.SanitizeN("abcdef", 3)).Equal("abc")
	gt.Value(t, filename.SanitizeN("abcdef", 0)).Equal("abcdef")
	gt.Value(t, filename.SanitizeN("a b c", 2)).Equal("a_")
}

func TestSanitize_Deterministic(t *testing.T) {
	input := "Ngày đẹp trời | part 1/2 ?"
	first := filename.Sanitize(input)
	for i := 0; i < 10; i++ {
		gt.Value(t, filename.Sanitize(input)).Equal(first)
	}
	gt.Value(t, first).Equal("Ngày_đẹp_trời_part_12")
}
