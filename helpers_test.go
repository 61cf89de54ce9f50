package inkwell

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestExcerpt(t *testing.T) {
	words := make([]string, 45)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	content := strings.Join(words, " ")

	got := Excerpt(content)
	gotWords := strings.Fields(got)
	if len(gotWords) != 30 {
		t.Fatalf("excerpt word count = %d, want 30", len(gotWords))
	}
	for i, w := range gotWords {
		if w != words[i] {
			t.Fatalf("excerpt word %d = %q, want %q", i, w, words[i])
		}
	}
}

func TestExcerptShortContent(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"   ", ""},
		{"one two three", "one two three"},
		{"  spaced \n out \t words  ", "spaced out words"},
	}
	for _, tt := range tests {
		if got := Excerpt(tt.input); got != tt.want {
			t.Errorf("Excerpt(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestReadableDate(t *testing.T) {
	posted := time.Date(2026, time.March, 7, 15, 4, 5, 0, time.UTC)
	if got := ReadableDate(posted); got != "March 07, 2026" {
		t.Errorf("ReadableDate = %q, want %q", got, "March 07, 2026")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  My  Photo.JPG  ", "my-photo-jpg"},
		{"déjà vu", "d-j-vu"},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"http://example.com", nil, "http://example.com"},
		{"http://example.com", []string{"entry", "5"}, "http://example.com/entry/5/"},
		{"http://example.com/base", []string{"category"}, "http://example.com/base/category/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}
