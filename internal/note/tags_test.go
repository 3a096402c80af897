package note

import (
	"reflect"
	"testing"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple tag", "roman", "roman"},
		{"with spaces", "Science Fiction", "Science-Fiction"},
		{"multiple spaces", "Science  Fiction", "Science-Fiction"},
		{"leading hash", "#Sci-Fi", "Sci-Fi"},
		{"surrounding whitespace", "  genre/Krimi  ", "genre/Krimi"},
		{"ampersand", "Fantasy & Horror", "Fantasy-and-Horror"},
		{"hash in middle", "top#10", "top10"},
		{"multiple hyphens", "foo---bar", "foo-bar"},
		{"leading hyphens", "---test", "test"},
		{"trailing hyphens", "test---", "test"},
		{"hierarchy preserved", "genre/Sachbuch", "genre/Sachbuch"},
		{"case preserved", "Jugendbuch", "Jugendbuch"},
		{"tabs and newlines", "foo\t\nbar", "foo-bar"},
		{"empty string", "", ""},
		{"only whitespace", "   ", ""},
		{"only hash", "#", ""},
		{"only hyphens", "---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTag(tt.input); got != tt.want {
				t.Errorf("NormalizeTag(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"Science Fiction", "#roman", "", "roman", "   "})
	want := []string{"Science-Fiction", "roman"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTags = %v, want %v", got, want)
	}
}

func TestTagSet(t *testing.T) {
	ts := NewTagSet()

	ts.Add("Science Fiction")
	ts.Add("roman")
	ts.Add("roman") // duplicate
	ts.Add("")      // dropped
	ts.AddIf(true, "klassiker")
	ts.AddIf(false, "ignored")
	ts.AddFormat("lang/%s", "de")

	got := ts.GetSorted()
	want := []string{"Science-Fiction", "klassiker", "lang/de", "roman"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetSorted = %v, want %v", got, want)
	}
}

func TestMergeTags(t *testing.T) {
	existing := []string{"roman", "my own tag"}
	added := []string{"Roman", "klassiker"}

	got := MergeTags(existing, added)
	want := []string{"Roman", "klassiker", "my-own-tag", "roman"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeTags = %v, want %v", got, want)
	}
}

func TestTagsFromAny(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"string slice", []string{"a", "", "b"}, []string{"a", "b"}},
		{"any slice", []any{"a", 7, "b", nil}, []string{"a", "b"}},
		{"nil", nil, []string{}},
		{"scalar", "not-a-list", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TagsFromAny(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TagsFromAny(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
