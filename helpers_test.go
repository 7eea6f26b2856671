package atelier

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"  Trimmed  ", "trimmed"},
		{"Already-slugged", "already-slugged"},
		{"Ünïcode & symbols!", "n-code-symbols"},
		{"multiple   spaces", "multiple-spaces"},
		{"Trailing punctuation?!", "trailing-punctuation"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", []string{"blog", "my-post"}, "https://example.com/blog/my-post/"},
		{"https://example.com/", []string{"blog"}, "https://example.com/blog/"},
		{"https://example.com", nil, "https://example.com"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{"a", "", "  ", "b", "\t"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("FilterEmpty = %v, want [a b]", got)
	}
}

func TestEstimateReadTime(t *testing.T) {
	if got := EstimateReadTime("short"); got != "1 min" {
		t.Errorf("short content = %q, want 1 min", got)
	}

	long := strings.Repeat("word ", 650)
	if got := EstimateReadTime(long); got != "3 min" {
		t.Errorf("650 words = %q, want 3 min", got)
	}

	// Han characters count individually, not as whitespace-split words.
	cjk := strings.Repeat("字", 1200)
	if got := EstimateReadTime(cjk); got != "2 min" {
		t.Errorf("1200 Han chars = %q, want 2 min", got)
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Tech", CategoryTech},
		{"Notes", CategoryNotes},
		{"Craft", CategoryCraft},
		{"Standards", CategoryStandards},
		{"Design", CategoryCraft},
		{"Life", CategoryNotes},
		{"", CategoryNotes},
		{"nonsense", CategoryNotes},
	}
	for _, tt := range tests {
		if got := NormalizeCategory(tt.in); got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWebsiteJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Atelier", URL: "https://example.com", Description: "A site", Author: "Alex"}
	got := WebsiteJsonLD(cfg)
	for _, want := range []string{`"@type":"WebSite"`, `"name":"Atelier"`, `"Alex"`} {
		if !strings.Contains(got, want) {
			t.Errorf("WebsiteJsonLD missing %s in %s", want, got)
		}
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Atelier", URL: "https://example.com", Author: "Alex"}
	post := Post{ID: "abc", Title: "A Post", Excerpt: "Summary", Date: "2024-01-15"}
	got := BlogPostingJsonLD(post, cfg)
	for _, want := range []string{`"@type":"BlogPosting"`, `"headline":"A Post"`, "https://example.com/blog/abc/"} {
		if !strings.Contains(got, want) {
			t.Errorf("BlogPostingJsonLD missing %s in %s", want, got)
		}
	}
}
