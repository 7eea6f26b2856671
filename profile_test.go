package atelier

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProfileMissingFile(t *testing.T) {
	p, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing profile should not error: %v", err)
	}
	if p.Name == "" {
		t.Error("default profile has no name")
	}
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `
name: Alex Chen
title: Engineer
bio: Hello.
email: alex@example.com
avatar_url: /me.jpg
gallery:
  - /a.jpg
projects:
  - title: Atelier
    description: This site.
    tags: [go]
skills:
  - { name: Go, level: 90, category: Backend }
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if p.Name != "Alex Chen" || p.Title != "Engineer" {
		t.Errorf("identity = %q / %q", p.Name, p.Title)
	}
	if p.AvatarURL != "/me.jpg" || len(p.Gallery) != 1 {
		t.Errorf("media = %q / %v", p.AvatarURL, p.Gallery)
	}
	if len(p.Projects) != 1 || p.Projects[0].Title != "Atelier" {
		t.Errorf("projects = %+v", p.Projects)
	}
	if len(p.Skills) != 1 || p.Skills[0].Level != 90 {
		t.Errorf("skills = %+v", p.Skills)
	}
}

func TestLoadProfileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte("name: [unclosed"), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	if _, err := LoadProfile(path); err == nil {
		t.Error("expected parse error")
	}
}
