package atelier

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Profile describes the site owner. It feeds the hero section of the home
// page and the system instruction of the chat relay.
type Profile struct {
	Name     string `yaml:"name" json:"name"`
	Title    string `yaml:"title" json:"title"`
	Bio      string `yaml:"bio" json:"bio"`
	Email    string `yaml:"email" json:"email"`
	Location string `yaml:"location" json:"location"`

	GitHub    string `yaml:"github" json:"github,omitempty"`
	LinkedIn  string `yaml:"linkedin" json:"linkedin,omitempty"`
	Instagram string `yaml:"instagram" json:"instagram,omitempty"`

	AvatarURL string   `yaml:"avatar_url" json:"avatarUrl,omitempty"`
	Gallery   []string `yaml:"gallery" json:"-"`

	Projects []Project `yaml:"projects" json:"projects"`
	Skills   []Skill   `yaml:"skills" json:"skills"`
}

// Project is a portfolio entry referenced by the chat assistant.
type Project struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Tags        []string `yaml:"tags" json:"tags,omitempty"`
	Link        string   `yaml:"link" json:"link,omitempty"`
}

// Skill is a named capability with a 0-100 level.
type Skill struct {
	Name     string `yaml:"name" json:"name"`
	Level    int    `yaml:"level" json:"level"`
	Category string `yaml:"category" json:"category,omitempty"`
}

// LoadProfile reads a YAML profile from path. A missing file is not an
// error; the site falls back to a minimal default profile.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultProfile(), nil
		}
		return Profile{}, fmt.Errorf("read profile %s: %w", path, err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = defaultProfile().Name
	}
	return p, nil
}

func defaultProfile() Profile {
	return Profile{
		Name:  "Site Owner",
		Title: "Engineer",
		Bio:   "This site has not configured a profile yet.",
	}
}
