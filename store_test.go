package atelier

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "site.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	post := Post{
		ID:       "p-1",
		Title:    "Test Post",
		Excerpt:  "A summary",
		Content:  "# Heading\n\nBody text.",
		Date:     "2024-01-15",
		Category: CategoryTech,
		ReadTime: "5 min",
	}

	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	got, err := s.GetPost("p-1")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got != post {
		t.Errorf("GetPost = %+v, want %+v", got, post)
	}
}

func TestGetPostNotFound(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.GetPost("nonexistent"); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestListPostsNewestFirst(t *testing.T) {
	s := setupTestStore(t)

	for _, id := range []string{"a", "b", "c"} {
		if err := s.SavePost(Post{ID: id, Title: id, Date: "2024-01-01", Category: CategoryTech}); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	got, err := s.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListPosts count = %d, want 3", len(got))
	}
	// Most recently created first, regardless of date field.
	for i, want := range []string{"c", "b", "a"} {
		if got[i].ID != want {
			t.Errorf("ListPosts[%d].ID = %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestSavePostEditKeepsPosition(t *testing.T) {
	s := setupTestStore(t)

	for _, id := range []string{"a", "b", "c"} {
		if err := s.SavePost(Post{ID: id, Title: id, Date: "2024-01-01", Category: CategoryTech}); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	// Editing the oldest post must not move it and must not change length.
	if err := s.SavePost(Post{ID: "a", Title: "updated", Date: "2024-06-01", Category: CategoryNotes}); err != nil {
		t.Fatalf("SavePost update failed: %v", err)
	}

	got, err := s.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("edit changed collection length: %d", len(got))
	}
	if got[2].ID != "a" || got[2].Title != "updated" {
		t.Errorf("edited post moved or lost update: %+v", got[2])
	}
	if got[0].ID != "c" || got[1].ID != "b" {
		t.Errorf("edit reordered other entries: %v, %v", got[0].ID, got[1].ID)
	}
}

func TestListPostsByCategory(t *testing.T) {
	s := setupTestStore(t)

	posts := []Post{
		{ID: "1", Title: "t1", Date: "2024-01-01", Category: CategoryTech},
		{ID: "2", Title: "t2", Date: "2024-01-02", Category: CategoryNotes},
		{ID: "3", Title: "t3", Date: "2024-01-03", Category: CategoryTech},
	}
	for _, p := range posts {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	got, err := s.ListPosts(CategoryTech)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ListPosts(Tech) count = %d, want 2", len(got))
	}

	// Legacy category names resolve through normalization: Life -> Notes.
	got, err = s.ListPosts("Life")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("ListPosts(Life) = %v, want the Notes post", got)
	}
}

func TestSavePostNormalizesLegacyCategory(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SavePost(Post{ID: "legacy", Title: "t", Date: "2024-01-01", Category: "Design"}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	got, err := s.GetPost("legacy")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Category != CategoryCraft {
		t.Errorf("Category = %q, want %q", got.Category, CategoryCraft)
	}
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SavePost(Post{ID: "x", Title: "t", Date: "2024-01-01", Category: CategoryTech}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	if err := s.DeletePost("x"); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if _, err := s.GetPost("x"); err != sql.ErrNoRows {
		t.Errorf("post should not exist after delete, got err: %v", err)
	}

	// Deleting a missing id is a no-op, not an error.
	if err := s.DeletePost("nonexistent"); err != nil {
		t.Errorf("DeletePost on nonexistent should not error, got: %v", err)
	}
}

func TestSettingsDefaultsAndPatch(t *testing.T) {
	s := setupTestStore(t)

	settings, err := s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.AvatarURL != "" || len(settings.GalleryImages) != 0 {
		t.Errorf("fresh settings not empty: %+v", settings)
	}

	avatar := "/public/uploads/me.jpg"
	merged, err := s.PatchSettings(SettingsPatch{AvatarURL: &avatar})
	if err != nil {
		t.Fatalf("PatchSettings failed: %v", err)
	}
	if merged.AvatarURL != avatar {
		t.Errorf("AvatarURL = %q, want %q", merged.AvatarURL, avatar)
	}

	// Patching the gallery must not clobber the avatar (shallow merge).
	merged, err = s.PatchSettings(SettingsPatch{GalleryImages: []string{"/a.jpg", "/b.jpg"}})
	if err != nil {
		t.Fatalf("PatchSettings failed: %v", err)
	}
	if merged.AvatarURL != avatar {
		t.Errorf("gallery patch overwrote avatar: %q", merged.AvatarURL)
	}
	if len(merged.GalleryImages) != 2 {
		t.Errorf("GalleryImages = %v, want 2 entries", merged.GalleryImages)
	}

	// Persisted, not just returned.
	settings, err = s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.AvatarURL != avatar || len(settings.GalleryImages) != 2 {
		t.Errorf("settings not persisted: %+v", settings)
	}
}

func TestImageMetadata(t *testing.T) {
	s := setupTestStore(t)

	img := Image{Filename: "pic.jpg", OriginalName: "pic.png", Width: 800, Height: 600, Size: 1234, UploadedAt: "2024-01-01T00:00:00Z"}
	if err := s.SaveImage(img); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	images, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 1 || images[0] != img {
		t.Errorf("ListImages = %+v, want [%+v]", images, img)
	}
	if err := s.DeleteImage("pic.jpg"); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	images, _ = s.ListImages()
	if len(images) != 0 {
		t.Errorf("image still listed after delete: %+v", images)
	}
}
