package atelier

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database and provides CRUD operations for posts,
// the singleton site settings row, and uploaded image metadata.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately.
	// synchronous=NORMAL is safe with WAL and avoids an fsync per transaction.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    excerpt TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL,
    category TEXT NOT NULL,
    read_time TEXT NOT NULL DEFAULT '',
    seq INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    avatar_url TEXT NOT NULL DEFAULT '',
    gallery TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
INSERT OR IGNORE INTO settings (id) VALUES (1);
`)
	return err
}

// ListPosts returns all posts, newest-first. New posts get a fresh seq so
// they sort to the top; editing a post keeps its seq, so edits never reorder
// the collection. If category is non-empty, results are filtered to it.
func (s *Store) ListPosts(category string) ([]Post, error) {
	var rows *sql.Rows
	var err error
	if category == "" {
		rows, err = s.db.Query(`SELECT id, title, excerpt, content, date, category, read_time FROM posts ORDER BY seq DESC`)
	} else {
		rows, err = s.db.Query(`SELECT id, title, excerpt, content, date, category, read_time FROM posts WHERE category = ? ORDER BY seq DESC`, NormalizeCategory(category))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.Date, &p.Category, &p.ReadTime); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPost returns a single post by id.
func (s *Store) GetPost(id string) (Post, error) {
	p := Post{ID: id}
	err := s.db.QueryRow(`SELECT title, excerpt, content, date, category, read_time FROM posts WHERE id = ?`, id).
		Scan(&p.Title, &p.Excerpt, &p.Content, &p.Date, &p.Category, &p.ReadTime)
	if err != nil {
		return Post{}, err
	}
	return p, nil
}

// SavePost upserts a post by id. An existing id is replaced in place (its
// seq survives); a fresh id is inserted with the next seq, making it the
// newest entry. Categories are normalized to the canonical set.
func (s *Store) SavePost(p Post) error {
	p.Category = NormalizeCategory(p.Category)
	res, err := s.db.Exec(`UPDATE posts SET title = ?, excerpt = ?, content = ?, date = ?, category = ?, read_time = ? WHERE id = ?`,
		p.Title, p.Excerpt, p.Content, p.Date, p.Category, p.ReadTime, p.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	_, err = s.db.Exec(`INSERT INTO posts (id, title, excerpt, content, date, category, read_time, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM posts))`,
		p.ID, p.Title, p.Excerpt, p.Content, p.Date, p.Category, p.ReadTime)
	return err
}

// DeletePost removes a post by id. Deleting a missing id is a no-op.
func (s *Store) DeletePost(id string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	return err
}

// GetSettings returns the singleton site settings row.
func (s *Store) GetSettings() (SiteSettings, error) {
	var avatar, gallery string
	err := s.db.QueryRow(`SELECT avatar_url, gallery FROM settings WHERE id = 1`).Scan(&avatar, &gallery)
	if err != nil {
		return SiteSettings{}, err
	}
	out := SiteSettings{AvatarURL: avatar, GalleryImages: []string{}}
	if err := json.Unmarshal([]byte(gallery), &out.GalleryImages); err != nil {
		out.GalleryImages = []string{}
	}
	return out, nil
}

// PatchSettings shallow-merges the given patch into the settings row and
// returns the merged result. Nil patch fields leave the stored value alone.
func (s *Store) PatchSettings(patch SettingsPatch) (SiteSettings, error) {
	cur, err := s.GetSettings()
	if err != nil {
		return SiteSettings{}, err
	}
	if patch.AvatarURL != nil {
		cur.AvatarURL = *patch.AvatarURL
	}
	if patch.GalleryImages != nil {
		cur.GalleryImages = patch.GalleryImages
	}
	gallery, err := json.Marshal(cur.GalleryImages)
	if err != nil {
		return SiteSettings{}, err
	}
	_, err = s.db.Exec(`UPDATE settings SET avatar_url = ?, gallery = ? WHERE id = 1`, cur.AvatarURL, string(gallery))
	return cur, err
}

// ListImages returns uploaded image metadata, newest-first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// SaveImage records metadata for a processed upload.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// DeleteImage removes an image metadata row by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}
