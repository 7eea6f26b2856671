package client

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexchen/atelier"
	"github.com/alexchen/atelier/localstore"
)

// ContentStore is the in-memory authoritative representation of posts and
// site configuration for a running session. It hydrates from the remote
// backend when one answers and from the local adapter otherwise, and mirrors
// every mutation back to both: the local write is synchronous and
// authoritative for reload durability, the remote write is fire-and-forget.
type ContentStore struct {
	mu       sync.Mutex
	remote   *Sync
	local    *localstore.Store
	posts    []atelier.Post
	settings atelier.SiteSettings
}

// NewContentStore wires a ContentStore over a sync client and a local store.
func NewContentStore(remote *Sync, local *localstore.Store) *ContentStore {
	return &ContentStore{remote: remote, local: local}
}

// Load hydrates posts and configuration, remote preferred. The two fetches
// run in parallel; each value obtained remotely overwrites the local cache,
// each absent value falls back to the cache or an empty default. Load
// completes before the caller should render anything that depends on it.
func (cs *ContentStore) Load(ctx context.Context) error {
	var (
		wg                  sync.WaitGroup
		postsRaw, configRaw json.RawMessage
		postsOK, configOK   bool
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		postsRaw, postsOK = cs.remote.Fetch(ctx, http.MethodGet, "/posts", nil)
	}()
	go func() {
		defer wg.Done()
		configRaw, configOK = cs.remote.Fetch(ctx, http.MethodGet, "/config", nil)
	}()
	wg.Wait()

	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.posts = []atelier.Post{}
	if postsOK && postsRaw != nil && json.Unmarshal(postsRaw, &cs.posts) == nil {
		if err := cs.local.Set(localstore.KeyPosts, cs.posts); err != nil {
			return err
		}
	} else {
		cs.posts = []atelier.Post{}
		if _, err := cs.local.Get(localstore.KeyPosts, &cs.posts); err != nil {
			return err
		}
	}

	cs.settings = atelier.SiteSettings{GalleryImages: []string{}}
	if configOK && configRaw != nil && json.Unmarshal(configRaw, &cs.settings) == nil {
		if err := cs.persistSettingsLocked(); err != nil {
			return err
		}
	} else {
		cs.settings = atelier.SiteSettings{GalleryImages: []string{}}
		if _, err := cs.local.Get(localstore.KeyAvatar, &cs.settings.AvatarURL); err != nil {
			return err
		}
		if _, err := cs.local.Get(localstore.KeyGallery, &cs.settings.GalleryImages); err != nil {
			return err
		}
	}
	return nil
}

// Posts returns the current collection, newest-first.
func (cs *ContentStore) Posts() []atelier.Post {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	out := make([]atelier.Post, len(cs.posts))
	copy(out, cs.posts)
	return out
}

// Settings returns the current site configuration.
func (cs *ContentStore) Settings() atelier.SiteSettings {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.settings
}

// SavePost applies a save: an id already in the collection is replaced in
// place (no reorder, no length change); a fresh id is prepended as the
// newest entry. The local copy is written through before SavePost returns.
func (cs *ContentStore) SavePost(ctx context.Context, p atelier.Post) error {
	p.Category = atelier.NormalizeCategory(p.Category)
	cs.mirror(http.MethodPost, "/posts", p)

	cs.mu.Lock()
	defer cs.mu.Unlock()
	replaced := false
	for i := range cs.posts {
		if cs.posts[i].ID == p.ID {
			cs.posts[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		cs.posts = append([]atelier.Post{p}, cs.posts...)
	}
	return cs.local.Set(localstore.KeyPosts, cs.posts)
}

// DeletePost removes the post with the given id. A missing id is a no-op.
func (cs *ContentStore) DeletePost(ctx context.Context, id string) error {
	cs.mirror(http.MethodDelete, "/posts/"+id, nil)

	cs.mu.Lock()
	defer cs.mu.Unlock()
	kept := cs.posts[:0]
	for _, p := range cs.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	cs.posts = kept
	return cs.local.Set(localstore.KeyPosts, cs.posts)
}

// UpdateConfig shallow-merges the patch into the site configuration.
func (cs *ContentStore) UpdateConfig(ctx context.Context, patch atelier.SettingsPatch) error {
	cs.mirror(http.MethodPatch, "/config", patch)

	cs.mu.Lock()
	defer cs.mu.Unlock()
	if patch.AvatarURL != nil {
		cs.settings.AvatarURL = *patch.AvatarURL
	}
	if patch.GalleryImages != nil {
		cs.settings.GalleryImages = patch.GalleryImages
	}
	return cs.persistSettingsLocked()
}

// UploadImage sends a base64-encoded image to the remote backend and returns
// the hosted URL. When the backend is absent or fails, the base64 payload
// itself comes back so the UI can still preview the image inline.
func (cs *ContentStore) UploadImage(ctx context.Context, b64 string) string {
	raw, ok := cs.remote.Fetch(ctx, http.MethodPost, "/upload", map[string]string{"image": b64})
	if !ok || raw == nil {
		return b64
	}
	var resp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || resp.URL == "" {
		return b64
	}
	return resp.URL
}

// NewPost builds a fresh draft: uuid id, today's calendar date, estimated
// read time. Nothing is persisted until SavePost.
func NewPost(title, excerpt, content, category string) atelier.Post {
	return atelier.Post{
		ID:       uuid.NewString(),
		Title:    title,
		Excerpt:  excerpt,
		Content:  content,
		Date:     time.Now().Format("2006-01-02"),
		Category: atelier.NormalizeCategory(category),
		ReadTime: atelier.EstimateReadTime(content),
	}
}

// mirror issues a remote write without waiting for it. The result is
// ignored by contract: the remote copy may silently lag, and two racing
// mirrored writes carry no ordering guarantee.
func (cs *ContentStore) mirror(method, path string, body interface{}) {
	if !cs.remote.Enabled() {
		return
	}
	go cs.remote.Fetch(context.Background(), method, path, body)
}

func (cs *ContentStore) persistSettingsLocked() error {
	if err := cs.local.Set(localstore.KeyAvatar, cs.settings.AvatarURL); err != nil {
		return err
	}
	return cs.local.Set(localstore.KeyGallery, cs.settings.GalleryImages)
}
