package atelier

// Post is the core content type stored in SQLite and rendered by templates.
// IDs are opaque strings minted by whichever side creates the post and are
// never reused; the store upserts by ID.
type Post struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt,omitempty"`
	Content  string `json:"content"`
	Date     string `json:"date"` // YYYY-MM-DD
	Category string `json:"category"`
	ReadTime string `json:"readTime"`
}

// Canonical post categories. Older deployments used Design and Life; those
// are folded into the canonical set on ingest, never stored.
const (
	CategoryTech      = "Tech"
	CategoryNotes     = "Notes"
	CategoryCraft     = "Craft"
	CategoryStandards = "Standards"
)

// Categories lists the canonical category set in display order.
var Categories = []string{CategoryTech, CategoryNotes, CategoryCraft, CategoryStandards}

// NormalizeCategory maps a stored or submitted category onto the canonical
// set. Legacy values migrate (Design -> Craft, Life -> Notes); anything
// unrecognized lands in Notes.
func NormalizeCategory(c string) string {
	switch c {
	case CategoryTech, CategoryNotes, CategoryCraft, CategoryStandards:
		return c
	case "Design":
		return CategoryCraft
	case "Life":
		return CategoryNotes
	default:
		return CategoryNotes
	}
}

// SiteSettings is the singleton site configuration mutated by admin actions.
// Fields are replaced wholesale; a PATCH merges only the fields present.
type SiteSettings struct {
	AvatarURL     string   `json:"avatarUrl"`
	GalleryImages []string `json:"galleryImages"`
}

// SettingsPatch carries a shallow-merge update for SiteSettings. Nil fields
// are left untouched.
type SettingsPatch struct {
	AvatarURL     *string  `json:"avatarUrl,omitempty"`
	GalleryImages []string `json:"galleryImages,omitempty"`
}

// Image records metadata for an uploaded, processed image.
type Image struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int    `json:"size"`
	UploadedAt   string `json:"uploadedAt"`
}

// ChatMessage is a single conversational turn. Transcripts live in memory
// only and are forwarded whole to the generation endpoint.
type ChatMessage struct {
	Role      string `json:"role"` // "user" or "assistant"
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
