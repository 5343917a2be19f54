package catalog

import "time"

// Item type tags used in merged results.
const (
	ItemTypeFolder = "folder"
	ItemTypeFile   = "file"
)

// Item is a type-tagged view of either a folder or a file, used by merged
// search results and folder content listings.
type Item struct {
	Type         string    `json:"type"` // "folder" or "file"
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	ParentID     *string   `json:"parent_id,omitempty"` // folders only
	FolderID     string    `json:"folder_id,omitempty"` // files only
	MimeType     *string   `json:"mime_type,omitempty"`
	Size         *int64    `json:"size,omitempty"`
	PhysicalPath *string   `json:"physical_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FolderItem tags a folder for a merged sequence.
func FolderItem(f Folder) Item {
	return Item{
		Type:      ItemTypeFolder,
		ID:        f.ID,
		Name:      f.Name,
		Path:      f.Path,
		ParentID:  f.ParentID,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// FileItem tags a file for a merged sequence.
func FileItem(f File) Item {
	size := f.Size
	return Item{
		Type:         ItemTypeFile,
		ID:           f.ID,
		Name:         f.Name,
		Path:         f.Path,
		FolderID:     f.FolderID,
		MimeType:     f.MimeType,
		Size:         &size,
		PhysicalPath: f.PhysicalPath,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}
