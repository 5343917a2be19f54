package catalog

// Bulk item outcomes. Bulk creation commits valid items and skips invalid
// ones; the outcome list makes the partial application visible instead of
// leaving a bare count as the only signal.
const (
	BulkOutcomeCreated        = "created"
	BulkOutcomeUpdated        = "updated"
	BulkOutcomeDeleted        = "deleted"
	BulkOutcomeSkipped        = "skipped"
	BulkOutcomeCreatedAtRoot  = "created_at_root" // folder parent missing, fell back to root
	BulkOutcomeFolderNotFound = "folder_not_found"
	BulkOutcomeNotFound       = "not_found"
)

// BulkItemResult records what happened to one input of a bulk operation.
type BulkItemResult struct {
	Index   int    `json:"index"`
	ID      string `json:"id,omitempty"`
	Outcome string `json:"outcome"`
	Detail  string `json:"detail,omitempty"`
}

// BulkResult is the aggregate response of a bulk operation. Count is the
// number of rows actually written, kept for compatibility with the
// count-only contract; Results carries the per-item breakdown.
type BulkResult struct {
	Count   int              `json:"count"`
	Results []BulkItemResult `json:"results"`
}
