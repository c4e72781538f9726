package dto

type CreateItemCommentRequest struct {
	ItemID   string `json:"itemId"`
	ItemType string `json:"itemType"`
	Content  string `json:"content"`
}

type CreatePostCommentRequest struct {
	PostID  string `json:"postId"`
	Content string `json:"content"`
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type CreateAnnouncementRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsSticky bool   `json:"isSticky"`
	Status   string `json:"status"`
}

type UpdateAnnouncementRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	IsSticky *bool   `json:"isSticky"`
	Status   *string `json:"status"`
}

type UpdateItemStatusRequest struct {
	Status string `json:"status"`
}

// FileUploadResponse describes a stored upload.
type FileUploadResponse struct {
	FileName    string `json:"fileName"`
	FileURL     string `json:"fileUrl"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}
