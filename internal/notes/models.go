package notes

// Note is a snapshot of one stored note. ID is assigned by the database.
type Note struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

type CreateNoteResponse struct {
	ID int64 `json:"id"`
}

type UpdateNoteRequest struct {
	Content *string `json:"content"`
}
