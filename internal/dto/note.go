package dto

import "time"

type CreateNoteRequest struct {
	TaskID  string `json:"taskId" binding:"required,uuid"`
	Content string `json:"content" binding:"required,max=2000"`
}

type UpdateNoteRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

type NoteResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
