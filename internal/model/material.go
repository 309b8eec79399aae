package model

import "time"

// CourseMaterial is the metadata row for one uploaded course file. FileName
// preserves the user-supplied name for display; StoragePath is the unique,
// system-assigned location on the backing store. The row and the stored file
// exist together or not at all.
type CourseMaterial struct {
	ID          int       `json:"id"`
	CourseID    int       `json:"course_id"`
	FileName    string    `json:"file_name"`
	StoragePath string    `json:"storage_path"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
