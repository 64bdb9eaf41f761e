package kernel

// UploadID identifies a file stored through the upload endpoint
type UploadID string

func NewUploadID(id string) UploadID { return UploadID(id) }
func (u UploadID) String() string    { return string(u) }
func (u UploadID) IsEmpty() bool     { return string(u) == "" }
