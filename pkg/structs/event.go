package structs

// Object identifies one created object from a notification record
type Object struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// Transfer describes a completed relay of one object
type Transfer struct {
	Bucket    string `json:"bucket"`
	Key       string `json:"key"`
	Bytes     int64  `json:"bytes"`
	Directory string `json:"directory"`
	Skipped   int    `json:"skipped"`
}
