package models

// Attachment: Name задается правилом, по которому найдена ссылка, URL абсолютный.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
