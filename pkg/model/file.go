package model

// FileSummary describes one CSV file hosted by the server.
// The list is server-ordered; the client never re-sorts it.
type FileSummary struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	UploadDate Timestamp `json:"upload_date"`
}

// Row maps column name to cell value for one parsed CSV row.
type Row map[string]string

// FileContent is the fully parsed content of one CSV file as returned
// by the server. Columns preserves the server-supplied order; Data rows
// are keyed by column name.
type FileContent struct {
	Filename string   `json:"filename"`
	Columns  []string `json:"columns"`
	Data     []Row    `json:"data"`
	RowCount int      `json:"row_count"`
}
