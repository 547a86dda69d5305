package gmail

// Email is the parsed form of a Gmail message that filtering and export
// operate on. Bodies are decoded; Date keeps the raw header value so exports
// can reproduce it verbatim.
type Email struct {
	ID           string
	ThreadID     string
	Subject      string
	From         string
	To           string
	Date         string
	Snippet      string
	BodyText     string
	BodyHTML     string
	LabelIDs     []string
	InlineImages []InlineImage

	// InternalDate is Gmail's epoch-millisecond receive time, used as a
	// sort fallback when the Date header does not parse.
	InternalDate int64
}

// InlineImage is an image part referenced from an HTML body via a cid: URL.
// Data is empty until hydrated; parts delivered inline carry it immediately,
// parts stored as attachments need a follow-up fetch.
type InlineImage struct {
	ContentID    string
	MimeType     string
	Filename     string
	AttachmentID string
	Data         []byte
}
