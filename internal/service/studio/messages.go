package studio

// User-facing banner text
const (
	MsgTopicRequired      = "Please enter a topic or campaign theme."
	MsgGeneratingContent  = "Generating your marketing package..."
	MsgContentReady       = "Marketing package generated successfully!"
	MsgUnexpectedFormat   = "Received an unexpected response format. Please try again."
	MsgContentFailed      = "Failed to generate marketing package. Please try again."
	MsgContentUnexpected  = "An unexpected error occurred. Please try again."
	MsgGeneratingImages   = "Creating visual assets..."
	MsgImagesReady        = "Visual assets generated!"
	MsgImagesFailed       = "Failed to generate graphics. Please try again."
	MsgImagesUnexpected   = "An unexpected error occurred generating graphics."
	MsgNoPackage          = "No content package is loaded."
	MsgHistoryEntryAbsent = "History entry not found."
)
