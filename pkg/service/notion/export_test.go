package notion

var (
	BuildProperties = buildProperties
	RichText        = richText
)

const MaxRichTextLength = maxRichTextLength
