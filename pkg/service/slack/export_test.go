package slack

// Export internal functions for testing
var (
	BuildAssessmentBlocks = buildAssessmentBlocks
	BuildReviewDueBlocks  = buildReviewDueBlocks
	TruncateText          = truncateText
)
