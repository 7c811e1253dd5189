package config

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, channelID, baseURL string) *Slack {
	return &Slack{
		botToken:  botToken,
		channelID: channelID,
		baseURL:   baseURL,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID string) *Repository {
	return &Repository{
		backend:   backend,
		projectID: projectID,
	}
}

// NewCatalogForTest creates a Catalog config for testing purposes
func NewCatalogForTest(path string) *Catalog {
	return &Catalog{path: path}
}

// NewNotionForTest creates a Notion config for testing purposes
func NewNotionForTest(token, databaseID string) *Notion {
	return &Notion{
		token:      token,
		databaseID: databaseID,
	}
}
