package cli

// RunWithWriter runs the app writing command output to w
var RunWithWriter = run

// GetIndexConfig exposes the Firestore index layout applied by migrate
var GetIndexConfig = getIndexConfig
