// Package souschef holds application-wide defaults shared across subpackages.
package souschef

const (
	DefaultAppName    = "souschef"
	DefaultConfigPath = "/etc/souschef"

	// DefaultDatabasePath is the embedded recipe database location.
	DefaultDatabasePath = "data/souschef.db"

	// DefaultOllamaBaseURL points at a local Ollama daemon.
	DefaultOllamaBaseURL = "http://localhost:11434"
)
