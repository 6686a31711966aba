package env

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

const PathVar = "ENV_PATH"

// LoadDotEnv loads environment variables from a .env file without overriding variables
// that are already set. ENV_PATH selects the file; when it is unset defaultPath is used
// and a missing file is not an error. Returns the path that was loaded, if any.
func LoadDotEnv(defaultPath string) (string, error) {
	envPath, explicit := os.LookupEnv(PathVar)
	if !explicit || envPath == "" {
		envPath = defaultPath
		explicit = false
	}

	if err := godotenv.Load(envPath); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Skipping .env, file not found", "path", envPath)
			return "", nil
		}
		return "", fmt.Errorf("load env file %s: %w", envPath, err)
	}

	slog.Debug("Loaded env file", "path", envPath)
	return envPath, nil
}
