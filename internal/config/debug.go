package config

import "os"

func IsDebug() bool {
	return os.Getenv("QUILL_DEBUG") == "1"
}
