package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/himanishpuri/SongSearch/pkg/logger"
)

func main() {
	log := logger.GetLogger()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("Could not load .env file: %v", err)
	}

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
