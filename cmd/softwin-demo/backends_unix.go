//go:build unix

package main

import (
	"os"

	"github.com/gogpu/softwin/surface/shm"
)

func configureShm(path string) error {
	return os.Setenv(shm.PathEnv, path)
}
