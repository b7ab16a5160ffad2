package check

import (
	"context"
	"os"
)

type filesystemCheck struct {
	path string
}

func (f *filesystemCheck) Exec(context.Context) error {
	_, err := os.ReadDir(f.path)
	return err
}
