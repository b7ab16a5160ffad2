package files

import (
	"os"
	"path/filepath"

	"github.com/hellostack/hellostack/pkg/tutorial"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// File maps one of the guide's code samples to a target path.
type File struct {
	Target    string
	Sample    string
	Overwrite bool
}

// BackendFiles lists the files making up the guide's backend project and
// database scripts, placed below dir.
func BackendFiles(dir string, overwrite bool) []File {
	samples := tutorial.SampleNames()
	out := make([]File, 0, len(samples))

	for _, s := range samples {
		out = append(out, File{
			Target:    filepath.Join(dir, s),
			Sample:    s,
			Overwrite: overwrite,
		})
	}

	return out
}

func RenderFiles(files []File, data tutorial.Data) error {
	log.Info("generating project files")

	for i := range files {
		if err := RenderFile(&files[i], data); err != nil {
			return err
		}
	}

	return nil
}

func RenderFile(f *File, data tutorial.Data) error {
	if f.Sample == "" {
		return errors.Errorf("file %s has no specified source", f.Target)
	}

	if _, err := os.Stat(f.Target); err == nil && !f.Overwrite {
		log.Warnf("not overwriting existing file %s", f.Target)
		return nil
	}

	log.Infof("creating file %s from sample %s", f.Target, f.Sample)

	contents, err := tutorial.Sample(f.Sample, data)
	if err != nil {
		return err
	}

	folderPath, err := filepath.Abs(filepath.Dir(f.Target))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(folderPath, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", folderPath)
	}

	if err := os.WriteFile(f.Target, []byte(contents), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", f.Target)
	}

	return nil
}
