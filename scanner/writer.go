package scanner

import (
	"fmt"
	"os"
	"path/filepath"

	"pbrconvert/logging"
	"pbrconvert/pbr"
)

// artifactFile is one encoded output waiting to be written
type artifactFile struct {
	Name string
	Data []byte
}

// rename is swapped in tests to simulate a failing filesystem
var rename = os.Rename

// writeArtifacts writes every file into dir or none of them. Files are
// staged as hidden temporaries and renamed into place once all of them are
// on disk. Existing targets are moved aside first; on failure the new files
// are removed and the previous ones are put back.
func writeArtifacts(dir string, files []artifactFile) error {
	staged := make([]string, 0, len(files))
	removeStaged := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}

	for _, file := range files {
		tmp, err := stageFile(dir, file)
		if err != nil {
			removeStaged()
			return err
		}
		staged = append(staged, tmp)
	}

	backups := make([]string, len(files))
	rollback := func(failed int) {
		for j := failed; j >= 0; j-- {
			target := filepath.Join(dir, files[j].Name)
			if j < failed {
				if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
					logging.LogWarning("Cannot remove partial output %s: %v", files[j].Name, err)
				}
			}
			if backups[j] != "" {
				if err := rename(backups[j], target); err != nil {
					logging.LogWarning("Cannot restore previous %s: %v", files[j].Name, err)
				}
			}
		}
		for _, rest := range staged[failed:] {
			os.Remove(rest)
		}
	}

	for i, tmp := range staged {
		target := filepath.Join(dir, files[i].Name)

		backup, err := moveAside(dir, files[i].Name)
		if err != nil {
			rollback(i)
			return err
		}
		backups[i] = backup

		if err := rename(tmp, target); err != nil {
			rollback(i)
			return fmt.Errorf("%w: cannot move %s into place: %v", pbr.ErrIOFailure, files[i].Name, err)
		}
	}

	for _, backup := range backups {
		if backup != "" {
			os.Remove(backup)
		}
	}
	return nil
}

// moveAside renames an existing target to a hidden backup name and returns
// it, or "" when there is nothing to keep
func moveAside(dir, name string) (string, error) {
	target := filepath.Join(dir, name)
	if _, err := os.Lstat(target); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("%w: cannot stat %s: %v", pbr.ErrIOFailure, name, err)
	}

	f, err := os.CreateTemp(dir, "."+name+".bak-*")
	if err != nil {
		return "", fmt.Errorf("%w: cannot reserve backup for %s: %v", pbr.ErrIOFailure, name, err)
	}
	backup := f.Name()
	f.Close()

	if err := rename(target, backup); err != nil {
		os.Remove(backup)
		return "", fmt.Errorf("%w: cannot move previous %s aside: %v", pbr.ErrIOFailure, name, err)
	}
	return backup, nil
}

func stageFile(dir string, file artifactFile) (string, error) {
	f, err := os.CreateTemp(dir, "."+file.Name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("%w: cannot create %s: %v", pbr.ErrIOFailure, file.Name, err)
	}
	tmp := f.Name()

	if _, err := f.Write(file.Data); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("%w: cannot write %s: %v", pbr.ErrIOFailure, file.Name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("%w: cannot write %s: %v", pbr.ErrIOFailure, file.Name, err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("%w: cannot set mode on %s: %v", pbr.ErrIOFailure, file.Name, err)
	}
	return tmp, nil
}
