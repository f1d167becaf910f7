package misc

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

var (
	ErrLogger  = log.New(os.Stderr, "[ FAIL ]: ", log.Lshortfile)
	WarnLogger = log.New(os.Stderr, "[ WARN ]: ", log.Lshortfile)
	InfoLogger = log.New(os.Stdout, "[ INFO ]: ", log.Lshortfile)
)

func CheckFileExists(path string) (bool, error) {
	// check if file exists
	info, err := os.Stat(path)

	if err == nil { // file exists
		mode := info.Mode()
		if !mode.IsRegular() {
			return false, fmt.Errorf("%s is not a regular file", path)
		}

		return true, nil
	} else if errors.Is(err, os.ErrNotExist) { // file does not exists
		return false, nil
	} else { // unable to check if file exists or not
		return false, err
	}
}

// ReadOptionalFile returns nil, nil if path does not exist.
func ReadOptionalFile(path string) ([]byte, error) {
	exists, err := CheckFileExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return os.ReadFile(path)
}

// WriteFileAtomic writes to a temporary file next to path and renames it,
// so a crash never leaves a half written file behind.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err = os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}

	return nil
}

// TimestampedPath returns dir/prefix-<time>.ext that does not exist yet.
func TimestampedPath(dir, prefix, ext string, now time.Time) (string, error) {
	stamp := now.Format("2006-01-02_15-04-05")

	for i := 0; i < 1000; i++ {
		name := fmt.Sprintf("%s-%s.%s", prefix, stamp, ext)
		if i > 0 {
			name = fmt.Sprintf("%s-%s-%d.%s", prefix, stamp, i, ext)
		}
		path := filepath.Join(dir, name)

		exists, err := CheckFileExists(path)
		if err != nil {
			return "", err
		}
		if !exists {
			return path, nil
		}
	}

	return "", fmt.Errorf("too many files named %s-%s in %s", prefix, stamp, dir)
}
