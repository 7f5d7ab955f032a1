package misc

import (
	"errors"
	"fmt"
	"os"
)

var ErrNoFileName = errors.New("no filename supplied")

// ReadFile returns the whole contents of fileName.
func ReadFile(fileName string) (error, []byte) {
	if fileName == "" {
		return ErrNoFileName, []byte{}
	}
	fileBytes, err := os.ReadFile(fileName)
	if err != nil {
		return fmt.Errorf("unable to read %s - %w", fileName, err), []byte{}
	}
	return nil, fileBytes
}

// WriteFile creates or truncates fileName and writes contents to it.
func WriteFile(fileName string, contents []byte) (int, error) {
	if fileName == "" {
		return 0, ErrNoFileName
	}
	file, err := os.Create(fileName)
	if err != nil {
		return 0, fmt.Errorf("unable to create file %s - %w", fileName, err)
	}
	bytesWritten, err := file.Write(contents)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		return bytesWritten, fmt.Errorf("unable to close file %s - %w", fileName, closeErr)
	}
	if err != nil {
		return bytesWritten, fmt.Errorf("unable to write file %s - %w", fileName, err)
	}
	return bytesWritten, nil
}
