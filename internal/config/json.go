package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// parseFile extracts a partial configuration from the gateway.json file in
// dir. A missing file is not an error and yields an empty partial; any other
// read or parse failure is fatal and propagates to the caller.
func parseFile(dir string) (*Partial, error) {
	path := filepath.Join(dir, FileName)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Partial{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	defer f.Close()

	var p Partial
	if err := json.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
	}

	return &p, nil
}
