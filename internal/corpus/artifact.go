package corpus

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"

	"bibmend/internal/bibtex"
	"bibmend/internal/fileutil"
)

// readArtifact decodes a persisted corpus state. A missing file surfaces as
// fs.ErrNotExist; any other failure means the artifact is unusable.
func readArtifact(path string) (*State, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("decompress corpus artifact: %w", err)
	}
	defer reader.Close()

	var state State
	if err := json.NewDecoder(reader).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode corpus artifact: %w", err)
	}
	if state.FileHashes == nil {
		state.FileHashes = map[string]string{}
	}
	if state.Index == nil {
		state.Index = map[string]bibtex.Record{}
	}
	return &state, nil
}

// writeArtifact persists the state atomically so a crashed rebuild can never
// leave a truncated artifact behind.
func writeArtifact(path string, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal corpus artifact: %w", err)
	}

	var buf bytes.Buffer
	writer := gzip.NewWriter(&buf)
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("compress corpus artifact: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("flush corpus artifact: %w", err)
	}

	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write corpus artifact: %w", err)
	}
	return nil
}
