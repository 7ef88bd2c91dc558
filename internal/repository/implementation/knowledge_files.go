package implementation

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"baristabox-be/internal/model"
)

// KnowledgeFiles locates the four knowledge files on disk.
type KnowledgeFiles struct {
	BeansPath           string
	RecipesPath         string
	TroubleshootingPath string
	TrainingDataPath    string
}

// Paths returns file name to path, for snapshotting.
func (f KnowledgeFiles) Paths() map[string]string {
	return map[string]string{
		filepath.Base(f.BeansPath):           f.BeansPath,
		filepath.Base(f.RecipesPath):         f.RecipesPath,
		filepath.Base(f.TroubleshootingPath): f.TroubleshootingPath,
		filepath.Base(f.TrainingDataPath):    f.TrainingDataPath,
	}
}

type knowledgeFile int

const (
	trainingFile knowledgeFile = iota
	troubleshootingFile
	recipesFile
	beansFile
)

// persistOrder is the order dirty files are written on commit. Recipes go
// before beans so a crash mid-cascade never leaves recipes pointing at a
// bean that was already removed from disk.
var persistOrder = []knowledgeFile{trainingFile, troubleshootingFile, recipesFile, beansFile}

func (k knowledgeFile) String() string {
	switch k {
	case trainingFile:
		return "training data"
	case troubleshootingFile:
		return "troubleshooting knowledge base"
	case recipesFile:
		return "recipes"
	case beansFile:
		return "beans"
	}
	return "unknown"
}

func readJSONFile(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func writeJSONFile(path string, v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes())
}

func readTrainingFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && isTrainingHeader(records[0]) {
		records = records[1:]
	}
	return records, nil
}

func isTrainingHeader(row []string) bool {
	if len(row) < len(model.TrainingHeader) {
		return false
	}
	for i, col := range model.TrainingHeader {
		if !strings.EqualFold(strings.TrimSpace(row[i]), col) {
			return false
		}
	}
	return true
}

func writeTrainingFile(path string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(model.TrainingHeader); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes())
}

// writeFileAtomic replaces path in full via a sibling temp file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
