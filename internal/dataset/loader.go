package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"plotpirate/server/internal/models"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed data/listings.json
var embeddedDataset []byte

//go:embed schema/dataset.schema.json
var datasetSchema []byte

const schemaURL = "dataset.schema.json"

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(datasetSchema)); err != nil {
		panic(fmt.Sprintf("failed to add dataset schema: %v", err))
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		panic(fmt.Sprintf("failed to compile dataset schema: %v", err))
	}
	return schema
}

// File is the on-disk shape of a dataset. Only projects are kept; the
// developers, micromarkets and eoiProjects arrays some exports carry are
// ignored.
type File struct {
	Projects []models.Listing `json:"projects"`
}

// Decode validates raw dataset JSON against the dataset schema and decodes it.
func Decode(data []byte) (*File, error) {
	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("dataset is not valid JSON: %w", err)
	}
	if err := compiledSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("dataset schema validation failed: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return &file, nil
}

// Read decodes a dataset from r.
func Read(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return Decode(data)
}

// LoadFile decodes the dataset stored at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	return Decode(data)
}

// LoadEmbedded decodes the dataset compiled into the binary.
func LoadEmbedded() (*File, error) {
	return Decode(embeddedDataset)
}

// FromFile builds a repository from a decoded dataset.
func FromFile(file *File) (*MemoryRepository, error) {
	return NewMemoryRepository(file.Projects)
}
