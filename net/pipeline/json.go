package pipeline

import "encoding/json"
import "errors"
import "fmt"
import "io"
import "os"
import "path/filepath"

import "github.com/golang/snappy"

import "github.com/neurlang/churn/boost"
import "github.com/neurlang/churn/preprocess"

// Version is the artifact layout written by this package
const Version = 1

// ErrArtifact is returned when an artifact is malformed, truncated or does not match
// this version of the pipeline.
var ErrArtifact = errors.New("pipeline: bad artifact")

// artifact is the serialized layout: the frozen preprocessing state field by field and
// the booster as an opaque blob.
type artifact struct {
	Version     int                     `json:"version"`
	Inputs      []string                `json:"inputs"`
	Numeric     []preprocess.Stat       `json:"numeric"`
	Categorical []preprocess.Vocabulary `json:"categorical"`
	Model       []byte                  `json:"model"`
}

// WriteCompressedToFile writes the pipeline to a snappy file, replacing it atomically.
func (p *Pipeline) WriteCompressedToFile(name string) error {
	file, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(file.Name())
	if err = p.WriteCompressed(file); err != nil {
		file.Close()
		return err
	}
	if err = file.Close(); err != nil {
		return err
	}
	return os.Rename(file.Name(), name)
}

// WriteCompressed writes the pipeline to a writer as a snappy framed stream
func (p *Pipeline) WriteCompressed(w io.Writer) error {
	model, err := p.Model.MarshalBinary()
	if err != nil {
		return err
	}
	var a = artifact{
		Version:     Version,
		Inputs:      p.Columns.Inputs,
		Numeric:     p.Columns.Scaler.Stats,
		Categorical: p.Columns.OneHot.Columns,
		Model:       model,
	}
	sw := snappy.NewBufferedWriter(w)
	if err := json.NewEncoder(sw).Encode(&a); err != nil {
		sw.Close()
		return err
	}
	return sw.Close()
}

// ReadCompressedFromFile reads a pipeline from a snappy file. A missing file yields an
// error matching fs.ErrNotExist.
func ReadCompressedFromFile(name string) (*Pipeline, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("pipeline: open artifact: %w", err)
	}
	defer file.Close()
	return ReadCompressed(file)
}

// ReadCompressed reads and validates a pipeline from a reader
func ReadCompressed(r io.Reader) (*Pipeline, error) {
	var a artifact
	dec := json.NewDecoder(snappy.NewReader(r))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrArtifact, err)
	}
	if a.Version != Version {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrArtifact, a.Version, Version)
	}

	var role = make(map[string]int, len(a.Inputs))
	for _, name := range a.Inputs {
		if _, dup := role[name]; dup {
			return nil, fmt.Errorf("%w: input %q duplicated", ErrArtifact, name)
		}
		role[name] = 0
	}
	for _, st := range a.Numeric {
		if _, ok := role[st.Name]; !ok {
			return nil, fmt.Errorf("%w: numeric column %q is not an input", ErrArtifact, st.Name)
		}
		role[st.Name]++
	}
	for _, v := range a.Categorical {
		if _, ok := role[v.Name]; !ok {
			return nil, fmt.Errorf("%w: categorical column %q is not an input", ErrArtifact, v.Name)
		}
		if len(v.Values) == 0 {
			return nil, fmt.Errorf("%w: categorical column %q has an empty vocabulary", ErrArtifact, v.Name)
		}
		role[v.Name]++
	}
	for _, name := range a.Inputs {
		if role[name] != 1 {
			return nil, fmt.Errorf("%w: input %q is used %d times", ErrArtifact, name, role[name])
		}
	}

	scaler, err := preprocess.NewScaler(a.Numeric)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifact, err)
	}
	onehot, err := preprocess.NewOneHot(a.Categorical)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifact, err)
	}
	var model boost.Booster
	if err := model.UnmarshalBinary(a.Model); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifact, err)
	}
	columns := &preprocess.ColumnTransformer{Inputs: a.Inputs, Scaler: scaler, OneHot: onehot}
	if model.Features != columns.Width() {
		return nil, fmt.Errorf("%w: model takes %d features, preprocessing makes %d", ErrArtifact, model.Features, columns.Width())
	}
	return &Pipeline{Columns: columns, Model: &model}, nil
}
