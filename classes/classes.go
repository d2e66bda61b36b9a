// Package classes - Ordered class label registry for the classifier.
package classes

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// ConfigurationError indicates the class label resource is missing or
// malformed. It is fatal to startup; there is no recovery path.
type ConfigurationError struct {
	Path   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("class configuration %s: %s", e.Path, e.Reason)
}

// classFile is the on-disk shape of the class configuration resource.
type classFile struct {
	Classes []string `json:"classes"`
}

// Set is an immutable, ordered collection of class labels. The position of
// a label is the model's output-channel index.
type Set struct {
	labels []string
	index  map[string]int
}

// Load reads the class label list from a JSON resource of the form
// {"classes": ["Bacterialblight", "Blast", ...]}.
//
// A missing file, malformed JSON, empty list, or a duplicate or empty label
// fails with a *ConfigurationError.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Reason: err.Error()}
	}

	var cf classFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, &ConfigurationError{Path: path, Reason: "invalid JSON: " + err.Error()}
	}

	return New(path, cf.Classes)
}

// New builds a Set from an already-parsed label list, applying the same
// validation as Load. The source argument is only used in error messages.
func New(source string, labels []string) (*Set, error) {
	if len(labels) == 0 {
		return nil, &ConfigurationError{Path: source, Reason: "class list is empty"}
	}

	index := make(map[string]int, len(labels))
	for i, label := range labels {
		if label == "" {
			return nil, &ConfigurationError{
				Path:   source,
				Reason: fmt.Sprintf("empty label at index %d", i),
			}
		}
		if prev, ok := index[label]; ok {
			return nil, &ConfigurationError{
				Path:   source,
				Reason: fmt.Sprintf("duplicate label %q at indexes %d and %d", label, prev, i),
			}
		}
		index[label] = i
	}

	owned := make([]string, len(labels))
	copy(owned, labels)

	return &Set{labels: owned, index: index}, nil
}

// Count returns the number of labels in the set.
func (s *Set) Count() int {
	return len(s.labels)
}

// At returns the label at the given output-channel index.
func (s *Set) At(i int) (string, error) {
	if i < 0 || i >= len(s.labels) {
		return "", errors.Errorf("class index %d out of range [0,%d)", i, len(s.labels))
	}
	return s.labels[i], nil
}

// Index returns the output-channel index of a label.
func (s *Set) Index(label string) (int, bool) {
	i, ok := s.index[label]
	return i, ok
}

// Labels returns a copy of the ordered label list.
func (s *Set) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}
