/*
Package yaml parses feature-kind declarations, also known as metadata,
from YAML documents. The metadata types the columns of data files whose
format does not carry type information itself, such as plain CSV.
*/
package yaml

import (
	"fmt"
	"os"

	"github.com/grovelab/grove/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadKinds takes a slice of bytes with feature-kind declarations in YML
and returns a mapping from feature name to kind or an error.
The YML is expected to be an object containing a features property whose
value is an object with a property per feature, mapping its name to one
of the strings 'numeric', 'categorical' or 'textual'.
*/
func ReadKinds(md []byte) (map[string]feature.Kind, error) {
	metadata := struct {
		Features map[string]string
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml features: %v", err)
	}
	if metadata.Features == nil {
		return nil, fmt.Errorf("metadata file has no feature information")
	}
	kinds := make(map[string]feature.Kind, len(metadata.Features))
	for fn, ks := range metadata.Features {
		switch ks {
		case "numeric":
			kinds[fn] = feature.Numeric
		case "categorical":
			kinds[fn] = feature.Categorical
		case "textual":
			kinds[fn] = feature.Textual
		default:
			return nil, fmt.Errorf("invalid kind %q declared for feature %s", ks, fn)
		}
	}
	return kinds, nil
}

/*
ReadKindsFromFile takes a filepath string, reads its contents and uses
ReadKinds to parse it and return a mapping from feature name to kind or
an error. If the file indicated by the filepath cannot be opened for
reading an error will be returned.
*/
func ReadKindsFromFile(filepath string) (map[string]feature.Kind, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading features yml file %s: %v", filepath, err)
	}
	kinds, err := ReadKinds(md)
	if err != nil {
		err = fmt.Errorf("parsing features yml file %s: %v", filepath, err)
	}
	return kinds, err
}
