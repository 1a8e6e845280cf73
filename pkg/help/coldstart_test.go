package help

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestColdstartYAML_Parses(t *testing.T) {
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(ColdstartYAML), &doc); err != nil {
		t.Fatalf("ColdstartYAML is not valid YAML: %v", err)
	}
	for _, key := range []string{"worker", "one_shot", "settings", "archive", "error_types", "config"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("ColdstartYAML missing section %q", key)
		}
	}
}
