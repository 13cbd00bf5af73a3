package manifest

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// requirementRe splits "name[extras]==1.2.3 ; markers" style lines.
var requirementRe = regexp.MustCompile(`^([A-Za-z0-9._-]+)(\[[^\]]*\])?\s*([=<>!~]{1,2}=?\s*[^;#\s]+)?`)

func parseRequirements(path string, m *Manifest) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}

		match := requirementRe.FindStringSubmatch(line)
		if match == nil || match[1] == "" {
			continue
		}

		name := strings.ToLower(match[1])
		version := strings.TrimSpace(match[3])
		version = strings.TrimLeft(version, "=<>!~ ")
		m.Dependencies[name] = version
	}

	return scanner.Err()
}

func parsePyproject(path string, m *Manifest) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc struct {
		Project struct {
			Dependencies         []string            `toml:"dependencies"`
			OptionalDependencies map[string][]string `toml:"optional-dependencies"`
		} `toml:"project"`
		Tool struct {
			Poetry struct {
				Dependencies    map[string]any `toml:"dependencies"`
				DevDependencies map[string]any `toml:"dev-dependencies"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return err
	}

	for _, spec := range doc.Project.Dependencies {
		addRequirementSpec(spec, m.Dependencies)
	}
	for _, specs := range doc.Project.OptionalDependencies {
		for _, spec := range specs {
			addRequirementSpec(spec, m.DevDependencies)
		}
	}

	for name, value := range doc.Tool.Poetry.Dependencies {
		if strings.EqualFold(name, "python") {
			continue
		}
		m.Dependencies[strings.ToLower(name)] = poetryVersion(value)
	}
	for name, value := range doc.Tool.Poetry.DevDependencies {
		m.DevDependencies[strings.ToLower(name)] = poetryVersion(value)
	}

	return nil
}

func addRequirementSpec(spec string, into map[string]string) {
	match := requirementRe.FindStringSubmatch(strings.TrimSpace(spec))
	if match == nil || match[1] == "" {
		return
	}
	version := strings.TrimLeft(strings.TrimSpace(match[3]), "=<>!~ ")
	into[strings.ToLower(match[1])] = version
}

// poetryVersion handles both plain strings and {version = "..."} tables.
func poetryVersion(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimLeft(v, "^~")
	case map[string]any:
		if version, ok := v["version"].(string); ok {
			return strings.TrimLeft(version, "^~")
		}
	}
	return ""
}
