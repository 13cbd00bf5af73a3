package manifest

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/chainguard-dev/gopom"
)

// parsePOM reads Maven coordinates as "groupId:artifactId" package names.
// Property-valued versions (${...}) are resolved against <properties> when
// possible and left as declared otherwise.
func parsePOM(path string, m *Manifest) error {
	project, err := gopom.Parse(path)
	if err != nil {
		return err
	}

	properties := map[string]string{}
	if project.Properties != nil {
		for k, v := range project.Properties.Entries {
			properties[k] = v
		}
	}

	resolve := func(version string) string {
		if strings.HasPrefix(version, "${") && strings.HasSuffix(version, "}") {
			name := strings.TrimSuffix(strings.TrimPrefix(version, "${"), "}")
			if value, ok := properties[name]; ok {
				return value
			}
		}
		return version
	}

	if project.Dependencies == nil {
		return nil
	}
	for _, dep := range *project.Dependencies {
		if dep.GroupID == "" || dep.ArtifactID == "" {
			continue
		}
		name := dep.GroupID + ":" + dep.ArtifactID
		if strings.EqualFold(dep.Scope, "test") {
			m.DevDependencies[name] = resolve(dep.Version)
		} else {
			m.Dependencies[name] = resolve(dep.Version)
		}
	}

	return nil
}

// gemRe matches `gem 'name', '~> 1.2'` declarations.
var gemRe = regexp.MustCompile(`^\s*gem\s+['"]([^'"]+)['"](?:\s*,\s*['"]([^'"]+)['"])?`)

func parseGemfile(path string, m *Manifest) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	dev := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Track :development/:test groups; everything inside is dev-only.
		if strings.HasPrefix(line, "group") {
			dev = strings.Contains(line, ":development") || strings.Contains(line, ":test")
			continue
		}
		if line == "end" {
			dev = false
			continue
		}

		match := gemRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		version := strings.TrimLeft(match[2], "~><= ")
		if dev {
			m.DevDependencies[match[1]] = version
		} else {
			m.Dependencies[match[1]] = version
		}
	}

	return scanner.Err()
}
