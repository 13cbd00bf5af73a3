package analyzer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/devarispbrown/stackshift/internal/migration"
)

// envFiles are probed in order; later files never override earlier hits.
var envFiles = []string{".env", ".env.example", ".env.local"}

// routeDirs mark an HTTP API surface that both systems serve during the
// transition window.
var routeDirs = []string{
	"pages/api", "app/api", "src/routes", "src/api", "routes", "api", "app/controllers",
}

// envResourceRule maps environment variable prefixes to a shared resource.
type envResourceRule struct {
	keys     []string
	resource migration.SharedResource
}

var envResourceRules = []envResourceRule{
	{
		keys: []string{"DATABASE_URL", "DB_HOST", "DB_NAME", "POSTGRES_", "MYSQL_", "MONGO_", "MONGODB_"},
		resource: migration.SharedResource{
			Type:              migration.ResourceDatabase,
			Name:              "Primary database",
			Description:       "Database referenced by environment configuration; both systems read and write it during migration",
			CriticalityLevel:  migration.SeverityCritical,
			MigrationStrategy: "Dual-write during transition; switch reads only after verification",
		},
	},
	{
		keys: []string{"REDIS_URL", "REDIS_HOST", "CACHE_URL", "MEMCACHED_"},
		resource: migration.SharedResource{
			Type:              migration.ResourceCache,
			Name:              "Cache layer",
			Description:       "Cache referenced by environment configuration",
			CriticalityLevel:  migration.SeverityMedium,
			MigrationStrategy: "Treat as ephemeral; rebuild in the target system",
		},
	},
	{
		keys: []string{"JWT_SECRET", "SESSION_SECRET", "AUTH0_", "OAUTH_", "NEXTAUTH_", "CLERK_"},
		resource: migration.SharedResource{
			Type:              migration.ResourceAuth,
			Name:              "Authentication system",
			Description:       "Auth secrets referenced by environment configuration; sessions must survive cutover",
			CriticalityLevel:  migration.SeverityCritical,
			MigrationStrategy: "Keep token and session formats stable across cutover",
		},
	},
}

// DetectSharedResources derives shared infrastructure from environment files
// and route-directory heuristics. Derived once per run; read-only afterward.
// Output order is fixed: database, cache, auth, api.
func DetectSharedResources(root string) []migration.SharedResource {
	keys := readEnvKeys(root)

	resources := []migration.SharedResource{}
	for _, rule := range envResourceRules {
		if matchesAny(keys, rule.keys) {
			resources = append(resources, rule.resource)
		}
	}

	for _, dir := range routeDirs {
		if info, err := os.Stat(filepath.Join(root, dir)); err == nil && info.IsDir() {
			resources = append(resources, migration.SharedResource{
				Type:              migration.ResourceAPI,
				Name:              "HTTP API surface",
				Description:       "Route handlers under " + dir + "; consumers depend on this contract during migration",
				CriticalityLevel:  migration.SeverityHigh,
				MigrationStrategy: "Version the API and proxy between old and new implementations during transition",
			})
			break
		}
	}

	return resources
}

// readEnvKeys merges the key sets of every readable env file. Malformed or
// unreadable files are skipped.
func readEnvKeys(root string) []string {
	var keys []string
	for _, file := range envFiles {
		path := filepath.Join(root, file)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		values, err := godotenv.Read(path)
		if err != nil {
			log.Warn("Failed to parse env file, skipping", "file", path, "error", err)
			continue
		}
		for key := range values {
			keys = append(keys, key)
		}
	}
	return keys
}

func matchesAny(keys, wanted []string) bool {
	for _, key := range keys {
		for _, want := range wanted {
			if strings.HasSuffix(want, "_") {
				if strings.HasPrefix(key, want) {
					return true
				}
			} else if key == want {
				return true
			}
		}
	}
	return false
}
