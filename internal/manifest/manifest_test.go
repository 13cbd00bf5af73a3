package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadEmptyDirectory(t *testing.T) {
	m := Load(t.TempDir())

	require.NotNil(t, m)
	assert.Empty(t, m.Sources)
	assert.Zero(t, m.Len())
}

func TestLoadPackageJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
		"name": "app",
		"dependencies": {"express": "^4.18.2", "body-parser": "~1.20.0"},
		"devDependencies": {"nodemon": "^3.0.0"}
	}`)

	m := Load(dir)

	assert.Equal(t, []string{"package.json"}, m.Sources)
	assert.True(t, m.Has("express"))
	assert.True(t, m.HasDev("nodemon"))
	assert.False(t, m.Has("nodemon"))
	assert.Equal(t, "^4.18.2", m.Version("express"))
	assert.Equal(t, 3, m.Len())
}

func TestLoadMalformedManifestIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{not json at all`)
	writeFile(t, dir, "requirements.txt", "flask==2.3.0\n")

	m := Load(dir)

	// The broken manifest is skipped; the readable one still loads.
	assert.Equal(t, []string{"requirements.txt"}, m.Sources)
	assert.True(t, m.Has("flask"))
}

func TestLoadRequirements(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "requirements.txt", `
# web
Flask==2.3.0
requests>=2.28
uvicorn[standard]==0.23.1
-r extra.txt
pydantic
`)

	m := Load(dir)

	assert.True(t, m.Has("flask"), "names are lowercased")
	assert.Equal(t, "2.3.0", m.Version("flask"))
	assert.Equal(t, "2.28", m.Version("requests"))
	assert.Equal(t, "0.23.1", m.Version("uvicorn"))
	assert.True(t, m.Has("pydantic"))
	assert.Empty(t, m.Version("pydantic"))
	assert.False(t, m.Has("-r"))
}

func TestLoadPyprojectPEP621(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pyproject.toml", `
[project]
name = "app"
dependencies = ["fastapi==0.103.0", "SQLAlchemy>=2.0"]

[project.optional-dependencies]
dev = ["pytest==7.4.0"]
`)

	m := Load(dir)

	assert.True(t, m.Has("fastapi"))
	assert.Equal(t, "0.103.0", m.Version("fastapi"))
	assert.True(t, m.Has("sqlalchemy"))
	assert.True(t, m.HasDev("pytest"))
}

func TestLoadPyprojectPoetry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pyproject.toml", `
[tool.poetry]
name = "app"

[tool.poetry.dependencies]
python = "^3.11"
django = "^4.2"
celery = { version = "^5.3", extras = ["redis"] }

[tool.poetry.dev-dependencies]
black = "^23.0"
`)

	m := Load(dir)

	assert.False(t, m.Has("python"), "the interpreter pin is not a package")
	assert.Equal(t, "4.2", m.Version("django"))
	assert.Equal(t, "5.3", m.Version("celery"))
	assert.True(t, m.HasDev("black"))
}

func TestLoadGemfile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Gemfile", `
source 'https://rubygems.org'

gem 'rails', '~> 7.1'
gem "pg"

group :development, :test do
  gem 'rspec-rails', '~> 6.0'
end

gem 'puma'
`)

	m := Load(dir)

	assert.True(t, m.Has("rails"))
	assert.Equal(t, "7.1", m.Version("rails"))
	assert.True(t, m.Has("pg"))
	assert.True(t, m.HasDev("rspec-rails"))
	assert.False(t, m.Has("rspec-rails"))
	assert.True(t, m.Has("puma"), "group scope ends at the end keyword")
}

func TestLoadComposer(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "composer.json", `{
		"require": {
			"php": ">=8.1",
			"ext-mbstring": "*",
			"laravel/framework": "^10.0"
		},
		"require-dev": {"phpunit/phpunit": "^10.0"}
	}`)

	m := Load(dir)

	assert.False(t, m.Has("php"))
	assert.False(t, m.Has("ext-mbstring"))
	assert.True(t, m.Has("laravel/framework"))
	assert.True(t, m.HasDev("phpunit/phpunit"))
}

func TestLoadPOM(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pom.xml", `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <groupId>com.example</groupId>
  <artifactId>app</artifactId>
  <version>1.0.0</version>
  <properties>
    <spring.version>3.2.0</spring.version>
  </properties>
  <dependencies>
    <dependency>
      <groupId>org.springframework.boot</groupId>
      <artifactId>spring-boot-starter-web</artifactId>
      <version>${spring.version}</version>
    </dependency>
    <dependency>
      <groupId>org.junit.jupiter</groupId>
      <artifactId>junit-jupiter</artifactId>
      <version>5.10.0</version>
      <scope>test</scope>
    </dependency>
  </dependencies>
</project>
`)

	m := Load(dir)

	assert.True(t, m.Has("org.springframework.boot:spring-boot-starter-web"))
	assert.Equal(t, "3.2.0", m.Version("org.springframework.boot:spring-boot-starter-web"),
		"property-valued versions resolve against <properties>")
	assert.True(t, m.HasDev("org.junit.jupiter:junit-jupiter"))
}

func TestLoadMergesMultipleManifests(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"dependencies": {"express": "^4.18.0"}}`)
	writeFile(t, dir, "requirements.txt", "flask==2.3.0\n")

	m := Load(dir)

	assert.Equal(t, []string{"package.json", "requirements.txt"}, m.Sources)
	assert.True(t, m.Has("express"))
	assert.True(t, m.Has("flask"))
}

func TestNamesDeterministicOrder(t *testing.T) {
	m := &Manifest{
		Dependencies:    map[string]string{"zlib": "1", "axios": "1"},
		DevDependencies: map[string]string{"nodemon": "1", "axios": "1"},
	}

	names := m.Names()
	assert.Equal(t, []string{"axios", "zlib", "nodemon"}, names,
		"runtime names sorted first, then dev-only names, duplicates removed")
	assert.Equal(t, 3, m.Len())
}
