package detector

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devarispbrown/stackshift/internal/manifest"
	"github.com/devarispbrown/stackshift/internal/registry"
)

func newTestDetector(t *testing.T, root string) *Detector {
	t.Helper()
	reg, err := registry.New("")
	require.NoError(t, err)
	d, err := New(root, reg)
	require.NoError(t, err)
	return d
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestNewValidatesRoot(t *testing.T) {
	reg, err := registry.New("")
	require.NoError(t, err)

	_, err = New("", reg)
	assert.Error(t, err)

	_, err = New("/nonexistent/project", reg)
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = New(file, reg)
	assert.Error(t, err)
}

func TestDetectEmptyProject(t *testing.T) {
	dir := t.TempDir()
	d := newTestDetector(t, dir)

	result, err := d.Detect(context.Background(), manifest.Load(dir))
	require.NoError(t, err)

	assert.Nil(t, result.Primary)
	assert.Empty(t, result.Secondary)
	assert.Empty(t, result.All)
}

func TestDetectExpressProject(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"package.json": `{
			"dependencies": {"express": "^4.18.2"},
			"devDependencies": {"nodemon": "^3.0.0"}
		}`,
		"src/index.js":    "const express = require('express');\nconst app = express();\napp.listen(3000);\n",
		"routes/users.js": "module.exports = [];\n",
	})

	d := newTestDetector(t, dir)
	result, err := d.Detect(context.Background(), manifest.Load(dir))
	require.NoError(t, err)

	require.NotNil(t, result.Primary)
	assert.Equal(t, "Express", result.Primary.Framework)
	assert.GreaterOrEqual(t, result.Primary.Confidence, PrimaryThreshold)
	assert.Equal(t, "4.18.2", result.Primary.Version)
}

func TestDetectManifestOnlyProject(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		// No source files at all; the dependency declaration plus the
		// manifest marker must be enough to cross the detection threshold.
		"package.json": `{"dependencies": {"express": "^4.18.2"}}`,
	})

	d := newTestDetector(t, dir)
	result, err := d.Detect(context.Background(), manifest.Load(dir))
	require.NoError(t, err)

	require.NotEmpty(t, result.All)
	assert.Equal(t, "Express", result.All[0].Framework)
	assert.Greater(t, result.All[0].Confidence, DetectedThreshold)
}

func TestDetectManifestOnlyPythonProject(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"requirements.txt": "flask==2.3.0\n",
	})

	d := newTestDetector(t, dir)
	result, err := d.Detect(context.Background(), manifest.Load(dir))
	require.NoError(t, err)

	require.NotEmpty(t, result.All)
	assert.Equal(t, "Flask", result.All[0].Framework)
	assert.Greater(t, result.All[0].Confidence, DetectedThreshold)
}

func TestDetectConfidenceBounds(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"package.json": `{
			"dependencies": {"express": "^4.18.2", "react": "18.2.0", "react-dom": "18.2.0", "vue": "3.3.0"},
			"devDependencies": {"@types/express": "^4.17.0", "nodemon": "^3.0.0"}
		}`,
		"src/index.js": "const express = require('express');\nexpress();\napp.listen(3000);\n",
	})

	d := newTestDetector(t, dir)
	result, err := d.Detect(context.Background(), manifest.Load(dir))
	require.NoError(t, err)

	for _, fw := range result.All {
		assert.Greater(t, fw.Confidence, DetectedThreshold)
		assert.LessOrEqual(t, fw.Confidence, 100)
	}
}

func TestDetectOrderIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"package.json": `{
			"dependencies": {"express": "^4.18.2", "react": "18.2.0", "react-dom": "18.2.0"}
		}`,
	})

	d := newTestDetector(t, dir)
	first, err := d.Detect(context.Background(), manifest.Load(dir))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := d.Detect(context.Background(), manifest.Load(dir))
		require.NoError(t, err)
		assert.Equal(t, first.All, again.All)
	}

	for i := 1; i < len(first.All); i++ {
		prev, cur := first.All[i-1], first.All[i]
		if prev.Confidence == cur.Confidence {
			assert.Less(t, prev.Framework, cur.Framework)
		} else {
			assert.Greater(t, prev.Confidence, cur.Confidence)
		}
	}
}

func TestDetectVariantNextJS(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"package.json": `{
			"dependencies": {"react": "18.2.0", "react-dom": "18.2.0", "next": "14.0.0"},
			"devDependencies": {"@types/react": "^18.0.0", "react-scripts": "5.0.0", "@vitejs/plugin-react": "^4.0.0"}
		}`,
		"next.config.js":          "module.exports = {};\n",
		"src/App.jsx":             "import React from 'react';\nexport default function App() { return null; }\n",
		"src/index.js":            "import { useState } from 'react';\n",
		"src/components/.gitkeep": "",
	})

	d := newTestDetector(t, dir)
	result, err := d.Detect(context.Background(), manifest.Load(dir))
	require.NoError(t, err)

	require.NotNil(t, result.Primary)
	assert.Equal(t, "React", result.Primary.Framework)
	assert.Equal(t, "Next.js", result.Primary.Variant)
}

func TestDetectVariantByDependencyOnly(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"package.json": `{
			"dependencies": {"react": "18.2.0", "react-dom": "18.2.0", "gatsby": "5.0.0"},
			"devDependencies": {"@types/react": "^18.0.0", "react-scripts": "5.0.0", "@vitejs/plugin-react": "^4.0.0"}
		}`,
		"src/App.jsx":             "import React from 'react';\n",
		"src/index.js":            "import { useState } from 'react';\n",
		"src/components/.gitkeep": "",
	})

	d := newTestDetector(t, dir)
	result, err := d.Detect(context.Background(), manifest.Load(dir))
	require.NoError(t, err)

	require.NotNil(t, result.Primary)
	assert.Equal(t, "React", result.Primary.Framework)
	assert.Equal(t, "Gatsby", result.Primary.Variant)
}

func TestDetectSecondaryFramework(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		// Strong React signals plus a weaker Express presence.
		"package.json": `{
			"dependencies": {"react": "18.2.0", "react-dom": "18.2.0", "express": "^4.18.2"},
			"devDependencies": {"@types/react": "^18.0.0", "react-scripts": "5.0.0", "@vitejs/plugin-react": "^4.0.0"}
		}`,
		"src/App.jsx":             "import React from 'react';\n",
		"src/index.js":            "import { useState } from 'react';\n",
		"src/components/.gitkeep": "",
	})

	d := newTestDetector(t, dir)
	result, err := d.Detect(context.Background(), manifest.Load(dir))
	require.NoError(t, err)

	require.NotNil(t, result.Primary)
	assert.Equal(t, "React", result.Primary.Framework)

	names := make([]string, 0, len(result.Secondary))
	for _, fw := range result.Secondary {
		names = append(names, fw.Framework)
	}
	assert.Contains(t, names, "Express")
}

func TestScoreDependencies(t *testing.T) {
	declared := map[string]string{"react": "18.2.0", "react-dom": "18.2.0"}

	assert.Equal(t, 20, scoreDependencies([]string{"react", "react-dom"}, declared, 20))
	assert.Equal(t, 10, scoreDependencies([]string{"react", "missing"}, declared, 20))
	assert.Equal(t, 0, scoreDependencies([]string{"missing"}, declared, 20))
	assert.Equal(t, 0, scoreDependencies(nil, declared, 20))
}

func TestScoreContentInvalidPatternIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"src/a.js": "hello"})

	d := newTestDetector(t, dir)
	score := d.scoreContent(registry.FrameworkPattern{
		Framework: "Broken",
		Content: []registry.ContentRule{
			{File: "src/**/*.js", Pattern: "([unclosed", Weight: 50},
			{File: "src/**/*.js", Pattern: "hello", Weight: 15},
		},
	})

	assert.Equal(t, 15, score, "one invalid pattern must not block the others")
}

func TestCleanVersion(t *testing.T) {
	assert.Equal(t, "18.2.0", CleanVersion("^18.2.0"))
	assert.Equal(t, "4.0", CleanVersion(">= 4.0"))
	assert.Equal(t, "1.2.3", CleanVersion("~1.2.3"))
	assert.Equal(t, "2.0.0", CleanVersion("v2.0.0"))
	assert.Equal(t, "1.0.0", CleanVersion("1.0.0 || 2.0.0"))
	assert.Empty(t, CleanVersion(""))
}

func TestLockfileVersion(t *testing.T) {
	npm := `{
  "packages": {
    "node_modules/react": {
      "version": "18.2.0",
      "resolved": "https://registry.npmjs.org/react/-/react-18.2.0.tgz"
    }
  }
}`
	assert.Equal(t, "18.2.0", lockfileVersion(npm, "react"))

	pnpm := `packages:
  /react@18.2.0:
    resolution: {integrity: sha512-xxx}
`
	assert.Equal(t, "18.2.0", lockfileVersion(pnpm, "react"))

	assert.Empty(t, lockfileVersion("nothing here", "react"))
}
