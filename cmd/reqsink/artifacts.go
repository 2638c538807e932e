package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"

	"github.com/reqsink/reqsink/pkg/collection"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	nameColor   = color.New(color.FgCyan, color.Bold)
	methodColor = color.New(color.FgMagenta, color.Bold)
	urlColor    = color.New(color.FgBlue)
	dimColor    = color.New(color.Faint)
	errorColor  = color.New(color.FgRed, color.Bold)
)

// artifact is one recorded file found on disk.
type artifact struct {
	Path string
	Kind string // collection | script
}

// findArtifacts scans baseDir for recorder output directories.
func findArtifacts(baseDir string) ([]artifact, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, err
	}

	var res []artifact
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		var kind, ext string
		switch {
		case strings.HasPrefix(name, ".") && strings.HasSuffix(name, "_collections"):
			kind, ext = "collection", ".json"
		case strings.HasPrefix(name, ".") && strings.HasSuffix(name, "_scripts"):
			kind, ext = "script", ".sh"
		default:
			continue
		}

		files, err := os.ReadDir(filepath.Join(baseDir, name))
		if err != nil {
			continue
		}
		for _, file := range files {
			if filepath.Ext(file.Name()) != ext {
				continue
			}
			res = append(res, artifact{
				Path: filepath.Join(baseDir, name, file.Name()),
				Kind: kind,
			})
		}
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Path < res[j].Path
	})
	return res, nil
}

// artifactDirs returns the recorder output directories under baseDir.
func artifactDirs(baseDir string) ([]string, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, err
	}

	var res []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") &&
			(strings.HasSuffix(name, "_collections") || strings.HasSuffix(name, "_scripts")) {
			res = append(res, filepath.Join(baseDir, name))
		}
	}
	sort.Strings(res)
	return res, nil
}

func loadCollection(path string) (*collection.Collection, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc := &collection.Collection{}
	if err := json.Unmarshal(contents, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
