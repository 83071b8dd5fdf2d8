package sniff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/qdiff/pkg/sniff"
)

type mem []byte

func (m mem) ByteAt(i int64) byte { return m[i] }
func (m mem) Size() int64         { return int64(len(m)) }

func TestDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     string
		content  string
		kind     string
		language string
	}{
		{name: "empty", file: "a", content: "", kind: sniff.KindEmpty},
		{name: "nul bytes", file: "firmware", content: "\x7fELF\x02\x01\x00\x00\x00", kind: sniff.KindBinary},
		{name: "shebang bash", file: "run", content: "#!/bin/bash\necho hello\n", kind: sniff.KindText, language: "bash"},
		{name: "shebang python", file: "tool", content: "#!/usr/bin/env python3\nprint('hi')\n", kind: sniff.KindText, language: "python"},
		{name: "go by extension", file: "main.go", content: "func main() {}\n", kind: sniff.KindText, language: "go"},
		{name: "go by content", file: "snippet", content: "package main\n\nfunc main() {}\n", kind: sniff.KindText, language: "go"},
		{name: "json by content", file: "data", content: `{"key": "value"}`, kind: sniff.KindText, language: "json"},
		{name: "html by content", file: "page", content: "<!DOCTYPE html>\n<html></html>\n", kind: sniff.KindText, language: "html"},
		{name: "plain text", file: "notes", content: "just some words\n", kind: sniff.KindText, language: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sniff.Describe(tt.file, []byte(tt.content))
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.language, got.Language)
		})
	}
}

func TestDescribe_BinaryMIME(t *testing.T) {
	t.Parallel()

	got := sniff.Describe("blob", []byte{0, 1, 2, 0})
	assert.Equal(t, "application/octet-stream", got.MIME)
}

func TestHead(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte("abc"), sniff.Head(mem("abcdef"), 3))
	assert.Equal(t, []byte("ab"), sniff.Head(mem("ab"), 10))
	assert.Empty(t, sniff.Head(mem(""), 10))
}
