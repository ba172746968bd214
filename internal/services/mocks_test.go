package services

import (
	"context"
	"sync"

	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
)

// callLog records the order in which pipeline components ran.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (c *callLog) add(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, name)
}

func (c *callLog) list() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

type mockExtractor struct {
	pkg *deconstruct.Package
	err error

	gotSource string
	gotHint   string
}

func (m *mockExtractor) Extract(_ context.Context, sourcePath, outputHint string) (*deconstruct.Package, error) {
	m.gotSource = sourcePath
	m.gotHint = outputHint
	return m.pkg, m.err
}

type mockStage struct {
	name string
	err  error
	log  *callLog

	// release, when set, blocks Run until closed.
	release chan struct{}
	// before, when set, is called at the start of Run.
	before func()
}

func (m *mockStage) Name() string { return m.name }

func (m *mockStage) Run(_ context.Context, _, _ string) error {
	if m.before != nil {
		m.before()
	}
	if m.release != nil {
		<-m.release
	}
	m.log.add(m.name)
	return m.err
}

type mockManifest struct {
	err error
	log *callLog

	gotWorkingDir string
	gotOutputDir  string
}

func (m *mockManifest) Build(_ context.Context, workingDir, outputDir string) error {
	m.gotWorkingDir = workingDir
	m.gotOutputDir = outputDir
	m.log.add("manifest")
	return m.err
}

type mockSanitizer struct {
	err error
	log *callLog

	gotOutputDir string
}

func (m *mockSanitizer) Sanitize(_ context.Context, outputDir string) error {
	m.gotOutputDir = outputDir
	m.log.add("sanitize")
	return m.err
}
