package main

import (
	"testing"

	"bibmend/internal/testsupport"
)

func TestCacheRebuildStatusAndClear(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteCorpusFile(t, env.cfg, "conf.bib", corpusEntry)

	out, _, err := runCLI(t, []string{"cache", "rebuild"}, env.configPath)
	if err != nil {
		t.Fatalf("cache rebuild: %v", err)
	}
	requireContains(t, out, "Corpus cache rebuilt: 1 entries indexed")

	out, _, err = runCLI(t, []string{"cache", "status"}, env.configPath)
	if err != nil {
		t.Fatalf("cache status: %v", err)
	}
	requireContains(t, out, "Corpus cache")
	requireContains(t, out, "Artifact present")
	requireContains(t, out, "yes")

	out, _, err = runCLI(t, []string{"cache", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Corpus cache artifact removed.")

	out, _, err = runCLI(t, []string{"cache", "status"}, env.configPath)
	if err != nil {
		t.Fatalf("cache status after clear: %v", err)
	}
	requireContains(t, out, "no")
}
