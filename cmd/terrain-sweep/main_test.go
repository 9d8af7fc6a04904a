package main

import (
	"testing"

	"pepse/internal/config"
)

func TestRunSeedSamplesEveryStreamedChunk(t *testing.T) {
	cfg := config.Default()
	res := runSeed(cfg, 42, 6)
	if res.err != nil {
		t.Fatalf("runSeed: %v", res.err)
	}
	width := cfg.ChunkWidth()
	chunks := int((res.maxX - res.minX) / width)
	if res.stats.Chunks != chunks {
		t.Fatalf("stats count %d chunks, sampled span [%v,%v) holds %d", res.stats.Chunks, res.minX, res.maxX, chunks)
	}
	if res.minX != -width {
		t.Fatalf("the margin chunk left of the origin should be sampled, minX = %v", res.minX)
	}
	if want := chunks * cfg.Terrain.ChunkCells; res.columns != want {
		t.Fatalf("sampled %d columns, want %d", res.columns, want)
	}
	if res.stats.Blocks != res.columns*cfg.Terrain.Depth {
		t.Fatalf("blocks %d do not match %d sampled columns", res.stats.Blocks, res.columns)
	}
	if !(res.minH <= res.meanH && res.meanH <= res.maxH) {
		t.Fatalf("mean %v outside [%v,%v]", res.meanH, res.minH, res.maxH)
	}
}
