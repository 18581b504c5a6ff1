package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/haplo/block"
	"github.com/arloliu/haplo/config"
	"github.com/arloliu/haplo/format"
	"github.com/arloliu/haplo/internal/ctxlog"
	"github.com/arloliu/haplo/snapshot"
)

const matrix = "0 2 010\n0 2 101\n2 4 011\n2 4 100\n4 5 10\n"

func testSession(t *testing.T) *session {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return &session{
		ctx:    ctx,
		stop:   cancel,
		cfg:    config.Default(),
		logger: ctxlog.Discard(),
	}
}

func TestSessionLoadDetectsFormat(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "reads.txt")
	require.NoError(t, os.WriteFile(text, []byte(matrix), 0o600))

	s := testSession(t)
	fromText, err := s.load(text)
	require.NoError(t, err)
	require.Equal(t, 5, fromText.NumReads())

	data, err := snapshot.Encode(fromText, snapshot.WithCompression(format.CompressionLZ4))
	require.NoError(t, err)
	snap := filepath.Join(dir, "reads.snap")
	require.NoError(t, os.WriteFile(snap, data, 0o600))

	fromSnap, err := s.load(snap)
	require.NoError(t, err)
	require.Equal(t, fromText.NumSites(), fromSnap.NumSites())
	require.Equal(t, fromText.Splittable(), fromSnap.Splittable())

	_, err = s.load(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestSessionWritesMetrics(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "reads.txt")
	require.NoError(t, os.WriteFile(text, []byte(matrix), 0o600))

	s := testSession(t)
	s.registry = prometheus.NewRegistry()
	s.metricsPath = filepath.Join(dir, "haplo.prom")

	_, err := s.load(text)
	require.NoError(t, err)
	require.NoError(t, s.close())

	out, err := os.ReadFile(s.metricsPath)
	require.NoError(t, err)
	require.Contains(t, string(out), "haplo_reads_ingested_total 5")
}

func TestSiteLabel(t *testing.T) {
	require.Equal(t, "monotone", siteLabel(block.SiteInfo{Zeros: 3}))
	require.Equal(t, "NIH", siteLabel(block.SiteInfo{Zeros: 1, Ones: 2, Type: format.SiteNIH}))
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "reads.txt")
	require.NoError(t, os.WriteFile(text, []byte(matrix), 0o600))
	snap := filepath.Join(dir, "reads.snap")

	tests := []struct {
		name string
		run  func(s *session, w *bytes.Buffer) error
		want []string
		err  bool
	}{
		{
			name: "classify",
			run:  func(s *session, w *bytes.Buffer) error { return classify(s, w, text, false) },
			want: []string{"reads\t5\n", "sites\t6\n", "splittable\t[0 2 4 5]\n", "subblock\t0\t0..2\t3 open sites\n"},
		},
		{
			name: "classify sites",
			run:  func(s *session, w *bytes.Buffer) error { return classify(s, w, text, true) },
			want: []string{"site\t5\tmonotone\t"},
		},
		{
			name: "score",
			run: func(s *session, w *bytes.Buffer) error {
				return score(s, w, text, scoreArgs{h1: "010110", h2: "101000", perRead: true})
			},
			want: []string{"mec\t0\n", "read\t4\t0\n"},
		},
		{
			name: "score complement",
			run: func(s *session, w *bytes.Buffer) error {
				return score(s, w, text, scoreArgs{h1: "000000"})
			},
			want: []string{"mec\t"},
		},
		{
			name: "score bad pair",
			run: func(s *session, w *bytes.Buffer) error {
				return score(s, w, text, scoreArgs{h1: "01x"})
			},
			err: true,
		},
		{
			name: "score wrong length",
			run: func(s *session, w *bytes.Buffer) error {
				return score(s, w, text, scoreArgs{h1: "01"})
			},
			err: true,
		},
		{
			name: "snapshot",
			run: func(s *session, w *bytes.Buffer) error {
				if err := writeSnapshot(s, text, snapshotArgs{output: snap, compression: "s2", bigEndian: true}); err != nil {
					return err
				}
				return classify(s, w, snap, false)
			},
			want: []string{"reads\t5\n", "sites\t6\n"},
		},
		{
			name: "snapshot without output",
			run:  func(s *session, w *bytes.Buffer) error { return writeSnapshot(s, text, snapshotArgs{}) },
			err:  true,
		},
		{
			name: "snapshot unknown codec",
			run: func(s *session, w *bytes.Buffer) error {
				return writeSnapshot(s, text, snapshotArgs{output: snap, compression: "brotli"})
			},
			err: true,
		},
		{
			name: "graph",
			run: func(s *session, w *bytes.Buffer) error {
				return exportGraph(s, w, text, graphArgs{index: 0, output: "-"})
			},
			want: []string{"graph G", "site 0 w=", "site 2 w="},
		},
		{
			name: "graph device",
			run: func(s *session, w *bytes.Buffer) error {
				return exportGraph(s, w, text, graphArgs{index: 1, output: "-", device: true})
			},
			want: []string{"graph G", "site 4 w="},
		},
		{
			name: "graph out of range",
			run: func(s *session, w *bytes.Buffer) error {
				return exportGraph(s, w, text, graphArgs{index: 3, output: "-"})
			},
			err: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := tt.run(testSession(t), &out)
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.want {
				require.Contains(t, out.String(), want)
			}
		})
	}
}

func TestExportGraphToFile(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "reads.txt")
	require.NoError(t, os.WriteFile(text, []byte(matrix), 0o600))
	dot := filepath.Join(dir, "sub0.dot")

	var out bytes.Buffer
	require.NoError(t, exportGraph(testSession(t), &out, text, graphArgs{output: dot}))
	require.Zero(t, out.Len())

	data, err := os.ReadFile(dot)
	require.NoError(t, err)
	require.Contains(t, string(data), "graph G")
}
