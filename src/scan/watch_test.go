package scan_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bcgov/wordpress-scripts/src/config"
	"github.com/bcgov/wordpress-scripts/src/scan"
)

func TestWatchRescansOnChange(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "hero.php")
	writeFile(t, path, `<img src="hero.jpg">`)

	s, err := scan.NewScanner(config.DefaultScanConfig(), root)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan *scan.Result, 8)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, func(res *scan.Result, err error) {
			if err == nil {
				results <- res
			}
		})
	}()

	next := func() *scan.Result {
		t.Helper()
		select {
		case res := <-results:
			return res
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for scan")
			return nil
		}
	}

	require.Equal(t, 1, next().Failed)

	require.NoError(t, os.WriteFile(path, []byte(`<img src="<?php echo $hero; ?>">`+"\n"), 0o644))
	res := next()
	require.Equal(t, 0, res.Failed)
	require.Equal(t, 1, res.Passed)

	writeFile(t, filepath.Join(root, "new", "card.php"), `<a href="http://localhost/card">`)
	deadline := time.After(5 * time.Second)
	for res.TotalFiles != 2 {
		select {
		case res = <-results:
		case <-deadline:
			t.Fatalf("new directory never scanned, last result %+v", res)
		}
	}
	require.Equal(t, 1, res.Failed)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchMissingRoot(t *testing.T) {
	s, err := scan.NewScanner(config.DefaultScanConfig(), filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)

	err = s.Watch(context.Background(), func(*scan.Result, error) {})

	var dirErr *scan.DirectoryAccessError
	require.ErrorAs(t, err, &dirErr)
}
