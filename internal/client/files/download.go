package files

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/rentadmin/internal/filex"
	"github.com/dmitrijs2005/rentadmin/internal/netx"
)

// DownloadDir is created under the working directory.
const DownloadDir = "download"

type Downloader struct {
	resolver *Resolver
	hc       *http.Client
	token    func() string
	dir      string
}

// NewDownloader saves files under DownloadDir. token, if set, supplies the
// bearer sent to the uploads host.
func NewDownloader(r *Resolver, hc *http.Client, token func() string) *Downloader {
	return &Downloader{resolver: r, hc: hc, token: token, dir: DownloadDir}
}

// Fetch resolves ref, downloads it and writes it as <prefix>-<name>. It
// returns the written path.
func (d *Downloader) Fetch(ctx context.Context, ref, prefix string) (string, error) {
	target, err := d.resolver.Resolve(ctx, ref)
	if err != nil {
		return "", err
	}

	bearer := ""
	if !target.Presigned && d.token != nil {
		bearer = d.token()
	}
	body, err := netx.Download(ctx, d.hc, target.URL, bearer)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", ref, err)
	}

	dir, err := filex.EnsureSubdDir(d.dir)
	if err != nil {
		return "", err
	}
	name := filex.SafeBaseName(ref)
	if prefix != "" {
		name = filex.SafeBaseName(prefix) + "-" + name
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, body, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", p, err)
	}
	return p, nil
}
