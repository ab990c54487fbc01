package registry

import (
	"archive/tar"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	pb "github.com/schollz/progressbar/v3"

	"github.com/typst-community/utpm/pkg/errors"
)

// Download fetches name:version and unpacks it into dest. On failure dest is removed.
func (c *Client) Download(ctx context.Context, name, version, dest string) error {
	url := c.ArchiveURL(name, version)
	resp, err := c.open(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body io.Reader = resp.Body
	if c.progress != nil {
		bar := pb.NewOptions64(resp.ContentLength,
			pb.OptionSetWriter(c.progress),
			pb.OptionSetDescription("Downloading "+name+":"+version),
			pb.OptionShowBytes(true),
			pb.OptionClearOnFinish(),
		)
		defer func() { _ = bar.Finish() }()
		body = io.TeeReader(resp.Body, bar)
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create %s", dest)
	}
	if err := Extract(body, dest); err != nil {
		_ = os.RemoveAll(dest)
		return err
	}

	c.logger.Info().Str("package", name+":"+version).Str("dest", dest).Msg("package downloaded")
	return nil
}

// Extract unpacks a gzipped tarball into dest. Entries resolving outside dest are
// rejected.
func Extract(r io.Reader, dest string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return errors.Wrap(err, errors.ErrDeserialize, "archive is not gzip compressed")
	}
	defer gz.Close()

	root, err := filepath.Abs(dest)
	if err != nil {
		return errors.Wrap(err, errors.ErrIO, "failed to resolve destination")
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, errors.ErrDeserialize, "failed to read archive")
		}

		target := filepath.Join(root, filepath.FromSlash(hdr.Name))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return errors.Newf(errors.ErrPackageNotValid, "archive entry %q escapes the destination", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrIO, "failed to create %s", target)
			}
		case tar.TypeReg:
			if err := writeEntry(tr, target, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		default:
			// links and devices are not part of Typst packages
			continue
		}
	}
}

func writeEntry(r io.Reader, target string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create %s", filepath.Dir(target))
	}
	if mode == 0 {
		mode = 0644
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create %s", target)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return errors.Wrapf(err, errors.ErrIO, "failed to write %s", target)
	}
	return f.Close()
}
