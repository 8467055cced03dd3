/*
Copyright © 2018 the Windsaloft authors.
This file is part of Windsaloft.

Windsaloft is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Windsaloft is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Windsaloft.  If not, see <http://www.gnu.org/licenses/>.
*/

package windsaloftutil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"

	// Register the cloud storage providers.
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

// maxDownloadRetries is the number of times a failed HTTP download is
// retried.
const maxDownloadRetries = 5

// maybeDownload checks if the input is an existing file locally.
// If not, it checks if the file is a URL or blob storage location.
// If it is, it downloads the file and returns the path to the
// downloaded file.
// For shapefiles, it downloads all associated files and
// returns the path to the file with the ".shp" extension.
func maybeDownload(ctx context.Context, path string, log logrus.FieldLogger) (string, error) {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return path, nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return downloadHTTP(ctx, path, log)
	}
	if IsBlob(path) {
		return downloadBlob(ctx, path, log)
	}
	return path, nil
}

// downloadHTTP downloads a file from the specified URL and returns
// the path to the downloaded file. Server errors and dropped
// connections are retried with exponential backoff.
func downloadHTTP(ctx context.Context, path string, log logrus.FieldLogger) (string, error) {
	dir, err := os.MkdirTemp("", "windsaloft")
	if err != nil {
		return path, fmt.Errorf("windsaloftutil: creating temporary download directory: %v", err)
	}

	fnames := expandShp(path)
	for _, fname := range fnames {
		local := filepath.Join(dir, filepath.Base(fname))
		b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxDownloadRetries), ctx)
		err = backoff.RetryNotify(
			func() error { return httpGet(ctx, fname, local) },
			b,
			func(err error, d time.Duration) {
				log.WithField("url", fname).Warnf("windsaloftutil: %v: retrying in %v", err, d)
			},
		)
		if err != nil {
			return path, fmt.Errorf("windsaloftutil: downloading %s: %v", fname, err)
		}
		log.WithFields(logrus.Fields{"url": fname, "file": local}).Debug("windsaloftutil: downloaded file")
	}
	return filepath.Join(dir, filepath.Base(fnames[0])), nil
}

// httpGet copies the contents of url u into the local file fname.
// Client errors are not retried.
func httpGet(ctx context.Context, u, fname string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return backoff.Permanent(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("server returned %s", resp.Status)
	} else if resp.StatusCode != http.StatusOK {
		return backoff.Permanent(fmt.Errorf("server returned %s", resp.Status))
	}
	w, err := os.Create(fname)
	if err != nil {
		return backoff.Permanent(err)
	}
	if _, err = io.Copy(w, resp.Body); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// IsBlob returns whether the given filename represents a blob.
// (i.e., if it starts with `gs://`, 's3://', or 'file://').
func IsBlob(path string) bool {
	return strings.HasPrefix(path, "gs://") || strings.HasPrefix(path, "s3://") || strings.HasPrefix(path, "file://")
}

// splitBlobURL splits a blob path into its storage provider, bucket, and
// key. For the "file" provider the bucket is the directory holding the
// file; for the others it is the URL host.
func splitBlobURL(path string) (provider, bucket, key string, err error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", "", "", fmt.Errorf("windsaloftutil: parsing blob location '%s': %v", path, err)
	}
	if u.Scheme == "file" {
		full := u.Host + u.Path
		return u.Scheme, filepath.Dir(full), filepath.Base(full), nil
	}
	return u.Scheme, u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

// OpenBucket returns the blob storage bucket with the given name from the
// given provider. The currently accepted storage providers are "file" for
// the local filesystem (e.g., for testing), "gs" for Google Cloud Storage,
// and "s3" for AWS S3. Credentials for the cloud providers are taken from
// the environment.
func OpenBucket(ctx context.Context, provider, name string) (*blob.Bucket, error) {
	switch provider {
	case "file":
		return fileblob.OpenBucket(name, nil)
	case "gs", "s3":
		return blob.OpenBucket(ctx, provider+"://"+name)
	default:
		return nil, fmt.Errorf("windsaloftutil: invalid blob storage provider %s", provider)
	}
}

// downloadBlob downloads the specified file from blob storage.
func downloadBlob(ctx context.Context, path string, log logrus.FieldLogger) (string, error) {
	provider, bucketName, _, err := splitBlobURL(path)
	if err != nil {
		return path, err
	}
	bucket, err := OpenBucket(ctx, provider, bucketName)
	if err != nil {
		return path, fmt.Errorf("windsaloftutil: opening bucket for '%s': %v", path, err)
	}
	defer bucket.Close()
	dir, err := os.MkdirTemp("", "windsaloft")
	if err != nil {
		return path, fmt.Errorf("windsaloftutil: creating temporary download directory: %v", err)
	}
	fnames := expandShp(path)
	for _, fname := range fnames {
		_, _, key, err := splitBlobURL(fname)
		if err != nil {
			return path, err
		}
		local := filepath.Join(dir, filepath.Base(key))
		if err = copyBlob(ctx, bucket, key, local); err != nil {
			return path, fmt.Errorf("windsaloftutil: downloading '%s': %v", fname, err)
		}
		log.WithFields(logrus.Fields{"blob": fname, "file": local}).Debug("windsaloftutil: downloaded file")
	}
	return filepath.Join(dir, filepath.Base(fnames[0])), nil
}

func copyBlob(ctx context.Context, bucket *blob.Bucket, key, fname string) error {
	r, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return err
	}
	defer r.Close()
	w, err := os.Create(fname)
	if err != nil {
		return err
	}
	if _, err = io.Copy(w, r); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// expandShp returns the given file + associated [.dbf, .shx, .prj]
// files if the given file has the .shp extension, and returns the given
// file otherwise
func expandShp(filename string) []string {
	o := []string{filename}
	ext := filepath.Ext(filename)
	if ext != ".shp" {
		return o
	}
	for _, newExt := range []string{".dbf", ".shx", ".prj"} {
		o = append(o, filename[0:len(filename)-4]+newExt)
	}
	return o
}
