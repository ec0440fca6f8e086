package builder

import (
	"archive/tar"
	"io"
	"time"
)

// injectDockerfile rewrites the tar build context so it carries the rendered
// Dockerfile as its first entry. The source tree itself is copied through
// verbatim; any Dockerfile already present was excluded when the context was
// created, so the generated recipe is always the one that builds.
func injectDockerfile(src io.ReadCloser, dockerfile []byte) io.ReadCloser {
	pr, pw := io.Pipe()

	go func() {
		defer src.Close()

		tw := tar.NewWriter(pw)
		err := writeDockerfile(tw, dockerfile)
		if err == nil {
			err = copyEntries(tw, tar.NewReader(src))
		}
		if err == nil {
			err = tw.Close()
		}
		pw.CloseWithError(err)
	}()

	return pr
}

func writeDockerfile(tw *tar.Writer, content []byte) error {
	hdr := &tar.Header{
		Name:    "Dockerfile",
		Mode:    0o644,
		Size:    int64(len(content)),
		ModTime: time.Unix(0, 0), // fixed mtime keeps the layer reproducible
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := tw.Write(content)
	return err
}

func copyEntries(tw *tar.Writer, tr *tar.Reader) error {
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if _, err := io.Copy(tw, tr); err != nil {
			return err
		}
	}
}
