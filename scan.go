package imagebanner

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// BannerSuffix is appended to the name of each image when Scan writes its
// banner.
const BannerSuffix = ".banner.txt"

const scanWorkers = 10

var imageExtensions = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".tif":  {},
	".tiff": {},
	".webp": {},
}

// Scanner renders every image found below a directory.
type Scanner struct {
	logger   *log.Logger
	progress *log.Logger
	cache    *Cache
}

// NewScanner returns a Scanner. Images that cannot be rendered are reported
// to logger, or to standard error if logger is nil. The cache may be nil.
func NewScanner(logger *log.Logger, cache *Cache) *Scanner {
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	return &Scanner{
		logger:   logger,
		progress: log.New(io.Discard, "", 0),
		cache:    cache,
	}
}

// SetProgress reports each banner written to logger.
func (s *Scanner) SetProgress(logger *log.Logger) {
	s.progress = logger
}

func isImage(file string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(file))]
	return ok
}

func bannerFile(file string) string {
	return file + BannerSuffix
}

func (s *Scanner) findImages(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !isImage(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (s *Scanner) imageWorker(ctx context.Context, in <-chan string, p Parameters) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			ib, err := New(file, s.logger)
			if err != nil {
				errc <- err
				return
			}
			ib.UseCache(s.cache)

			// Unrenderable images are logged and skipped
			banner := ib.String(p)
			if banner == "" {
				continue
			}

			if err := os.WriteFile(bannerFile(file), []byte(banner), 0644); err != nil {
				errc <- err
				return
			}
			s.progress.Printf("Wrote banner for \"%s\"\n", file)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan renders every image below path with p, writing each banner next to
// its image with BannerSuffix appended to the name. Hidden files and
// directories are ignored.
func (s *Scanner) Scan(path string, p Parameters) error {
	if err := p.validate(); err != nil {
		return err
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := s.findImages(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < scanWorkers; i++ {
		errc, err := s.imageWorker(ctx, files, p)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
