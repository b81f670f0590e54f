package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/peterbourgon/diskv/v3"
)

// DynamicCacheName labels the secondary cache of opportunistically learned
// responses. It is kept across generation upgrades.
const DynamicCacheName = "lexschedule-dynamic"

// ShellPath is the app shell served as the offline fallback for navigations.
const ShellPath = "/index.html"

// CachedResponse is one stored response, local file or remote asset alike.
type CachedResponse struct {
	URL         string `json:"url"`
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// AssetCache implements the offline cache policy: a pre-cached static
// generation, a dynamic cache filled on the fly, cache-first lookups and a
// shell fallback for navigations that fail over the network.
type AssetCache struct {
	generation string
	cachesDir  string
	publicDir  string
	manifest   []string

	static  *diskv.Diskv
	dynamic *diskv.Diskv
	client  *resty.Client
}

// NewAssetCache opens the static cache for the given generation and the
// shared dynamic cache under <dataDir>/caches.
func NewAssetCache(dataDir, publicDir, generation string, manifest []string) *AssetCache {
	cachesDir := filepath.Join(dataDir, "caches")
	open := func(name string) *diskv.Diskv {
		return diskv.New(diskv.Options{
			BasePath:     filepath.Join(cachesDir, name),
			CacheSizeMax: 8 * 1024 * 1024, // 8MB
		})
	}
	return &AssetCache{
		generation: generation,
		cachesDir:  cachesDir,
		publicDir:  publicDir,
		manifest:   manifest,
		static:     open(generation),
		dynamic:    open(DynamicCacheName),
		client:     resty.New().SetTimeout(15 * time.Second),
	}
}

// Install eagerly fetches the asset manifest into the current generation.
// Each URL fails individually; one missing asset never aborts the rest.
func (a *AssetCache) Install(ctx context.Context) {
	log.Printf("[cache] pre-caching %d assets into %s", len(a.manifest), a.generation)
	for _, url := range a.manifest {
		resp, err := a.fetchOrigin(ctx, url)
		if err != nil {
			log.Printf("[cache] pre-cache failed for %s: %v", url, err)
			continue
		}
		if resp.Status != http.StatusOK {
			log.Printf("[cache] pre-cache skipped for %s: status %d", url, resp.Status)
			continue
		}
		if err := writeCached(a.static, resp); err != nil {
			log.Printf("[cache] pre-cache store failed for %s: %v", url, err)
		}
	}
}

// Activate deletes every cache generation except the current one and the
// dynamic cache.
func (a *AssetCache) Activate() error {
	entries, err := os.ReadDir(a.cachesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("list caches: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == a.generation || name == DynamicCacheName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(a.cachesDir, name)); err != nil {
			return fmt.Errorf("delete stale cache %s: %w", name, err)
		}
		log.Printf("[cache] deleted stale cache %s", name)
	}
	return nil
}

// Fetch resolves one request cache-first: static cache, then dynamic cache,
// then the origin. Successful origin responses are cloned into the dynamic
// cache. When the origin fails, navigations fall back to the cached shell;
// anything else surfaces the failure.
func (a *AssetCache) Fetch(ctx context.Context, url string, navigation bool) (*CachedResponse, error) {
	if resp, ok := a.lookup(url); ok {
		return resp, nil
	}

	resp, err := a.fetchOrigin(ctx, url)
	if err != nil {
		if navigation {
			if shell, ok := a.lookup(ShellPath); ok {
				return shell, nil
			}
		}
		return nil, err
	}

	if resp.Status == http.StatusOK {
		if werr := writeCached(a.dynamic, resp); werr != nil {
			log.Printf("[cache] dynamic store failed for %s: %v", url, werr)
		}
	}
	return resp, nil
}

func (a *AssetCache) lookup(url string) (*CachedResponse, bool) {
	key := cacheKey(url)
	for _, d := range []*diskv.Diskv{a.static, a.dynamic} {
		raw, err := d.Read(key)
		if err != nil {
			continue
		}
		var resp CachedResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			continue
		}
		return &resp, true
	}
	return nil, false
}

// fetchOrigin is the "network" side of the policy: remote URLs go over HTTP,
// app-relative paths are read from the public directory.
func (a *AssetCache) fetchOrigin(ctx context.Context, url string) (*CachedResponse, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		resp, err := a.client.R().SetContext(ctx).Get(url)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", url, err)
		}
		return &CachedResponse{
			URL:         url,
			Status:      resp.StatusCode(),
			ContentType: resp.Header().Get("Content-Type"),
			Body:        resp.Body(),
		}, nil
	}

	path := url
	if path == "" || path == "/" {
		path = ShellPath
	}
	full := filepath.Join(a.publicDir, filepath.FromSlash(strings.TrimPrefix(path, "/")))
	base := filepath.Clean(a.publicDir)
	// Requested paths must resolve inside the public directory.
	if full != base && !strings.HasPrefix(full, base+string(filepath.Separator)) {
		return nil, fmt.Errorf("asset %s: %w", path, os.ErrNotExist)
	}
	body, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", path, err)
	}
	return &CachedResponse{
		URL:         url,
		Status:      http.StatusOK,
		ContentType: contentTypeFor(path),
		Body:        body,
	}, nil
}

func cacheKey(url string) string {
	if url == "" || url == "/" {
		url = ShellPath
	}
	return base64.RawURLEncoding.EncodeToString([]byte(url))
}

func contentTypeFor(path string) string {
	switch filepath.Ext(path) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".js", ".tsx", ".ts":
		return "text/javascript; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".json":
		return "application/json"
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

func writeCached(d *diskv.Diskv, resp *CachedResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return d.Write(cacheKey(resp.URL), raw)
}
