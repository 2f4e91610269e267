package profiles

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/Seednode/cluebox/internal/apperror"
)

const manifestFile = "manifest.json"

func profileID(prefix string, n int) string {
	return fmt.Sprintf("%s-%03d", prefix, n)
}

// Loader fetches the manifest and per-category profile data on demand.
type Loader interface {
	Manifest() (Manifest, error)
	Profiles(slug, locale string) ([]Profile, error)
}

// profileFile is the on-disk/wire shape of a per-category data file.
type profileFile struct {
	Profiles []Profile `json:"profiles"`
}

// DirLoader reads manifest and profile data from a filesystem, laid out as
// manifest.json plus the per-category files the manifest names under
// <slug>/<locale>/.
type DirLoader struct {
	fsys fs.FS
}

// NewDirLoader creates a loader over fsys.
func NewDirLoader(fsys fs.FS) *DirLoader {
	return &DirLoader{fsys: fsys}
}

func (l *DirLoader) Manifest() (Manifest, error) {
	data, err := fs.ReadFile(l.fsys, manifestFile)
	if err != nil {
		return Manifest{}, apperror.NewPersistenceError(apperror.CodePersistenceLoadFailed,
			"read profile manifest: "+err.Error()).WithCause(err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, apperror.NewPersistenceError(apperror.CodePersistenceSessionCorrupt,
			"parse profile manifest: "+err.Error()).WithCause(err)
	}
	return m, nil
}

func (l *DirLoader) Profiles(slug, locale string) ([]Profile, error) {
	m, err := l.Manifest()
	if err != nil {
		return nil, err
	}
	cat, ok := m.Category(slug)
	if !ok {
		return nil, apperror.NewGameErrorf(apperror.CodeSelectionCategoryNotFound,
			"category %q not found in manifest", slug)
	}
	info, ok := cat.Locales[locale]
	if !ok {
		return nil, apperror.NewGameErrorf(apperror.CodeSelectionLocaleNotFound,
			"category %q has no data for locale %q", slug, locale)
	}

	var out []Profile
	for _, name := range info.Files {
		data, err := fs.ReadFile(l.fsys, path.Join(slug, locale, name))
		if err != nil {
			return nil, apperror.NewPersistenceError(apperror.CodePersistenceLoadFailed,
				fmt.Sprintf("read profile file %s/%s/%s: %v", slug, locale, name, err)).WithCause(err)
		}
		var pf profileFile
		if err := json.Unmarshal(data, &pf); err != nil {
			return nil, apperror.NewPersistenceError(apperror.CodePersistenceSessionCorrupt,
				fmt.Sprintf("parse profile file %s/%s/%s: %v", slug, locale, name, err)).WithCause(err)
		}
		out = append(out, pf.Profiles...)
	}
	return out, nil
}

// HTTPLoader fetches manifest and profile data over HTTP from a base URL.
// Fetch failures surface as typed network errors carrying the status code
// and endpoint.
type HTTPLoader struct {
	base   string
	client *http.Client
}

// NewHTTPLoader creates a loader rooted at base. A nil client uses
// http.DefaultClient.
func NewHTTPLoader(base string, client *http.Client) *HTTPLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPLoader{
		base:   strings.TrimSuffix(base, "/"),
		client: client,
	}
}

func (l *HTTPLoader) fetch(endpoint string) ([]byte, error) {
	url := l.base + endpoint
	resp, err := l.client.Get(url)
	if err != nil {
		return nil, apperror.NewNetworkError(apperror.CodeNetworkFetchFailed, 0, endpoint,
			"fetch "+endpoint+": "+err.Error()).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperror.NewNetworkError(apperror.CodeNetworkBadStatus, resp.StatusCode, endpoint,
			fmt.Sprintf("fetch %s: unexpected status %d", endpoint, resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewNetworkError(apperror.CodeNetworkFetchFailed, resp.StatusCode, endpoint,
			"read "+endpoint+": "+err.Error()).WithCause(err)
	}
	return data, nil
}

func (l *HTTPLoader) Manifest() (Manifest, error) {
	data, err := l.fetch("/" + manifestFile)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, apperror.NewPersistenceError(apperror.CodePersistenceSessionCorrupt,
			"parse profile manifest: "+err.Error()).WithCause(err)
	}
	return m, nil
}

func (l *HTTPLoader) Profiles(slug, locale string) ([]Profile, error) {
	m, err := l.Manifest()
	if err != nil {
		return nil, err
	}
	cat, ok := m.Category(slug)
	if !ok {
		return nil, apperror.NewGameErrorf(apperror.CodeSelectionCategoryNotFound,
			"category %q not found in manifest", slug)
	}
	info, ok := cat.Locales[locale]
	if !ok {
		return nil, apperror.NewGameErrorf(apperror.CodeSelectionLocaleNotFound,
			"category %q has no data for locale %q", slug, locale)
	}

	var out []Profile
	for _, name := range info.Files {
		data, err := l.fetch("/" + path.Join(slug, locale, name))
		if err != nil {
			return nil, err
		}
		var pf profileFile
		if err := json.Unmarshal(data, &pf); err != nil {
			return nil, apperror.NewPersistenceError(apperror.CodePersistenceSessionCorrupt,
				fmt.Sprintf("parse profile file %s/%s/%s: %v", slug, locale, name, err)).WithCause(err)
		}
		out = append(out, pf.Profiles...)
	}
	return out, nil
}
