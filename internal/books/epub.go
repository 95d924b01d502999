package books

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
)

const containerPath = "META-INF/container.xml"

type epubContainer struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type opfMeta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

type opfItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr"`
}

type opfPackage struct {
	Titles   []string  `xml:"metadata>title"`
	Creators []string  `xml:"metadata>creator"`
	Metas    []opfMeta `xml:"metadata>meta"`
	Items    []opfItem `xml:"manifest>item"`
}

// EpubParser reads the OPF package document of an EPUB container.
type EpubParser struct {
	Cache ThumbnailCache
}

func (p *EpubParser) Metadata(bookPath string) (Metadata, error) {
	archive, err := zip.OpenReader(bookPath)
	if err != nil {
		return Metadata{}, fmt.Errorf("open epub: %w", err)
	}
	defer archive.Close()

	pkg, _, err := readPackage(&archive.Reader)
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{Title: firstNonEmpty(pkg.Titles), Author: firstNonEmpty(pkg.Creators)}, nil
}

func (p *EpubParser) Thumbnail(bookPath string, height int) (string, error) {
	return p.Cache.Get(bookPath, height, func() (io.ReadCloser, error) {
		archive, err := zip.OpenReader(bookPath)
		if err != nil {
			return nil, fmt.Errorf("open epub: %w", err)
		}
		pkg, opfPath, err := readPackage(&archive.Reader)
		if err != nil {
			archive.Close()
			return nil, err
		}
		cover := pkg.coverHref()
		if cover == "" {
			archive.Close()
			return nil, ErrNoCover
		}
		f := findFile(&archive.Reader, resolveHref(opfPath, cover))
		if f == nil {
			archive.Close()
			return nil, ErrNoCover
		}
		rc, err := f.Open()
		if err != nil {
			archive.Close()
			return nil, err
		}
		return archiveEntry{ReadCloser: rc, archive: archive}, nil
	})
}

// archiveEntry closes the zip archive together with the entry.
type archiveEntry struct {
	io.ReadCloser
	archive *zip.ReadCloser
}

func (e archiveEntry) Close() error {
	err := e.ReadCloser.Close()
	if cerr := e.archive.Close(); err == nil {
		err = cerr
	}
	return err
}

func readPackage(r *zip.Reader) (*opfPackage, string, error) {
	var container epubContainer
	if err := decodeXML(r, containerPath, &container); err != nil {
		return nil, "", err
	}
	if len(container.Rootfiles) == 0 || container.Rootfiles[0].FullPath == "" {
		return nil, "", fmt.Errorf("epub: no rootfile in %s", containerPath)
	}
	opfPath := container.Rootfiles[0].FullPath
	var pkg opfPackage
	if err := decodeXML(r, opfPath, &pkg); err != nil {
		return nil, "", err
	}
	return &pkg, opfPath, nil
}

func decodeXML(r *zip.Reader, name string, v interface{}) error {
	f := findFile(r, name)
	if f == nil {
		return fmt.Errorf("epub: missing %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := xml.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("epub: parse %s: %w", name, err)
	}
	return nil
}

func findFile(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if f.Name == name {
			return f
		}
	}
	// Some archives differ in case from what the OPF references.
	for _, f := range r.File {
		if strings.EqualFold(f.Name, name) {
			return f
		}
	}
	return nil
}

// coverHref finds the cover image: EPUB3 cover-image property, then the EPUB2 cover
// meta, then any image whose id or href mentions "cover".
func (pkg *opfPackage) coverHref() string {
	for _, item := range pkg.Items {
		for _, prop := range strings.Fields(item.Properties) {
			if prop == "cover-image" {
				return item.Href
			}
		}
	}
	for _, meta := range pkg.Metas {
		if meta.Name != "cover" || meta.Content == "" {
			continue
		}
		for _, item := range pkg.Items {
			if item.ID == meta.Content && isImage(item) {
				return item.Href
			}
		}
	}
	for _, item := range pkg.Items {
		if !isImage(item) {
			continue
		}
		if strings.Contains(strings.ToLower(item.ID), "cover") || strings.Contains(strings.ToLower(item.Href), "cover") {
			return item.Href
		}
	}
	return ""
}

func isImage(item opfItem) bool {
	return strings.HasPrefix(item.MediaType, "image/")
}

func resolveHref(opfPath, href string) string {
	if unescaped, err := url.PathUnescape(href); err == nil {
		href = unescaped
	}
	return path.Join(path.Dir(opfPath), href)
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
