package animation

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
)

const (
	manifestFile  = "manifest.json"
	animationsDir = "animations"
	imagesDir     = "images"
)

var zipMagic = []byte("PK\x03\x04")

// IsArchive reports whether data starts like a zip file.
func IsArchive(data []byte) bool {
	return bytes.HasPrefix(data, zipMagic)
}

// ReadArchive decodes a dotLottie archive. Images stored next to the
// animations are inlined as data URIs so the engine needs no file access.
func ReadArchive(data []byte) (*Bundle, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[strings.TrimPrefix(f.Name, "/")] = f
	}

	raw, err := readZipFile(files, manifestFile)
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("decode %s: %w", manifestFile, err)
	}
	if len(manifest.Animations) == 0 {
		return nil, fmt.Errorf("%w: manifest lists no animations", ErrInvalid)
	}

	bundle := &Bundle{Manifest: &manifest, IsDotLottie: true}
	for _, entry := range manifest.Animations {
		raw, err := readZipFile(files, path.Join(animationsDir, entry.ID+".json"))
		if err != nil {
			return nil, err
		}
		raw, err = inlineImages(raw, files)
		if err != nil {
			return nil, fmt.Errorf("animation %q: %w", entry.ID, err)
		}
		bundle.Animations = append(bundle.Animations, Animation{ID: entry.ID, Data: raw})
	}

	return bundle, nil
}

func readZipFile(files map[string]*zip.File, name string) ([]byte, error) {
	f, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("archive has no %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

type asset = map[string]any

func inlineImages(raw []byte, files map[string]*zip.File) ([]byte, error) {
	var doc map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	assets, _ := doc["assets"].([]any)
	changed := false
	for _, a := range assets {
		a, ok := a.(asset)
		if !ok {
			continue
		}
		p, _ := a["p"].(string)
		if p == "" || strings.HasPrefix(p, "data:") {
			continue
		}

		img, err := readZipFile(files, path.Join(imagesDir, path.Base(p)))
		if err != nil {
			continue
		}
		a["p"] = dataURI(p, img)
		a["u"] = ""
		a["e"] = 1
		changed = true
	}

	if !changed {
		return raw, nil
	}
	return json.Marshal(doc)
}

func dataURI(name string, data []byte) string {
	typ := mime.TypeByExtension(path.Ext(name))
	if typ == "" {
		typ = "image/png"
	}
	return "data:" + typ + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// WriteArchive encodes b as a dotLottie archive. A bundle without a manifest
// gets one synthesized with default settings.
func WriteArchive(w io.Writer, b *Bundle) error {
	manifest := b.Manifest
	if manifest == nil {
		manifest = Synthesize(b.Animations, ManifestDefaults{Autoplay: true, Mode: "normal", Speed: 1, Direction: 1})
	}

	zw := zip.NewWriter(w)

	raw, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := writeZipFile(zw, manifestFile, raw); err != nil {
		return err
	}

	for _, a := range b.Animations {
		if err := writeZipFile(zw, path.Join(animationsDir, a.ID+".json"), a.Data); err != nil {
			return err
		}
	}

	return zw.Close()
}

func writeZipFile(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
