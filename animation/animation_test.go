package animation

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dotplay-cli/dotplay/filesystem"
	"github.com/dotplay-cli/dotplay/playlist"
	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

const lottie = `{"v":"5.7.4","fr":30,"ip":0,"op":90,"w":200,"h":100,"nm":"spinner","layers":[{"ty":4}],"assets":[]}`

func archiveWith(files map[string]string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		f, _ := zw.Create(name)
		_, _ = f.Write([]byte(content))
	}
	_ = zw.Close()
	return buf.Bytes()
}

func TestValidate(t *testing.T) {
	Convey("A complete document is valid", t, func() {
		So(Validate([]byte(lottie)), ShouldBeNil)
	})

	Convey("A document missing keys names them", t, func() {
		err := Validate([]byte(`{"v":"5","ip":0,"op":10}`))
		So(errors.Is(err, ErrInvalid), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "layers")
	})

	Convey("Garbage is invalid", t, func() {
		So(errors.Is(Validate([]byte("<svg/>")), ErrInvalid), ShouldBeTrue)
	})
}

func TestDescribe(t *testing.T) {
	Convey("Metadata is decoded", t, func() {
		info, err := Animation{Data: json.RawMessage(lottie)}.Describe()
		So(err, ShouldBeNil)
		So(info.Name, ShouldEqual, "spinner")
		So(info.Frames(), ShouldEqual, 90)
		So(info.Seconds(), ShouldEqual, 3)
		So(info.Layers, ShouldHaveLength, 1)
	})
}

func TestDecode(t *testing.T) {
	Convey("Plain JSON becomes a single animation named after the file", t, func() {
		b, err := Decode("https://cdn.example.com/anims/Blue Loader.json?v=2", []byte(lottie))
		So(err, ShouldBeNil)
		So(b.IsDotLottie, ShouldBeFalse)
		So(b.Manifest, ShouldBeNil)
		So(b.Animations[0].ID, ShouldEqual, "Blue_Loader")
	})

	Convey("An archive is read through its manifest", t, func() {
		data := archiveWith(map[string]string{
			"manifest.json":     `{"animations":[{"id":"a","loop":true},{"id":"b","mode":"bounce"}]}`,
			"animations/a.json": lottie,
			"animations/b.json": lottie,
			"images/unused.png": "png",
		})
		b, err := Decode("pack.lottie", data)
		So(err, ShouldBeNil)
		So(b.IsDotLottie, ShouldBeTrue)
		So(b.Manifest.IDs(), ShouldResemble, []string{"a", "b"})

		m, ok := b.Manifest.Find("b")
		So(ok, ShouldBeTrue)
		mode, _ := m.Settings().Mode.Get()
		So(mode, ShouldEqual, playlist.Bounce)
	})

	Convey("An archive missing an animation file is rejected", t, func() {
		data := archiveWith(map[string]string{"manifest.json": `{"animations":[{"id":"a"}]}`})
		_, err := Decode("pack.lottie", data)
		So(err, ShouldNotBeNil)
	})

	Convey("An archive whose animation is broken fails validation", t, func() {
		data := archiveWith(map[string]string{
			"manifest.json":     `{"animations":[{"id":"a"}]}`,
			"animations/a.json": `{"v":"5"}`,
		})
		_, err := Decode("pack.lottie", data)
		So(errors.Is(err, ErrInvalid), ShouldBeTrue)
	})
}

func TestArchiveImages(t *testing.T) {
	Convey("Given an archive with an external image asset", t, func() {
		doc := `{"v":"5.7.4","fr":30,"ip":0,"op":90,"w":1,"h":1,"layers":[],"assets":[{"id":"img_0","w":1,"h":1,"u":"/images/","p":"img_0.png","e":0}]}`
		data := archiveWith(map[string]string{
			"manifest.json":     `{"animations":[{"id":"a"}]}`,
			"animations/a.json": doc,
			"images/img_0.png":  "\x89PNG",
		})

		b, err := ReadArchive(data)
		So(err, ShouldBeNil)

		Convey("The image is inlined as a data URI", func() {
			var parsed struct {
				Assets []struct {
					P string `json:"p"`
					E int    `json:"e"`
				} `json:"assets"`
			}
			So(json.Unmarshal(b.Animations[0].Data, &parsed), ShouldBeNil)
			So(parsed.Assets[0].P, ShouldStartWith, "data:image/png;base64,")
			So(parsed.Assets[0].E, ShouldEqual, 1)
		})
	})
}

func TestConvert(t *testing.T) {
	Convey("Given a plain animation", t, func() {
		b, _ := Decode("spinner.json", []byte(lottie))

		Convey("It converts to an archive that reads back", func() {
			out, err := Convert(b, 0, "spinner.json")
			So(err, ShouldBeNil)
			So(out.Name, ShouldEqual, "spinner.lottie")
			So(IsArchive(out.Data), ShouldBeTrue)

			back, err := Decode(out.Name, out.Data)
			So(err, ShouldBeNil)
			So(back.Manifest.Generator, ShouldStartWith, "dotplay")
			So(back.Manifest.IDs(), ShouldResemble, []string{"spinner"})
		})
	})

	Convey("Given an archive of two", t, func() {
		b, err := Combine(nil,
			Addition{ID: "one", Bundle: &Bundle{Animations: []Animation{{ID: "x", Data: json.RawMessage(lottie)}}}},
			Addition{ID: "two", Bundle: &Bundle{Animations: []Animation{{ID: "y", Data: json.RawMessage(lottie)}}}},
		)
		So(err, ShouldBeNil)

		Convey("The chosen animation is extracted with its number", func() {
			out, err := Convert(b, 1, "pack.lottie")
			So(err, ShouldBeNil)
			So(out.Name, ShouldEqual, "pack-2.json")
			So(string(out.Data), ShouldEqual, lottie)
		})

		Convey("Out of range indexes are rejected", func() {
			_, err := Convert(b, 2, "pack.lottie")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestCombine(t *testing.T) {
	single := func() *Bundle {
		return &Bundle{Animations: []Animation{{ID: "x", Data: json.RawMessage(lottie)}}}
	}

	Convey("Given a base archive", t, func() {
		base, err := Combine(nil, Addition{ID: "intro", Bundle: single()})
		So(err, ShouldBeNil)

		Convey("Animations are appended in order", func() {
			out, err := Combine(base, Addition{ID: "outro", Bundle: single()})
			So(err, ShouldBeNil)
			So(out.Manifest.IDs(), ShouldResemble, []string{"intro", "outro"})
			So(out.Animations[1].ID, ShouldEqual, "outro")
		})

		Convey("A duplicate id is rejected", func() {
			_, err := Combine(base, Addition{ID: "intro", Bundle: single()})
			So(errors.Is(err, ErrDuplicateID), ShouldBeTrue)
		})

		Convey("A missing id is generated", func() {
			out, err := Combine(base, Addition{Bundle: single()})
			So(err, ShouldBeNil)
			So(out.Manifest.Animations[1].ID, ShouldHaveLength, 8)
		})

		Convey("The base is left untouched", func() {
			_, _ = Combine(base, Addition{ID: "outro", Bundle: single()})
			So(base.Manifest.IDs(), ShouldResemble, []string{"intro"})
		})
	})

	Convey("An empty addition is an error", t, func() {
		_, err := Combine(nil, Addition{ID: "a", Bundle: &Bundle{}})
		So(err, ShouldNotBeNil)
	})
}

func TestSynthesize(t *testing.T) {
	Convey("A synthesized manifest carries the defaults", t, func() {
		anims := []Animation{{Data: json.RawMessage(lottie)}}
		m := Synthesize(anims, ManifestDefaults{Autoplay: true, Mode: "bounce", Speed: 2, Direction: -1})

		So(anims[0].ID, ShouldNotBeEmpty)
		s := m.Animations[0].Settings()
		So(s.Autoplay.OrEmpty(), ShouldBeTrue)
		So(s.Mode.OrEmpty(), ShouldEqual, playlist.Bounce)
		So(s.Speed.OrEmpty(), ShouldEqual, 2)
		So(s.Direction.OrEmpty(), ShouldEqual, -1)
		So(s.Loop.IsPresent(), ShouldBeFalse)
	})
}

func TestLoader(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()

		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			switch r.URL.Path {
			case "/remote.json":
				_, _ = w.Write([]byte(lottie))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()

		l := &Loader{Client: srv.Client(), Cache: NewCache("/cache", time.Hour)}

		Convey("Local files are read through afero", func() {
			So(afero.WriteFile(fs, "/anims/local.json", []byte(lottie), 0o644), ShouldBeNil)
			b, err := l.Load(context.Background(), "/anims/local.json")
			So(err, ShouldBeNil)
			So(b.Animations[0].ID, ShouldEqual, "local")
		})

		Convey("Missing local files are an error", func() {
			_, err := l.Load(context.Background(), "/anims/none.json")
			So(err, ShouldNotBeNil)
		})

		Convey("Remote sources are cached", func() {
			_, err := l.Load(context.Background(), srv.URL+"/remote.json")
			So(err, ShouldBeNil)
			_, err = l.Load(context.Background(), srv.URL+"/remote.json")
			So(err, ShouldBeNil)
			So(hits.Load(), ShouldEqual, 1)
		})

		Convey("Expired cache entries are collected", func() {
			c := NewCache("/gc", time.Hour)
			So(c.Set("https://example.com/old.json", []byte(lottie)), ShouldBeNil)
			So(c.Set("https://example.com/new.json", []byte(lottie)), ShouldBeNil)

			old := filepath.Join("/gc", uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://example.com/old.json")).String()+".json")
			stale := time.Now().Add(-2 * time.Hour)
			So(fs.Chtimes(old, stale, stale), ShouldBeNil)

			c.CollectGarbage()

			exists, err := fs.Exists(old)
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
			So(c.Get("https://example.com/new.json").IsPresent(), ShouldBeTrue)
		})

		Convey("Remote failures are reported", func() {
			_, err := l.Load(context.Background(), srv.URL+"/gone.json")
			So(err, ShouldNotBeNil)
		})

		Convey("A playlist file combines its sources with overrides", func() {
			So(afero.WriteFile(fs, "/anims/a.json", []byte(lottie), 0o644), ShouldBeNil)
			yml := "author: me\nanimations:\n  - src: a.json\n    mode: bounce\n  - src: " + srv.URL + "/remote.json\n    id: web\n    autoplay: false\n"
			So(afero.WriteFile(fs, "/anims/list.yaml", []byte(yml), 0o644), ShouldBeNil)

			b, err := l.Load(context.Background(), "/anims/list.yaml")
			So(err, ShouldBeNil)
			So(b.IsDotLottie, ShouldBeTrue)
			So(b.Manifest.IDs(), ShouldResemble, []string{"a", "web"})
			So(b.Manifest.Author, ShouldEqual, "me")

			first, _ := b.Manifest.Find("a")
			So(*first.Mode, ShouldEqual, "bounce")
			web, _ := b.Manifest.Find("web")
			So(*web.Autoplay, ShouldBeFalse)
		})

		Convey("A playlist with a broken source fails as a whole", func() {
			yml := "animations:\n  - src: " + srv.URL + "/gone.json\n"
			So(afero.WriteFile(fs, "/anims/bad.yml", []byte(yml), 0o644), ShouldBeNil)
			_, err := l.Load(context.Background(), "/anims/bad.yml")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParsePlaylistFile(t *testing.T) {
	Convey("Empty playlists are invalid", t, func() {
		_, err := ParsePlaylistFile([]byte("animations: []\n"))
		So(errors.Is(err, ErrInvalid), ShouldBeTrue)
	})

	Convey("Entries need a src", t, func() {
		_, err := ParsePlaylistFile([]byte("animations:\n  - id: a\n"))
		So(err, ShouldNotBeNil)
	})
}

func TestWatcher(t *testing.T) {
	Convey("Given a watched file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "anim.json")
		So(os.WriteFile(path, []byte(lottie), 0o644), ShouldBeNil)

		w, err := NewWatcher(path)
		So(err, ShouldBeNil)
		defer w.Close()

		Convey("Writing it is reported", func() {
			So(os.WriteFile(path, []byte(lottie+" "), 0o644), ShouldBeNil)

			select {
			case name := <-w.Events:
				abs, _ := filepath.Abs(path)
				So(name, ShouldEqual, abs)
			case <-time.After(3 * time.Second):
				t.Fatal("no event")
			}
		})

		Convey("Other files in the directory are ignored", func() {
			So(os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644), ShouldBeNil)

			select {
			case name := <-w.Events:
				t.Fatalf("unexpected event for %s", name)
			case <-time.After(300 * time.Millisecond):
			}
		})
	})
}
