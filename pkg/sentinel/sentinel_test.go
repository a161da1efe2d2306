package sentinel

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/kisan-depin/dmrv/pkg/errors"
	"github.com/kisan-depin/dmrv/pkg/geo"
)

func tilePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 60, G: 100, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("encode tile: %v", err)
	}
	return buf.Bytes()
}

func TestFetchTile(t *testing.T) {
	png := tilePNG(t)
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tiles" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"west":       q.Get("west"),
			"south":      q.Get("south"),
			"east":       q.Get("east"),
			"north":      q.Get("north"),
			"date_start": q.Get("date_start"),
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithBBoxSize(0.01))
	coord := geo.Coordinate{Lat: 28.6139, Lon: 77.2090}

	img, err := client.FetchTile(context.Background(), coord, DateRange{Start: "2025-10-01"})
	if err != nil {
		t.Fatalf("FetchTile error: %v", err)
	}
	if img.Bounds().Dx() != 64 {
		t.Errorf("tile width = %d", img.Bounds().Dx())
	}

	if gotQuery["west"] != "77.199000" || gotQuery["east"] != "77.219000" {
		t.Errorf("longitude bbox = %s..%s", gotQuery["west"], gotQuery["east"])
	}
	if gotQuery["south"] != "28.603900" || gotQuery["north"] != "28.623900" {
		t.Errorf("latitude bbox = %s..%s", gotQuery["south"], gotQuery["north"])
	}
	if gotQuery["date_start"] != "2025-10-01" {
		t.Errorf("date_start = %s", gotQuery["date_start"])
	}
}

func TestFetchTileUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no imagery for bbox", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.FetchTile(context.Background(), geo.Coordinate{Lat: 28.6139, Lon: 77.2090}, DateRange{})
	if !errors.Is(err, errors.ErrCodeUpstreamUnavailable) {
		t.Errorf("error = %v, want UPSTREAM_UNAVAILABLE", err)
	}
}

func TestFetchTileBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is not an image"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.FetchTile(context.Background(), geo.Coordinate{Lat: 28.6139, Lon: 77.2090}, DateRange{})
	if err == nil {
		t.Fatal("undecodable payload should be an error")
	}
	if !errors.Is(err, errors.ErrCodeUpstreamUnavailable) {
		t.Errorf("error = %v, want UPSTREAM_UNAVAILABLE", err)
	}
}
