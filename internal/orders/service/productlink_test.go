package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProductNameFromURL_H1Preferred(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Аспирин — купить в интернет-аптеке</title></head>
<body><h1> Аспирин Экспресс таб. 500мг №12 </h1></body></html>`)
	}))
	defer srv.Close()

	name := ProductNameFromURL(context.Background(), srv.Client(), srv.URL+"/product/aspirin-123")
	if name != "Аспирин Экспресс таб. 500мг №12" {
		t.Fatalf("expected h1 product name, got %q", name)
	}
}

func TestProductNameFromURL_TitleFallbackStripsStoreSuffix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Парацетамол 500мг — купить в интернет-аптеке с доставкой</title></head><body></body></html>`)
	}))
	defer srv.Close()

	name := ProductNameFromURL(context.Background(), srv.Client(), srv.URL)
	if name != "Парацетамол 500мг" {
		t.Fatalf("expected cleaned title, got %q", name)
	}
}

func TestProductNameFromURL_SlugFallbackOnFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	url := srv.URL + "/product/aspirin-ekspress-500mg-n12-tab-ship-5e326620ca7680000109559c/"
	name := ProductNameFromURL(context.Background(), srv.Client(), url)
	if name != "Aspirin ekspress 500mg n12 tab ship" {
		t.Fatalf("expected slug-derived name, got %q", name)
	}
}

func TestProductNameFromURL_NothingRecoverable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if name := ProductNameFromURL(context.Background(), srv.Client(), srv.URL+"/catalog/item"); name != "" {
		t.Fatalf("expected empty name, got %q", name)
	}
}
